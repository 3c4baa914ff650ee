package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
)

// TTL is the rolling session lifetime: any recorded activity pushes the
// expiry this far into the future.
const TTL = 30 * 24 * time.Hour

// Manager owns the anonymous session key that anchors every other
// entity, plus the per-key learning statistics.
type Manager struct {
	sessions *database.SessionRepository
	users    *database.UserRepository
	decks    *database.DeckRepository
	themes   *database.ThemeRepository
	cards    *database.FlashcardRepository
}

// NewManager creates a session manager over the local store.
func NewManager() *Manager {
	return &Manager{
		sessions: database.NewSessionRepository(),
		users:    database.NewUserRepository(),
		decks:    database.NewDeckRepository(),
		themes:   database.NewThemeRepository(),
		cards:    database.NewFlashcardRepository(),
	}
}

// SaveKey persists key as the current session and refreshes its expiry.
// The first save under a key initializes a fresh stats block; saving a
// key that already has data adopts it untouched. The singleton user is
// rebound to the key as an explicit step here, not on later reads.
func (m *Manager) SaveKey(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("session key is empty")
	}

	if err := m.sessions.SetState(ctx, key, time.Now().UTC().Add(TTL)); err != nil {
		return err
	}

	hasStats, err := m.sessions.HasStats(ctx, key)
	if err != nil {
		return err
	}
	if !hasStats {
		if err := m.sessions.SaveStats(ctx, emptyStats(key)); err != nil {
			return err
		}
	}

	if _, err := m.users.Reconcile(ctx, key); err != nil {
		return err
	}

	return nil
}

// GetKey returns the current session key, or "" when none is stored.
func (m *Manager) GetKey(ctx context.Context) (string, error) {
	state, err := m.sessions.GetState(ctx)
	if err != nil {
		return "", err
	}
	if state == nil {
		return "", nil
	}
	return state.Key, nil
}

// ClearKey removes the current key and expiry marker. Per-key data stays
// addressable if the same key is loaded later.
func (m *Manager) ClearKey(ctx context.Context) error {
	return m.sessions.ClearState(ctx)
}

// IsExpired reports whether an expiry marker exists and is in the past.
// A missing marker counts as not expired.
func (m *Manager) IsExpired(ctx context.Context) (bool, error) {
	state, err := m.sessions.GetState(ctx)
	if err != nil {
		return false, err
	}
	if state == nil || state.ExpiresAt == nil {
		return false, nil
	}
	return state.ExpiresAt.Before(time.Now().UTC()), nil
}

// HasSession reports whether a non-expired key is currently stored.
func (m *Manager) HasSession(ctx context.Context) (bool, error) {
	key, err := m.GetKey(ctx)
	if err != nil {
		return false, err
	}
	if key == "" {
		return false, nil
	}
	expired, err := m.IsExpired(ctx)
	if err != nil {
		return false, err
	}
	return !expired, nil
}

// VerifySession decides whether the stored session may continue. An
// expired key is cleared and rejected. Otherwise the key is checked
// against the accepted format; a valid key gets its expiry extended and
// activity recorded. Format validity is all this can check: with no
// server authority, a plausible key and a permitted session are the same
// thing.
func (m *Manager) VerifySession(ctx context.Context) (bool, error) {
	key, err := m.GetKey(ctx)
	if err != nil {
		return false, err
	}
	if key == "" {
		return false, nil
	}

	expired, err := m.IsExpired(ctx)
	if err != nil {
		return false, err
	}
	if expired {
		if err := m.ClearKey(ctx); err != nil {
			log.Printf("warning: failed to clear expired session: %v", err)
		}
		return false, nil
	}

	if !ValidKey(key) {
		return false, nil
	}

	if err := m.sessions.UpdateExpiry(ctx, time.Now().UTC().Add(TTL)); err != nil {
		return false, err
	}
	if err := m.UpdateLastActivity(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// UpdateLastActivity stamps the session's last-activity time and folds it
// into the key's stats block.
func (m *Manager) UpdateLastActivity(ctx context.Context) error {
	key, err := m.GetKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return nil
	}

	now := time.Now().UTC()
	if err := m.sessions.UpdateLastActivity(ctx, now); err != nil {
		return err
	}

	stats, err := m.getOrCreateStats(ctx, key)
	if err != nil {
		return err
	}
	stats.LastActive = &now
	return m.sessions.SaveStats(ctx, stats)
}
