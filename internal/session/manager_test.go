package session

import (
	"context"
	"testing"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if err := database.Connect(":memory:"); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
}

func TestSaveKeyInitializesFreshStats(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}

	stats, err := m.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats == nil {
		t.Fatal("expected stats to be initialized on first save")
	}
	if stats.CardsReviewed != 0 || stats.StreakDays != 0 || stats.AverageScore != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

func TestSaveKeyAdoptionIsIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}
	if err := m.RecordCardStudy(ctx, true, 2); err != nil {
		t.Fatalf("RecordCardStudy failed: %v", err)
	}

	// Saving the same key again must not reset accumulated data.
	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("second SaveKey failed: %v", err)
	}

	stats, err := m.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.CardsReviewed != 1 {
		t.Errorf("expected cards_reviewed to survive re-adoption, got %d", stats.CardsReviewed)
	}
	if stats.TotalStudyTime != 2 {
		t.Errorf("expected study time to survive re-adoption, got %d", stats.TotalStudyTime)
	}
}

func TestClearKeyKeepsPerKeyData(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}
	if err := m.RecordCardStudy(ctx, true, 1); err != nil {
		t.Fatalf("RecordCardStudy failed: %v", err)
	}
	if err := m.ClearKey(ctx); err != nil {
		t.Fatalf("ClearKey failed: %v", err)
	}

	key, err := m.GetKey(ctx)
	if err != nil {
		t.Fatalf("GetKey failed: %v", err)
	}
	if key != "" {
		t.Errorf("expected no key after clear, got %q", key)
	}

	// Reload the same key: its stats are still there.
	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey after clear failed: %v", err)
	}
	stats, err := m.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.CardsReviewed != 1 {
		t.Errorf("expected stats to survive clear+reload, got %d reviewed", stats.CardsReviewed)
	}
}

func TestIsExpired(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	// No session at all: lenient default.
	expired, err := m.IsExpired(ctx)
	if err != nil {
		t.Fatalf("IsExpired failed: %v", err)
	}
	if expired {
		t.Error("expected missing session to count as not expired")
	}

	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}
	expired, err = m.IsExpired(ctx)
	if err != nil {
		t.Fatalf("IsExpired failed: %v", err)
	}
	if expired {
		t.Error("fresh session should not be expired")
	}

	has, err := m.HasSession(ctx)
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if !has {
		t.Error("expected HasSession true for a fresh key")
	}
}

func TestVerifySessionClearsExpiredKey(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}

	// Force the expiry into the past.
	repo := database.NewSessionRepository()
	if err := repo.UpdateExpiry(ctx, time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatalf("UpdateExpiry failed: %v", err)
	}

	ok, err := m.VerifySession(ctx)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if ok {
		t.Error("expected expired session to be rejected")
	}

	key, err := m.GetKey(ctx)
	if err != nil {
		t.Fatalf("GetKey failed: %v", err)
	}
	if key != "" {
		t.Errorf("expected expired key to be cleared, still have %q", key)
	}
}

func TestVerifySessionExtendsExpiry(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	if err := m.SaveKey(ctx, "AAAA1111BBBB"); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}

	repo := database.NewSessionRepository()
	nearExpiry := time.Now().UTC().Add(time.Hour)
	if err := repo.UpdateExpiry(ctx, nearExpiry); err != nil {
		t.Fatalf("UpdateExpiry failed: %v", err)
	}

	ok, err := m.VerifySession(ctx)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if !ok {
		t.Fatal("expected valid session to verify")
	}

	state, err := repo.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if state.ExpiresAt == nil || !state.ExpiresAt.After(nearExpiry) {
		t.Error("expected verification to push the expiry forward")
	}
	if state.LastActivity == nil {
		t.Error("expected verification to record activity")
	}
}

func TestVerifySessionRejectsBadFormat(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	// Store a key that does not match the accepted format.
	repo := database.NewSessionRepository()
	if err := repo.SetState(ctx, "not-a-valid-key", time.Now().UTC().Add(TTL)); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}

	ok, err := m.VerifySession(ctx)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if ok {
		t.Error("expected malformed key to fail verification")
	}
}
