package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

// SessionState is the single current-session row: which key is active,
// when it expires, when it was last used. Per-key stats live in their own
// table and survive a cleared state.
type SessionState struct {
	Key          string     `db:"key"`
	ExpiresAt    *time.Time `db:"expires_at"`
	LastActivity *time.Time `db:"last_activity"`
}

// SessionRepository handles database operations for session state and
// per-key statistics
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// GetState returns the current session row, or nil if no key is stored.
func (r *SessionRepository) GetState(ctx context.Context) (*SessionState, error) {
	var state SessionState
	err := DB.GetContext(ctx, &state,
		"SELECT key, expires_at, last_activity FROM session_state WHERE id = 1")
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session state: %v", err)
	}
	return &state, nil
}

// SetState stores key as the current session with the given expiry,
// replacing any previous state.
func (r *SessionRepository) SetState(ctx context.Context, key string, expiresAt time.Time) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO session_state (id, key, expires_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET key = excluded.key, expires_at = excluded.expires_at
	`, key, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set session state: %v", err)
	}
	return nil
}

// UpdateExpiry pushes the current session's expiry forward.
func (r *SessionRepository) UpdateExpiry(ctx context.Context, expiresAt time.Time) error {
	_, err := DB.ExecContext(ctx, "UPDATE session_state SET expires_at = ? WHERE id = 1", expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update session expiry: %v", err)
	}
	return nil
}

// UpdateLastActivity stamps the current session's last-activity time.
func (r *SessionRepository) UpdateLastActivity(ctx context.Context, at time.Time) error {
	_, err := DB.ExecContext(ctx, "UPDATE session_state SET last_activity = ? WHERE id = 1", at)
	if err != nil {
		return fmt.Errorf("failed to update session activity: %v", err)
	}
	return nil
}

// ClearState removes the current key and its expiry marker only. Per-key
// collections stay addressable if the same key is loaded again.
func (r *SessionRepository) ClearState(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, "DELETE FROM session_state WHERE id = 1")
	if err != nil {
		return fmt.Errorf("failed to clear session state: %v", err)
	}
	return nil
}

// HasStats reports whether a stats row exists for a key.
func (r *SessionRepository) HasStats(ctx context.Context, key string) (bool, error) {
	var count int
	err := DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM session_stats WHERE session_key = ?", key)
	if err != nil {
		return false, fmt.Errorf("failed to check session stats: %v", err)
	}
	return count > 0, nil
}

// GetStats returns the stats row for a key, or nil if none exists.
func (r *SessionRepository) GetStats(ctx context.Context, key string) (*models.SessionStats, error) {
	var stats models.SessionStats
	var studyDaysJSON string

	row := DB.QueryRowContext(ctx, `
		SELECT session_key, cards_reviewed, correct_answers, incorrect_answers,
		       total_study_time, study_sessions, streak_days, last_study_date,
		       study_days, average_score, last_active
		FROM session_stats WHERE session_key = ?
	`, key)

	err := row.Scan(
		&stats.SessionKey,
		&stats.CardsReviewed,
		&stats.CorrectAnswers,
		&stats.IncorrectAnswers,
		&stats.TotalStudyTime,
		&stats.StudySessions,
		&stats.StreakDays,
		&stats.LastStudyDate,
		&studyDaysJSON,
		&stats.AverageScore,
		&stats.LastActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session stats: %v", err)
	}

	if studyDaysJSON != "" {
		if err := json.Unmarshal([]byte(studyDaysJSON), &stats.StudyDays); err != nil {
			return nil, fmt.Errorf("failed to parse study days: %v", err)
		}
	}

	return &stats, nil
}

// SaveStats upserts the stats row for its session key.
func (r *SessionRepository) SaveStats(ctx context.Context, stats *models.SessionStats) error {
	studyDaysJSON, err := json.Marshal(stats.StudyDays)
	if err != nil {
		return fmt.Errorf("failed to marshal study days: %v", err)
	}

	_, err = DB.ExecContext(ctx, `
		INSERT INTO session_stats (
			session_key, cards_reviewed, correct_answers, incorrect_answers,
			total_study_time, study_sessions, streak_days, last_study_date,
			study_days, average_score, last_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_key) DO UPDATE SET
			cards_reviewed = excluded.cards_reviewed,
			correct_answers = excluded.correct_answers,
			incorrect_answers = excluded.incorrect_answers,
			total_study_time = excluded.total_study_time,
			study_sessions = excluded.study_sessions,
			streak_days = excluded.streak_days,
			last_study_date = excluded.last_study_date,
			study_days = excluded.study_days,
			average_score = excluded.average_score,
			last_active = excluded.last_active
	`,
		stats.SessionKey,
		stats.CardsReviewed,
		stats.CorrectAnswers,
		stats.IncorrectAnswers,
		stats.TotalStudyTime,
		stats.StudySessions,
		stats.StreakDays,
		stats.LastStudyDate,
		string(studyDaysJSON),
		stats.AverageScore,
		stats.LastActive,
	)
	if err != nil {
		return fmt.Errorf("failed to save session stats: %v", err)
	}

	return nil
}
