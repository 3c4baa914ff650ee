package session

import (
	"context"
	"fmt"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

const dateLayout = "2006-01-02"

func emptyStats(key string) *models.SessionStats {
	return &models.SessionStats{
		SessionKey: key,
		StudyDays:  []string{},
	}
}

// StatsUpdate is a partial stats mutation. Nil fields leave the stored
// counter untouched; present fields overwrite it.
type StatsUpdate struct {
	CardsReviewed    *int
	CorrectAnswers   *int
	IncorrectAnswers *int
	TotalStudyTime   *int
	StudySessions    *int
	LastStudyDate    *time.Time
}

func (m *Manager) getOrCreateStats(ctx context.Context, key string) (*models.SessionStats, error) {
	stats, err := m.sessions.GetStats(ctx, key)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = emptyStats(key)
		if err := m.sessions.SaveStats(ctx, stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// RecordCardStudy registers one reviewed card: bumps the review counter,
// exactly one answer counter, study time and session count, then runs the
// stats merge with today's date so the streak arithmetic applies.
func (m *Manager) RecordCardStudy(ctx context.Context, correct bool, minutes int) error {
	key, err := m.GetKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no active session")
	}
	if minutes <= 0 {
		minutes = 1
	}

	stats, err := m.getOrCreateStats(ctx, key)
	if err != nil {
		return err
	}

	reviewed := stats.CardsReviewed + 1
	studyTime := stats.TotalStudyTime + minutes
	sessions := stats.StudySessions + 1
	now := time.Now().UTC()

	update := StatsUpdate{
		CardsReviewed:  &reviewed,
		TotalStudyTime: &studyTime,
		StudySessions:  &sessions,
		LastStudyDate:  &now,
	}
	if correct {
		n := stats.CorrectAnswers + 1
		update.CorrectAnswers = &n
	} else {
		n := stats.IncorrectAnswers + 1
		update.IncorrectAnswers = &n
	}

	return m.UpdateSessionStats(ctx, update)
}

// UpdateSessionStats merges a partial update into the current key's stats.
// The average score is recomputed whenever an answer counter is present.
// When a study date is present, today joins the study-day set and the
// streak is decided against the pre-merge study date: yesterday extends
// it, today leaves it, anything older resets it to 1. Missing stats are
// initialized first and the merge applied to the fresh block.
func (m *Manager) UpdateSessionStats(ctx context.Context, update StatsUpdate) error {
	key, err := m.GetKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no active session")
	}

	stats, err := m.getOrCreateStats(ctx, key)
	if err != nil {
		return err
	}

	previousStudyDate := stats.LastStudyDate

	if update.CardsReviewed != nil {
		stats.CardsReviewed = *update.CardsReviewed
	}
	if update.CorrectAnswers != nil {
		stats.CorrectAnswers = *update.CorrectAnswers
	}
	if update.IncorrectAnswers != nil {
		stats.IncorrectAnswers = *update.IncorrectAnswers
	}
	if update.TotalStudyTime != nil {
		stats.TotalStudyTime = *update.TotalStudyTime
	}
	if update.StudySessions != nil {
		stats.StudySessions = *update.StudySessions
	}

	if update.CorrectAnswers != nil || update.IncorrectAnswers != nil {
		stats.RecomputeAverageScore()
	}

	if update.LastStudyDate != nil {
		today := update.LastStudyDate.Format(dateLayout)
		yesterday := update.LastStudyDate.AddDate(0, 0, -1).Format(dateLayout)

		if !containsDay(stats.StudyDays, today) {
			stats.StudyDays = append(stats.StudyDays, today)
		}

		switch {
		case previousStudyDate != nil && previousStudyDate.Format(dateLayout) == today:
			// Already studied today; the streak stands.
		case previousStudyDate != nil && previousStudyDate.Format(dateLayout) == yesterday:
			stats.StreakDays++
		default:
			stats.StreakDays = 1
		}

		stats.LastStudyDate = update.LastStudyDate
	}

	return m.sessions.SaveStats(ctx, stats)
}

// GetStats returns the current key's stats block, or nil without a
// session.
func (m *Manager) GetStats(ctx context.Context) (*models.SessionStats, error) {
	key, err := m.GetKey(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}
	return m.sessions.GetStats(ctx, key)
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
