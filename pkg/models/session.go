package models

import "time"

// SessionStats tracks learning activity for one session key. The
// session itself (key plus expiry) lives in the database package's
// singleton state row.
type SessionStats struct {
	SessionKey       string     `json:"session_key" db:"session_key"`
	CardsReviewed    int        `json:"cards_reviewed" db:"cards_reviewed"`
	CorrectAnswers   int        `json:"correct_answers" db:"correct_answers"`
	IncorrectAnswers int        `json:"incorrect_answers" db:"incorrect_answers"`
	TotalStudyTime   int        `json:"total_study_time" db:"total_study_time"` // minutes
	StudySessions    int        `json:"study_sessions" db:"study_sessions"`
	StreakDays       int        `json:"streak_days" db:"streak_days"`
	LastStudyDate    *time.Time `json:"last_study_date" db:"last_study_date"`
	StudyDays        []string   `json:"study_days" db:"-"` // date strings, YYYY-MM-DD
	AverageScore     int        `json:"average_score" db:"average_score"`
	LastActive       *time.Time `json:"last_active" db:"last_active"`
}

// RecomputeAverageScore refreshes the derived score percentage. It must be
// called whenever either answer counter changes.
func (s *SessionStats) RecomputeAverageScore() {
	total := s.CorrectAnswers + s.IncorrectAnswers
	if total == 0 {
		s.AverageScore = 0
		return
	}
	s.AverageScore = int(float64(s.CorrectAnswers)/float64(total)*100 + 0.5)
}
