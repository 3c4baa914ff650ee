package models

import "time"

// Theme groups flashcards inside a deck. The owning deck is immutable
// after creation.
type Theme struct {
	ID          string    `json:"id" db:"id"`
	DeckID      string    `json:"deck_id" db:"deck_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CoverImage  string    `json:"cover_image,omitempty" db:"cover_image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
