package models

import "time"

// DefaultTag is assigned when a deck is created without any tags.
const DefaultTag = "Non classé"

// Deck is a collection of flashcards, optionally organized into themes.
type Deck struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CoverImage  string    `json:"cover_image,omitempty" db:"cover_image"`
	AuthorID    string    `json:"author_id" db:"author_id"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	Tags        []string  `json:"tags" db:"-"` // stored as a JSON column
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
