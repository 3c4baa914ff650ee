package models

import "time"

// PublicDeckSummary is one row of the shared public-deck catalog: the
// remote deck projection plus read-side lookups (card count, author
// display name) that are filled in per deck and default when a lookup
// fails.
type PublicDeckSummary struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	CoverImage     string    `json:"cover_image,omitempty" db:"cover_image"`
	AuthorID       string    `json:"author_id" db:"author_id"`
	AuthorName     string    `json:"author_name" db:"-"`
	FlashcardCount int       `json:"flashcard_count" db:"-"`
	Tags           []string  `json:"tags" db:"-"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
