package models

import "time"

// CardSide is one face of a flashcard. Image and Audio are data-URI
// encoded blobs embedded inline, not external URLs. At least one of
// Text/Image must be non-empty; that rule is enforced by the calling
// layer, not the store.
type CardSide struct {
	Text           string `json:"text"`
	Image          string `json:"image,omitempty"`
	Audio          string `json:"audio,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// Flashcard belongs to a deck and optionally to one of its themes.
// ThemeID is empty for themeless cards.
type Flashcard struct {
	ID        string    `json:"id" db:"id"`
	DeckID    string    `json:"deck_id" db:"deck_id"`
	ThemeID   string    `json:"theme_id,omitempty" db:"theme_id"`
	Front     CardSide  `json:"front"`
	Back      CardSide  `json:"back"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
