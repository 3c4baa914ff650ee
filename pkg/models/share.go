package models

import "time"

// SharedDeckCode is a short-lived token resolving to a local deck so
// another session can import it. Expired codes are purged lazily on the
// first resolution attempt after expiry.
type SharedDeckCode struct {
	Code      string     `json:"code" db:"code"`
	DeckID    string     `json:"deck_id" db:"deck_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// SharedDeckExport is the self-contained document carrying a whole deck
// graph across session boundaries. OriginalID preserves the source deck's
// id so a later "update existing" re-sync can find it; flashcards keep
// their original theme ids so structure survives the id remapping on
// import.
type SharedDeckExport struct {
	ID          string      `json:"id"`
	OriginalID  string      `json:"original_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CoverImage  string      `json:"cover_image,omitempty"`
	Tags        []string    `json:"tags"`
	Themes      []Theme     `json:"themes"`
	Flashcards  []Flashcard `json:"flashcards"`
}

// SessionExport bundles every collection stored under one session key.
type SessionExport struct {
	SessionKey string          `json:"session_key"`
	ExportDate time.Time       `json:"export_date"`
	UserData   SessionUserData `json:"user_data"`
}

// SessionUserData is the per-key payload of a session export.
type SessionUserData struct {
	Decks      []Deck        `json:"decks"`
	Themes     []Theme       `json:"themes"`
	Flashcards []Flashcard   `json:"flashcards"`
	Profile    *User         `json:"profile,omitempty"`
	Stats      *SessionStats `json:"stats,omitempty"`
}
