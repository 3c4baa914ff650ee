package remote

import (
	"context"
	"encoding/json"
	"log"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/jmoiron/sqlx"
)

// FallbackAuthorName is shown when a public deck's author profile cannot
// be resolved.
const FallbackAuthorName = "Utilisateur anonyme"

// DeckMirror is the write side of the remote projection. Both calls are
// best-effort: failures are logged and reported as false, never raised,
// and never roll back the local mutation that triggered them.
type DeckMirror interface {
	PushDeck(ctx context.Context, deck *models.Deck, sessionKey string) bool
	RemoveDeck(ctx context.Context, id string) bool
}

// Mirror projects public decks into the shared backend table.
type Mirror struct {
	db *sqlx.DB
}

// NewMirror creates a mirror over an open remote connection.
func NewMirror(db *sqlx.DB) *Mirror {
	return &Mirror{db: db}
}

// PushDeck upserts the deck's projection, keyed by id so repeated pushes
// never duplicate. The author is forced to the caller's session key when
// one is given.
func (m *Mirror) PushDeck(ctx context.Context, deck *models.Deck, sessionKey string) bool {
	authorID := deck.AuthorID
	if sessionKey != "" {
		authorID = sessionKey
	}

	tagsJSON, err := json.Marshal(deck.Tags)
	if err != nil {
		log.Printf("failed to marshal tags for remote push of deck %s: %v", deck.ID, err)
		return false
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO decks (id, title, description, cover_image, author_id, is_public, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			cover_image = EXCLUDED.cover_image,
			author_id = EXCLUDED.author_id,
			is_public = EXCLUDED.is_public,
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
	`,
		deck.ID,
		deck.Title,
		deck.Description,
		deck.CoverImage,
		authorID,
		deck.IsPublic,
		string(tagsJSON),
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		log.Printf("failed to push deck %s to remote store: %v", deck.ID, err)
		return false
	}

	return true
}

// RemoveDeck deletes the deck's projection by id.
func (m *Mirror) RemoveDeck(ctx context.Context, id string) bool {
	_, err := m.db.ExecContext(ctx, "DELETE FROM decks WHERE id = $1", id)
	if err != nil {
		log.Printf("failed to remove deck %s from remote store: %v", id, err)
		return false
	}
	return true
}

// FetchPublicDecks returns every deck flagged public, each summary filled
// in with two independent per-deck lookups: the flashcard count and the
// author's display name. A failed lookup defaults its value instead of
// dropping the deck.
func (m *Mirror) FetchPublicDecks(ctx context.Context) ([]models.PublicDeckSummary, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, title, description, cover_image, author_id, tags, created_at, updated_at
		FROM decks
		WHERE is_public = true
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.PublicDeckSummary
	for rows.Next() {
		var s models.PublicDeckSummary
		var tagsJSON string
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.CoverImage,
			&s.AuthorID,
			&tagsJSON,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if tagsJSON != "" {
			if err := json.Unmarshal([]byte(tagsJSON), &s.Tags); err != nil {
				log.Printf("failed to parse tags for public deck %s: %v", s.ID, err)
			}
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		var count int
		err := m.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM flashcards WHERE deck_id = $1", summaries[i].ID)
		if err != nil {
			log.Printf("failed to count flashcards for public deck %s: %v", summaries[i].ID, err)
			count = 0
		}
		summaries[i].FlashcardCount = count

		var username string
		err = m.db.GetContext(ctx, &username,
			"SELECT username FROM profiles WHERE id = $1", summaries[i].AuthorID)
		if err != nil || username == "" {
			username = FallbackAuthorName
		}
		summaries[i].AuthorName = username
	}

	return summaries, nil
}
