package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/google/uuid"
)

// DeckRepository handles database operations for decks
type DeckRepository struct{}

// NewDeckRepository creates a new repository instance
func NewDeckRepository() *DeckRepository {
	return &DeckRepository{}
}

const deckColumns = "id, title, description, cover_image, author_id, is_public, tags, created_at, updated_at"

func scanDeck(row interface{ Scan(...interface{}) error }) (*models.Deck, error) {
	var deck models.Deck
	var tagsJSON string

	err := row.Scan(
		&deck.ID,
		&deck.Title,
		&deck.Description,
		&deck.CoverImage,
		&deck.AuthorID,
		&deck.IsPublic,
		&tagsJSON,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &deck.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse deck tags: %v", err)
		}
	}

	return &deck, nil
}

// GetAll returns every deck in the local store, newest first.
func (r *DeckRepository) GetAll(ctx context.Context) ([]models.Deck, error) {
	rows, err := DB.QueryContext(ctx, "SELECT "+deckColumns+" FROM decks ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get decks: %v", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %v", err)
		}
		decks = append(decks, *deck)
	}

	return decks, nil
}

// GetAllByAuthor returns the decks owned by one session key.
func (r *DeckRepository) GetAllByAuthor(ctx context.Context, sessionKey string) ([]models.Deck, error) {
	rows, err := DB.QueryContext(ctx, "SELECT "+deckColumns+" FROM decks WHERE author_id = ? ORDER BY created_at DESC", sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get decks for author: %v", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %v", err)
		}
		decks = append(decks, *deck)
	}

	return decks, nil
}

// GetByID returns a deck, or nil if the id is unknown.
func (r *DeckRepository) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	row := DB.QueryRowContext(ctx, "SELECT "+deckColumns+" FROM decks WHERE id = ?", id)
	deck, err := scanDeck(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %v", err)
	}
	return deck, nil
}

// Create inserts a new deck. The author is forced to the caller's session
// key, overriding whatever the deck carries. A deck created public is
// queued for a remote push; the local write succeeds regardless of the
// remote outcome.
func (r *DeckRepository) Create(ctx context.Context, deck *models.Deck, sessionKey string) error {
	if deck.ID == "" {
		deck.ID = uuid.New().String()
	}
	if sessionKey != "" {
		deck.AuthorID = sessionKey
	}
	if len(deck.Tags) == 0 {
		deck.Tags = []string{models.DefaultTag}
	}

	tagsJSON, err := json.Marshal(deck.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal deck tags: %v", err)
	}

	now := time.Now().UTC()
	deck.CreatedAt = now
	deck.UpdatedAt = now

	_, err = DB.ExecContext(ctx, `
		INSERT INTO decks (id, title, description, cover_image, author_id, is_public, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		deck.ID,
		deck.Title,
		deck.Description,
		deck.CoverImage,
		deck.AuthorID,
		deck.IsPublic,
		string(tagsJSON),
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deck: %v", err)
	}

	if deck.IsPublic {
		if err := enqueueRemoteOp(ctx, deck.ID, OutboxOpPush); err != nil {
			// Remote intent is best-effort; the local create stands.
			log.Printf("warning: failed to queue remote push for deck %s: %v", deck.ID, err)
		}
	}

	return nil
}

// DeckUpdate carries the mutable deck fields for a partial update. Nil
// pointers leave the stored value untouched.
type DeckUpdate struct {
	Title       *string
	Description *string
	CoverImage  *string
	IsPublic    *bool
	Tags        []string
}

// Update merges the partial fields into an existing deck and bumps
// updated_at. It returns the updated deck, or nil if the id is unknown.
// Visibility transitions queue the matching remote mutation: private to
// public pushes, public to private removes, public to public re-pushes.
func (r *DeckRepository) Update(ctx context.Context, id string, partial DeckUpdate) (*models.Deck, error) {
	deck, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, nil
	}

	wasPublic := deck.IsPublic

	if partial.Title != nil {
		deck.Title = *partial.Title
	}
	if partial.Description != nil {
		deck.Description = *partial.Description
	}
	if partial.CoverImage != nil {
		deck.CoverImage = *partial.CoverImage
	}
	if partial.IsPublic != nil {
		deck.IsPublic = *partial.IsPublic
	}
	if partial.Tags != nil {
		deck.Tags = partial.Tags
		if len(deck.Tags) == 0 {
			deck.Tags = []string{models.DefaultTag}
		}
	}
	deck.UpdatedAt = time.Now().UTC()

	tagsJSON, err := json.Marshal(deck.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deck tags: %v", err)
	}

	_, err = DB.ExecContext(ctx, `
		UPDATE decks
		SET title = ?, description = ?, cover_image = ?, is_public = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`,
		deck.Title,
		deck.Description,
		deck.CoverImage,
		deck.IsPublic,
		string(tagsJSON),
		deck.UpdatedAt,
		deck.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update deck: %v", err)
	}

	var op string
	switch {
	case deck.IsPublic:
		op = OutboxOpPush
	case wasPublic && !deck.IsPublic:
		op = OutboxOpRemove
	}
	if op != "" {
		if err := enqueueRemoteOp(ctx, deck.ID, op); err != nil {
			log.Printf("warning: failed to queue remote %s for deck %s: %v", op, deck.ID, err)
		}
	}

	return deck, nil
}

// Delete removes a deck and cascades to its themes and flashcards. A
// public deck additionally queues a remote removal. Returns false without
// side effects if the id is unknown.
func (r *DeckRepository) Delete(ctx context.Context, id string) (bool, error) {
	deck, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deck == nil {
		return false, nil
	}

	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %v", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM flashcards WHERE deck_id = ?", id); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete deck flashcards: %v", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM themes WHERE deck_id = ?", id); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete deck themes: %v", err)
	}

	// Provenance rows pointing at this deck would otherwise shadow an
	// older imported copy of the same document.
	if _, err := tx.ExecContext(ctx, "DELETE FROM import_provenance WHERE deck_id = ?", id); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete deck import provenance: %v", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete deck: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %v", err)
	}

	if deck.IsPublic {
		if err := enqueueRemoteOp(ctx, id, OutboxOpRemove); err != nil {
			log.Printf("warning: failed to queue remote removal for deck %s: %v", id, err)
		}
	}

	return true, nil
}
