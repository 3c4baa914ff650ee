package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/google/uuid"
)

// FlashcardRepository handles database operations for flashcards
type FlashcardRepository struct{}

// NewFlashcardRepository creates a new repository instance
func NewFlashcardRepository() *FlashcardRepository {
	return &FlashcardRepository{}
}

const flashcardColumns = `id, deck_id, theme_id,
	front_text, front_image, front_audio, front_additional_info,
	back_text, back_image, back_audio, back_additional_info,
	created_at, updated_at`

func scanFlashcard(row interface{ Scan(...interface{}) error }) (*models.Flashcard, error) {
	var card models.Flashcard
	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.ThemeID,
		&card.Front.Text,
		&card.Front.Image,
		&card.Front.Audio,
		&card.Front.AdditionalInfo,
		&card.Back.Text,
		&card.Back.Image,
		&card.Back.Audio,
		&card.Back.AdditionalInfo,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetAllByDeck returns every flashcard in a deck, themed or not.
func (r *FlashcardRepository) GetAllByDeck(ctx context.Context, deckID string) ([]models.Flashcard, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT "+flashcardColumns+" FROM flashcards WHERE deck_id = ? ORDER BY created_at", deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcards: %v", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flashcard: %v", err)
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// GetAllByTheme returns the flashcards assigned to one theme.
func (r *FlashcardRepository) GetAllByTheme(ctx context.Context, themeID string) ([]models.Flashcard, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT "+flashcardColumns+" FROM flashcards WHERE theme_id = ? ORDER BY created_at", themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcards by theme: %v", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flashcard: %v", err)
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// GetByID returns a flashcard, or nil if the id is unknown.
func (r *FlashcardRepository) GetByID(ctx context.Context, id string) (*models.Flashcard, error) {
	row := DB.QueryRowContext(ctx, "SELECT "+flashcardColumns+" FROM flashcards WHERE id = ?", id)
	card, err := scanFlashcard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcard: %v", err)
	}
	return card, nil
}

// Create inserts a new flashcard.
func (r *FlashcardRepository) Create(ctx context.Context, card *models.Flashcard) error {
	if card.DeckID == "" {
		return fmt.Errorf("flashcard requires a deck id")
	}
	if card.ID == "" {
		card.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	_, err := DB.ExecContext(ctx, `
		INSERT INTO flashcards (
			id, deck_id, theme_id,
			front_text, front_image, front_audio, front_additional_info,
			back_text, back_image, back_audio, back_additional_info,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID,
		card.DeckID,
		card.ThemeID,
		card.Front.Text,
		card.Front.Image,
		card.Front.Audio,
		card.Front.AdditionalInfo,
		card.Back.Text,
		card.Back.Image,
		card.Back.Audio,
		card.Back.AdditionalInfo,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create flashcard: %v", err)
	}

	return nil
}

// FlashcardUpdate carries the mutable flashcard fields for a partial
// update. A non-nil side replaces the stored side wholesale.
type FlashcardUpdate struct {
	ThemeID *string
	Front   *models.CardSide
	Back    *models.CardSide
}

// Update merges the partial fields into an existing flashcard. Returns
// nil if the id is unknown.
func (r *FlashcardRepository) Update(ctx context.Context, id string, partial FlashcardUpdate) (*models.Flashcard, error) {
	card, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, nil
	}

	if partial.ThemeID != nil {
		card.ThemeID = *partial.ThemeID
	}
	if partial.Front != nil {
		card.Front = *partial.Front
	}
	if partial.Back != nil {
		card.Back = *partial.Back
	}
	card.UpdatedAt = time.Now().UTC()

	_, err = DB.ExecContext(ctx, `
		UPDATE flashcards
		SET theme_id = ?,
			front_text = ?, front_image = ?, front_audio = ?, front_additional_info = ?,
			back_text = ?, back_image = ?, back_audio = ?, back_additional_info = ?,
			updated_at = ?
		WHERE id = ?
	`,
		card.ThemeID,
		card.Front.Text,
		card.Front.Image,
		card.Front.Audio,
		card.Front.AdditionalInfo,
		card.Back.Text,
		card.Back.Image,
		card.Back.Audio,
		card.Back.AdditionalInfo,
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update flashcard: %v", err)
	}

	return card, nil
}

// Delete removes a flashcard. Returns false if the id is unknown.
func (r *FlashcardRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := DB.ExecContext(ctx, "DELETE FROM flashcards WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete flashcard: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %v", err)
	}

	return rows > 0, nil
}
