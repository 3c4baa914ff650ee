package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/google/uuid"
)

// ThemeRepository handles database operations for themes
type ThemeRepository struct{}

// NewThemeRepository creates a new repository instance
func NewThemeRepository() *ThemeRepository {
	return &ThemeRepository{}
}

const themeColumns = "id, deck_id, title, description, cover_image, created_at, updated_at"

// GetAllByDeck returns every theme belonging to a deck.
func (r *ThemeRepository) GetAllByDeck(ctx context.Context, deckID string) ([]models.Theme, error) {
	var themes []models.Theme
	err := DB.SelectContext(ctx, &themes,
		"SELECT "+themeColumns+" FROM themes WHERE deck_id = ? ORDER BY created_at", deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get themes: %v", err)
	}
	return themes, nil
}

// GetByID returns a theme, or nil if the id is unknown.
func (r *ThemeRepository) GetByID(ctx context.Context, id string) (*models.Theme, error) {
	var theme models.Theme
	err := DB.GetContext(ctx, &theme, "SELECT "+themeColumns+" FROM themes WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme: %v", err)
	}
	return &theme, nil
}

// Create inserts a new theme under its deck. The deck association is
// immutable after creation.
func (r *ThemeRepository) Create(ctx context.Context, theme *models.Theme) error {
	if theme.DeckID == "" {
		return fmt.Errorf("theme requires a deck id")
	}
	if theme.ID == "" {
		theme.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	theme.CreatedAt = now
	theme.UpdatedAt = now

	_, err := DB.ExecContext(ctx, `
		INSERT INTO themes (id, deck_id, title, description, cover_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		theme.ID,
		theme.DeckID,
		theme.Title,
		theme.Description,
		theme.CoverImage,
		theme.CreatedAt,
		theme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create theme: %v", err)
	}

	return nil
}

// ThemeUpdate carries the mutable theme fields for a partial update.
type ThemeUpdate struct {
	Title       *string
	Description *string
	CoverImage  *string
}

// Update merges the partial fields into an existing theme. Returns nil if
// the id is unknown.
func (r *ThemeRepository) Update(ctx context.Context, id string, partial ThemeUpdate) (*models.Theme, error) {
	theme, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, nil
	}

	if partial.Title != nil {
		theme.Title = *partial.Title
	}
	if partial.Description != nil {
		theme.Description = *partial.Description
	}
	if partial.CoverImage != nil {
		theme.CoverImage = *partial.CoverImage
	}
	theme.UpdatedAt = time.Now().UTC()

	_, err = DB.ExecContext(ctx, `
		UPDATE themes
		SET title = ?, description = ?, cover_image = ?, updated_at = ?
		WHERE id = ?
	`,
		theme.Title,
		theme.Description,
		theme.CoverImage,
		theme.UpdatedAt,
		theme.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update theme: %v", err)
	}

	return theme, nil
}

// Delete removes a theme. Flashcards referencing it are orphaned, never
// deleted: their theme_id is cleared and they stay in the deck.
func (r *ThemeRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %v", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE flashcards SET theme_id = '' WHERE theme_id = ?", id); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to orphan theme flashcards: %v", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM themes WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete theme: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		tx.Rollback()
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %v", err)
	}

	return true, nil
}
