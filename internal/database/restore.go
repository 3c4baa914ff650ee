package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

// Restore helpers rewrite rows exactly as carried by a session export
// document: ids and timestamps are preserved. They back the
// whole-session import path only.

// Restore upserts a deck row as-is. A public deck queues a remote push
// so it supersedes any removal queued when the slot was cleared.
func (r *DeckRepository) Restore(ctx context.Context, deck *models.Deck) error {
	tagsJSON, err := json.Marshal(deck.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal deck tags: %v", err)
	}

	_, err = DB.ExecContext(ctx, `
		INSERT OR REPLACE INTO decks (id, title, description, cover_image, author_id, is_public, tags, created_at, updated_at)
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
		return fmt.Errorf("failed to restore deck: %v", err)
	}

	if deck.IsPublic {
		if err := enqueueRemoteOp(ctx, deck.ID, OutboxOpPush); err != nil {
			log.Printf("warning: failed to queue remote push for deck %s: %v", deck.ID, err)
		}
	}

	return nil
}

// Restore upserts a theme row as-is.
func (r *ThemeRepository) Restore(ctx context.Context, theme *models.Theme) error {
	_, err := DB.ExecContext(ctx, `
		INSERT OR REPLACE INTO themes (id, deck_id, title, description, cover_image, created_at, updated_at)
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
		return fmt.Errorf("failed to restore theme: %v", err)
	}
	return nil
}

// Restore upserts a flashcard row as-is.
func (r *FlashcardRepository) Restore(ctx context.Context, card *models.Flashcard) error {
	_, err := DB.ExecContext(ctx, `
		INSERT OR REPLACE INTO flashcards (
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
		return fmt.Errorf("failed to restore flashcard: %v", err)
	}
	return nil
}

// Restore upserts the singleton user row as-is.
func (r *UserRepository) Restore(ctx context.Context, user *models.User) error {
	if _, err := DB.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear user: %v", err)
	}
	if err := r.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to restore user: %v", err)
	}
	return nil
}
