package porting

import (
	"context"
	"fmt"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/google/uuid"
)

// ExportDeck serializes a deck graph into a self-contained document. The
// document gets a fresh export id; OriginalID keeps the source deck's id
// so a later update-existing re-sync can find it. Flashcards carry their
// original theme ids so the structure survives the remapping on import.
func (s *Service) ExportDeck(ctx context.Context, deckID string) (*models.SharedDeckExport, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("deck %s does not exist", deckID)
	}

	themes, err := s.themes.GetAllByDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.GetAllByDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	if themes == nil {
		themes = []models.Theme{}
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	return &models.SharedDeckExport{
		ID:          uuid.New().String(),
		OriginalID:  deck.ID,
		Title:       deck.Title,
		Description: deck.Description,
		CoverImage:  deck.CoverImage,
		Tags:        deck.Tags,
		Themes:      themes,
		Flashcards:  cards,
	}, nil
}
