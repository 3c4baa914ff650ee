package porting

import (
	"context"
	"fmt"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

func validateExport(doc *models.SharedDeckExport) error {
	switch {
	case doc == nil:
		return fmt.Errorf("import document is empty")
	case doc.ID == "":
		return fmt.Errorf("import document has no id")
	case doc.OriginalID == "":
		return fmt.Errorf("import document has no original deck id")
	case doc.Title == "":
		return fmt.Errorf("import document has no title")
	case doc.Themes == nil:
		return fmt.Errorf("import document has no themes list")
	case doc.Flashcards == nil:
		return fmt.Errorf("import document has no flashcards list")
	}
	return nil
}

// ImportDeck creates an independent copy of the exported deck graph under
// the importer's session key. Every id is regenerated: the new deck never
// reuses the original id, themes get fresh ids with an old-to-new map,
// and each flashcard's theme reference is remapped through it (themeless
// cards stay themeless). The copy is always private regardless of the
// source deck's visibility. Importing the same document twice yields two
// independent decks.
func (s *Service) ImportDeck(ctx context.Context, doc *models.SharedDeckExport, importerKey string) (string, error) {
	if err := validateExport(doc); err != nil {
		return "", err
	}
	if importerKey == "" {
		return "", fmt.Errorf("import requires a session key")
	}

	deck := &models.Deck{
		Title:       doc.Title,
		Description: doc.Description,
		CoverImage:  doc.CoverImage,
		AuthorID:    importerKey,
		IsPublic:    false,
		Tags:        doc.Tags,
	}
	if err := s.decks.Create(ctx, deck, importerKey); err != nil {
		return "", err
	}

	if err := s.copyGraph(ctx, doc, deck.ID); err != nil {
		return "", err
	}

	if err := s.provenance.Record(ctx, doc.OriginalID, deck.ID); err != nil {
		return "", err
	}

	return deck.ID, nil
}

// copyGraph recreates the document's themes and flashcards under deckID,
// remapping theme references.
func (s *Service) copyGraph(ctx context.Context, doc *models.SharedDeckExport, deckID string) error {
	themeIDMap := make(map[string]string, len(doc.Themes))
	for _, src := range doc.Themes {
		theme := &models.Theme{
			DeckID:      deckID,
			Title:       src.Title,
			Description: src.Description,
			CoverImage:  src.CoverImage,
		}
		if err := s.themes.Create(ctx, theme); err != nil {
			return err
		}
		themeIDMap[src.ID] = theme.ID
	}

	for _, src := range doc.Flashcards {
		card := &models.Flashcard{
			DeckID:  deckID,
			ThemeID: themeIDMap[src.ThemeID], // "" when the card had no theme
			Front:   src.Front,
			Back:    src.Back,
		}
		if err := s.cards.Create(ctx, card); err != nil {
			return err
		}
	}

	return nil
}

// UpdateImportedDeck re-syncs a deck the caller imported before. The
// match runs strictly through the import provenance index: a document
// whose original id was never imported is refused rather than silently
// imported as new. On match the deck's metadata is overwritten and its
// themes and flashcards replaced wholesale under the same remapping as
// import.
func (s *Service) UpdateImportedDeck(ctx context.Context, doc *models.SharedDeckExport) (bool, error) {
	if err := validateExport(doc); err != nil {
		return false, err
	}

	prov, err := s.provenance.FindLatest(ctx, doc.OriginalID)
	if err != nil {
		return false, err
	}
	if prov == nil {
		return false, fmt.Errorf("deck %s was never imported, cannot update", doc.OriginalID)
	}

	deck, err := s.decks.GetByID(ctx, prov.DeckID)
	if err != nil {
		return false, err
	}
	if deck == nil {
		return false, fmt.Errorf("previously imported deck %s no longer exists", prov.DeckID)
	}

	_, err = s.decks.Update(ctx, deck.ID, database.DeckUpdate{
		Title:       &doc.Title,
		Description: &doc.Description,
		CoverImage:  &doc.CoverImage,
		Tags:        doc.Tags,
	})
	if err != nil {
		return false, err
	}

	// Wholesale replacement, not a field-by-field diff.
	themes, err := s.themes.GetAllByDeck(ctx, deck.ID)
	if err != nil {
		return false, err
	}
	for _, theme := range themes {
		if _, err := s.themes.Delete(ctx, theme.ID); err != nil {
			return false, err
		}
	}
	cards, err := s.cards.GetAllByDeck(ctx, deck.ID)
	if err != nil {
		return false, err
	}
	for _, card := range cards {
		if _, err := s.cards.Delete(ctx, card.ID); err != nil {
			return false, err
		}
	}

	if err := s.copyGraph(ctx, doc, deck.ID); err != nil {
		return false, err
	}

	return true, nil
}
