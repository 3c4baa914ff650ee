package porting

import (
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
)

// Service moves whole deck graphs (deck + themes + flashcards) across
// session boundaries: JSON export documents, spreadsheets, and short
// share codes resolved against local storage.
type Service struct {
	decks      *database.DeckRepository
	themes     *database.ThemeRepository
	cards      *database.FlashcardRepository
	codes      *database.ShareCodeRepository
	provenance *database.ProvenanceRepository
}

// NewService creates a portability service over the local store.
func NewService() *Service {
	return &Service{
		decks:      database.NewDeckRepository(),
		themes:     database.NewThemeRepository(),
		cards:      database.NewFlashcardRepository(),
		codes:      database.NewShareCodeRepository(),
		provenance: database.NewProvenanceRepository(),
	}
}
