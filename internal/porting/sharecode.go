package porting

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

// CodeLength is the size of a generated share code.
const CodeLength = 10

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateCode() (string, error) {
	b := make([]byte, CodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate share code: %v", err)
	}
	for i := range b {
		b[i] = codeCharset[int(b[i])%len(codeCharset)]
	}
	return string(b), nil
}

// CreateShareCode generates a random code resolving to deckID.
// expiresInDays <= 0 creates a code that never expires.
func (s *Service) CreateShareCode(ctx context.Context, deckID string, expiresInDays int) (string, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return "", err
	}
	if deck == nil {
		return "", fmt.Errorf("deck %s does not exist", deckID)
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	rec := &models.SharedDeckCode{
		Code:   code,
		DeckID: deckID,
	}
	if expiresInDays > 0 {
		expiresAt := time.Now().UTC().Add(time.Duration(expiresInDays) * 24 * time.Hour)
		rec.ExpiresAt = &expiresAt
	}

	if err := s.codes.Create(ctx, rec); err != nil {
		return "", err
	}

	return code, nil
}

// ResolveShareCode looks up a code and returns the referenced local deck,
// or nil for an unknown or expired code. An expired record is purged on
// this first failed resolution, not by a background sweep. The returned
// deck is the live record, not a copy; callers import it explicitly to
// get their own.
func (s *Service) ResolveShareCode(ctx context.Context, code string) (*models.Deck, error) {
	rec, err := s.codes.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	if rec.ExpiresAt != nil && rec.ExpiresAt.Before(time.Now().UTC()) {
		if _, err := s.codes.Delete(ctx, code); err != nil {
			log.Printf("failed to purge expired share code %s: %v", code, err)
		}
		return nil, nil
	}

	return s.decks.GetByID(ctx, rec.DeckID)
}
