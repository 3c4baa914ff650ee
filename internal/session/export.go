package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

// ExportSessionData gathers everything stored under the current key into
// one self-contained document: the key's decks with their themes and
// flashcards, the profile, and the stats block.
func (m *Manager) ExportSessionData(ctx context.Context) (*models.SessionExport, error) {
	key, err := m.GetKey(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("no active session to export")
	}

	decks, err := m.decks.GetAllByAuthor(ctx, key)
	if err != nil {
		return nil, err
	}

	var themes []models.Theme
	var cards []models.Flashcard
	for _, deck := range decks {
		deckThemes, err := m.themes.GetAllByDeck(ctx, deck.ID)
		if err != nil {
			return nil, err
		}
		themes = append(themes, deckThemes...)

		deckCards, err := m.cards.GetAllByDeck(ctx, deck.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, deckCards...)
	}

	profile, err := m.users.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := m.sessions.GetStats(ctx, key)
	if err != nil {
		return nil, err
	}

	return &models.SessionExport{
		SessionKey: key,
		ExportDate: time.Now().UTC(),
		UserData: models.SessionUserData{
			Decks:      decks,
			Themes:     themes,
			Flashcards: cards,
			Profile:    profile,
			Stats:      stats,
		},
	}, nil
}

// ImportSessionData adopts the document's key as the current session and
// restores every collection it carries. The key's slot is replaced, not
// merged into: decks the key already owns locally are removed before the
// document's collections are written, so a deck absent from the document
// does not survive the import. Returns false on malformed input:
// unparsable JSON or a document without a session key. Restores preserve
// ids and timestamps as exported.
func (m *Manager) ImportSessionData(ctx context.Context, raw []byte) bool {
	var doc models.SessionExport
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("failed to parse session import document: %v", err)
		return false
	}
	if doc.SessionKey == "" {
		log.Printf("session import document has no session key")
		return false
	}

	if err := m.SaveKey(ctx, doc.SessionKey); err != nil {
		log.Printf("failed to adopt imported session key: %v", err)
		return false
	}

	existing, err := m.decks.GetAllByAuthor(ctx, doc.SessionKey)
	if err != nil {
		log.Printf("failed to list decks before session import: %v", err)
		return false
	}
	for _, deck := range existing {
		if _, err := m.decks.Delete(ctx, deck.ID); err != nil {
			log.Printf("failed to clear deck %s before session import: %v", deck.ID, err)
			return false
		}
	}

	for i := range doc.UserData.Decks {
		if err := m.decks.Restore(ctx, &doc.UserData.Decks[i]); err != nil {
			log.Printf("failed to restore deck %s: %v", doc.UserData.Decks[i].ID, err)
			return false
		}
	}
	for i := range doc.UserData.Themes {
		if err := m.themes.Restore(ctx, &doc.UserData.Themes[i]); err != nil {
			log.Printf("failed to restore theme %s: %v", doc.UserData.Themes[i].ID, err)
			return false
		}
	}
	for i := range doc.UserData.Flashcards {
		if err := m.cards.Restore(ctx, &doc.UserData.Flashcards[i]); err != nil {
			log.Printf("failed to restore flashcard %s: %v", doc.UserData.Flashcards[i].ID, err)
			return false
		}
	}

	if doc.UserData.Profile != nil {
		doc.UserData.Profile.ID = doc.SessionKey
		if err := m.users.Restore(ctx, doc.UserData.Profile); err != nil {
			log.Printf("failed to restore profile: %v", err)
			return false
		}
	}

	if doc.UserData.Stats != nil {
		doc.UserData.Stats.SessionKey = doc.SessionKey
		if err := m.sessions.SaveStats(ctx, doc.UserData.Stats); err != nil {
			log.Printf("failed to restore stats: %v", err)
			return false
		}
	} else {
		// SaveKey already initialized a fresh block if none existed.
		if _, err := m.getOrCreateStats(ctx, doc.SessionKey); err != nil {
			log.Printf("failed to ensure stats after import: %v", err)
			return false
		}
	}

	return true
}
