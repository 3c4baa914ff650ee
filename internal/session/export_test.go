package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

func TestExportSessionDataGathersEverything(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()
	saveTestSession(t, m)

	deck := &models.Deck{Title: "Anatomie"}
	if err := m.decks.Create(ctx, deck, "AAAA1111BBBB"); err != nil {
		t.Fatalf("deck create failed: %v", err)
	}
	theme := &models.Theme{DeckID: deck.ID, Title: "Os"}
	if err := m.themes.Create(ctx, theme); err != nil {
		t.Fatalf("theme create failed: %v", err)
	}
	card := &models.Flashcard{DeckID: deck.ID, ThemeID: theme.ID, Front: models.CardSide{Text: "Fémur"}, Back: models.CardSide{Text: "Os de la cuisse"}}
	if err := m.cards.Create(ctx, card); err != nil {
		t.Fatalf("flashcard create failed: %v", err)
	}
	if err := m.RecordCardStudy(ctx, true, 1); err != nil {
		t.Fatalf("RecordCardStudy failed: %v", err)
	}

	doc, err := m.ExportSessionData(ctx)
	if err != nil {
		t.Fatalf("ExportSessionData failed: %v", err)
	}

	if doc.SessionKey != "AAAA1111BBBB" {
		t.Errorf("export key = %q", doc.SessionKey)
	}
	if len(doc.UserData.Decks) != 1 || len(doc.UserData.Themes) != 1 || len(doc.UserData.Flashcards) != 1 {
		t.Errorf("export carried %d decks, %d themes, %d cards; want 1 each",
			len(doc.UserData.Decks), len(doc.UserData.Themes), len(doc.UserData.Flashcards))
	}
	if doc.UserData.Profile == nil {
		t.Error("expected profile in export")
	}
	if doc.UserData.Stats == nil || doc.UserData.Stats.CardsReviewed != 1 {
		t.Error("expected stats in export")
	}
}

func TestImportSessionDataRoundTrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()
	saveTestSession(t, m)

	deck := &models.Deck{Title: "Histologie"}
	if err := m.decks.Create(ctx, deck, "AAAA1111BBBB"); err != nil {
		t.Fatalf("deck create failed: %v", err)
	}

	doc, err := m.ExportSessionData(ctx)
	if err != nil {
		t.Fatalf("ExportSessionData failed: %v", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// Fresh store on a different device.
	database.Close()
	if err := database.Connect(":memory:"); err != nil {
		t.Fatalf("failed to reopen test database: %v", err)
	}
	m2 := NewManager()

	if !m2.ImportSessionData(ctx, raw) {
		t.Fatal("ImportSessionData returned false for a valid document")
	}

	key, err := m2.GetKey(ctx)
	if err != nil {
		t.Fatalf("GetKey failed: %v", err)
	}
	if key != "AAAA1111BBBB" {
		t.Errorf("imported key = %q, want AAAA1111BBBB", key)
	}

	decks, err := m2.decks.GetAllByAuthor(ctx, key)
	if err != nil {
		t.Fatalf("GetAllByAuthor failed: %v", err)
	}
	if len(decks) != 1 || decks[0].ID != deck.ID {
		t.Errorf("imported decks = %+v, want the exported deck with its original id", decks)
	}

	user, err := m2.users.Get(ctx)
	if err != nil {
		t.Fatalf("user Get failed: %v", err)
	}
	if user == nil || user.ID != key {
		t.Errorf("imported user id should equal session key")
	}
}

func TestImportSessionDataReplacesExistingDecks(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()
	saveTestSession(t, m)

	exported := &models.Deck{Title: "Histologie"}
	if err := m.decks.Create(ctx, exported, "AAAA1111BBBB"); err != nil {
		t.Fatalf("deck create failed: %v", err)
	}

	doc, err := m.ExportSessionData(ctx)
	if err != nil {
		t.Fatalf("ExportSessionData failed: %v", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// A deck created after the export and absent from the document.
	stray := &models.Deck{Title: "Brouillon local"}
	if err := m.decks.Create(ctx, stray, "AAAA1111BBBB"); err != nil {
		t.Fatalf("deck create failed: %v", err)
	}

	if !m.ImportSessionData(ctx, raw) {
		t.Fatal("ImportSessionData returned false for a valid document")
	}

	decks, err := m.decks.GetAllByAuthor(ctx, "AAAA1111BBBB")
	if err != nil {
		t.Fatalf("GetAllByAuthor failed: %v", err)
	}
	if len(decks) != 1 || decks[0].ID != exported.ID {
		t.Errorf("import must replace the key's decks with the document's; got %+v", decks)
	}
}

func TestImportSessionDataRejectsMalformed(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	m := NewManager()

	if m.ImportSessionData(ctx, []byte("{not json")) {
		t.Error("expected false for unparsable document")
	}
	if m.ImportSessionData(ctx, []byte(`{"user_data":{}}`)) {
		t.Error("expected false for a document without a session key")
	}
}
