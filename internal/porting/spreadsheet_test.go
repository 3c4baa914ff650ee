package porting

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test csv: %v", err)
	}
	return path
}

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		column string
		want   int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{" c ", 2},
	}
	for _, tt := range tests {
		if got := columnToIndex(tt.column); got != tt.want {
			t.Errorf("columnToIndex(%q) = %d, want %d", tt.column, got, tt.want)
		}
	}
}

func TestImportSpreadsheetCSV(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	s := NewService()

	deck, theme := buildSourceDeck(t, s)

	csv := "Recto,Verso,Thème,Info recto,Info verso\n" +
		"Rotule,Os sésamoïde du genou,Ostéologie,,\n" +
		"Biceps fémoral,Muscle postérieur de la cuisse,Myologie,ischio-jambier,\n" +
		"Sartorius,Muscle couturier,,,\n" +
		",Verso sans recto,,,\n"

	config := DefaultSpreadsheetConfig()
	config.FilePath = writeTestCSV(t, csv)

	result, err := s.ImportSpreadsheet(ctx, deck.ID, config)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if result.TotalProcessed != 4 {
		t.Errorf("processed = %d, want 4", result.TotalProcessed)
	}
	if result.Created != 3 {
		t.Errorf("created = %d, want 3", result.Created)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	// "Ostéologie" already exists on the deck; only "Myologie" is new.
	if result.ThemesCreated != 1 {
		t.Errorf("themes created = %d, want 1", result.ThemesCreated)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected row errors: %v", result.Errors)
	}

	cards, err := s.cards.GetAllByTheme(ctx, theme.ID)
	if err != nil {
		t.Fatalf("flashcards query failed: %v", err)
	}
	// The deck started with one card in that theme.
	if len(cards) != 2 {
		t.Errorf("existing theme should have gained 1 card, has %d total", len(cards))
	}

	all, err := s.cards.GetAllByDeck(ctx, deck.ID)
	if err != nil {
		t.Fatalf("flashcards query failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("deck should hold 5 cards after import, has %d", len(all))
	}
}

func TestImportSpreadsheetEmptyRequiredColumn(t *testing.T) {
	setupTestDB(t)
	s := NewService()

	deck, _ := buildSourceDeck(t, s)

	config := DefaultSpreadsheetConfig()
	config.FrontColumn = ""
	config.FilePath = writeTestCSV(t, "Recto,Verso\nFémur,Os de la cuisse\n")

	result, err := s.ImportSpreadsheet(context.Background(), deck.ID, config)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Created != 0 {
		t.Errorf("created = %d, want 0 with no front column", result.Created)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
}

func TestImportSpreadsheetUnknownDeck(t *testing.T) {
	setupTestDB(t)
	s := NewService()

	config := DefaultSpreadsheetConfig()
	config.FilePath = writeTestCSV(t, "a,b\n")

	if _, err := s.ImportSpreadsheet(context.Background(), "missing", config); err == nil {
		t.Error("expected an error for an unknown deck id")
	}
}

func TestImportSpreadsheetMissingFile(t *testing.T) {
	setupTestDB(t)
	s := NewService()

	deck, _ := buildSourceDeck(t, s)

	config := DefaultSpreadsheetConfig()
	config.FilePath = filepath.Join(t.TempDir(), "nope.csv")

	if _, err := s.ImportSpreadsheet(context.Background(), deck.ID, config); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExportSpreadsheet(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	s := NewService()

	deck, _ := buildSourceDeck(t, s)
	path := filepath.Join(t.TempDir(), "export.xlsx")

	if err := s.ExportSpreadsheet(ctx, deck.ID, path); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export file not written: %v", err)
	}
}
