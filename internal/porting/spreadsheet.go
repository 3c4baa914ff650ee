package porting

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetConfig defines how flashcard rows map onto spreadsheet
// columns for a bulk import.
type SpreadsheetConfig struct {
	FilePath        string // Path to the Excel or CSV file
	FrontColumn     string // Column with the front text
	BackColumn      string // Column with the back text
	ThemeColumn     string // Column with the theme title (optional per row)
	FrontInfoColumn string // Column with front additional info
	BackInfoColumn  string // Column with back additional info
	SheetName       string // Name of the sheet to import
	StartRow        int    // The row to start importing from (1-based index)
}

// DefaultSpreadsheetConfig returns the default column mapping.
func DefaultSpreadsheetConfig() SpreadsheetConfig {
	return SpreadsheetConfig{
		FrontColumn:     "A",
		BackColumn:      "B",
		ThemeColumn:     "C",
		FrontInfoColumn: "D",
		BackInfoColumn:  "E",
		SheetName:       "Sheet1",
		StartRow:        2, // By default, start from the second row (skip header)
	}
}

// SpreadsheetResult holds the result of a bulk flashcard import.
type SpreadsheetResult struct {
	TotalProcessed int
	ThemesCreated  int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportSpreadsheet bulk-imports flashcards into an existing deck from an
// Excel or CSV file. Themes are matched by title within the deck and
// created on demand. Media columns are not supported; inline blobs only
// travel in JSON documents.
func (s *Service) ImportSpreadsheet(ctx context.Context, deckID string, config SpreadsheetConfig) (*SpreadsheetResult, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("deck %s does not exist", deckID)
	}

	rows, err := readRows(config)
	if err != nil {
		return nil, err
	}

	existing, err := s.themes.GetAllByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing themes: %v", err)
	}
	themeMap := make(map[string]string)
	for _, theme := range existing {
		themeMap[strings.ToLower(theme.Title)] = theme.ID
	}

	result := &SpreadsheetResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := s.processRow(ctx, deckID, row, config, themeMap, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func readRows(config SpreadsheetConfig) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		file, err := os.Open(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %v", err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		var rows [][]string
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("error reading CSV: %v", err)
			}
			rows = append(rows, row)
		}
		return rows, nil
	}

	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

func (s *Service) processRow(ctx context.Context, deckID string, row []string, config SpreadsheetConfig, themeMap map[string]string, result *SpreadsheetResult) error {
	var front, back, themeTitle, frontInfo, backInfo string

	if colIdx := columnToIndex(config.FrontColumn); colIdx >= 0 && colIdx < len(row) {
		front = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.BackColumn); colIdx >= 0 && colIdx < len(row) {
		back = strings.TrimSpace(row[colIdx])
	}
	if config.ThemeColumn != "" {
		if colIdx := columnToIndex(config.ThemeColumn); colIdx >= 0 && colIdx < len(row) {
			themeTitle = strings.TrimSpace(row[colIdx])
		}
	}
	if config.FrontInfoColumn != "" {
		if colIdx := columnToIndex(config.FrontInfoColumn); colIdx >= 0 && colIdx < len(row) {
			frontInfo = strings.TrimSpace(row[colIdx])
		}
	}
	if config.BackInfoColumn != "" {
		if colIdx := columnToIndex(config.BackInfoColumn); colIdx >= 0 && colIdx < len(row) {
			backInfo = strings.TrimSpace(row[colIdx])
		}
	}

	// Both sides need text; spreadsheets cannot carry media cells.
	if front == "" || back == "" {
		result.Skipped++
		return nil
	}

	themeID := ""
	if themeTitle != "" {
		var ok bool
		themeID, ok = themeMap[strings.ToLower(themeTitle)]
		if !ok {
			theme := &models.Theme{
				DeckID: deckID,
				Title:  themeTitle,
			}
			if err := s.themes.Create(ctx, theme); err != nil {
				return fmt.Errorf("failed to create theme %q: %v", themeTitle, err)
			}
			themeMap[strings.ToLower(themeTitle)] = theme.ID
			themeID = theme.ID
			result.ThemesCreated++
		}
	}

	card := &models.Flashcard{
		DeckID:  deckID,
		ThemeID: themeID,
		Front:   models.CardSide{Text: front, AdditionalInfo: frontInfo},
		Back:    models.CardSide{Text: back, AdditionalInfo: backInfo},
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return fmt.Errorf("failed to create flashcard: %v", err)
	}
	result.Created++

	return nil
}

// ExportSpreadsheet writes a deck's flashcards to an Excel file, one row
// per card with its theme title. Media fields are omitted.
func (s *Service) ExportSpreadsheet(ctx context.Context, deckID, filePath string) error {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return err
	}
	if deck == nil {
		return fmt.Errorf("deck %s does not exist", deckID)
	}

	themes, err := s.themes.GetAllByDeck(ctx, deckID)
	if err != nil {
		return err
	}
	themeTitles := make(map[string]string, len(themes))
	for _, theme := range themes {
		themeTitles[theme.ID] = theme.Title
	}

	cards, err := s.cards.GetAllByDeck(ctx, deckID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	header := []interface{}{"Front", "Back", "Theme", "Front info", "Back info"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}

	for i, card := range cards {
		row := []interface{}{
			card.Front.Text,
			card.Back.Text,
			themeTitles[card.ThemeID],
			card.Front.AdditionalInfo,
			card.Back.AdditionalInfo,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %v", err)
	}

	return nil
}

// columnToIndex converts a column letter ("A", "B", ... "AA") to a
// zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}
