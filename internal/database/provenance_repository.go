package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ImportProvenance links a source deck id (the original_id carried by an
// export document) to the deck that a past import created locally. The
// "update existing" re-sync path only matches through this table; two
// imports of the same document record two rows.
type ImportProvenance struct {
	ID         int64     `db:"id"`
	OriginalID string    `db:"original_id"`
	DeckID     string    `db:"deck_id"`
	ImportedAt time.Time `db:"imported_at"`
}

// ProvenanceRepository handles the originalId-to-local-deck index
type ProvenanceRepository struct{}

// NewProvenanceRepository creates a new repository instance
func NewProvenanceRepository() *ProvenanceRepository {
	return &ProvenanceRepository{}
}

// Record stores that original_id was imported as deckID.
func (r *ProvenanceRepository) Record(ctx context.Context, originalID, deckID string) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO import_provenance (original_id, deck_id, imported_at)
		VALUES (?, ?, ?)
	`, originalID, deckID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record import provenance: %v", err)
	}
	return nil
}

// FindLatest returns the most recent local deck imported from
// original_id, or nil if the document was never imported.
func (r *ProvenanceRepository) FindLatest(ctx context.Context, originalID string) (*ImportProvenance, error) {
	var rec ImportProvenance
	err := DB.GetContext(ctx, &rec, `
		SELECT id, original_id, deck_id, imported_at
		FROM import_provenance
		WHERE original_id = ?
		ORDER BY imported_at DESC, id DESC
		LIMIT 1
	`, originalID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find import provenance: %v", err)
	}
	return &rec, nil
}
