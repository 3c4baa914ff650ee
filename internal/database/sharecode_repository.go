package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

// ShareCodeRepository handles database operations for deck share codes
type ShareCodeRepository struct{}

// NewShareCodeRepository creates a new repository instance
func NewShareCodeRepository() *ShareCodeRepository {
	return &ShareCodeRepository{}
}

// Create stores a share code pointing at a deck. A nil expiry means the
// code never expires.
func (r *ShareCodeRepository) Create(ctx context.Context, code *models.SharedDeckCode) error {
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}

	_, err := DB.ExecContext(ctx, `
		INSERT INTO shared_deck_codes (code, deck_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`,
		code.Code,
		code.DeckID,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create share code: %v", err)
	}

	return nil
}

// Get returns a share code record, or nil if the code is unknown.
func (r *ShareCodeRepository) Get(ctx context.Context, code string) (*models.SharedDeckCode, error) {
	var rec models.SharedDeckCode
	err := DB.GetContext(ctx, &rec,
		"SELECT code, deck_id, expires_at, created_at FROM shared_deck_codes WHERE code = ?", code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share code: %v", err)
	}
	return &rec, nil
}

// Delete removes a share code record. Returns false if the code is
// unknown.
func (r *ShareCodeRepository) Delete(ctx context.Context, code string) (bool, error) {
	result, err := DB.ExecContext(ctx, "DELETE FROM shared_deck_codes WHERE code = ?", code)
	if err != nil {
		return false, fmt.Errorf("failed to delete share code: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %v", err)
	}

	return rows > 0, nil
}
