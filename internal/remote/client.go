package remote

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens the shared backend store holding the public-deck mirror.
// The backend is never the source of truth for a deck's existence; it
// only receives one-way projections of decks flagged public.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote store: %v", err)
	}
	return db, nil
}
