package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the local database. An empty path
// defaults to data/flashforge.db next to the binary.
func Connect(dbPath string) error {
	if dbPath == "" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dataDir, "flashforge.db")
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// session_state holds the single current key; per-key data survives
	// ClearKey so the same key can be reloaded later.
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			key TEXT NOT NULL,
			expires_at TIMESTAMP,
			last_activity TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create session_state table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS session_stats (
			session_key TEXT PRIMARY KEY,
			cards_reviewed INTEGER DEFAULT 0,
			correct_answers INTEGER DEFAULT 0,
			incorrect_answers INTEGER DEFAULT 0,
			total_study_time INTEGER DEFAULT 0,
			study_sessions INTEGER DEFAULT 0,
			streak_days INTEGER DEFAULT 0,
			last_study_date TIMESTAMP,
			study_days TEXT DEFAULT '[]',
			average_score INTEGER DEFAULT 0,
			last_active TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create session_stats table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT DEFAULT '',
			avatar TEXT DEFAULT '',
			bio TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS decks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			cover_image TEXT DEFAULT '',
			author_id TEXT NOT NULL,
			is_public BOOLEAN DEFAULT false,
			tags TEXT DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create decks table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS themes (
			id TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			cover_image TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (deck_id) REFERENCES decks(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create themes table: %v", err)
	}

	// theme_id carries no foreign key: deleting a theme orphans its
	// flashcards instead of deleting them.
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS flashcards (
			id TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL,
			theme_id TEXT DEFAULT '',
			front_text TEXT DEFAULT '',
			front_image TEXT DEFAULT '',
			front_audio TEXT DEFAULT '',
			front_additional_info TEXT DEFAULT '',
			back_text TEXT DEFAULT '',
			back_image TEXT DEFAULT '',
			back_audio TEXT DEFAULT '',
			back_additional_info TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (deck_id) REFERENCES decks(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create flashcards table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS shared_deck_codes (
			code TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL,
			expires_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create shared_deck_codes table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS import_provenance (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			original_id TEXT NOT NULL,
			deck_id TEXT NOT NULL,
			imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create import_provenance table: %v", err)
	}

	// Pending remote mutations, one row per deck; the version lets the
	// drain step discard intents superseded while it was running.
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS remote_outbox (
			deck_id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			queued_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create remote_outbox table: %v", err)
	}

	return nil
}
