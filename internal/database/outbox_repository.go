package database

import (
	"context"
	"fmt"
	"time"
)

// Outbox operations. The outbox queues intended remote mutations so a
// drain step can apply only the latest intent per deck instead of firing
// requests inline and losing them on failure.
const (
	OutboxOpPush   = "push"
	OutboxOpRemove = "remove"
)

// OutboxEntry is one pending remote mutation for a deck.
type OutboxEntry struct {
	DeckID   string    `db:"deck_id"`
	Op       string    `db:"op"`
	Version  int64     `db:"version"`
	QueuedAt time.Time `db:"queued_at"`
}

// OutboxRepository handles the queued remote mutations
type OutboxRepository struct{}

// NewOutboxRepository creates a new repository instance
func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

// enqueueRemoteOp records the latest remote intent for a deck, replacing
// any queued one and bumping the version so an in-flight drain cannot
// acknowledge the superseded intent.
func enqueueRemoteOp(ctx context.Context, deckID, op string) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO remote_outbox (deck_id, op, version, queued_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (deck_id) DO UPDATE SET
			op = excluded.op,
			version = remote_outbox.version + 1,
			queued_at = excluded.queued_at
	`, deckID, op, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to enqueue remote op: %v", err)
	}
	return nil
}

// Enqueue records the latest remote intent for a deck.
func (r *OutboxRepository) Enqueue(ctx context.Context, deckID, op string) error {
	return enqueueRemoteOp(ctx, deckID, op)
}

// Pending returns every queued remote mutation, oldest first.
func (r *OutboxRepository) Pending(ctx context.Context) ([]OutboxEntry, error) {
	var entries []OutboxEntry
	err := DB.SelectContext(ctx, &entries,
		"SELECT deck_id, op, version, queued_at FROM remote_outbox ORDER BY queued_at")
	if err != nil {
		return nil, fmt.Errorf("failed to get pending remote ops: %v", err)
	}
	return entries, nil
}

// Ack deletes an applied entry, but only if it was not superseded by a
// newer intent while the drain was running.
func (r *OutboxRepository) Ack(ctx context.Context, deckID string, version int64) error {
	_, err := DB.ExecContext(ctx,
		"DELETE FROM remote_outbox WHERE deck_id = ? AND version = ?", deckID, version)
	if err != nil {
		return fmt.Errorf("failed to ack remote op: %v", err)
	}
	return nil
}
