package remote

import (
	"context"
	"log"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
)

// Syncer drains the local outbox of queued remote mutations against the
// deck mirror. Only the latest intent per deck is ever queued; entries
// that fail stay queued and are retried on the next drain, so a missed
// push is repaired without waiting for another mutation on the same deck.
type Syncer struct {
	mirror DeckMirror
	outbox *database.OutboxRepository
	decks  *database.DeckRepository
}

// NewSyncer creates a syncer applying outbox entries through mirror.
func NewSyncer(mirror DeckMirror) *Syncer {
	return &Syncer{
		mirror: mirror,
		outbox: database.NewOutboxRepository(),
		decks:  database.NewDeckRepository(),
	}
}

// Drain applies every pending remote mutation. Failures are logged and
// the entry left queued; an entry superseded while in flight is not
// acknowledged and the newer intent runs next time.
func (s *Syncer) Drain(ctx context.Context) {
	entries, err := s.outbox.Pending(ctx)
	if err != nil {
		log.Printf("failed to read remote outbox: %v", err)
		return
	}

	for _, entry := range entries {
		switch entry.Op {
		case database.OutboxOpPush:
			deck, err := s.decks.GetByID(ctx, entry.DeckID)
			if err != nil {
				log.Printf("failed to load deck %s for remote push: %v", entry.DeckID, err)
				continue
			}
			if deck == nil || !deck.IsPublic {
				// The deck vanished or went private after the push was
				// queued; the intent is stale.
				s.ack(ctx, entry.DeckID, entry.Version)
				continue
			}
			if s.mirror.PushDeck(ctx, deck, deck.AuthorID) {
				s.ack(ctx, entry.DeckID, entry.Version)
			}
		case database.OutboxOpRemove:
			if s.mirror.RemoveDeck(ctx, entry.DeckID) {
				s.ack(ctx, entry.DeckID, entry.Version)
			}
		default:
			log.Printf("unknown remote outbox op %q for deck %s", entry.Op, entry.DeckID)
			s.ack(ctx, entry.DeckID, entry.Version)
		}
	}
}

func (s *Syncer) ack(ctx context.Context, deckID string, version int64) {
	if err := s.outbox.Ack(ctx, deckID, version); err != nil {
		log.Printf("failed to ack remote op for deck %s: %v", deckID, err)
	}
}
