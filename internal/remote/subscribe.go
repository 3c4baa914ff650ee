package remote

import (
	"encoding/json"
	"log"
	"time"

	"github.com/lib/pq"
)

// DefaultNotifyChannel is the postgres NOTIFY channel carrying deck
// change events.
const DefaultNotifyChannel = "decks_changed"

// ChangeEvent is the payload of one deck change notification. For
// deletes, IsPublic reflects the removed row.
type ChangeEvent struct {
	Op          string `json:"op"` // INSERT, UPDATE, DELETE
	ID          string `json:"id"`
	IsPublic    bool   `json:"is_public"`
	OldIsPublic bool   `json:"old_is_public"`
}

// AffectsCatalog reports whether the event changes what the public-deck
// catalog should show: a deck inserted already public, a visibility
// transition in either direction, or a public deck deleted. Everything
// else is ignored.
func (e ChangeEvent) AffectsCatalog() bool {
	switch e.Op {
	case "INSERT":
		return e.IsPublic
	case "UPDATE":
		return e.IsPublic != e.OldIsPublic
	case "DELETE":
		return e.IsPublic
	}
	return false
}

// Subscription listens for deck change notifications and invokes its
// handler for each event that affects the catalog. It must be closed
// with Unsubscribe when the consumer goes away.
type Subscription struct {
	listener *pq.Listener
	done     chan struct{}
}

// Subscribe opens a LISTEN connection on channel and dispatches relevant
// events to handler. The handler runs on the subscription's goroutine.
func Subscribe(databaseURL, channel string, handler func(ChangeEvent)) (*Subscription, error) {
	if channel == "" {
		channel = DefaultNotifyChannel
	}

	listener := pq.NewListener(databaseURL, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Printf("remote listener event %d: %v", ev, err)
			}
		})

	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, err
	}

	sub := &Subscription{
		listener: listener,
		done:     make(chan struct{}),
	}

	go func() {
		for {
			select {
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				if n == nil {
					// Reconnect marker; the periodic backstop covers
					// anything missed while the connection was down.
					continue
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
					log.Printf("failed to parse deck change notification: %v", err)
					continue
				}
				if event.AffectsCatalog() {
					handler(event)
				}
			case <-sub.done:
				return
			}
		}
	}()

	return sub, nil
}

// Unsubscribe stops the dispatch loop and closes the listener.
func (s *Subscription) Unsubscribe() {
	close(s.done)
	if err := s.listener.Close(); err != nil {
		log.Printf("failed to close remote listener: %v", err)
	}
}
