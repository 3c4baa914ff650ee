package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/remote"
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
	"github.com/go-co-op/gocron"
)

// RefreshInterval is the wall-clock staleness backstop: the catalog
// re-fetches on this cadence regardless of the notification channel, so
// a dropped notification delays a refresh instead of losing it.
const RefreshInterval = 5 * time.Minute

// Fetcher is the read side of the remote projection consumed here.
type Fetcher interface {
	FetchPublicDecks(ctx context.Context) ([]models.PublicDeckSummary, error)
}

// Drainer flushes queued remote mutations; the catalog's periodic job
// doubles as the retry loop for pushes that failed inline.
type Drainer interface {
	Drain(ctx context.Context)
}

// Catalog keeps an up-to-date view of the shared public-deck listing,
// refreshed by live change notifications and a fixed-interval backstop.
type Catalog struct {
	fetcher   Fetcher
	drainer   Drainer
	scheduler *gocron.Scheduler

	mu    sync.RWMutex
	decks []models.PublicDeckSummary

	sub *remote.Subscription
}

// New creates a catalog over the remote fetcher. drainer may be nil when
// the caller has no outbox to flush.
func New(fetcher Fetcher, drainer Drainer) *Catalog {
	return &Catalog{
		fetcher:   fetcher,
		drainer:   drainer,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start performs the initial fetch, opens the live subscription and
// schedules the periodic backstop. databaseURL and channel feed the
// LISTEN connection; an empty databaseURL skips the subscription and
// leaves only the backstop.
func (c *Catalog) Start(ctx context.Context, databaseURL, channel string) error {
	c.Refresh(ctx)

	if databaseURL != "" {
		sub, err := remote.Subscribe(databaseURL, channel, func(event remote.ChangeEvent) {
			log.Printf("public deck change (%s %s), refreshing catalog", event.Op, event.ID)
			c.Refresh(context.Background())
		})
		if err != nil {
			return err
		}
		c.sub = sub
	}

	c.scheduler.Every(RefreshInterval).Do(func() {
		if c.drainer != nil {
			c.drainer.Drain(context.Background())
		}
		c.Refresh(context.Background())
	})
	c.scheduler.StartAsync()

	return nil
}

// Stop cancels the periodic refresh and closes the subscription.
func (c *Catalog) Stop() {
	c.scheduler.Stop()
	if c.sub != nil {
		c.sub.Unsubscribe()
		c.sub = nil
	}
}

// Refresh re-runs the public-deck fetch and swaps in the result. A failed
// fetch keeps the previous listing.
func (c *Catalog) Refresh(ctx context.Context) {
	decks, err := c.fetcher.FetchPublicDecks(ctx)
	if err != nil {
		log.Printf("failed to refresh public deck catalog: %v", err)
		return
	}

	c.mu.Lock()
	c.decks = decks
	c.mu.Unlock()
}

// PublicDecks returns the last fetched listing, possibly stale by up to
// the refresh interval.
func (c *Catalog) PublicDecks() []models.PublicDeckSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	decks := make([]models.PublicDeckSummary, len(c.decks))
	copy(decks, c.decks)
	return decks
}
