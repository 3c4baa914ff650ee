package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

type fakeFetcher struct {
	decks []models.PublicDeckSummary
	err   error
	calls int
}

func (f *fakeFetcher) FetchPublicDecks(ctx context.Context) ([]models.PublicDeckSummary, error) {
	f.calls++
	return f.decks, f.err
}

func TestRefreshSwapsListing(t *testing.T) {
	fetcher := &fakeFetcher{
		decks: []models.PublicDeckSummary{
			{ID: "d1", Title: "Cardiologie"},
			{ID: "d2", Title: "Neurologie"},
		},
	}
	c := New(fetcher, nil)

	c.Refresh(context.Background())

	got := c.PublicDecks()
	if len(got) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(got))
	}
	if got[0].ID != "d1" || got[1].ID != "d2" {
		t.Errorf("unexpected listing: %+v", got)
	}
}

func TestRefreshFailureKeepsPreviousListing(t *testing.T) {
	fetcher := &fakeFetcher{
		decks: []models.PublicDeckSummary{{ID: "d1", Title: "Cardiologie"}},
	}
	c := New(fetcher, nil)
	c.Refresh(context.Background())

	fetcher.err = errors.New("connection refused")
	fetcher.decks = nil
	c.Refresh(context.Background())

	got := c.PublicDecks()
	if len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("failed refresh must keep the previous listing, got %+v", got)
	}
}

func TestPublicDecksReturnsCopy(t *testing.T) {
	fetcher := &fakeFetcher{
		decks: []models.PublicDeckSummary{{ID: "d1", Title: "Cardiologie"}},
	}
	c := New(fetcher, nil)
	c.Refresh(context.Background())

	first := c.PublicDecks()
	first[0].Title = "mutated"

	second := c.PublicDecks()
	if second[0].Title != "Cardiologie" {
		t.Error("callers must not be able to mutate the cached listing")
	}
}

func TestPublicDecksEmptyBeforeRefresh(t *testing.T) {
	c := New(&fakeFetcher{}, nil)
	if got := c.PublicDecks(); len(got) != 0 {
		t.Errorf("expected an empty listing before any refresh, got %+v", got)
	}
}
