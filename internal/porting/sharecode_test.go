package porting

import (
	"context"
	"testing"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

func TestShareCodeRoundTrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	s := NewService()

	deck, _ := buildSourceDeck(t, s)

	code, err := s.CreateShareCode(ctx, deck.ID, 7)
	if err != nil {
		t.Fatalf("create share code failed: %v", err)
	}
	if len(code) != CodeLength {
		t.Errorf("code length = %d, want %d", len(code), CodeLength)
	}

	got, err := s.ResolveShareCode(ctx, code)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got == nil || got.ID != deck.ID {
		t.Errorf("resolved deck = %+v, want deck %s", got, deck.ID)
	}
}

func TestShareCodeUnknownDeck(t *testing.T) {
	setupTestDB(t)
	s := NewService()

	if _, err := s.CreateShareCode(context.Background(), "missing", 0); err == nil {
		t.Error("expected an error for an unknown deck id")
	}
}

func TestShareCodeUnknown(t *testing.T) {
	setupTestDB(t)
	s := NewService()

	got, err := s.ResolveShareCode(context.Background(), "NOSUCHCODE")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for an unknown code, got %+v", got)
	}
}

func TestShareCodeExpiryPurgesRecord(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	s := NewService()

	deck, _ := buildSourceDeck(t, s)

	// Seed an already-expired record directly; CreateShareCode only
	// issues future expiries.
	expired := time.Now().UTC().Add(-time.Hour)
	rec := &models.SharedDeckCode{Code: "EXPIRED123", DeckID: deck.ID, ExpiresAt: &expired}
	if err := s.codes.Create(ctx, rec); err != nil {
		t.Fatalf("seed share code failed: %v", err)
	}

	got, err := s.ResolveShareCode(ctx, rec.Code)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != nil {
		t.Errorf("expired code must not resolve, got deck %s", got.ID)
	}

	// The record was purged on that failed resolution.
	stored, err := s.codes.Get(ctx, rec.Code)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored != nil {
		t.Error("expired record should have been deleted")
	}

	// A second resolution behaves like an unknown code.
	got, err = s.ResolveShareCode(ctx, rec.Code)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if got != nil {
		t.Error("purged code must stay unresolvable")
	}
}

func TestShareCodeWithoutExpiryNeverExpires(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	s := NewService()

	deck, _ := buildSourceDeck(t, s)

	code, err := s.CreateShareCode(ctx, deck.ID, 0)
	if err != nil {
		t.Fatalf("create share code failed: %v", err)
	}

	rec, err := s.codes.Get(ctx, code)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec == nil {
		t.Fatal("share code not stored")
	}
	if rec.ExpiresAt != nil {
		t.Errorf("expected no expiry, got %v", rec.ExpiresAt)
	}
}
