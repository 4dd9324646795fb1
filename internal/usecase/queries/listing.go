package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListingView struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	Title           string
	Description     string
	TotalQuantity   float64
	Unit            string
	ClaimedQuantity float64
	WastedQuantity  float64
	RemainingQty    float64
	AvailableUntil  time.Time
	SafeUntil       time.Time
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	// ListOpen returns listings still claimable at now, soonest deadline
	// first.
	ListOpen(ctx context.Context, now time.Time, limit int32) ([]*ListingView, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*ListingView, error)
}
