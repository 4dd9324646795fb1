package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ClaimView struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	ListingTitle string
	Unit         string
	ReceiverID   uuid.UUID
	RequestedQty float64
	ApprovedQty  float64
	Status       string
	CancelReason *string
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ClaimQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClaimView, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*ClaimView, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*ClaimView, error)
}
