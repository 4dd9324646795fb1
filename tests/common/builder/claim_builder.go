//go:build unit

package builder

import (
	"time"

	"foodbridge/internal/domain/claim"

	"github.com/google/uuid"
)

type ClaimBuilder struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	ReceiverID   uuid.UUID
	RequestedQty float64
	ApprovedQty  float64
	Status       claim.Status
	PickupCode   string
	CancelReason string
	Note         string
	Now          time.Time
}

func NewClaimBuilder() *ClaimBuilder {
	return &ClaimBuilder{
		ID:           uuid.New(),
		ListingID:    uuid.New(),
		ReceiverID:   uuid.New(),
		RequestedQty: 3,
		Status:       claim.StatusPending,
		Note:         "Will pick up after 5pm",
		Now:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ClaimBuilder) With(mutate func(*ClaimBuilder)) *ClaimBuilder {
	mutate(b)
	return b
}

func (b *ClaimBuilder) BuildDomain() (*claim.Claim, error) {
	return claim.NewClaim(b.ListingID, b.ReceiverID, b.RequestedQty, claim.NewNote(b.Note), b.Now)
}

func (b *ClaimBuilder) BuildReconstructed() *claim.Claim {
	return claim.ReconstructClaim(
		b.ID, b.ListingID, b.ReceiverID,
		b.RequestedQty, b.ApprovedQty,
		b.Status, b.PickupCode, b.CancelReason,
		claim.NewNote(b.Note), b.Now, b.Now,
	)
}
