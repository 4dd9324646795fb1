//go:build unit

package builder

import (
	"time"

	"foodbridge/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ID             uuid.UUID
	ProviderID     uuid.UUID
	Title          string
	Description    string
	Amount         float64
	Unit           string
	ClaimedQty     float64
	WastedQty      float64
	AvailableUntil time.Time
	SafeUntil      time.Time
	Status         listing.Status
	Now            time.Time
}

func NewListingBuilder() *ListingBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &ListingBuilder{
		ID:             uuid.New(),
		ProviderID:     uuid.New(),
		Title:          "Chicken breast trays",
		Description:    "Fresh chicken breast from today's prep",
		Amount:         10,
		Unit:           "kg",
		AvailableUntil: now.Add(8 * time.Hour),
		SafeUntil:      now.Add(6 * time.Hour),
		Status:         listing.StatusAvailable,
		Now:            now,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

// BuildDomain exercises the constructor and its validation.
func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	qty, err := listing.NewQuantity(b.Amount, b.Unit)
	if err != nil {
		return nil, err
	}
	return listing.NewListing(b.ProviderID, b.Title, b.Description, qty, b.AvailableUntil, b.SafeUntil, b.Now)
}

// BuildReconstructed bypasses validation so tests can start from any
// status or ledger state.
func (b *ListingBuilder) BuildReconstructed() *listing.Listing {
	qty, err := listing.NewQuantity(b.Amount, b.Unit)
	if err != nil {
		panic("listing builder: " + err.Error())
	}
	return listing.ReconstructListing(
		b.ID, b.ProviderID, b.Title, b.Description, qty,
		b.ClaimedQty, b.WastedQty,
		b.AvailableUntil, b.SafeUntil,
		b.Status, b.Now, b.Now,
	)
}
