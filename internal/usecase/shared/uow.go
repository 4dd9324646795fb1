package shared

import (
	"context"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/feedback"
	"foodbridge/internal/domain/impact"
	"foodbridge/internal/domain/listing"

	"github.com/google/uuid"
)

// UnitOfWork runs a function inside one transaction. Every claim mutation
// goes through Within so the ledger read and the status writes commit or
// roll back together.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Listings() ListingRepository
	Claims() ClaimRepository
	Feedback() FeedbackRepository
	ProviderImpact() ProviderImpactRepository
}

type ListingRepository interface {
	Create(ctx context.Context, l *listing.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	// FindByIDForUpdate takes the per-listing row lock that serializes
	// concurrent claim mutations against the same listing.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	// UpdateReconciliation persists status, claimed and wasted quantities.
	UpdateReconciliation(ctx context.Context, l *listing.Listing) error
}

type ClaimRepository interface {
	Create(ctx context.Context, c *claim.Claim) error
	FindByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*claim.Claim, error)
	// UpdateTransition persists status, approved quantity, pickup code and
	// cancel reason after a state-machine step.
	UpdateTransition(ctx context.Context, c *claim.Claim) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *feedback.Feedback) error
}

type ProviderImpactRepository interface {
	// Accumulate adds one completed delivery's estimate to the provider's
	// running sustainability totals.
	Accumulate(ctx context.Context, providerID uuid.UUID, est impact.Estimate) error
}
