package commands

import (
	"context"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/listing"
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDomainValidation       = errs.New("domain validation error")
	ErrListingHasActiveClaims = errs.New("listing has approved or confirmed claims")
)

const canceledByProviderReason = "listing canceled by provider"

type CreateListingInput struct {
	Title          string
	Description    string
	Quantity       float64
	Unit           string
	AvailableUntil time.Time
	SafeUntil      time.Time
}

type ListingResult struct {
	ID             uuid.UUID
	ProviderID     uuid.UUID
	Title          string
	Description    string
	TotalQuantity  float64
	Unit           string
	ClaimedQty     float64
	WastedQty      float64
	AvailableUntil time.Time
	SafeUntil      time.Time
	Status         listing.Status
}

type ListingCommands interface {
	Create(ctx context.Context, input CreateListingInput, providerID uuid.UUID) (*ListingResult, error)
	// Cancel is the explicit provider cancellation. Pending claims are
	// auto-rejected; a listing with approved or confirmed claims cannot be
	// canceled out from under its receivers.
	Cancel(ctx context.Context, listingID, providerID uuid.UUID) (*ListingResult, error)
}

type listingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewListingCommands(uow shared.UnitOfWork, clk clock.Clock) ListingCommands {
	return &listingCommandsImpl{uow: uow, clock: clk}
}

func (uc *listingCommandsImpl) Create(ctx context.Context, input CreateListingInput, providerID uuid.UUID) (*ListingResult, error) {
	now := uc.clock.Now()

	qty, err := listing.NewQuantity(input.Quantity, input.Unit)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	l, err := listing.NewListing(providerID, input.Title, input.Description, qty, input.AvailableUntil, input.SafeUntil, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Listings().Create(ctx, l); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toListingResult(l), nil
}

func (uc *listingCommandsImpl) Cancel(ctx context.Context, listingID, providerID uuid.UUID) (*ListingResult, error) {
	now := uc.clock.Now()

	var result *ListingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Listings().FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return notFoundOr(err, ErrListingNotFound)
		}
		if l.ProviderID() != providerID {
			return ErrForbidden
		}

		claims, err := tx.Claims().FindByListingID(ctx, l.ID())
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		for _, c := range claims {
			switch c.Status() {
			case claim.StatusApproved, claim.StatusConfirmed:
				return ErrListingHasActiveClaims
			}
		}

		if err := l.CancelByProvider(now); err != nil {
			return errs.Mark(err, ErrWrongState)
		}
		for _, c := range claims {
			if c.Status() != claim.StatusPending {
				continue
			}
			if err := c.Reject(canceledByProviderReason, now); err != nil {
				return errs.Mark(err, ErrWrongState)
			}
			if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
		}
		if err := tx.Listings().UpdateReconciliation(ctx, l); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		result = toListingResult(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toListingResult(l *listing.Listing) *ListingResult {
	return &ListingResult{
		ID:             l.ID(),
		ProviderID:     l.ProviderID(),
		Title:          l.Title(),
		Description:    l.Description(),
		TotalQuantity:  l.Quantity().Amount(),
		Unit:           l.Quantity().Unit(),
		ClaimedQty:     l.ClaimedQty(),
		WastedQty:      l.WastedQty(),
		AvailableUntil: l.AvailableUntil(),
		SafeUntil:      l.SafeUntil(),
		Status:         l.Status(),
	}
}
