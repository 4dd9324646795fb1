package commands

import (
	"context"
	"errors"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/feedback"
	"foodbridge/internal/domain/impact"
	"foodbridge/internal/domain/listing"
	"foodbridge/internal/infra"
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/pkg/config"
	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/pkg/pickupcode"
	"foodbridge/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound      = errs.New("listing not found")
	ErrClaimNotFound        = errs.New("claim not found")
	ErrListingNotAvailable  = errs.New("listing is not open for claims")
	ErrInsufficientQuantity = errs.New("insufficient remaining quantity")
	ErrWrongState           = errs.New("operation not allowed in current state")
	ErrForbidden            = errs.New("actor may not act on this resource")
	ErrInvalidPickupCode    = errs.New("invalid pickup code")
	ErrInvalidRating        = errs.New("invalid rating")
	ErrInvalidQuantity      = errs.New("invalid quantity")
	ErrMissingReason        = errs.New("reason is required")
	ErrStorageFailure       = errs.New("storage operation failed")
)

type CreateClaimInput struct {
	ListingID    uuid.UUID
	RequestedQty float64
	Note         string
}

type FeedbackInput struct {
	Rating      int
	FoodQuality *int
	Experience  *int
	Comment     string
}

// ClaimResult is the post-transition snapshot handed back to transport.
type ClaimResult struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	ReceiverID   uuid.UUID
	RequestedQty float64
	ApprovedQty  float64
	Status       claim.Status
	PickupCode   string
	CancelReason string
	UpdatedAt    time.Time
}

type CompleteDeliveryResult struct {
	Claim  ClaimResult
	Impact impact.Estimate
}

type ClaimCommands interface {
	Create(ctx context.Context, input CreateClaimInput, receiverID uuid.UUID) (*ClaimResult, error)
	Approve(ctx context.Context, claimID, providerID uuid.UUID, approvedQty *float64) (*ClaimResult, error)
	Reject(ctx context.Context, claimID, providerID uuid.UUID, reason string) (*ClaimResult, error)
	ConfirmPickup(ctx context.Context, claimID, providerID uuid.UUID, presentedCode string) (*ClaimResult, error)
	CompleteDelivery(ctx context.Context, claimID, actorID uuid.UUID, fb *FeedbackInput) (*CompleteDeliveryResult, error)
	Cancel(ctx context.Context, claimID, actorID uuid.UUID, reason string) (*ClaimResult, error)
}

type claimCommandsImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	codes       pickupcode.Generator
	pickupGrace time.Duration
}

func NewClaimCommands(uow shared.UnitOfWork, clk clock.Clock, codes pickupcode.Generator, cfg config.SweepConfig) ClaimCommands {
	return &claimCommandsImpl{
		uow:         uow,
		clock:       clk,
		codes:       codes,
		pickupGrace: cfg.PickupGrace,
	}
}

func (uc *claimCommandsImpl) Create(ctx context.Context, input CreateClaimInput, receiverID uuid.UUID) (*ClaimResult, error) {
	now := uc.clock.Now()

	var result *ClaimResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Listings().FindByIDForUpdate(ctx, input.ListingID)
		if err != nil {
			return notFoundOr(err, ErrListingNotFound)
		}
		if l.ProviderID() == receiverID {
			return ErrForbidden
		}
		if !l.IsOpenForClaims(now) {
			return ErrListingNotAvailable
		}

		claims, err := tx.Claims().FindByListingID(ctx, l.ID())
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		remaining := listing.Remaining(l.Quantity().Amount(), listing.UsagesOf(claims))
		if input.RequestedQty > remaining {
			return ErrInsufficientQuantity
		}

		c, err := claim.NewClaim(l.ID(), receiverID, input.RequestedQty, claim.NewNote(input.Note), now)
		if err != nil {
			return errs.Mark(err, ErrInvalidQuantity)
		}
		if err := tx.Claims().Create(ctx, c); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		result = toClaimResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *claimCommandsImpl) Approve(ctx context.Context, claimID, providerID uuid.UUID, approvedQty *float64) (*ClaimResult, error) {
	now := uc.clock.Now()

	var result *ClaimResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, l, err := lockClaimListing(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if l.ProviderID() != providerID {
			return ErrForbidden
		}

		qty := c.RequestedQty()
		if approvedQty != nil {
			qty = *approvedQty
		}

		claims, err := tx.Claims().FindByListingID(ctx, l.ID())
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		// The pending claim holds nothing yet, so it does not count against
		// its own approval.
		remaining := listing.Remaining(l.Quantity().Amount(), listing.UsagesOf(claims))
		if qty > remaining {
			return ErrInsufficientQuantity
		}

		if err := c.Approve(qty, uc.codes.Generate(), now); err != nil {
			switch {
			case errors.Is(err, claim.ErrQuantityExceedsAsk):
				return errs.Mark(err, ErrInsufficientQuantity)
			case errors.Is(err, claim.ErrInvalidQuantity):
				return errs.Mark(err, ErrInvalidQuantity)
			default:
				return errs.Mark(err, ErrWrongState)
			}
		}
		if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		l.Reconcile(remaining-qty, now)
		if err := tx.Listings().UpdateReconciliation(ctx, l); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		result = toClaimResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *claimCommandsImpl) Reject(ctx context.Context, claimID, providerID uuid.UUID, reason string) (*ClaimResult, error) {
	now := uc.clock.Now()
	if reason == "" {
		return nil, ErrMissingReason
	}

	var result *ClaimResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, l, err := lockClaimListing(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if l.ProviderID() != providerID {
			return ErrForbidden
		}

		if err := c.Reject(reason, now); err != nil {
			return errs.Mark(err, ErrWrongState)
		}
		// A pending claim held no quantity; the listing ledger is untouched.
		if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		result = toClaimResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *claimCommandsImpl) ConfirmPickup(ctx context.Context, claimID, providerID uuid.UUID, presentedCode string) (*ClaimResult, error) {
	now := uc.clock.Now()

	var result *ClaimResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, l, err := lockClaimListing(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if l.ProviderID() != providerID {
			return ErrForbidden
		}
		if !l.WithinPickupGrace(now, uc.pickupGrace) {
			return ErrWrongState
		}

		if err := c.ConfirmPickup(presentedCode, now); err != nil {
			if errors.Is(err, claim.ErrPickupCodeMismatch) {
				// Claim stays APPROVED; the provider can retry with the
				// right code.
				return errs.Mark(err, ErrInvalidPickupCode)
			}
			return errs.Mark(err, ErrWrongState)
		}
		if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		result = toClaimResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *claimCommandsImpl) CompleteDelivery(ctx context.Context, claimID, actorID uuid.UUID, fb *FeedbackInput) (*CompleteDeliveryResult, error) {
	now := uc.clock.Now()

	var result *CompleteDeliveryResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, l, err := lockClaimListing(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if actorID != c.ReceiverID() && actorID != l.ProviderID() {
			return ErrForbidden
		}

		if err := c.Complete(now); err != nil {
			return errs.Mark(err, ErrWrongState)
		}
		if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		if fb != nil {
			f, ferr := feedback.NewFeedback(c.ID(), fb.Rating, fb.FoodQuality, fb.Experience, fb.Comment, now)
			if ferr != nil {
				return errs.Mark(ferr, ErrInvalidRating)
			}
			if err := tx.Feedback().Create(ctx, f); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
		}

		est := impact.EstimateQuantity(c.ApprovedQty(), l.Quantity().Unit(), l.Title()+" "+l.Description())
		if err := tx.ProviderImpact().Accumulate(ctx, l.ProviderID(), est); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		claims, err := tx.Claims().FindByListingID(ctx, l.ID())
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if l.TryComplete(listing.UsagesOf(claims), now) {
			if err := tx.Listings().UpdateReconciliation(ctx, l); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
		}

		result = &CompleteDeliveryResult{Claim: *toClaimResult(c), Impact: est}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *claimCommandsImpl) Cancel(ctx context.Context, claimID, actorID uuid.UUID, reason string) (*ClaimResult, error) {
	now := uc.clock.Now()
	if reason == "" {
		return nil, ErrMissingReason
	}

	var result *ClaimResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, l, err := lockClaimListing(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if actorID != c.ReceiverID() && actorID != l.ProviderID() {
			return ErrForbidden
		}

		if err := c.Cancel(reason, now); err != nil {
			if errors.Is(err, claim.ErrMissingCancelReason) {
				return errs.Mark(err, ErrMissingReason)
			}
			return errs.Mark(err, ErrWrongState)
		}
		if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		// Freed quantity becomes claimable again, so the listing may step
		// back from FULLY_CLAIMED.
		claims, err := tx.Claims().FindByListingID(ctx, l.ID())
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		remaining := listing.Remaining(l.Quantity().Amount(), listing.UsagesOf(claims))
		l.Reconcile(remaining, now)
		if err := tx.Listings().UpdateReconciliation(ctx, l); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		result = toClaimResult(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockClaimListing resolves the claim's owning listing and takes its row
// lock, then re-reads the claim under that lock. The unlocked first read
// only discovers the listing id; the serialized view is the second read.
func lockClaimListing(ctx context.Context, tx shared.Tx, claimID uuid.UUID) (*claim.Claim, *listing.Listing, error) {
	c, err := tx.Claims().FindByID(ctx, claimID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrClaimNotFound)
	}

	l, err := tx.Listings().FindByIDForUpdate(ctx, c.ListingID())
	if err != nil {
		return nil, nil, notFoundOr(err, ErrListingNotFound)
	}

	c, err = tx.Claims().FindByID(ctx, claimID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrClaimNotFound)
	}
	return c, l, nil
}

func notFoundOr(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return errs.Mark(err, ErrStorageFailure)
}

func toClaimResult(c *claim.Claim) *ClaimResult {
	return &ClaimResult{
		ID:           c.ID(),
		ListingID:    c.ListingID(),
		ReceiverID:   c.ReceiverID(),
		RequestedQty: c.RequestedQty(),
		ApprovedQty:  c.ApprovedQty(),
		Status:       c.Status(),
		PickupCode:   c.PickupCode(),
		CancelReason: c.CancelReason(),
		UpdatedAt:    c.UpdatedAt(),
	}
}
