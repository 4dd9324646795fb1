package commands

import (
	"context"
	"log/slog"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/listing"
	"foodbridge/internal/pkg/config"
	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/usecase/shared"

	"github.com/google/uuid"
)

const expiredListingReason = "listing expired"

// ExpiredListingScanner selects non-terminal listings whose pickup window
// or safety deadline has lapsed.
type ExpiredListingScanner interface {
	ExpiredCandidateIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

type SweepListingResult struct {
	ListingID      uuid.UUID
	WastedQuantity float64
	RejectedClaims int
}

type SweepResult struct {
	Processed   int
	Failed      int
	TotalWasted float64
	Results     []SweepListingResult
}

type SweepCommands interface {
	// SweepExpiredListings expires every overdue listing, books its
	// remaining quantity as waste and auto-rejects claims still pending.
	// Idempotent: expired listings drop out of the candidate selection, so
	// overlapping runs add nothing.
	SweepExpiredListings(ctx context.Context, now time.Time) (*SweepResult, error)
}

type sweepCommandsImpl struct {
	uow        shared.UnitOfWork
	scanner    ExpiredListingScanner
	batchLimit int32
}

func NewSweepCommands(uow shared.UnitOfWork, scanner ExpiredListingScanner, cfg config.SweepConfig) SweepCommands {
	return &sweepCommandsImpl{
		uow:        uow,
		scanner:    scanner,
		batchLimit: int32(cfg.BatchLimit),
	}
}

func (uc *sweepCommandsImpl) SweepExpiredListings(ctx context.Context, now time.Time) (*SweepResult, error) {
	ids, err := uc.scanner.ExpiredCandidateIDs(ctx, now, uc.batchLimit)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	result := &SweepResult{Results: make([]SweepListingResult, 0, len(ids))}
	for _, id := range ids {
		one, err := uc.expireOne(ctx, id, now)
		if err != nil {
			// One bad listing must not abort the batch; the next scheduled
			// run picks it up again.
			slog.Warn("failed to expire listing, continuing sweep",
				"listing_id", id,
				"error", err.Error())
			result.Failed++
			continue
		}
		if one == nil {
			continue // raced with another run or a late claim mutation
		}
		result.Processed++
		result.TotalWasted += one.WastedQuantity
		result.Results = append(result.Results, *one)
	}
	return result, nil
}

func (uc *sweepCommandsImpl) expireOne(ctx context.Context, listingID uuid.UUID, now time.Time) (*SweepListingResult, error) {
	var one *SweepListingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Listings().FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return notFoundOr(err, ErrListingNotFound)
		}
		// Re-check under the row lock; the candidate scan ran unlocked.
		if l.Status().IsTerminal() || !l.IsPastDeadline(now) {
			return nil
		}

		claims, err := tx.Claims().FindByListingID(ctx, l.ID())
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		remaining := listing.Remaining(l.Quantity().Amount(), listing.UsagesOf(claims))

		if err := l.Expire(remaining, now); err != nil {
			return errs.Mark(err, ErrWrongState)
		}

		rejected := 0
		// APPROVED and CONFIRMED claims are deliberately left alone: a
		// receiver who secured food before expiry keeps the pickup grace
		// window.
		for _, c := range claims {
			if c.Status() != claim.StatusPending {
				continue
			}
			if err := c.Reject(expiredListingReason, now); err != nil {
				return errs.Mark(err, ErrWrongState)
			}
			if err := tx.Claims().UpdateTransition(ctx, c); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
			rejected++
		}

		if err := tx.Listings().UpdateReconciliation(ctx, l); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		one = &SweepListingResult{
			ListingID:      l.ID(),
			WastedQuantity: l.WastedQty(),
			RejectedClaims: rejected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return one, nil
}
