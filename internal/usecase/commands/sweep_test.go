//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/listing"
	"foodbridge/internal/pkg/config"
	"foodbridge/internal/usecase/commands"
	"foodbridge/tests/common/builder"
	"foodbridge/tests/common/fake"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepFixture struct {
	uow  *fake.UoW
	cmds commands.SweepCommands
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	uow := fake.NewUoW()
	cfg := config.SweepConfig{BatchLimit: 500}
	return &sweepFixture{
		uow:  uow,
		cmds: commands.NewSweepCommands(uow, uow, cfg),
	}
}

func seedSweepListing(f *sweepFixture, mutate func(*builder.ListingBuilder)) *builder.ListingBuilder {
	b := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.Now = baseTime
		b.AvailableUntil = baseTime.Add(8 * time.Hour)
		b.SafeUntil = baseTime.Add(6 * time.Hour)
		if mutate != nil {
			mutate(b)
		}
	})
	f.uow.SeedListing(b.BuildReconstructed())
	return b
}

func TestSweepExpiredListings(t *testing.T) {
	afterDeadline := baseTime.Add(7 * time.Hour)

	t.Run("expires overdue listings and books waste", func(t *testing.T) {
		f := newSweepFixture(t)
		lb := seedSweepListing(f, func(b *builder.ListingBuilder) {
			b.ClaimedQty = 4
			b.Status = listing.StatusPartiallyClaimed
		})
		// 4 of 10 held by an approved claim; 6 go to waste.
		approved := builder.NewClaimBuilder().With(func(b *builder.ClaimBuilder) {
			b.ListingID = lb.ID
			b.Status = claim.StatusApproved
			b.ApprovedQty = 4
			b.Now = baseTime
		})
		f.uow.SeedClaim(approved.BuildReconstructed())

		result, err := f.cmds.SweepExpiredListings(context.Background(), afterDeadline)
		require.NoError(t, err)

		expected := &commands.SweepResult{
			Processed:   1,
			TotalWasted: 6,
			Results: []commands.SweepListingResult{
				{ListingID: lb.ID, WastedQuantity: 6, RejectedClaims: 0},
			},
		}
		if diff := cmp.Diff(expected, result, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("SweepResult mismatch (-want +got):\n%s", diff)
		}

		l := f.uow.Listing(lb.ID)
		assert.Equal(t, listing.StatusExpired, l.Status())
		assert.Equal(t, 6.0, l.WastedQty())
		assert.Equal(t, 4.0, l.ClaimedQty())
	})

	t.Run("rejects pending claims but leaves approved ones", func(t *testing.T) {
		f := newSweepFixture(t)
		lb := seedSweepListing(f, nil)

		pending := builder.NewClaimBuilder().With(func(b *builder.ClaimBuilder) {
			b.ListingID = lb.ID
			b.Now = baseTime
		})
		approved := builder.NewClaimBuilder().With(func(b *builder.ClaimBuilder) {
			b.ListingID = lb.ID
			b.Status = claim.StatusApproved
			b.ApprovedQty = 3
			b.Now = baseTime
		})
		f.uow.SeedClaim(pending.BuildReconstructed())
		f.uow.SeedClaim(approved.BuildReconstructed())

		result, err := f.cmds.SweepExpiredListings(context.Background(), afterDeadline)
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Equal(t, 1, result.Results[0].RejectedClaims)

		assert.Equal(t, claim.StatusRejected, f.uow.Claim(pending.ID).Status())
		assert.Equal(t, claim.StatusApproved, f.uow.Claim(approved.ID).Status())
	})

	t.Run("fresh listings are untouched", func(t *testing.T) {
		f := newSweepFixture(t)
		lb := seedSweepListing(f, nil)

		result, err := f.cmds.SweepExpiredListings(context.Background(), baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, result.Processed)
		assert.Equal(t, listing.StatusAvailable, f.uow.Listing(lb.ID).Status())
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		f := newSweepFixture(t)
		seedSweepListing(f, nil)

		first, err := f.cmds.SweepExpiredListings(context.Background(), afterDeadline)
		require.NoError(t, err)
		require.Equal(t, 1, first.Processed)

		second, err := f.cmds.SweepExpiredListings(context.Background(), afterDeadline)
		require.NoError(t, err)
		assert.Zero(t, second.Processed)
		assert.Zero(t, second.Failed)
	})

	t.Run("one failing listing does not abort the batch", func(t *testing.T) {
		f := newSweepFixture(t)
		bad := seedSweepListing(f, nil)
		good := seedSweepListing(f, nil)
		f.uow.FailUpdateListing[bad.ID] = errors.New("write failed")

		result, err := f.cmds.SweepExpiredListings(context.Background(), afterDeadline)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, listing.StatusExpired, f.uow.Listing(good.ID).Status())
		assert.Equal(t, listing.StatusAvailable, f.uow.Listing(bad.ID).Status())
	})

	t.Run("batch limit caps one run", func(t *testing.T) {
		f := &sweepFixture{uow: fake.NewUoW()}
		f.cmds = commands.NewSweepCommands(f.uow, f.uow, config.SweepConfig{BatchLimit: 2})
		for range 3 {
			seedSweepListing(f, nil)
		}

		result, err := f.cmds.SweepExpiredListings(context.Background(), afterDeadline)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Processed)
	})
}
