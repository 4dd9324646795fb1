//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/listing"
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/usecase/commands"
	"foodbridge/tests/common/builder"
	"foodbridge/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingFixture struct {
	uow   *fake.UoW
	clock *clock.MockClock
	cmds  commands.ListingCommands
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	uow := fake.NewUoW()
	clk := clock.NewMockClock(baseTime)
	return &listingFixture{
		uow:   uow,
		clock: clk,
		cmds:  commands.NewListingCommands(uow, clk),
	}
}

func TestCreateListing(t *testing.T) {
	validInput := func() commands.CreateListingInput {
		return commands.CreateListingInput{
			Title:          "Bread and pastries",
			Description:    "End of day bakery surplus",
			Quantity:       12,
			Unit:           "items",
			AvailableUntil: baseTime.Add(10 * time.Hour),
			SafeUntil:      baseTime.Add(8 * time.Hour),
		}
	}

	t.Run("creates an available listing", func(t *testing.T) {
		f := newListingFixture(t)
		providerID := uuid.New()

		result, err := f.cmds.Create(context.Background(), validInput(), providerID)
		require.NoError(t, err)

		assert.Equal(t, listing.StatusAvailable, result.Status)
		assert.Equal(t, providerID, result.ProviderID)
		assert.Equal(t, 12.0, result.TotalQuantity)
		assert.Equal(t, "items", result.Unit)

		require.NotNil(t, f.uow.Listing(result.ID))
	})

	t.Run("validation failures map to domain validation", func(t *testing.T) {
		f := newListingFixture(t)

		cases := []struct {
			name   string
			mutate func(*commands.CreateListingInput)
		}{
			{"empty title", func(in *commands.CreateListingInput) { in.Title = "  " }},
			{"zero quantity", func(in *commands.CreateListingInput) { in.Quantity = 0 }},
			{"missing unit", func(in *commands.CreateListingInput) { in.Unit = "" }},
			{"deadline in the past", func(in *commands.CreateListingInput) { in.AvailableUntil = baseTime.Add(-time.Hour) }},
			{"safety after window", func(in *commands.CreateListingInput) { in.SafeUntil = in.AvailableUntil.Add(time.Hour) }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := validInput()
				tc.mutate(&in)
				_, err := f.cmds.Create(context.Background(), in, uuid.New())
				assert.ErrorIs(t, err, commands.ErrDomainValidation)
			})
		}
	})
}

func TestCancelListing(t *testing.T) {
	seed := func(f *listingFixture, mutate func(*builder.ListingBuilder)) *builder.ListingBuilder {
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

	t.Run("cancels and auto rejects pending claims", func(t *testing.T) {
		f := newListingFixture(t)
		lb := seed(f, nil)

		pending := builder.NewClaimBuilder().With(func(b *builder.ClaimBuilder) {
			b.ListingID = lb.ID
			b.Now = baseTime
		})
		f.uow.SeedClaim(pending.BuildReconstructed())

		result, err := f.cmds.Cancel(context.Background(), lb.ID, lb.ProviderID)
		require.NoError(t, err)
		assert.Equal(t, listing.StatusCanceled, result.Status)

		c := f.uow.Claim(pending.ID)
		assert.Equal(t, claim.StatusRejected, c.Status())
	})

	t.Run("approved claims block cancellation", func(t *testing.T) {
		f := newListingFixture(t)
		lb := seed(f, nil)

		approved := builder.NewClaimBuilder().With(func(b *builder.ClaimBuilder) {
			b.ListingID = lb.ID
			b.Status = claim.StatusApproved
			b.ApprovedQty = 2
			b.Now = baseTime
		})
		f.uow.SeedClaim(approved.BuildReconstructed())

		_, err := f.cmds.Cancel(context.Background(), lb.ID, lb.ProviderID)
		assert.ErrorIs(t, err, commands.ErrListingHasActiveClaims)
		assert.Equal(t, listing.StatusAvailable, f.uow.Listing(lb.ID).Status())
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		f := newListingFixture(t)
		lb := seed(f, nil)

		_, err := f.cmds.Cancel(context.Background(), lb.ID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("terminal listing cannot cancel", func(t *testing.T) {
		f := newListingFixture(t)
		lb := seed(f, func(b *builder.ListingBuilder) {
			b.Status = listing.StatusExpired
		})

		_, err := f.cmds.Cancel(context.Background(), lb.ID, lb.ProviderID)
		assert.ErrorIs(t, err, commands.ErrWrongState)
	})

	t.Run("unknown listing", func(t *testing.T) {
		f := newListingFixture(t)
		_, err := f.cmds.Cancel(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrListingNotFound)
	})
}
