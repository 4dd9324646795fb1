//go:build unit

package listing_test

import (
	"testing"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/listing"
	"foodbridge/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ListingBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewListingBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewListing(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewListingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, listing.StatusAvailable, actual.Status())
		assert.Equal(t, 10.0, actual.Quantity().Amount())
		assert.Equal(t, "kg", actual.Quantity().Unit())
		assert.Zero(t, actual.ClaimedQty())
		assert.Zero(t, actual.WastedQty())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("title validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty title",
				mutate: func(b *builder.ListingBuilder) { b.Title = "" },
				errIs:  listing.ErrEmptyTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.ListingBuilder) { b.Title = "   " },
				errIs:  listing.ErrEmptyTitle,
			},
		})
	})

	t.Run("deadline validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "pickup window already closed",
				mutate: func(b *builder.ListingBuilder) {
					b.AvailableUntil = b.Now.Add(-time.Hour)
				},
				errIs: listing.ErrDeadlineInPast,
			},
			{
				name: "safety deadline already past",
				mutate: func(b *builder.ListingBuilder) {
					b.SafeUntil = b.Now.Add(-time.Minute)
				},
				errIs: listing.ErrDeadlineInPast,
			},
			{
				name: "safety deadline after pickup window",
				mutate: func(b *builder.ListingBuilder) {
					b.SafeUntil = b.AvailableUntil.Add(time.Hour)
				},
				errIs: listing.ErrSafetyAfterWindow,
			},
			{
				name: "safety deadline equal to pickup window end",
				mutate: func(b *builder.ListingBuilder) {
					b.SafeUntil = b.AvailableUntil
				},
			},
		})
	})
}

func TestListingReconcile(t *testing.T) {
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		remaining float64
		want      listing.Status
	}{
		{"nothing claimed stays available", 10, listing.StatusAvailable},
		{"partial claim", 4, listing.StatusPartiallyClaimed},
		{"everything claimed", 0, listing.StatusFullyClaimed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := builder.NewListingBuilder().BuildReconstructed()
			l.Reconcile(tc.remaining, now)
			assert.Equal(t, tc.want, l.Status())
			assert.Equal(t, 10-tc.remaining, l.ClaimedQty())
		})
	}

	t.Run("fully claimed steps back when quantity frees up", func(t *testing.T) {
		l := builder.NewListingBuilder().BuildReconstructed()
		l.Reconcile(0, now)
		require.Equal(t, listing.StatusFullyClaimed, l.Status())

		l.Reconcile(6, now.Add(time.Minute))
		assert.Equal(t, listing.StatusPartiallyClaimed, l.Status())

		l.Reconcile(10, now.Add(2*time.Minute))
		assert.Equal(t, listing.StatusAvailable, l.Status())
	})

	t.Run("terminal status is never overwritten", func(t *testing.T) {
		l := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.Status = listing.StatusExpired
		}).BuildReconstructed()

		l.Reconcile(0, now)
		assert.Equal(t, listing.StatusExpired, l.Status())
	})
}

func TestListingExpire(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("books remaining quantity as waste", func(t *testing.T) {
		l := builder.NewListingBuilder().BuildReconstructed()
		require.NoError(t, l.Expire(6, now))

		assert.Equal(t, listing.StatusExpired, l.Status())
		assert.Equal(t, 6.0, l.WastedQty())
		assert.Equal(t, 4.0, l.ClaimedQty())
	})

	t.Run("terminal listing cannot expire again", func(t *testing.T) {
		l := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.Status = listing.StatusCanceled
		}).BuildReconstructed()

		assert.ErrorIs(t, l.Expire(10, now), listing.ErrAlreadyTerminal)
	})
}

func TestListingTryComplete(t *testing.T) {
	now := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

	usages := func(statuses ...claim.Status) []listing.ClaimUsage {
		out := make([]listing.ClaimUsage, len(statuses))
		for i, s := range statuses {
			out[i] = listing.ClaimUsage{Status: s, ApprovedQty: 2}
		}
		return out
	}

	cases := []struct {
		name   string
		usages []listing.ClaimUsage
		want   bool
	}{
		{"all terminal with one completed", usages(claim.StatusCompleted, claim.StatusRejected), true},
		{"active claim blocks completion", usages(claim.StatusCompleted, claim.StatusApproved), false},
		{"no completed delivery", usages(claim.StatusRejected, claim.StatusCanceled), false},
		{"no claims at all", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := builder.NewListingBuilder().BuildReconstructed()
			got := l.TryComplete(tc.usages, now)
			assert.Equal(t, tc.want, got)
			if tc.want {
				assert.Equal(t, listing.StatusCompleted, l.Status())
			} else {
				assert.Equal(t, listing.StatusAvailable, l.Status())
			}
		})
	}
}

func TestListingDeadlines(t *testing.T) {
	b := builder.NewListingBuilder()
	l := b.BuildReconstructed()

	t.Run("open while both deadlines hold", func(t *testing.T) {
		assert.True(t, l.IsOpenForClaims(b.Now.Add(time.Hour)))
	})

	t.Run("closed past the safety deadline", func(t *testing.T) {
		assert.False(t, l.IsOpenForClaims(b.SafeUntil.Add(time.Minute)))
	})

	t.Run("pickup grace extends past the safety deadline", func(t *testing.T) {
		grace := 24 * time.Hour
		assert.True(t, l.WithinPickupGrace(b.SafeUntil.Add(23*time.Hour), grace))
		assert.False(t, l.WithinPickupGrace(b.SafeUntil.Add(25*time.Hour), grace))
	})
}

func TestCancelByProvider(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	t.Run("cancels an open listing", func(t *testing.T) {
		l := builder.NewListingBuilder().BuildReconstructed()
		require.NoError(t, l.CancelByProvider(now))
		assert.Equal(t, listing.StatusCanceled, l.Status())
	})

	t.Run("terminal listing cannot be canceled", func(t *testing.T) {
		l := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.Status = listing.StatusCompleted
		}).BuildReconstructed()
		assert.ErrorIs(t, l.CancelByProvider(now), listing.ErrAlreadyTerminal)
	})
}

func TestNewQuantity(t *testing.T) {
	t.Run("normalizes the unit", func(t *testing.T) {
		q, err := listing.NewQuantity(2.5, "  KG ")
		require.NoError(t, err)
		assert.Equal(t, "kg", q.Unit())
		assert.Equal(t, 2.5, q.Amount())
	})

	t.Run("rejects non positive amounts", func(t *testing.T) {
		_, err := listing.NewQuantity(0, "kg")
		assert.ErrorIs(t, err, listing.ErrNonPositiveQuantity)
		_, err = listing.NewQuantity(-1, "kg")
		assert.ErrorIs(t, err, listing.ErrNonPositiveQuantity)
	})

	t.Run("rejects a missing unit", func(t *testing.T) {
		_, err := listing.NewQuantity(1, "  ")
		assert.ErrorIs(t, err, listing.ErrMissingUnit)
	})
}
