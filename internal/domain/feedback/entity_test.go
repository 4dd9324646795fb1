//go:build unit

package feedback_test

import (
	"strings"
	"testing"
	"time"

	"foodbridge/internal/domain/feedback"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedback(t *testing.T) {
	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	claimID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		fq, exp := 4, 5
		f, err := feedback.NewFeedback(claimID, 5, &fq, &exp, "Great food, friendly handover", now)
		require.NoError(t, err)

		assert.Equal(t, claimID, f.ClaimID())
		assert.Equal(t, 5, f.Rating().Value())
		assert.Equal(t, 4, f.FoodQuality().Value())
		assert.Equal(t, 5, f.Experience().Value())
		assert.Equal(t, "Great food, friendly handover", f.Comment().String())
	})

	t.Run("sub ratings and comment are optional", func(t *testing.T) {
		f, err := feedback.NewFeedback(claimID, 3, nil, nil, "", now)
		require.NoError(t, err)
		assert.Nil(t, f.FoodQuality())
		assert.Nil(t, f.Experience())
		assert.True(t, f.Comment().IsEmpty())
	})

	t.Run("overall rating bounds", func(t *testing.T) {
		for _, v := range []int{0, 6, -1} {
			_, err := feedback.NewFeedback(claimID, v, nil, nil, "", now)
			assert.ErrorIs(t, err, feedback.ErrInvalidRating, "rating %d", v)
		}
	})

	t.Run("sub rating bounds", func(t *testing.T) {
		bad := 0
		_, err := feedback.NewFeedback(claimID, 4, &bad, nil, "", now)
		assert.ErrorIs(t, err, feedback.ErrInvalidRating)

		_, err = feedback.NewFeedback(claimID, 4, nil, &bad, "", now)
		assert.ErrorIs(t, err, feedback.ErrInvalidRating)
	})

	t.Run("comment length cap", func(t *testing.T) {
		_, err := feedback.NewFeedback(claimID, 4, nil, nil, strings.Repeat("a", feedback.MaxCommentLength+1), now)
		assert.ErrorIs(t, err, feedback.ErrCommentTooLong)

		_, err = feedback.NewFeedback(claimID, 4, nil, nil, strings.Repeat("a", feedback.MaxCommentLength), now)
		assert.NoError(t, err)
	})
}
