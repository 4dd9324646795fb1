package repository

import (
	"context"

	"foodbridge/internal/domain/feedback"
	"foodbridge/internal/infra"
	"foodbridge/internal/infra/db"
)

const feedbackTable = "feedback"

type FeedbackRepository struct {
	db db.DBTX
}

func NewFeedbackRepository(dbtx db.DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: dbtx}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) error {
	var foodQuality, experience *int
	if f.FoodQuality() != nil {
		v := f.FoodQuality().Value()
		foodQuality = &v
	}
	if f.Experience() != nil {
		v := f.Experience().Value()
		experience = &v
	}

	query, args, err := psql().Insert(feedbackTable).
		Columns("id", "claim_id", "rating", "food_quality", "experience", "comment", "created_at").
		Values(f.ID(), f.ClaimID(), f.Rating().Value(), foodQuality, experience, f.Comment().String(), f.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build feedback insert", err)
	}

	// claim_id carries a unique constraint: at most one feedback per claim.
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return classify("failed to create feedback", err)
	}
	return nil
}
