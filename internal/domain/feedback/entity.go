package feedback

import (
	"time"

	"foodbridge/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrClaimNotCompleted = errs.New("feedback requires a completed claim")

// Feedback is attached to at most one completed claim and never changes
// afterwards.
type Feedback struct {
	id          uuid.UUID
	claimID     uuid.UUID
	rating      Rating
	foodQuality *Rating
	experience  *Rating
	comment     Comment
	createdAt   time.Time
}

func NewFeedback(claimID uuid.UUID, ratingValue int, foodQuality, experience *int, commentText string, now time.Time) (*Feedback, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	var fq, exp *Rating
	if foodQuality != nil {
		r, err := NewRating(*foodQuality)
		if err != nil {
			return nil, err
		}
		fq = &r
	}
	if experience != nil {
		r, err := NewRating(*experience)
		if err != nil {
			return nil, err
		}
		exp = &r
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	return &Feedback{
		id:          uuid.New(),
		claimID:     claimID,
		rating:      rating,
		foodQuality: fq,
		experience:  exp,
		comment:     comment,
		createdAt:   now,
	}, nil
}

func ReconstructFeedback(id, claimID uuid.UUID, rating Rating, foodQuality, experience *Rating, comment Comment, createdAt time.Time) *Feedback {
	return &Feedback{
		id:          id,
		claimID:     claimID,
		rating:      rating,
		foodQuality: foodQuality,
		experience:  experience,
		comment:     comment,
		createdAt:   createdAt,
	}
}

func (f *Feedback) ID() uuid.UUID        { return f.id }
func (f *Feedback) ClaimID() uuid.UUID   { return f.claimID }
func (f *Feedback) Rating() Rating       { return f.rating }
func (f *Feedback) FoodQuality() *Rating { return f.foodQuality }
func (f *Feedback) Experience() *Rating  { return f.experience }
func (f *Feedback) Comment() Comment     { return f.comment }
func (f *Feedback) CreatedAt() time.Time { return f.createdAt }
