package request

import (
	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	Note      string    `json:"note" binding:"max=500"`
}

type ApproveClaimRequest struct {
	// Quantity defaults to the requested amount when omitted.
	Quantity *float64 `json:"quantity" binding:"omitempty,gt=0"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ConfirmPickupRequest struct {
	PickupCode string `json:"pickup_code" binding:"required"`
}

type CompleteDeliveryRequest struct {
	Feedback *FeedbackRequest `json:"feedback,omitempty"`
}

type FeedbackRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	FoodQuality *int   `json:"food_quality" binding:"omitempty,min=1,max=5"`
	Experience  *int   `json:"experience" binding:"omitempty,min=1,max=5"`
	Comment     string `json:"comment" binding:"max=1000"`
}

type CancelClaimRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
