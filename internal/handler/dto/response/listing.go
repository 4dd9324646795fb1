package response

import (
	"time"

	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingResponse struct {
	ID              uuid.UUID `json:"id"`
	ProviderID      uuid.UUID `json:"providerId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	TotalQuantity   float64   `json:"totalQuantity"`
	Unit            string    `json:"unit"`
	ClaimedQuantity float64   `json:"claimedQuantity"`
	WastedQuantity  float64   `json:"wastedQuantity"`
	RemainingQty    float64   `json:"remainingQuantity"`
	AvailableUntil  time.Time `json:"availableUntil"`
	SafeUntil       time.Time `json:"safeUntil"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	return &ListingResponse{
		ID:              v.ID,
		ProviderID:      v.ProviderID,
		Title:           v.Title,
		Description:     v.Description,
		TotalQuantity:   v.TotalQuantity,
		Unit:            v.Unit,
		ClaimedQuantity: v.ClaimedQuantity,
		WastedQuantity:  v.WastedQuantity,
		RemainingQty:    v.RemainingQty,
		AvailableUntil:  v.AvailableUntil,
		SafeUntil:       v.SafeUntil,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromListingResult(r *commands.ListingResult) *ListingResponse {
	remaining := r.TotalQuantity - r.ClaimedQty
	if remaining < 0 {
		remaining = 0
	}
	return &ListingResponse{
		ID:              r.ID,
		ProviderID:      r.ProviderID,
		Title:           r.Title,
		Description:     r.Description,
		TotalQuantity:   r.TotalQuantity,
		Unit:            r.Unit,
		ClaimedQuantity: r.ClaimedQty,
		WastedQuantity:  r.WastedQty,
		RemainingQty:    remaining,
		AvailableUntil:  r.AvailableUntil,
		SafeUntil:       r.SafeUntil,
		Status:          r.Status.String(),
	}
}
