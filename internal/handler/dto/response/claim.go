package response

import (
	"time"

	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ClaimResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listingId"`
	ReceiverID   uuid.UUID `json:"receiverId"`
	RequestedQty float64   `json:"requestedQuantity"`
	ApprovedQty  float64   `json:"approvedQuantity"`
	Status       string    `json:"status"`
	PickupCode   string    `json:"pickupCode,omitempty"`
	CancelReason string    `json:"cancelReason,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ClaimListResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listingId"`
	ListingTitle string    `json:"listingTitle"`
	Unit         string    `json:"unit"`
	ReceiverID   uuid.UUID `json:"receiverId"`
	RequestedQty float64   `json:"requestedQuantity"`
	ApprovedQty  float64   `json:"approvedQuantity"`
	Status       string    `json:"status"`
	CancelReason *string   `json:"cancelReason,omitempty"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ImpactResponse struct {
	CO2Kg        float64 `json:"co2Kg"`
	WaterLiters  float64 `json:"waterLiters"`
	PeopleServed int     `json:"peopleServed"`
}

type CompleteDeliveryResponse struct {
	Claim  *ClaimResponse `json:"claim"`
	Impact ImpactResponse `json:"impact"`
}

// FromClaimResult exposes the pickup code only to parties the usecase
// already scoped it to; the result carries it solely after approval.
func FromClaimResult(r *commands.ClaimResult) *ClaimResponse {
	return &ClaimResponse{
		ID:           r.ID,
		ListingID:    r.ListingID,
		ReceiverID:   r.ReceiverID,
		RequestedQty: r.RequestedQty,
		ApprovedQty:  r.ApprovedQty,
		Status:       r.Status.String(),
		PickupCode:   r.PickupCode,
		CancelReason: r.CancelReason,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromCompleteDelivery(r *commands.CompleteDeliveryResult) *CompleteDeliveryResponse {
	return &CompleteDeliveryResponse{
		Claim: FromClaimResult(&r.Claim),
		Impact: ImpactResponse{
			CO2Kg:        r.Impact.CO2Kg,
			WaterLiters:  r.Impact.WaterLiters,
			PeopleServed: r.Impact.PeopleServed,
		},
	}
}

func FromClaimView(v *queries.ClaimView) *ClaimListResponse {
	return &ClaimListResponse{
		ID:           v.ID,
		ListingID:    v.ListingID,
		ListingTitle: v.ListingTitle,
		Unit:         v.Unit,
		ReceiverID:   v.ReceiverID,
		RequestedQty: v.RequestedQty,
		ApprovedQty:  v.ApprovedQty,
		Status:       v.Status,
		CancelReason: v.CancelReason,
		Note:         v.Note,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
