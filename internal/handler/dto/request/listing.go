package request

import (
	"strings"
	"time"
)

type CreateListingRequest struct {
	Title          string    `json:"title" binding:"required,max=200"`
	Description    string    `json:"description" binding:"max=2000"`
	Quantity       float64   `json:"quantity" binding:"required,gt=0"`
	Unit           string    `json:"unit" binding:"required,max=20"`
	AvailableUntil time.Time `json:"available_until" binding:"required"`
	SafeUntil      time.Time `json:"safe_until" binding:"required"`
}

func (r CreateListingRequest) TrimmedTitle() string {
	return strings.TrimSpace(r.Title)
}
