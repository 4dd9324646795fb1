package response

import (
	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProviderStatsResponse struct {
	TotalListings   int64                `json:"totalListings"`
	ActiveListings  int64                `json:"activeListings"`
	TotalClaimed    float64              `json:"totalClaimed"`
	TotalWasted     float64              `json:"totalWasted"`
	WasteRate       float64              `json:"wasteRate"`
	TodayExpired    int64                `json:"todayExpired"`
	ExpiredListings int64                `json:"expiredListings"`
	Impact          ImpactTotalsResponse `json:"impact"`
}

type ImpactTotalsResponse struct {
	CO2Kg        float64 `json:"co2Kg"`
	WaterLiters  float64 `json:"waterLiters"`
	PeopleServed int64   `json:"peopleServed"`
	Deliveries   int64   `json:"deliveries"`
}

type SweepResponse struct {
	Processed   int                  `json:"processed"`
	Failed      int                  `json:"failed"`
	TotalWasted float64              `json:"totalWasted"`
	Listings    []SweepListingResult `json:"listings"`
}

type SweepListingResult struct {
	ListingID      uuid.UUID `json:"listingId"`
	WastedQuantity float64   `json:"wastedQuantity"`
	RejectedClaims int       `json:"rejectedClaims"`
}

func FromProviderStats(s *queries.ProviderStats) *ProviderStatsResponse {
	return &ProviderStatsResponse{
		TotalListings:   s.TotalListings,
		ActiveListings:  s.ActiveListings,
		TotalClaimed:    s.TotalClaimed,
		TotalWasted:     s.TotalWasted,
		WasteRate:       s.WasteRate,
		TodayExpired:    s.TodayExpired,
		ExpiredListings: s.ExpiredListings,
		Impact: ImpactTotalsResponse{
			CO2Kg:        s.Impact.CO2Kg,
			WaterLiters:  s.Impact.WaterLiters,
			PeopleServed: s.Impact.PeopleServed,
			Deliveries:   s.Impact.Deliveries,
		},
	}
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	listings := make([]SweepListingResult, len(r.Results))
	for i, one := range r.Results {
		listings[i] = SweepListingResult{
			ListingID:      one.ListingID,
			WastedQuantity: one.WastedQuantity,
			RejectedClaims: one.RejectedClaims,
		}
	}
	return &SweepResponse{
		Processed:   r.Processed,
		Failed:      r.Failed,
		TotalWasted: r.TotalWasted,
		Listings:    listings,
	}
}
