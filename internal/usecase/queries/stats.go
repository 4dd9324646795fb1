package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProviderStats is the reconciliation dashboard for one provider.
type ProviderStats struct {
	TotalListings  int64
	ActiveListings int64
	TotalClaimed   float64
	TotalWasted    float64
	// WasteRate is wasted over (claimed + wasted); zero when nothing has
	// moved yet.
	WasteRate       float64
	TodayExpired    int64
	ExpiredListings int64
	Impact          ImpactTotals
}

// ImpactTotals are the running sustainability figures accumulated at
// delivery completion.
type ImpactTotals struct {
	CO2Kg        float64
	WaterLiters  float64
	PeopleServed int64
	Deliveries   int64
}

type StatsQueries interface {
	GetProviderStats(ctx context.Context, providerID uuid.UUID, now time.Time) (*ProviderStats, error)
}
