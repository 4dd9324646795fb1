package readstore

import (
	"context"
	"time"

	"foodbridge/internal/infra"
	"foodbridge/internal/infra/db"
	"foodbridge/internal/usecase/queries"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
)

const providerStatsSQL = `
SELECT
	COUNT(*)                                                                AS total_listings,
	COUNT(*) FILTER (WHERE status IN ('available', 'partially_claimed', 'fully_claimed')) AS active_listings,
	COALESCE(SUM(claimed_quantity), 0)                                      AS total_claimed,
	COALESCE(SUM(wasted_quantity), 0)                                       AS total_wasted,
	COUNT(*) FILTER (WHERE status = 'expired')                              AS expired_listings,
	COUNT(*) FILTER (WHERE status = 'expired' AND updated_at >= $2)         AS today_expired
FROM listings
WHERE provider_id = $1
`

const providerImpactSQL = `
SELECT co2_kg, water_liters, people_served, deliveries
FROM provider_impact
WHERE provider_id = $1
`

type providerStatsRow struct {
	TotalListings   int64   `db:"total_listings"`
	ActiveListings  int64   `db:"active_listings"`
	TotalClaimed    float64 `db:"total_claimed"`
	TotalWasted     float64 `db:"total_wasted"`
	ExpiredListings int64   `db:"expired_listings"`
	TodayExpired    int64   `db:"today_expired"`
}

type providerImpactRow struct {
	CO2Kg        float64 `db:"co2_kg"`
	WaterLiters  float64 `db:"water_liters"`
	PeopleServed int64   `db:"people_served"`
	Deliveries   int64   `db:"deliveries"`
}

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(dbtx db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: dbtx}
}

func (r *StatsReadStore) GetProviderStats(ctx context.Context, providerID uuid.UUID, now time.Time) (*queries.ProviderStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var row providerStatsRow
	if err := pgxscan.Get(ctx, r.db, &row, providerStatsSQL, providerID, startOfDay); err != nil {
		return nil, infra.WrapRepoErr("failed to load provider stats", err)
	}

	var imp providerImpactRow
	if err := pgxscan.Get(ctx, r.db, &imp, providerImpactSQL, providerID); err != nil {
		if !pgxscan.NotFound(err) {
			return nil, infra.WrapRepoErr("failed to load provider impact", err)
		}
		// No completed deliveries yet; totals stay zero.
	}

	stats := &queries.ProviderStats{
		TotalListings:   row.TotalListings,
		ActiveListings:  row.ActiveListings,
		TotalClaimed:    row.TotalClaimed,
		TotalWasted:     row.TotalWasted,
		TodayExpired:    row.TodayExpired,
		ExpiredListings: row.ExpiredListings,
		Impact: queries.ImpactTotals{
			CO2Kg:        imp.CO2Kg,
			WaterLiters:  imp.WaterLiters,
			PeopleServed: imp.PeopleServed,
			Deliveries:   imp.Deliveries,
		},
	}
	if moved := row.TotalClaimed + row.TotalWasted; moved > 0 {
		stats.WasteRate = row.TotalWasted / moved
	}
	return stats, nil
}
