package repository

import (
	"context"

	"foodbridge/internal/domain/impact"
	"foodbridge/internal/infra"
	"foodbridge/internal/infra/db"

	"github.com/google/uuid"
)

// Upsert keeps the running totals additive; squirrel has no ON CONFLICT
// support so the statement is written out.
const accumulateImpactSQL = `
INSERT INTO provider_impact (provider_id, co2_kg, water_liters, people_served, deliveries, updated_at)
VALUES ($1, $2, $3, $4, 1, now())
ON CONFLICT (provider_id) DO UPDATE SET
	co2_kg        = provider_impact.co2_kg + EXCLUDED.co2_kg,
	water_liters  = provider_impact.water_liters + EXCLUDED.water_liters,
	people_served = provider_impact.people_served + EXCLUDED.people_served,
	deliveries    = provider_impact.deliveries + 1,
	updated_at    = now()
`

type ProviderImpactRepository struct {
	db db.DBTX
}

func NewProviderImpactRepository(dbtx db.DBTX) *ProviderImpactRepository {
	return &ProviderImpactRepository{db: dbtx}
}

func (r *ProviderImpactRepository) Accumulate(ctx context.Context, providerID uuid.UUID, est impact.Estimate) error {
	_, err := r.db.Exec(ctx, accumulateImpactSQL, providerID, est.CO2Kg, est.WaterLiters, est.PeopleServed)
	if err != nil {
		return infra.WrapRepoErr("failed to accumulate provider impact", err)
	}
	return nil
}
