package repository

import (
	"context"
	"time"

	"foodbridge/internal/domain/listing"
	"foodbridge/internal/infra"
	"foodbridge/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
)

const listingTable = "listings"

var listingColumns = []string{
	"id", "provider_id", "title", "description",
	"total_quantity", "unit", "claimed_quantity", "wasted_quantity",
	"available_until", "safe_until", "status", "created_at", "updated_at",
}

type listingRow struct {
	ID              uuid.UUID `db:"id"`
	ProviderID      uuid.UUID `db:"provider_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	TotalQuantity   float64   `db:"total_quantity"`
	Unit            string    `db:"unit"`
	ClaimedQuantity float64   `db:"claimed_quantity"`
	WastedQuantity  float64   `db:"wasted_quantity"`
	AvailableUntil  time.Time `db:"available_until"`
	SafeUntil       time.Time `db:"safe_until"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	query, args, err := psql().Insert(listingTable).
		Columns(listingColumns...).
		Values(
			l.ID(), l.ProviderID(), l.Title(), l.Description(),
			l.Quantity().Amount(), l.Quantity().Unit(), l.ClaimedQty(), l.WastedQty(),
			l.AvailableUntil(), l.SafeUntil(), l.Status().String(), l.CreatedAt(), l.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build listing insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return classify("failed to create listing", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.findByID(ctx, id, false)
}

func (r *ListingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.findByID(ctx, id, true)
}

func (r *ListingRepository) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*listing.Listing, error) {
	builder := psql().Select(listingColumns...).
		From(listingTable).
		Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build listing select", err)
	}

	var row listingRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, classify("failed to find listing", err)
	}
	return rowToListing(row), nil
}

func (r *ListingRepository) UpdateReconciliation(ctx context.Context, l *listing.Listing) error {
	query, args, err := psql().Update(listingTable).
		Set("claimed_quantity", l.ClaimedQty()).
		Set("wasted_quantity", l.WastedQty()).
		Set("status", l.Status().String()).
		Set("updated_at", l.UpdatedAt()).
		Where(sq.Eq{"id": l.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build listing update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return classify("failed to update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}

func rowToListing(row listingRow) *listing.Listing {
	qty, _ := listing.NewQuantity(row.TotalQuantity, row.Unit)
	return listing.ReconstructListing(
		row.ID, row.ProviderID,
		row.Title, row.Description,
		qty,
		row.ClaimedQuantity, row.WastedQuantity,
		row.AvailableUntil, row.SafeUntil,
		listing.Status(row.Status),
		row.CreatedAt, row.UpdatedAt,
	)
}
