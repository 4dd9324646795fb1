package readstore

import (
	"context"
	"time"

	"foodbridge/internal/infra"
	"foodbridge/internal/infra/db"
	"foodbridge/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
)

var listingViewColumns = []string{
	"id", "provider_id", "title", "description",
	"total_quantity", "unit", "claimed_quantity", "wasted_quantity",
	"available_until", "safe_until", "status", "created_at", "updated_at",
}

var openListingStatuses = []string{"available", "partially_claimed"}

type listingViewRow struct {
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

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

func (r *ListingReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	query, args, err := psql().Select(listingViewColumns...).
		From("listings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build listing view query", err)
	}

	var row listingViewRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing view", err)
	}
	return rowToListingView(row), nil
}

func (r *ListingReadStore) ListOpen(ctx context.Context, now time.Time, limit int32) ([]*queries.ListingView, error) {
	query, args, err := psql().Select(listingViewColumns...).
		From("listings").
		Where(sq.Eq{"status": openListingStatuses}).
		Where(sq.Gt{"available_until": now}).
		Where(sq.Gt{"safe_until": now}).
		OrderBy("safe_until").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build open listings query", err)
	}

	return r.selectViews(ctx, query, args)
}

func (r *ListingReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*queries.ListingView, error) {
	query, args, err := psql().Select(listingViewColumns...).
		From("listings").
		Where(sq.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build provider listings query", err)
	}

	return r.selectViews(ctx, query, args)
}

// ExpiredCandidateIDs feeds the TTL sweep: non-terminal listings whose
// pickup window or safety deadline has lapsed. Unlocked scan; the sweep
// re-checks each candidate under its row lock.
func (r *ListingReadStore) ExpiredCandidateIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	query, args, err := psql().Select("id").
		From("listings").
		Where(sq.NotEq{"status": []string{"completed", "expired", "canceled"}}).
		Where(sq.Or{sq.Lt{"available_until": now}, sq.Lt{"safe_until": now}}).
		OrderBy("safe_until").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build expired candidates query", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, r.db, &ids, query, args...); err != nil {
		return nil, infra.WrapRepoErr("failed to scan expired candidates", err)
	}
	return ids, nil
}

func (r *ListingReadStore) selectViews(ctx context.Context, query string, args []any) ([]*queries.ListingView, error) {
	var rows []listingViewRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, infra.WrapRepoErr("failed to select listing views", err)
	}
	views := make([]*queries.ListingView, len(rows))
	for i, row := range rows {
		views[i] = rowToListingView(row)
	}
	return views, nil
}

func rowToListingView(row listingViewRow) *queries.ListingView {
	remaining := row.TotalQuantity - row.ClaimedQuantity
	if remaining < 0 {
		remaining = 0
	}
	return &queries.ListingView{
		ID:              row.ID,
		ProviderID:      row.ProviderID,
		Title:           row.Title,
		Description:     row.Description,
		TotalQuantity:   row.TotalQuantity,
		Unit:            row.Unit,
		ClaimedQuantity: row.ClaimedQuantity,
		WastedQuantity:  row.WastedQuantity,
		RemainingQty:    remaining,
		AvailableUntil:  row.AvailableUntil,
		SafeUntil:       row.SafeUntil,
		Status:          row.Status,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
