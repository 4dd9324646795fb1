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

var claimViewColumns = []string{
	"c.id", "c.listing_id", "l.title AS listing_title", "l.unit",
	"c.receiver_id", "c.requested_quantity", "c.approved_quantity",
	"c.status", "c.cancel_reason", "c.note", "c.created_at", "c.updated_at",
}

type claimViewRow struct {
	ID           uuid.UUID `db:"id"`
	ListingID    uuid.UUID `db:"listing_id"`
	ListingTitle string    `db:"listing_title"`
	Unit         string    `db:"unit"`
	ReceiverID   uuid.UUID `db:"receiver_id"`
	RequestedQty float64   `db:"requested_quantity"`
	ApprovedQty  float64   `db:"approved_quantity"`
	Status       string    `db:"status"`
	CancelReason *string   `db:"cancel_reason"`
	Note         *string   `db:"note"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type ClaimReadStore struct {
	db db.DBTX
}

func NewClaimReadStore(dbtx db.DBTX) *ClaimReadStore {
	return &ClaimReadStore{db: dbtx}
}

func (r *ClaimReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.ClaimView, error) {
	query, args, err := claimViewQuery().
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build claim view query", err)
	}

	var row claimViewRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, infra.WrapRepoErr("claim not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find claim view", err)
	}
	view := rowToClaimView(row)
	return &view, nil
}

func (r *ClaimReadStore) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*queries.ClaimView, error) {
	query, args, err := claimViewQuery().
		Where(sq.Eq{"c.receiver_id": receiverID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build receiver claims query", err)
	}
	return r.selectViews(ctx, query, args)
}

func (r *ClaimReadStore) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*queries.ClaimView, error) {
	query, args, err := claimViewQuery().
		Where(sq.Eq{"c.listing_id": listingID}).
		OrderBy("c.created_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build listing claims query", err)
	}
	return r.selectViews(ctx, query, args)
}

func (r *ClaimReadStore) selectViews(ctx context.Context, query string, args []any) ([]*queries.ClaimView, error) {
	var rows []claimViewRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, infra.WrapRepoErr("failed to select claim views", err)
	}
	views := make([]*queries.ClaimView, len(rows))
	for i, row := range rows {
		view := rowToClaimView(row)
		views[i] = &view
	}
	return views, nil
}

func claimViewQuery() sq.SelectBuilder {
	return psql().Select(claimViewColumns...).
		From("claims c").
		Join("listings l ON l.id = c.listing_id")
}

func rowToClaimView(row claimViewRow) queries.ClaimView {
	return queries.ClaimView{
		ID:           row.ID,
		ListingID:    row.ListingID,
		ListingTitle: row.ListingTitle,
		Unit:         row.Unit,
		ReceiverID:   row.ReceiverID,
		RequestedQty: row.RequestedQty,
		ApprovedQty:  row.ApprovedQty,
		Status:       row.Status,
		CancelReason: row.CancelReason,
		Note:         row.Note,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
