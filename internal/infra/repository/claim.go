package repository

import (
	"context"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/infra"
	"foodbridge/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
)

const claimTable = "claims"

var claimColumns = []string{
	"id", "listing_id", "receiver_id",
	"requested_quantity", "approved_quantity",
	"status", "pickup_code", "cancel_reason", "note",
	"created_at", "updated_at",
}

type claimRow struct {
	ID                uuid.UUID `db:"id"`
	ListingID         uuid.UUID `db:"listing_id"`
	ReceiverID        uuid.UUID `db:"receiver_id"`
	RequestedQuantity float64   `db:"requested_quantity"`
	ApprovedQuantity  float64   `db:"approved_quantity"`
	Status            string    `db:"status"`
	PickupCode        string    `db:"pickup_code"`
	CancelReason      string    `db:"cancel_reason"`
	Note              string    `db:"note"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type ClaimRepository struct {
	db db.DBTX
}

func NewClaimRepository(dbtx db.DBTX) *ClaimRepository {
	return &ClaimRepository{db: dbtx}
}

func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	query, args, err := psql().Insert(claimTable).
		Columns(claimColumns...).
		Values(
			c.ID(), c.ListingID(), c.ReceiverID(),
			c.RequestedQty(), c.ApprovedQty(),
			c.Status().String(), c.PickupCode(), c.CancelReason(), c.Note().String(),
			c.CreatedAt(), c.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build claim insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return classify("failed to create claim", err)
	}
	return nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error) {
	query, args, err := psql().Select(claimColumns...).
		From(claimTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build claim select", err)
	}

	var row claimRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, infra.WrapRepoErr("claim not found", err, infra.KindNotFound)
		}
		return nil, classify("failed to find claim", err)
	}
	return rowToClaim(row), nil
}

func (r *ClaimRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*claim.Claim, error) {
	query, args, err := psql().Select(claimColumns...).
		From(claimTable).
		Where(sq.Eq{"listing_id": listingID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build claims select", err)
	}

	var rows []claimRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, classify("failed to find claims for listing", err)
	}

	claims := make([]*claim.Claim, len(rows))
	for i, row := range rows {
		claims[i] = rowToClaim(row)
	}
	return claims, nil
}

func (r *ClaimRepository) UpdateTransition(ctx context.Context, c *claim.Claim) error {
	query, args, err := psql().Update(claimTable).
		Set("approved_quantity", c.ApprovedQty()).
		Set("status", c.Status().String()).
		Set("pickup_code", c.PickupCode()).
		Set("cancel_reason", c.CancelReason()).
		Set("updated_at", c.UpdatedAt()).
		Where(sq.Eq{"id": c.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build claim update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return classify("failed to update claim", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("claim not found", nil, infra.KindNotFound)
	}
	return nil
}

func rowToClaim(row claimRow) *claim.Claim {
	return claim.ReconstructClaim(
		row.ID, row.ListingID, row.ReceiverID,
		row.RequestedQuantity, row.ApprovedQuantity,
		claim.Status(row.Status),
		row.PickupCode, row.CancelReason,
		claim.NewNote(row.Note),
		row.CreatedAt, row.UpdatedAt,
	)
}
