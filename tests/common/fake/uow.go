//go:build unit

package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/feedback"
	"foodbridge/internal/domain/impact"
	"foodbridge/internal/domain/listing"
	"foodbridge/internal/infra"
	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNotFound = errs.New("not found")

// ImpactTotals mirrors the additive provider_impact upsert.
type ImpactTotals struct {
	CO2Kg        float64
	WaterLiters  float64
	PeopleServed int
	Deliveries   int
}

// UoW is an in-memory UnitOfWork. One mutex guards every Within call,
// which stands in for the per-listing row lock: concurrent transactions
// serialize exactly like FOR UPDATE would on a single listing. On error
// the whole snapshot rolls back.
type UoW struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*listing.Listing
	claims   map[uuid.UUID]*claim.Claim
	feedback []*feedback.Feedback
	impact   map[uuid.UUID]ImpactTotals

	// FailUpdateListing forces UpdateReconciliation to fail for the given
	// listing, for failure-isolation tests.
	FailUpdateListing map[uuid.UUID]error
}

func NewUoW() *UoW {
	return &UoW{
		listings:          make(map[uuid.UUID]*listing.Listing),
		claims:            make(map[uuid.UUID]*claim.Claim),
		impact:            make(map[uuid.UUID]ImpactTotals),
		FailUpdateListing: make(map[uuid.UUID]error),
	}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	snapListings := make(map[uuid.UUID]*listing.Listing, len(u.listings))
	for id, l := range u.listings {
		snapListings[id] = cloneListing(l)
	}
	snapClaims := make(map[uuid.UUID]*claim.Claim, len(u.claims))
	for id, c := range u.claims {
		snapClaims[id] = cloneClaim(c)
	}
	snapFeedback := len(u.feedback)
	snapImpact := make(map[uuid.UUID]ImpactTotals, len(u.impact))
	for id, t := range u.impact {
		snapImpact[id] = t
	}

	if err := fn(ctx, &fakeTx{u: u}); err != nil {
		u.listings = snapListings
		u.claims = snapClaims
		u.feedback = u.feedback[:snapFeedback]
		u.impact = snapImpact
		return err
	}
	return nil
}

// Seed helpers bypass the transaction machinery for test setup.

func (u *UoW) SeedListing(l *listing.Listing) {
	u.listings[l.ID()] = cloneListing(l)
}

func (u *UoW) SeedClaim(c *claim.Claim) {
	u.claims[c.ID()] = cloneClaim(c)
}

// State accessors for assertions.

func (u *UoW) Listing(id uuid.UUID) *listing.Listing {
	l, ok := u.listings[id]
	if !ok {
		return nil
	}
	return cloneListing(l)
}

func (u *UoW) Claim(id uuid.UUID) *claim.Claim {
	c, ok := u.claims[id]
	if !ok {
		return nil
	}
	return cloneClaim(c)
}

func (u *UoW) FeedbackCount() int {
	return len(u.feedback)
}

func (u *UoW) ImpactFor(providerID uuid.UUID) (ImpactTotals, bool) {
	t, ok := u.impact[providerID]
	return t, ok
}

// ExpiredCandidateIDs lets the fake double as the sweep's scanner.
func (u *UoW) ExpiredCandidateIDs(_ context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	var ids []uuid.UUID
	for id, l := range u.listings {
		if !l.Status().IsTerminal() && l.IsPastDeadline(now) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if int32(len(ids)) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeTx struct {
	u *UoW
}

func (t *fakeTx) Listings() shared.ListingRepository { return &fakeListingRepo{u: t.u} }

func (t *fakeTx) Claims() shared.ClaimRepository { return &fakeClaimRepo{u: t.u} }

func (t *fakeTx) Feedback() shared.FeedbackRepository { return &fakeFeedbackRepo{u: t.u} }

func (t *fakeTx) ProviderImpact() shared.ProviderImpactRepository { return &fakeImpactRepo{u: t.u} }

type fakeListingRepo struct {
	u *UoW
}

func (r *fakeListingRepo) Create(_ context.Context, l *listing.Listing) error {
	r.u.listings[l.ID()] = cloneListing(l)
	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, ok := r.u.listings[id]
	if !ok {
		return nil, infra.WrapRepoErr("listing not found", errNotFound, infra.KindNotFound)
	}
	return cloneListing(l), nil
}

func (r *fakeListingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeListingRepo) UpdateReconciliation(_ context.Context, l *listing.Listing) error {
	if err, ok := r.u.FailUpdateListing[l.ID()]; ok {
		return err
	}
	if _, ok := r.u.listings[l.ID()]; !ok {
		return infra.WrapRepoErr("listing not found", errNotFound, infra.KindNotFound)
	}
	r.u.listings[l.ID()] = cloneListing(l)
	return nil
}

type fakeClaimRepo struct {
	u *UoW
}

func (r *fakeClaimRepo) Create(_ context.Context, c *claim.Claim) error {
	r.u.claims[c.ID()] = cloneClaim(c)
	return nil
}

func (r *fakeClaimRepo) FindByID(_ context.Context, id uuid.UUID) (*claim.Claim, error) {
	c, ok := r.u.claims[id]
	if !ok {
		return nil, infra.WrapRepoErr("claim not found", errNotFound, infra.KindNotFound)
	}
	return cloneClaim(c), nil
}

func (r *fakeClaimRepo) FindByListingID(_ context.Context, listingID uuid.UUID) ([]*claim.Claim, error) {
	var out []*claim.Claim
	for _, c := range r.u.claims {
		if c.ListingID() == listingID {
			out = append(out, cloneClaim(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func (r *fakeClaimRepo) UpdateTransition(_ context.Context, c *claim.Claim) error {
	if _, ok := r.u.claims[c.ID()]; !ok {
		return infra.WrapRepoErr("claim not found", errNotFound, infra.KindNotFound)
	}
	r.u.claims[c.ID()] = cloneClaim(c)
	return nil
}

type fakeFeedbackRepo struct {
	u *UoW
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *feedback.Feedback) error {
	r.u.feedback = append(r.u.feedback, f)
	return nil
}

type fakeImpactRepo struct {
	u *UoW
}

func (r *fakeImpactRepo) Accumulate(_ context.Context, providerID uuid.UUID, est impact.Estimate) error {
	t := r.u.impact[providerID]
	t.CO2Kg += est.CO2Kg
	t.WaterLiters += est.WaterLiters
	t.PeopleServed += est.PeopleServed
	t.Deliveries++
	r.u.impact[providerID] = t
	return nil
}

func cloneListing(l *listing.Listing) *listing.Listing {
	return listing.ReconstructListing(
		l.ID(), l.ProviderID(), l.Title(), l.Description(), l.Quantity(),
		l.ClaimedQty(), l.WastedQty(),
		l.AvailableUntil(), l.SafeUntil(),
		l.Status(), l.CreatedAt(), l.UpdatedAt(),
	)
}

func cloneClaim(c *claim.Claim) *claim.Claim {
	return claim.ReconstructClaim(
		c.ID(), c.ListingID(), c.ReceiverID(),
		c.RequestedQty(), c.ApprovedQty(),
		c.Status(), c.PickupCode(), c.CancelReason(),
		c.Note(), c.CreatedAt(), c.UpdatedAt(),
	)
}
