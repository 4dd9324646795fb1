package listing

import (
	"errors"
	"strings"
	"time"

	"foodbridge/internal/domain/claim"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle        = errors.New("listing title is required")
	ErrDeadlineInPast    = errors.New("listing deadline must be in the future")
	ErrSafetyAfterWindow = errors.New("safety deadline cannot be after the pickup window end")
	ErrAlreadyTerminal   = errors.New("listing is already in a terminal status")
)

type Listing struct {
	id             uuid.UUID
	providerID     uuid.UUID
	title          string
	description    string
	quantity       Quantity
	claimedQty     float64
	wastedQty      float64
	availableUntil time.Time
	safeUntil      time.Time
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
}

func NewListing(providerID uuid.UUID, title, description string, qty Quantity, availableUntil, safeUntil time.Time, now time.Time) (*Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !availableUntil.After(now) || !safeUntil.After(now) {
		return nil, ErrDeadlineInPast
	}
	if safeUntil.After(availableUntil) {
		return nil, ErrSafetyAfterWindow
	}
	return &Listing{
		id:             uuid.New(),
		providerID:     providerID,
		title:          title,
		description:    strings.TrimSpace(description),
		quantity:       qty,
		availableUntil: availableUntil,
		safeUntil:      safeUntil,
		status:         StatusAvailable,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructListing(
	id, providerID uuid.UUID,
	title, description string,
	qty Quantity,
	claimedQty, wastedQty float64,
	availableUntil, safeUntil time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:             id,
		providerID:     providerID,
		title:          title,
		description:    description,
		quantity:       qty,
		claimedQty:     claimedQty,
		wastedQty:      wastedQty,
		availableUntil: availableUntil,
		safeUntil:      safeUntil,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// IsPastDeadline reports whether the pickup window or the food-safety
// deadline has lapsed.
func (l *Listing) IsPastDeadline(now time.Time) bool {
	return now.After(l.availableUntil) || now.After(l.safeUntil)
}

// IsOpenForClaims reports whether a new claim may be created.
func (l *Listing) IsOpenForClaims(now time.Time) bool {
	if l.status != StatusAvailable && l.status != StatusPartiallyClaimed {
		return false
	}
	return !l.IsPastDeadline(now)
}

// WithinPickupGrace reports whether an already-approved claim may still be
// picked up. Receivers who secured food before expiry keep a grace window
// past the safety deadline.
func (l *Listing) WithinPickupGrace(now time.Time, grace time.Duration) bool {
	return !now.After(l.safeUntil.Add(grace))
}

// Reconcile re-derives the quantity-based status from the ledger's
// remaining value. Terminal statuses are never overwritten; EXPIRED and
// CANCELED stay put, COMPLETED is owned by TryComplete.
func (l *Listing) Reconcile(remaining float64, now time.Time) {
	if l.status.IsTerminal() {
		return
	}
	l.claimedQty = l.quantity.Amount() - remaining
	switch {
	case remaining <= 0:
		l.status = StatusFullyClaimed
	case remaining < l.quantity.Amount():
		l.status = StatusPartiallyClaimed
	default:
		l.status = StatusAvailable
	}
	l.updatedAt = now
}

// TryComplete moves the listing to COMPLETED when every claim is terminal
// and at least one delivery completed. Returns whether it transitioned.
func (l *Listing) TryComplete(usages []ClaimUsage, now time.Time) bool {
	if l.status.IsTerminal() {
		return false
	}
	anyCompleted := false
	for _, u := range usages {
		if !u.Status.IsTerminal() {
			return false
		}
		if u.Status == claim.StatusCompleted {
			anyCompleted = true
		}
	}
	if !anyCompleted {
		return false
	}
	l.status = StatusCompleted
	l.updatedAt = now
	return true
}

// Expire closes the listing past its deadline, booking whatever the ledger
// says is still unclaimed as waste.
func (l *Listing) Expire(remaining float64, now time.Time) error {
	if l.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	l.claimedQty = l.quantity.Amount() - remaining
	l.wastedQty = remaining
	l.status = StatusExpired
	l.updatedAt = now
	return nil
}

// CancelByProvider is the explicit provider cancellation path.
func (l *Listing) CancelByProvider(now time.Time) error {
	if l.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	l.status = StatusCanceled
	l.updatedAt = now
	return nil
}

func (l *Listing) ID() uuid.UUID             { return l.id }
func (l *Listing) ProviderID() uuid.UUID     { return l.providerID }
func (l *Listing) Title() string             { return l.title }
func (l *Listing) Description() string       { return l.description }
func (l *Listing) Quantity() Quantity        { return l.quantity }
func (l *Listing) ClaimedQty() float64       { return l.claimedQty }
func (l *Listing) WastedQty() float64        { return l.wastedQty }
func (l *Listing) AvailableUntil() time.Time { return l.availableUntil }
func (l *Listing) SafeUntil() time.Time      { return l.safeUntil }
func (l *Listing) Status() Status            { return l.status }
func (l *Listing) CreatedAt() time.Time      { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time      { return l.updatedAt }
