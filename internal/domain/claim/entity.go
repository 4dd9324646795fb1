package claim

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity     = errors.New("requested quantity must be positive")
	ErrQuantityExceedsAsk  = errors.New("approved quantity exceeds requested quantity")
	ErrNotPending          = errors.New("claim is not pending")
	ErrNotApproved         = errors.New("claim is not approved")
	ErrNotConfirmed        = errors.New("claim is not confirmed")
	ErrNotCancelable       = errors.New("claim cannot be canceled in its current status")
	ErrPickupCodeMismatch  = errors.New("pickup code does not match")
	ErrMissingCancelReason = errors.New("cancel reason is required")
)

type Claim struct {
	id           uuid.UUID
	listingID    uuid.UUID
	receiverID   uuid.UUID
	requestedQty float64
	approvedQty  float64
	status       Status
	pickupCode   string
	cancelReason string
	note         Note
	createdAt    time.Time
	updatedAt    time.Time
}

func NewClaim(listingID, receiverID uuid.UUID, requestedQty float64, note Note, now time.Time) (*Claim, error) {
	if requestedQty <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Claim{
		id:           uuid.New(),
		listingID:    listingID,
		receiverID:   receiverID,
		requestedQty: requestedQty,
		status:       StatusPending,
		note:         note,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructClaim(
	id, listingID, receiverID uuid.UUID,
	requestedQty, approvedQty float64,
	status Status,
	pickupCode, cancelReason string,
	note Note,
	createdAt, updatedAt time.Time,
) *Claim {
	return &Claim{
		id:           id,
		listingID:    listingID,
		receiverID:   receiverID,
		requestedQty: requestedQty,
		approvedQty:  approvedQty,
		status:       status,
		pickupCode:   pickupCode,
		cancelReason: cancelReason,
		note:         note,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Approve grants quantity to a pending claim and arms the pickup code.
// Capacity against the listing's remaining quantity is the caller's check;
// the entity only enforces its own transition rules.
func (c *Claim) Approve(approvedQty float64, pickupCode string, now time.Time) error {
	if c.status != StatusPending {
		return ErrNotPending
	}
	if approvedQty <= 0 {
		return ErrInvalidQuantity
	}
	if approvedQty > c.requestedQty {
		return ErrQuantityExceedsAsk
	}
	c.approvedQty = approvedQty
	c.pickupCode = pickupCode
	c.status = StatusApproved
	c.updatedAt = now
	return nil
}

func (c *Claim) Reject(reason string, now time.Time) error {
	if c.status != StatusPending {
		return ErrNotPending
	}
	c.status = StatusRejected
	c.cancelReason = reason
	c.updatedAt = now
	return nil
}

// ConfirmPickup verifies the single-use pickup code. A mismatch leaves the
// claim APPROVED so the receiver can retry with the right code.
func (c *Claim) ConfirmPickup(presentedCode string, now time.Time) error {
	if c.status != StatusApproved {
		return ErrNotApproved
	}
	if c.pickupCode == "" || presentedCode != c.pickupCode {
		return ErrPickupCodeMismatch
	}
	c.pickupCode = ""
	c.status = StatusConfirmed
	c.updatedAt = now
	return nil
}

func (c *Claim) Complete(now time.Time) error {
	if c.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	c.status = StatusCompleted
	c.updatedAt = now
	return nil
}

func (c *Claim) Cancel(reason string, now time.Time) error {
	if c.status != StatusApproved && c.status != StatusConfirmed {
		return ErrNotCancelable
	}
	if reason == "" {
		return ErrMissingCancelReason
	}
	c.status = StatusCanceled
	c.cancelReason = reason
	c.pickupCode = ""
	c.updatedAt = now
	return nil
}

func (c *Claim) ID() uuid.UUID          { return c.id }
func (c *Claim) ListingID() uuid.UUID   { return c.listingID }
func (c *Claim) ReceiverID() uuid.UUID  { return c.receiverID }
func (c *Claim) RequestedQty() float64  { return c.requestedQty }
func (c *Claim) ApprovedQty() float64   { return c.approvedQty }
func (c *Claim) Status() Status         { return c.status }
func (c *Claim) PickupCode() string     { return c.pickupCode }
func (c *Claim) CancelReason() string   { return c.cancelReason }
func (c *Claim) Note() Note             { return c.note }
func (c *Claim) CreatedAt() time.Time   { return c.createdAt }
func (c *Claim) UpdatedAt() time.Time   { return c.updatedAt }
