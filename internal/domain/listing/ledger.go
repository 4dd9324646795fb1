package listing

import "foodbridge/internal/domain/claim"

// ClaimUsage is the slice of a claim the quantity ledger cares about.
type ClaimUsage struct {
	Status      claim.Status
	ApprovedQty float64
}

// Remaining computes the listing quantity still open for claiming:
// total minus everything held by APPROVED, CONFIRMED and COMPLETED claims.
// Pure function; callers must evaluate it inside the same transaction that
// mutates the listing, never against a stale read.
func Remaining(total float64, usages []ClaimUsage) float64 {
	remaining := total - Claimed(usages)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Claimed sums the approved quantity held by active claims.
func Claimed(usages []ClaimUsage) float64 {
	var claimed float64
	for _, u := range usages {
		if u.Status.HoldsQuantity() {
			claimed += u.ApprovedQty
		}
	}
	return claimed
}

// UsagesOf projects domain claims into ledger input.
func UsagesOf(claims []*claim.Claim) []ClaimUsage {
	usages := make([]ClaimUsage, len(claims))
	for i, c := range claims {
		usages[i] = ClaimUsage{Status: c.Status(), ApprovedQty: c.ApprovedQty()}
	}
	return usages
}
