package claim

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can leave this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// HoldsQuantity reports whether the claim's approved quantity counts
// against the listing's capacity.
func (s Status) HoldsQuantity() bool {
	switch s {
	case StatusApproved, StatusConfirmed, StatusCompleted:
		return true
	default:
		return false
	}
}
