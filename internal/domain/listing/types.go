package listing

type Status string

const (
	StatusAvailable        Status = "available"
	StatusPartiallyClaimed Status = "partially_claimed"
	StatusFullyClaimed     Status = "fully_claimed"
	StatusCompleted        Status = "completed"
	StatusExpired          Status = "expired"
	StatusCanceled         Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPartiallyClaimed, StatusFullyClaimed,
		StatusCompleted, StatusExpired, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusExpired, StatusCanceled:
		return true
	default:
		return false
	}
}
