package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleProvider Role = "provider"
	RoleReceiver Role = "receiver"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleProvider, RoleReceiver, RoleAdmin:
		return true
	default:
		return false
	}
}
