package usecase

import (
	"foodbridge/internal/domain/user"
	"foodbridge/internal/pkg/jwt"

	"github.com/google/uuid"
)

type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	svc *jwt.Service
}

func NewJWTTokenValidator(svc *jwt.Service) TokenValidator {
	return &jwtTokenValidator{svc: svc}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, role, nil
}
