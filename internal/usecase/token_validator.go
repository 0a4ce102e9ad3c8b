package usecase

import (
	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal is the authenticated caller carried through a request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     user.Role
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (*Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (*Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
