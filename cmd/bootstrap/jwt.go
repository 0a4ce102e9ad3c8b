package bootstrap

import (
	"fmt"
	"time"

	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/pkg/jwt"
	"qr-seat-reservation/internal/pkg/password"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		password.NewHasher,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION: %w", err)
	}
	return jwt.NewService(cfg.JWT.Secret, duration), nil
}
