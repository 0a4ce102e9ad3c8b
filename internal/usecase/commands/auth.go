package commands

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/pkg/jwt"
	"qr-seat-reservation/internal/pkg/password"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Username    string
	Role        user.Role
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Login(ctx context.Context, username, plainPassword string) (*LoginResult, error)
	// EnsureBootstrapUsers seeds the given accounts when no user exists yet.
	// Seeds without a password are skipped.
	EnsureBootstrapUsers(ctx context.Context, seeds []BootstrapUser) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	hasher     *password.Hasher
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, hasher *password.Hasher, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		hasher:     hasher,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, username, plainPassword string) (*LoginResult, error) {
	credentials, err := user.NewCredentials(username, plainPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	var authenticated *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := a.validateUser(ctx, tx, credentials)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateLastLogin(ctx, u.ID(), a.clock.Now()); err != nil {
			return shared.RepoErr(err, nil, "")
		}
		authenticated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := a.jwtService.GenerateToken(authenticated.ID(), authenticated.Username().Value(), authenticated.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	slog.Info("user logged in", "user_id", authenticated.ID(), "role", authenticated.Role())
	return &LoginResult{
		UserID:      authenticated.ID(),
		Username:    authenticated.Username().Value(),
		Role:        authenticated.Role(),
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, tx shared.Tx, credentials user.Credentials) (*user.User, error) {
	u, err := tx.Users().FindByUsername(ctx, credentials.Username())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	if err := a.hasher.Compare(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (a *authCommandsImpl) EnsureBootstrapUsers(ctx context.Context, seeds []BootstrapUser) error {
	var seeded []string
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		seeded = seeded[:0]
		n, err := tx.Users().Count(ctx)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		if n > 0 {
			return nil
		}

		for _, seed := range seeds {
			if seed.Password == "" {
				continue
			}
			u, err := a.newUser(seed)
			if err != nil {
				return errs.Wrapf(err, "bootstrap user %q", seed.Username)
			}
			if err := tx.Users().Create(ctx, u); err != nil {
				return shared.RepoErr(err, nil, "")
			}
			seeded = append(seeded, u.Username().Value())
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(seeded) > 0 {
		slog.Info("bootstrap users created", "usernames", seeded)
	}
	return nil
}

func (a *authCommandsImpl) newUser(seed BootstrapUser) (*user.User, error) {
	username, err := user.NewUsername(seed.Username)
	if err != nil {
		return nil, err
	}
	pw, err := user.NewPassword(seed.Password)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(seed.Role)
	if err != nil {
		return nil, err
	}
	hash, err := a.hasher.Hash(pw.Value())
	if err != nil {
		return nil, err
	}
	return user.NewUser(username, hash, role, a.clock.Now()), nil
}
