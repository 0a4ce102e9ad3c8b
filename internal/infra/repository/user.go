package repository

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectUser = `
	SELECT id, username, password_hash, role, last_login, is_active, created_at, updated_at FROM users`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, last_login, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID(), u.Username().Value(), u.PasswordHash(), u.Role().String(),
		pgconv.TimestamptzFromPtr(u.LastLogin()), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
	if err != nil {
		return wrapErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username user.Username) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE username = $1`, username.Value())
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, wrapErr("failed to count users", err)
	}
	return n, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return wrapErr("failed to update user last login", err)
	}
	return expectOne(tag, "user not found")
}

func (r *UserRepository) findOne(ctx context.Context, sql string, args ...any) (*user.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr("failed to find user", err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if infra.IsKind(err, infra.KindDBFailure) {
			return nil, err
		}
		return nil, wrapErr("user not found", err)
	}
	return u, nil
}

func scanUser(row pgx.CollectableRow) (*user.User, error) {
	var (
		id                   uuid.UUID
		username, hash, role string
		lastLogin            pgtype.Timestamptz
		isActive             bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &username, &hash, &role, &lastLogin, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	name, err := user.NewUsername(username)
	if err != nil {
		return nil, infra.WrapRepoErr("stored username is invalid", err)
	}
	return user.ReconstructUser(id, name, hash, user.Role(role), pgconv.TimePtrFromPgtype(lastLogin), isActive, createdAt, updatedAt), nil
}
