package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/platform/postgres"
)

const usernameConstraint = "users_username_key"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (username, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, u.Username, u.PasswordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if postgres.IsUniqueViolation(err, usernameConstraint) {
		return ErrAlreadyExists
	}
	return err
}

func (r *PostgresRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
	SELECT id, username, password_hash, created_at, updated_at
	FROM users
	WHERE username = $1
	LIMIT 1
	`
	return r.getOne(ctx, query, username)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `
	SELECT id, username, password_hash, created_at, updated_at
	FROM users WHERE id = $1 LIMIT 1
	`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, arg string) (User, error) {
	var u User
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
