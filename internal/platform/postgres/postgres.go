package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Open creates a pool for dsn and verifies it with a ping.
func Open(ctx context.Context, dsn string, pingTimeout time.Duration) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}
	return pool, nil
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err violates a foreign key,
// optionally restricted to the named constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// RedactDSN hides the credentials part of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
