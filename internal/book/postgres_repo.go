package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, cover_image_url, page_count, publisher, synopsis`

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

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.CoverImageURL, &b.PageCount, &b.Publisher, &b.Synopsis)
	return b, err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1 LIMIT 1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) GetManyByID(ctx context.Context, ids []string) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = ANY($1)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]Book, len(ids))
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		byID[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (r *PostgresRepo) Search(ctx context.Context, q string, limit int) ([]Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE $1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'
	ORDER BY title ASC
	LIMIT $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Upsert inserts b, or refreshes the catalog fields of the row with the same id.
// An empty ID lets the database assign one.
func (r *PostgresRepo) Upsert(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, title, author, cover_image_url, page_count, publisher, synopsis)
	VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		author = EXCLUDED.author,
		cover_image_url = EXCLUDED.cover_image_url,
		page_count = EXCLUDED.page_count,
		publisher = EXCLUDED.publisher,
		synopsis = EXCLUDED.synopsis,
		updated_at = NOW()
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		b.ID, b.Title, b.Author, b.CoverImageURL, b.PageCount, b.Publisher, b.Synopsis,
	).Scan(&b.ID)
}
