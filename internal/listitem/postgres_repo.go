package listitem

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/book"
	"bookshelf/internal/platform/postgres"
)

const (
	listItemColumns = `id, owner_id, book_id, rating, notes, start_date, finish_date, created_at, updated_at`

	ownerBookConstraint = "list_items_owner_book_key"
	bookFKConstraint    = "list_items_book_id_fkey"
)

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

func scanListItem(row pgx.Row) (ListItem, error) {
	var item ListItem
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.BookID, &item.Rating, &item.Notes,
		&item.StartDate, &item.FinishDate, &item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (ListItem, error) {
	const query = `SELECT ` + listItemColumns + ` FROM list_items WHERE id = $1 LIMIT 1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	item, err := scanListItem(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ListItem{}, ErrNotFound
		}
		return ListItem{}, err
	}
	return item, nil
}

func (r *PostgresRepo) Query(ctx context.Context, filter Filter) ([]ListItem, error) {
	const query = `
	SELECT ` + listItemColumns + `
	FROM list_items
	WHERE ($1 = '' OR owner_id = $1) AND ($2 = '' OR book_id = $2)
	ORDER BY created_at ASC, id ASC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, filter.OwnerID, filter.BookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, item *ListItem) error {
	const query = `
	INSERT INTO list_items (owner_id, book_id, rating, notes, start_date, finish_date)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		item.OwnerID, item.BookID, item.Rating, item.Notes, item.StartDate, item.FinishDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	switch {
	case postgres.IsUniqueViolation(err, ownerBookConstraint):
		return ErrDuplicate
	case postgres.IsForeignKeyViolation(err, bookFKConstraint):
		return fmt.Errorf("create list item for book %s: %w", item.BookID, book.ErrNotFound)
	}
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, id string, patch Patch) (ListItem, error) {
	fields := []string{}
	args := []any{}
	argn := 1

	set := func(column string, value any) {
		fields = append(fields, column+" = $"+strconv.Itoa(argn))
		args = append(args, value)
		argn++
	}
	if patch.Rating != nil {
		set("rating", *patch.Rating)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	if patch.StartDate.Set {
		set("start_date", patch.StartDate.Value)
	}
	if patch.FinishDate.Set {
		set("finish_date", patch.FinishDate.Value)
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	fields = append(fields, "updated_at = now()")
	args = append(args, id)

	query := "UPDATE list_items SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argn) + " RETURNING " + listItemColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	item, err := scanListItem(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ListItem{}, ErrNotFound
		}
		return ListItem{}, err
	}
	return item, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM list_items WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
