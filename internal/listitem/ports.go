package listitem

import (
	"context"

	"bookshelf/internal/book"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=listitem

// Repository defines the contract for list item storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (ListItem, error)
	Query(ctx context.Context, filter Filter) ([]ListItem, error)
	// Create assigns the ID. A second item for the same owner and book yields ErrDuplicate.
	Create(ctx context.Context, item *ListItem) error
	Update(ctx context.Context, id string, patch Patch) (ListItem, error)
	Delete(ctx context.Context, id string) error
}

// BookFinder resolves the books list items point at.
type BookFinder interface {
	GetByID(ctx context.Context, id string) (book.Book, error)
	GetManyByID(ctx context.Context, ids []string) ([]book.Book, error)
}
