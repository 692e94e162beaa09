package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (Book, error)
	// GetManyByID returns the books for ids in the order of ids. Unknown ids are skipped.
	GetManyByID(ctx context.Context, ids []string) ([]Book, error)
	Search(ctx context.Context, query string, limit int) ([]Book, error)
	Upsert(ctx context.Context, b *Book) error
}
