package user

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=user

type Repository interface {
	// Create assigns the ID. A taken username yields ErrAlreadyExists.
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
