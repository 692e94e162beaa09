package book

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// GetManyByID resolves ids with a single repository call.
func (s *Service) GetManyByID(ctx context.Context, ids []string) ([]Book, error) {
	if len(ids) == 0 {
		return []Book{}, nil
	}
	return s.repo.GetManyByID(ctx, ids)
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]Book, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	books, err := s.repo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (s *Service) Upsert(ctx context.Context, b *Book) error {
	return s.repo.Upsert(ctx, b)
}
