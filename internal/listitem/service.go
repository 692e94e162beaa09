package listitem

import (
	"context"
	"errors"
	"fmt"

	"bookshelf/internal/book"
)

type Service struct {
	repo  Repository
	books BookFinder
}

func NewService(repo Repository, books BookFinder) *Service {
	return &Service{repo: repo, books: books}
}

func (s *Service) GetByID(ctx context.Context, id string) (ListItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Compose joins item with its book.
func (s *Service) Compose(ctx context.Context, item ListItem) (View, error) {
	b, err := s.books.GetByID(ctx, item.BookID)
	if errors.Is(err, book.ErrNotFound) {
		return View{ListItem: item}, nil
	}
	if err != nil {
		return View{}, fmt.Errorf("load book %s: %w", item.BookID, err)
	}
	return View{ListItem: item, Book: &b}, nil
}

// ListForOwner returns the owner's items in query order, each joined with its book.
// Books are fetched with one lookup regardless of the number of items.
func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]View, error) {
	items, err := s.repo.Query(ctx, Filter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.BookID]; ok {
			continue
		}
		seen[item.BookID] = struct{}{}
		ids = append(ids, item.BookID)
	}

	var books []book.Book
	if len(ids) > 0 {
		books, err = s.books.GetManyByID(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load books: %w", err)
		}
	}
	byID := make(map[string]*book.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	views := make([]View, 0, len(items))
	for _, item := range items {
		views = append(views, View{ListItem: item, Book: byID[item.BookID]})
	}
	return views, nil
}

// Create adds a fresh, unrated item for ownerID and bookID.
func (s *Service) Create(ctx context.Context, ownerID, bookID string) (ListItem, error) {
	existing, err := s.repo.Query(ctx, Filter{OwnerID: ownerID, BookID: bookID})
	if err != nil {
		return ListItem{}, err
	}
	if len(existing) > 0 {
		return ListItem{}, ErrDuplicate
	}

	item := &ListItem{
		OwnerID: ownerID,
		BookID:  bookID,
		Rating:  Unrated,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return ListItem{}, err
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, item ListItem, patch Patch) (ListItem, error) {
	if patch.IsEmpty() {
		return item, nil
	}
	return s.repo.Update(ctx, item.ID, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
