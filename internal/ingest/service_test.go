package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/book"
	"bookshelf/internal/platform/openlibrary"
)

type mockOLClient struct {
	mock.Mock
}

func (m *mockOLClient) SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error) {
	args := m.Called(ctx, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.SearchResponse), args.Error(1)
}

func (m *mockOLClient) GetBooksByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.BookDetails, error) {
	args := m.Called(ctx, isbns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]openlibrary.BookDetails), args.Error(1)
}

type mockBookStore struct {
	mock.Mock
}

func (m *mockBookStore) Upsert(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("imports explicit ISBNs", func(t *testing.T) {
		mOL := new(mockOLClient)
		mBooks := new(mockBookStore)
		s := NewService(mOL, mBooks, Config{ISBNs: []string{"978-0-7653-2635-5", "9780765326355"}})

		mOL.On("GetBooksByISBN", ctx, []string{"9780765326355"}).Return(map[string]openlibrary.BookDetails{
			"ISBN:9780765326355": {
				Title:         "The Way of Kings",
				Subtitle:      "Book One",
				NumberOfPages: 1007,
				Authors:       []openlibrary.AuthorRef{{Name: "Brandon Sanderson"}},
				Publishers:    []openlibrary.Publisher{{Name: "Tor"}, {Name: "Gollancz"}},
			},
		}, nil)
		mBooks.On("Upsert", ctx, mock.MatchedBy(func(b *book.Book) bool {
			return b.ID == "9780765326355" &&
				b.Title == "The Way of Kings: Book One" &&
				b.Author == "Brandon Sanderson" &&
				b.Publisher == "Tor, Gollancz" &&
				b.PageCount == 1007
		})).Return(nil).Once()

		res, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, Result{BooksFetched: 1, BooksUpserted: 1}, res)
		mOL.AssertExpectations(t)
		mBooks.AssertExpectations(t)
	})

	t.Run("searches subjects until the target is met", func(t *testing.T) {
		mOL := new(mockOLClient)
		mBooks := new(mockBookStore)
		s := NewService(mOL, mBooks, Config{Subjects: []string{"fantasy", "history"}, BooksMax: 2, BatchSize: 5})

		mOL.On("SearchBooks", ctx, "fantasy", 4).Return(&openlibrary.SearchResponse{Docs: []openlibrary.SearchDoc{
			{ISBN: []string{"0765326353", "9780765326355"}},
			{ISBN: nil},
			{ISBN: []string{"9780441172719"}},
			{ISBN: []string{"9780000000001"}},
		}}, nil)
		mOL.On("GetBooksByISBN", ctx, []string{"9780765326355", "9780441172719"}).Return(map[string]openlibrary.BookDetails{
			"ISBN:9780765326355": {Title: "The Way of Kings"},
			"ISBN:9780441172719": {Title: "Dune"},
		}, nil)
		mBooks.On("Upsert", ctx, mock.Anything).Return(nil).Twice()

		res, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, res.BooksUpserted)
		mOL.AssertNotCalled(t, "SearchBooks", ctx, "history", mock.Anything)
		mOL.AssertExpectations(t)
		mBooks.AssertExpectations(t)
	})

	t.Run("a failed batch is skipped", func(t *testing.T) {
		mOL := new(mockOLClient)
		mBooks := new(mockBookStore)
		s := NewService(mOL, mBooks, Config{ISBNs: []string{"1", "2", "3"}, BatchSize: 2})

		mOL.On("GetBooksByISBN", ctx, []string{"1", "2"}).Return(nil, errors.New("boom"))
		mOL.On("GetBooksByISBN", ctx, []string{"3"}).Return(map[string]openlibrary.BookDetails{
			"ISBN:3": {Title: "Three"},
		}, nil)
		mBooks.On("Upsert", ctx, mock.Anything).Return(nil).Once()

		res, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, Result{BooksFetched: 1, BooksUpserted: 1}, res)
	})

	t.Run("search failure stops the run", func(t *testing.T) {
		mOL := new(mockOLClient)
		mBooks := new(mockBookStore)
		s := NewService(mOL, mBooks, Config{Subjects: []string{"fantasy"}, BooksMax: 1})

		mOL.On("SearchBooks", ctx, "fantasy", 2).Return(nil, errors.New("unavailable"))

		_, err := s.Run(ctx)

		assert.EqualError(t, err, "search failed for fantasy: unavailable")
	})
}
