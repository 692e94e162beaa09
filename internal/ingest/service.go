package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookshelf/internal/book"
	"bookshelf/internal/platform/openlibrary"
)

const defaultBatchSize = 20

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
	GetBooksByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.BookDetails, error)
}

// BookStore receives imported books.
type BookStore interface {
	Upsert(ctx context.Context, b *book.Book) error
}

type Service struct {
	olClient OpenLibraryClient
	books    BookStore
	cfg      Config
}

func NewService(olClient OpenLibraryClient, books BookStore, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Service{olClient: olClient, books: books, cfg: cfg}
}

// Run imports the configured ISBNs and subjects. Books are keyed by ISBN, so
// running it again refreshes rather than duplicates them.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var res Result
	processed := make(map[string]bool)

	pending := make([]string, 0, len(s.cfg.ISBNs))
	for _, isbn := range s.cfg.ISBNs {
		isbn = normalizeISBN(isbn)
		if isbn == "" || processed[isbn] {
			continue
		}
		processed[isbn] = true
		pending = append(pending, isbn)
	}
	if err := s.hydrate(ctx, &res, pending); err != nil {
		return res, err
	}

	for _, subject := range s.cfg.Subjects {
		needed := s.cfg.BooksMax - res.BooksUpserted
		if needed <= 0 {
			break
		}

		searchRes, err := s.olClient.SearchBooks(ctx, subject, needed*2)
		if err != nil {
			return res, fmt.Errorf("search failed for %s: %w", subject, err)
		}

		var isbns []string
		for _, doc := range searchRes.Docs {
			isbn := preferredISBN(doc.ISBN)
			if isbn == "" || processed[isbn] {
				continue
			}
			processed[isbn] = true
			isbns = append(isbns, isbn)
			if len(isbns) >= needed {
				break
			}
		}
		if err := s.hydrate(ctx, &res, isbns); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (s *Service) hydrate(ctx context.Context, res *Result, isbns []string) error {
	for start := 0; start < len(isbns); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(isbns))
		if err := s.hydrateBatch(ctx, res, isbns[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) hydrateBatch(ctx context.Context, res *Result, isbns []string) error {
	batch, err := s.olClient.GetBooksByISBN(ctx, isbns)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("Failed to hydrate batch: %v", err)
		return nil
	}
	res.BooksFetched += len(batch)

	// iterate isbns rather than the map so upserts happen in a stable order
	for _, isbn := range isbns {
		details, ok := batch["ISBN:"+isbn]
		if !ok {
			log.Printf("ingest: isbn=%s not found on Open Library", isbn)
			continue
		}
		b := toBook(isbn, details)
		if err := s.books.Upsert(ctx, &b); err != nil {
			log.Printf("Failed to upsert book %s: %v", isbn, err)
			continue
		}
		res.BooksUpserted++
	}
	return nil
}

func toBook(isbn string, details openlibrary.BookDetails) book.Book {
	title := details.Title
	if details.Subtitle != "" {
		title += ": " + details.Subtitle
	}
	return book.Book{
		ID:            isbn,
		Title:         title,
		Author:        formatAuthors(details.Authors),
		CoverImageURL: details.Cover.Large,
		PageCount:     details.NumberOfPages,
		Publisher:     formatPublishers(details.Publishers),
		Synopsis:      details.Notes,
	}
}

// preferredISBN picks the 13 digit form when Open Library lists both.
func preferredISBN(isbns []string) string {
	if len(isbns) == 0 {
		return ""
	}
	for _, i := range isbns {
		if len(normalizeISBN(i)) == 13 {
			return normalizeISBN(i)
		}
	}
	return normalizeISBN(isbns[0])
}

func normalizeISBN(isbn string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn)))
}

func formatAuthors(a []openlibrary.AuthorRef) string {
	names := make([]string, 0, len(a))
	for _, author := range a {
		if author.Name != "" {
			names = append(names, author.Name)
		}
	}
	return strings.Join(names, ", ")
}

func formatPublishers(p []openlibrary.Publisher) string {
	if len(p) == 0 {
		return ""
	}
	names := make([]string, len(p))
	for i, pub := range p {
		names[i] = pub.Name
	}
	return strings.Join(names, ", ")
}
