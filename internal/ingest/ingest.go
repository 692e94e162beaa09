package ingest

// Config bounds one import. ISBNs are imported first, then Subjects are
// searched until BooksMax books have been stored.
type Config struct {
	ISBNs     []string
	Subjects  []string
	BooksMax  int
	BatchSize int
}

// Result counts what one import did.
type Result struct {
	BooksFetched  int
	BooksUpserted int
}
