package book

import (
	"errors"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book is a catalog entry. Books are read-only to the rest of the API.
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImageURL string `json:"coverImageUrl"`
	PageCount     int    `json:"pageCount"`
	Publisher     string `json:"publisher"`
	Synopsis      string `json:"synopsis"`
}

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)
