package listitem

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/book"
)

var (
	ErrNotFound  = errors.New("list item not found")
	ErrDuplicate = errors.New("list item already exists for this book")
)

// Unrated is the rating of an item the owner has not rated yet.
const (
	Unrated   = -1
	MaxRating = 5
)

// ListItem records one user's relationship with one book. StartDate and
// FinishDate are epoch milliseconds.
type ListItem struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	BookID     string    `json:"bookId"`
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes"`
	StartDate  *int64    `json:"startDate"`
	FinishDate *int64    `json:"finishDate"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// View is a list item joined with its book. It only exists in responses.
// Book is nil when the catalog no longer has the book.
type View struct {
	ListItem
	Book *book.Book `json:"book"`
}

// Filter selects list items. Empty fields are not constrained.
type Filter struct {
	OwnerID string
	BookID  string
}

// OptionalDate distinguishes an absent field from an explicit null.
type OptionalDate struct {
	Set   bool
	Value *int64
}

func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	if string(data) == "null" {
		d.Value = nil
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	d.Value = &ms
	return nil
}

// Patch is a partial update. Nil fields and unset dates leave the stored value alone.
type Patch struct {
	Rating     *int         `json:"rating"`
	Notes      *string      `json:"notes"`
	StartDate  OptionalDate `json:"startDate"`
	FinishDate OptionalDate `json:"finishDate"`
}

// Validate rejects ratings outside Unrated..MaxRating.
func (p Patch) Validate() error {
	if p.Rating != nil && (*p.Rating < Unrated || *p.Rating > MaxRating) {
		return fmt.Errorf("rating must be between %d and %d", Unrated, MaxRating)
	}
	return nil
}

func (p Patch) IsEmpty() bool {
	return p.Rating == nil && p.Notes == nil && !p.StartDate.Set && !p.FinishDate.Set
}

// Apply returns item with the patch applied.
func (p Patch) Apply(item ListItem) ListItem {
	if p.Rating != nil {
		item.Rating = *p.Rating
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.StartDate.Set {
		item.StartDate = p.StartDate.Value
	}
	if p.FinishDate.Set {
		item.FinishDate = p.FinishDate.Value
	}
	return item
}
