package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bookshelf/internal/book"
	"bookshelf/internal/listitem"
	"bookshelf/internal/user"
)

// MemoryUsers is an in-memory user.Repository.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]user.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]user.User)}
}

func (m *MemoryUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return user.ErrAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryUsers) GetByUsername(_ context.Context, username string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *MemoryUsers) GetByID(_ context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

// MemoryBooks is an in-memory book.Repository.
type MemoryBooks struct {
	mu    sync.Mutex
	books map[string]book.Book
}

func NewMemoryBooks(books ...book.Book) *MemoryBooks {
	m := &MemoryBooks{books: make(map[string]book.Book)}
	for _, b := range books {
		m.books[b.ID] = b
	}
	return m
}

func (m *MemoryBooks) GetByID(_ context.Context, id string) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (m *MemoryBooks) GetManyByID(_ context.Context, ids []string) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := make([]book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := m.books[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (m *MemoryBooks) Search(_ context.Context, query string, limit int) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var books []book.Book
	for _, b := range m.books {
		if q == "" || strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	if len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (m *MemoryBooks) Upsert(_ context.Context, b *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m.books[b.ID] = *b
	return nil
}

// MemoryListItems is an in-memory listitem.Repository. Like the database it
// allows one item per owner and book.
type MemoryListItems struct {
	mu    sync.Mutex
	items []listitem.ListItem
}

func NewMemoryListItems() *MemoryListItems {
	return &MemoryListItems{}
}

func (m *MemoryListItems) GetByID(_ context.Context, id string) (listitem.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i], nil
	}
	return listitem.ListItem{}, listitem.ErrNotFound
}

func (m *MemoryListItems) Query(_ context.Context, filter listitem.Filter) ([]listitem.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []listitem.ListItem{}
	for _, item := range m.items {
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.BookID != "" && item.BookID != filter.BookID {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *MemoryListItems) Create(_ context.Context, item *listitem.ListItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.OwnerID == item.OwnerID && existing.BookID == item.BookID {
			return listitem.ErrDuplicate
		}
	}
	item.ID = uuid.NewString()
	m.items = append(m.items, *item)
	return nil
}

func (m *MemoryListItems) Update(_ context.Context, id string, patch listitem.Patch) (listitem.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return listitem.ListItem{}, listitem.ErrNotFound
	}
	m.items[i] = patch.Apply(m.items[i])
	return m.items[i], nil
}

func (m *MemoryListItems) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return listitem.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *MemoryListItems) indexOf(id string) int {
	for i, item := range m.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
