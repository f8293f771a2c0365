package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// NewBook is a candidate book collected from the add form.
type NewBook struct {
	Title  string
	Author string
	Year   int
	Genre  string
	Read   bool
}

// Validate applies the add form's gate: title and author must be non-empty
// and the year must be within range.
func (n NewBook) Validate() error {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Author) == "" {
		field := "title"
		if strings.TrimSpace(n.Title) != "" {
			field = "author"
		}
		return &ValidationError{Field: field, Message: MsgTitleAuthorRequired}
	}
	if n.Year < entities.MinYear || n.Year > entities.MaxYear {
		return &ValidationError{Field: "year", Message: msgYearOutOfRange}
	}
	return nil
}

// LibraryService orchestrates the catalog views over a BookStore.
type LibraryService struct {
	store    BookStore
	recorder ChangeRecorder
}

// NewLibraryService creates a service. recorder may be nil.
func NewLibraryService(store BookStore, recorder ChangeRecorder) *LibraryService {
	return &LibraryService{store: store, recorder: recorder}
}

// Initialize ensures the books table exists.
func (s *LibraryService) Initialize(ctx context.Context) error {
	return s.store.InitializeSchema(ctx)
}

// AddBook validates the candidate and stores it. Invalid candidates never
// reach storage.
func (s *LibraryService) AddBook(ctx context.Context, input NewBook) (*entities.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:  strings.TrimSpace(input.Title),
		Author: strings.TrimSpace(input.Author),
		Year:   input.Year,
		Genre:  strings.TrimSpace(input.Genre),
		Read:   input.Read,
	}
	if err := s.store.Add(ctx, book); err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.BookAdded(*book)
	}
	return book, nil
}

// ListBooks returns the whole library ordered by title.
func (s *LibraryService) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return s.store.LoadAll(ctx)
}

// SearchBooks matches query against titles and authors. A blank query is
// rejected without touching storage.
func (s *LibraryService) SearchBooks(ctx context.Context, query string) ([]entities.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entities.Book{}, ErrEmptyQuery
	}
	return s.store.Search(ctx, query)
}

// RemoveBook deletes a book by ID and returns what was removed, or nil when
// the ID was unknown. Unknown IDs are not an error; a failed lookup is, and
// nothing is deleted then.
func (s *LibraryService) RemoveBook(ctx context.Context, id uint) (*entities.Book, error) {
	book, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		book = nil
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.BookRemoved(id, book)
	}
	return book, nil
}

// Statistics tallies the library.
func (s *LibraryService) Statistics(ctx context.Context) (entities.LibraryStats, error) {
	return s.store.Stats(ctx)
}
