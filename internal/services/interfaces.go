package services

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
)

// BookReader provides read-only access to the catalog.
type BookReader interface {
	LoadAll(ctx context.Context) ([]entities.Book, error)
	Search(ctx context.Context, query string) ([]entities.Book, error)
	Stats(ctx context.Context) (entities.LibraryStats, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
}

// BookWriter creates and deletes books.
type BookWriter interface {
	Add(ctx context.Context, book *entities.Book) error
	Remove(ctx context.Context, id uint) error
}

// BookStore is the full storage contract the library service depends on.
type BookStore interface {
	BookReader
	BookWriter
	InitializeSchema(ctx context.Context) error
}

// ChangeRecorder receives successful catalog changes. Implementations must
// not block the caller on failure.
type ChangeRecorder interface {
	BookAdded(book entities.Book)
	BookRemoved(id uint, book *entities.Book)
}
