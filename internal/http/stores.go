package http

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/services"
)

// Library is what the UI controller needs from the catalog.
// *services.LibraryService is the production implementation.
type Library interface {
	AddBook(ctx context.Context, input services.NewBook) (*entities.Book, error)
	ListBooks(ctx context.Context) ([]entities.Book, error)
	SearchBooks(ctx context.Context, query string) ([]entities.Book, error)
	RemoveBook(ctx context.Context, id uint) (*entities.Book, error)
	Statistics(ctx context.Context) (entities.LibraryStats, error)
}
