// Package books provides the storage access layer for the books table.
//
// Every method acquires one connection for the duration of the call and
// releases it before returning. Writes run inside a transaction that is
// committed on success and rolled back on failure.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	if err := repo.InitializeSchema(ctx); err != nil { ... }
//	all, err := repo.LoadAll(ctx)
package books

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all operations on the books table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InitializeSchema creates the books table when it is absent. An existing
// table is never altered, so repeated calls are harmless.
func (r *Repository) InitializeSchema(ctx context.Context) error {
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		migrator := conn.Migrator()
		if migrator.HasTable(&entities.Book{}) {
			return nil
		}
		if err := migrator.CreateTable(&entities.Book{}); err != nil {
			// Another process may have won the race.
			if migrator.HasTable(&entities.Book{}) {
				return nil
			}
			return err
		}
		return nil
	})
	return wrap(OpInitialize, err)
}

// LoadAll returns every book ordered by title. On failure the slice is empty,
// never nil.
func (r *Repository) LoadAll(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Order("title ASC, id ASC").Find(&books).Error
	})
	if err != nil {
		return []entities.Book{}, wrap(OpLoad, err)
	}
	if books == nil {
		books = []entities.Book{}
	}
	return books, nil
}

// Add inserts book and writes the generated ID back into it.
func (r *Repository) Add(ctx context.Context, book *entities.Book) error {
	if book == nil {
		return wrap(OpAdd, ErrNilBook)
	}
	book.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(book).Error
	})
	if err != nil {
		book.ID = 0
		return wrap(OpAdd, err)
	}
	return nil
}

// Remove deletes the book with the given ID. Removing an ID that does not
// exist affects no rows and is not an error.
func (r *Repository) Remove(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&entities.Book{}).Error
	})
	return wrap(OpRemove, err)
}

// Search returns books whose title or author contains query, ignoring case,
// ordered by title. LIKE wildcards in query match literally.
func (r *Repository) Search(ctx context.Context, query string) ([]entities.Book, error) {
	if query == "" {
		return []entities.Book{}, wrap(OpSearch, ErrEmptyQuery)
	}

	var found []entities.Book
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if conn.Dialector.Name() == "postgres" {
			pattern := "%" + escapeLike(query) + "%"
			return conn.
				Where(`title ILIKE ? ESCAPE '\' OR author ILIKE ? ESCAPE '\'`, pattern, pattern).
				Order("title ASC, id ASC").
				Find(&found).Error
		}

		// sqlite's LOWER and LIKE only fold ASCII letters.
		var all []entities.Book
		if err := conn.Order("title ASC, id ASC").Find(&all).Error; err != nil {
			return err
		}
		found = filterFolded(all, query)
		return nil
	})
	if err != nil {
		return []entities.Book{}, wrap(OpSearch, err)
	}
	if found == nil {
		found = []entities.Book{}
	}
	return found, nil
}

// filterFolded keeps the books whose title or author contains query under
// Unicode case folding. Order is preserved.
func filterFolded(all []entities.Book, query string) []entities.Book {
	fold := cases.Fold()
	needle := fold.String(query)

	found := make([]entities.Book, 0, len(all))
	for _, book := range all {
		if strings.Contains(fold.String(book.Title), needle) || strings.Contains(fold.String(book.Author), needle) {
			found = append(found, book)
		}
	}
	return found
}

// Stats tallies the library: total, read and a per-genre breakdown ordered by
// count descending. All three queries share one connection.
func (r *Repository) Stats(ctx context.Context) (entities.LibraryStats, error) {
	var stats entities.LibraryStats
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Model(&entities.Book{}).Count(&stats.Total).Error; err != nil {
			return err
		}
		if err := conn.Model(&entities.Book{}).Where(map[string]any{"read": true}).Count(&stats.Read).Error; err != nil {
			return err
		}
		return conn.Model(&entities.Book{}).
			Select("genre, COUNT(*) AS count").
			Group("genre").
			Order("COUNT(*) DESC, genre ASC").
			Scan(&stats.Genres).Error
	})
	if err != nil {
		return entities.LibraryStats{Genres: []entities.GenreCount{}}, wrap(OpStatistics, err)
	}
	if stats.Genres == nil {
		stats.Genres = []entities.GenreCount{}
	}
	return stats, nil
}

// GetByID returns a single book, or gorm.ErrRecordNotFound.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.First(&book, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, wrap(OpLoad, err)
	}
	return &book, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
