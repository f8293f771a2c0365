package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

type mockStore struct {
	books     []entities.Book
	addCalls  int
	searchQ   []string
	removed   []uint
	addErr    error
	getErr    error
	removeErr error
}

func (m *mockStore) InitializeSchema(ctx context.Context) error { return nil }

func (m *mockStore) LoadAll(ctx context.Context) ([]entities.Book, error) {
	return m.books, nil
}

func (m *mockStore) Search(ctx context.Context, query string) ([]entities.Book, error) {
	m.searchQ = append(m.searchQ, query)
	return m.books, nil
}

func (m *mockStore) Stats(ctx context.Context) (entities.LibraryStats, error) {
	return entities.LibraryStats{Total: int64(len(m.books))}, nil
}

func (m *mockStore) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.books {
		if m.books[i].ID == id {
			return &m.books[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStore) Add(ctx context.Context, book *entities.Book) error {
	m.addCalls++
	if m.addErr != nil {
		return m.addErr
	}
	book.ID = uint(len(m.books) + 1)
	m.books = append(m.books, *book)
	return nil
}

func (m *mockStore) Remove(ctx context.Context, id uint) error {
	m.removed = append(m.removed, id)
	return m.removeErr
}

type mockRecorder struct {
	added   []entities.Book
	removed []uint
}

func (r *mockRecorder) BookAdded(book entities.Book) { r.added = append(r.added, book) }

func (r *mockRecorder) BookRemoved(id uint, book *entities.Book) { r.removed = append(r.removed, id) }

func newSQLiteService(t *testing.T) *LibraryService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "library.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	svc := NewLibraryService(books.NewRepository(db), nil)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestNewBook_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input NewBook
		field string
	}{
		{"empty title", NewBook{Author: "X", Year: 2000}, "title"},
		{"blank title", NewBook{Title: "   ", Author: "X", Year: 2000}, "title"},
		{"empty author", NewBook{Title: "X", Year: 2000}, "author"},
		{"year too small", NewBook{Title: "X", Author: "Y", Year: 999}, "year"},
		{"year too large", NewBook{Title: "X", Author: "Y", Year: 10000}, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, NewBook{Title: "Dune", Author: "Herbert", Year: 1000}.Validate())
	assert.NoError(t, NewBook{Title: "Dune", Author: "Herbert", Year: 9999}.Validate())
}

func TestLibraryService_AddBook(t *testing.T) {
	t.Run("empty title never reaches storage", func(t *testing.T) {
		store := &mockStore{}
		svc := NewLibraryService(store, nil)

		book, err := svc.AddBook(context.Background(), NewBook{Title: "", Author: "X", Year: 2000})

		assert.Nil(t, book)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, MsgTitleAuthorRequired, err.Error())
		assert.Equal(t, 0, store.addCalls)
	})

	t.Run("trims fields and records the change", func(t *testing.T) {
		store := &mockStore{}
		recorder := &mockRecorder{}
		svc := NewLibraryService(store, recorder)

		book, err := svc.AddBook(context.Background(), NewBook{
			Title: "  Dune ", Author: " Herbert", Year: 1965, Genre: " SciFi ", Read: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Herbert", book.Author)
		assert.Equal(t, "SciFi", book.Genre)
		assert.Equal(t, uint(1), book.ID)
		require.Len(t, recorder.added, 1)
		assert.Equal(t, *book, recorder.added[0])
	})

	t.Run("storage failure is returned and not recorded", func(t *testing.T) {
		store := &mockStore{addErr: errors.New("db down")}
		recorder := &mockRecorder{}
		svc := NewLibraryService(store, recorder)

		book, err := svc.AddBook(context.Background(), NewBook{Title: "Dune", Author: "Herbert", Year: 1965})

		assert.Nil(t, book)
		assert.EqualError(t, err, "db down")
		assert.Empty(t, recorder.added)
	})
}

func TestLibraryService_SearchBooks(t *testing.T) {
	t.Run("blank query is rejected locally", func(t *testing.T) {
		store := &mockStore{}
		svc := NewLibraryService(store, nil)

		books, err := svc.SearchBooks(context.Background(), "  ")

		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Empty(t, books)
		assert.Empty(t, store.searchQ)
	})

	t.Run("query is trimmed", func(t *testing.T) {
		store := &mockStore{}
		svc := NewLibraryService(store, nil)

		_, err := svc.SearchBooks(context.Background(), " dune ")

		require.NoError(t, err)
		assert.Equal(t, []string{"dune"}, store.searchQ)
	})
}

func TestLibraryService_RemoveBook(t *testing.T) {
	t.Run("returns the removed book", func(t *testing.T) {
		store := &mockStore{books: []entities.Book{{ID: 7, Title: "Dune"}}}
		recorder := &mockRecorder{}
		svc := NewLibraryService(store, recorder)

		book, err := svc.RemoveBook(context.Background(), 7)

		require.NoError(t, err)
		require.NotNil(t, book)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, []uint{7}, store.removed)
		assert.Equal(t, []uint{7}, recorder.removed)
	})

	t.Run("unknown id succeeds with nil book", func(t *testing.T) {
		store := &mockStore{}
		svc := NewLibraryService(store, nil)

		book, err := svc.RemoveBook(context.Background(), 99999)

		assert.NoError(t, err)
		assert.Nil(t, book)
		assert.Equal(t, []uint{99999}, store.removed)
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		store := &mockStore{removeErr: errors.New("locked")}
		recorder := &mockRecorder{}
		svc := NewLibraryService(store, recorder)

		_, err := svc.RemoveBook(context.Background(), 1)

		assert.EqualError(t, err, "locked")
		assert.Empty(t, recorder.removed)
	})

	t.Run("lookup failure aborts before deleting", func(t *testing.T) {
		store := &mockStore{
			books:  []entities.Book{{ID: 7, Title: "Dune"}},
			getErr: errors.New("connection reset"),
		}
		recorder := &mockRecorder{}
		svc := NewLibraryService(store, recorder)

		book, err := svc.RemoveBook(context.Background(), 7)

		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, book)
		assert.Empty(t, store.removed)
		assert.Empty(t, recorder.removed)
	})

	t.Run("wrapped not-found is still a no-op", func(t *testing.T) {
		store := &mockStore{getErr: fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)}
		svc := NewLibraryService(store, nil)

		book, err := svc.RemoveBook(context.Background(), 3)

		assert.NoError(t, err)
		assert.Nil(t, book)
		assert.Equal(t, []uint{3}, store.removed)
	})
}

func TestLibraryService_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("add Dune then list", func(t *testing.T) {
		svc := newSQLiteService(t)

		book, err := svc.AddBook(ctx, NewBook{Title: "Dune", Author: "Herbert", Year: 1965, Genre: "SciFi", Read: true})
		require.NoError(t, err)

		all, err := svc.ListBooks(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.GreaterOrEqual(t, all[0].ID, uint(1))
		assert.Equal(t, entities.Book{ID: book.ID, Title: "Dune", Author: "Herbert", Year: 1965, Genre: "SciFi", Read: true}, all[0])
	})

	t.Run("remove unknown id leaves library unchanged", func(t *testing.T) {
		svc := newSQLiteService(t)
		_, err := svc.AddBook(ctx, NewBook{Title: "Emma", Author: "Austen", Year: 1815})
		require.NoError(t, err)
		before, err := svc.ListBooks(ctx)
		require.NoError(t, err)

		removed, err := svc.RemoveBook(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, removed)

		after, err := svc.ListBooks(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("empty title inserts nothing", func(t *testing.T) {
		svc := newSQLiteService(t)

		_, err := svc.AddBook(ctx, NewBook{Title: "", Author: "X", Year: 2000})
		require.ErrorIs(t, err, ErrValidation)

		all, err := svc.ListBooks(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("statistics over a real store", func(t *testing.T) {
		svc := newSQLiteService(t)
		for _, nb := range []NewBook{
			{Title: "Dune", Author: "Herbert", Year: 1965, Genre: "SciFi", Read: true},
			{Title: "Emma", Author: "Austen", Year: 1815, Genre: "Classic"},
		} {
			_, err := svc.AddBook(ctx, nb)
			require.NoError(t, err)
		}

		stats, err := svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(1), stats.Read)
		assert.InDelta(t, 50.0, stats.PercentageRead(), 0.0001)
	})
}
