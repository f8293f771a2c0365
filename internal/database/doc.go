// Package database owns the connection to the storage backend.
//
// # Architecture
//
//	database/
//	├── database.go      # Dialector selection, pool setup, ping
//	└── books/           # The books table: schema, reads, writes, statistics
//
// # Usage
//
//	db, err := database.NewDatabase(cfg.Database.URL, logger.Warn)
//	repo := books.NewRepository(db.DB)
//	if err := repo.InitializeSchema(ctx); err != nil { ... }
//
// The backend is chosen from DATABASE_URL: postgres:// (or a key=value DSN)
// selects Postgres through pgx, sqlite:// or a *.db path selects sqlite.
package database
