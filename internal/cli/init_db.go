package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entrypoint"
)

// InitDBCommand creates the books table and exits.
type InitDBCommand struct {
	DatabaseURL string
	Verbose     bool

	out io.Writer
}

func NewInitDBCommand() *InitDBCommand {
	return &InitDBCommand{out: os.Stdout}
}

func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabaseURL, "db", "", "Database URL (defaults to DATABASE_URL)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log SQL statements")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the books table if it does not exist. Existing data is never touched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *InitDBCommand) Run(cfg *config.Config) error {
	cfg = withDatabaseURL(cfg, cmd.DatabaseURL)

	db, library, err := entrypoint.OpenLibrary(cfg, logLevel(cmd.Verbose), nil)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := library.Initialize(context.Background()); err != nil {
		return fmt.Errorf("database initialization error: %w", err)
	}

	fmt.Fprintf(cmd.out, "Books table is ready (%s)\n", db.Driver)
	return nil
}

// withDatabaseURL returns cfg with its database URL overridden by a flag.
func withDatabaseURL(cfg *config.Config, url string) *config.Config {
	if url == "" {
		return cfg
	}
	overridden := *cfg
	overridden.Database.URL = url
	return &overridden
}

func logLevel(verbose bool) logger.LogLevel {
	if verbose {
		return logger.Info
	}
	return logger.Silent
}
