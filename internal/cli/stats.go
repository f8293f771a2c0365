package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/entrypoint"
)

// StatsCommand prints the statistics view to stdout.
type StatsCommand struct {
	DatabaseURL string
	Verbose     bool

	out io.Writer
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{out: os.Stdout}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabaseURL, "db", "", "Database URL (defaults to DATABASE_URL)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log SQL statements")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print library statistics: total books, books read and the genre breakdown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *StatsCommand) Run(cfg *config.Config) error {
	cfg = withDatabaseURL(cfg, cmd.DatabaseURL)

	db, library, err := entrypoint.OpenLibrary(cfg, logLevel(cmd.Verbose), nil)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := library.Statistics(context.Background())
	if err != nil {
		return fmt.Errorf("error loading statistics: %w", err)
	}

	printStats(cmd.out, stats)
	return nil
}

func printStats(w io.Writer, stats entities.LibraryStats) {
	fmt.Fprintln(w, "Library Statistics")
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "Total Books: %d\n", stats.Total)
	fmt.Fprintf(w, "Books Read:  %d (%.2f%%)\n", stats.Read, stats.PercentageRead())

	if len(stats.Genres) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Genre Breakdown")
	for _, genre := range stats.Genres {
		fmt.Fprintf(w, "%s: %d books\n", entities.GenreLabel(genre.Genre), genre.Count)
	}
}
