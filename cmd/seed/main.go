// Package main implements the catalog seeding tool. Books enter the
// system out of band: this tool reads a JSON file of catalog entries and
// inserts them through the same store the server uses.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mjgrant/bookrec-api/internal/config"
	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/platform/logger"
	"github.com/mjgrant/bookrec-api/internal/platform/postgres"
)

// seedBook is one catalog entry in the seed file.
type seedBook struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Summary   string `json:"summary"`
	AuthorBio string `json:"author_bio"`
}

func main() {
	file := flag.String("file", "books.json", "path to the JSON file of books to seed")
	flag.Parse()

	if err := run(*file); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run(file string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []seedBook
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("seed file %s contains no books", file)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	bookStore := postgres.NewPostgresBookStore(db, appLogger)

	ctx := context.Background()
	for i, entry := range entries {
		book, err := domain.NewBook(entry.Title, entry.Author, entry.Genre, entry.Summary, entry.AuthorBio)
		if err != nil {
			return fmt.Errorf("invalid book at index %d (%q): %w", i, entry.Title, err)
		}
		if err := bookStore.Create(ctx, book); err != nil {
			return fmt.Errorf("failed to insert book %q: %w", entry.Title, err)
		}
	}

	slog.Info("Catalog seeded", "books", len(entries), "file", file)
	return nil
}
