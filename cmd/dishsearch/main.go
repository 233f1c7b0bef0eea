// Copyright 2025 Tavolo Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tavolo/dishsearch"
	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/embedding"
	"github.com/tavolo/dishsearch/seed"
	"github.com/tavolo/dishsearch/storage/sqldb"
)

func main() {
	app := &cli.App{
		Name:  "dishsearch",
		Usage: "Hybrid structured and similarity search over restaurant menus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Catalog DSN (SQLite file path, or Postgres DSN with --dialect postgres)",
				Value: "dishsearch.db",
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Relational dialect (sqlite, postgres)",
				Value: "sqlite",
			},
			&cli.StringFlag{
				Name:  "vectors",
				Usage: "Path to the vector store directory",
				Value: "dishsearch-vectors",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "all-minilm",
			},
			&cli.IntFlag{
				Name:  "embedding-dimensions",
				Usage: "Embedding model output dimensionality",
				Value: 384,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Populate the catalog with demo data and index it",
				Action: seedCommand,
			},
			{
				Name:      "search",
				Usage:     "Structured search by filter criteria",
				Action:    searchCommand,
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Dish name or description substring"},
					&cli.StringFlag{Name: "category", Usage: "Category name substring"},
					&cli.StringFlag{Name: "restaurant", Usage: "Restaurant name or description substring"},
					&cli.Float64Flag{Name: "min-price", Usage: "Minimum price (inclusive)"},
					&cli.Float64Flag{Name: "max-price", Usage: "Maximum price (inclusive)"},
				},
			},
			{
				Name:      "ask",
				Usage:     "Free-text similarity search in any supported language",
				Action:    askCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "k", Usage: "Maximum number of results", Value: 5},
				},
			},
			{
				Name:      "similar",
				Usage:     "Find dishes similar to an existing dish",
				Action:    similarCommand,
				ArgsUsage: "<dish-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "k", Usage: "Maximum number of results", Value: 5},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed and reindex every dish in the catalog",
				Action: reindexCommand,
			},
			{
				Name:   "verify",
				Usage:  "Report divergence between the catalog and the vector store",
				Action: verifyCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repair", Usage: "Repair the reported divergence"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func openDatabase(c *cli.Context) (*dishsearch.Database, error) {
	var dialect sqldb.Dialect
	switch c.String("dialect") {
	case "sqlite":
		dialect = sqldb.SQLite()
	case "postgres":
		dialect = sqldb.Postgres()
	default:
		return nil, fmt.Errorf("unknown dialect %q: must be sqlite or postgres", c.String("dialect"))
	}

	config := embedding.NewConfig(
		embedding.WithHost(c.String("embedding-host")),
		embedding.WithModel(c.String("embedding-model")),
		embedding.WithDimensions(c.Int("embedding-dimensions")),
	)

	return dishsearch.Open(
		c.String("catalog"),
		c.String("vectors"),
		dishsearch.WithDialect(dialect),
		dishsearch.WithEmbeddingConfig(config),
	)
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	indexer, err := db.NewIndexer()
	if err != nil {
		return err
	}
	defer indexer.Release()

	if err := seed.Seed(ctx, db.Catalog(), indexer); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Catalog seeded and indexed")
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}

	filter := core.DishFilter{
		Name:       c.String("name"),
		Category:   c.String("category"),
		Restaurant: c.String("restaurant"),
	}
	if c.IsSet("min-price") {
		min := c.Float64("min-price")
		filter.MinPrice = &min
	}
	if c.IsSet("max-price") {
		max := c.Float64("max-price")
		filter.MaxPrice = &max
	}

	ids, err := engine.SearchStructured(ctx, filter)
	if err != nil {
		return err
	}
	details, err := engine.FetchDetails(ctx, ids)
	if err != nil {
		return err
	}

	if len(details) == 0 {
		fmt.Println("No dishes found")
		return nil
	}
	for _, d := range details {
		fmt.Printf("%d\t%s\t%.2f\t%s / %s\n", d.ID, d.Name, d.Price, d.Restaurant, d.Category)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}

	answer, err := engine.Ask(ctx, query, c.Int("k"))
	if err != nil {
		return err
	}

	fmt.Println(answer.Label)
	for _, m := range answer.Matches {
		fmt.Printf("%d\t%.4f\t%s\t%s\n", m.DishID, m.Distance, m.Metadata["name"], m.Metadata["restaurant"])
	}
	return nil
}

func similarCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Args().Len() != 1 {
		return fmt.Errorf("dish id is required")
	}
	var dishID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &dishID); err != nil {
		return fmt.Errorf("invalid dish id %q", c.Args().First())
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}

	matches, err := engine.SimilarTo(ctx, dishID, c.Int("k"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Printf("%d\t%.4f\t%s\t%s\n", m.DishID, m.Distance, m.Metadata["name"], m.Metadata["restaurant"])
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	indexer, err := db.NewIndexer()
	if err != nil {
		return err
	}
	defer indexer.Release()

	if err := indexer.IndexAll(ctx); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Reindex complete")
	return nil
}

func verifyCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	indexer, err := db.NewIndexer()
	if err != nil {
		return err
	}
	defer indexer.Release()

	report, err := indexer.Verify(ctx)
	if err != nil {
		return err
	}

	if report.Clean() {
		fmt.Println("Catalog and vector store are consistent")
		return nil
	}

	fmt.Printf("Missing:  %v\n", report.Missing)
	fmt.Printf("Orphaned: %v\n", report.Orphaned)
	fmt.Printf("Stale:    %v\n", report.Stale)

	if !c.Bool("repair") {
		return nil
	}
	if err := indexer.Repair(ctx, report); err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}
	fmt.Println("Repair complete")
	return nil
}
