package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/tavolo/dishsearch"
	"github.com/tavolo/dishsearch/api"
	"github.com/tavolo/dishsearch/embedding"
	"github.com/tavolo/dishsearch/storage/sqldb"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// main wires the database, search engine, and indexer into an HTTP server.
// Configuration comes from the environment (optionally a .env file).
func main() {
	_ = godotenv.Load()

	dialect := sqldb.SQLite()
	if envOr("DISHSEARCH_DIALECT", "sqlite") == "postgres" {
		dialect = sqldb.Postgres()
	}

	dims, err := strconv.Atoi(envOr("EMBEDDING_DIMENSIONS", "384"))
	if err != nil {
		log.Fatal("invalid EMBEDDING_DIMENSIONS:", err)
	}
	config := embedding.NewConfig(
		embedding.WithHost(envOr("EMBEDDING_HOST", "http://localhost:11434/v1")),
		embedding.WithModel(envOr("EMBEDDING_MODEL", "all-minilm")),
		embedding.WithDimensions(dims),
	)

	db, err := dishsearch.Open(
		envOr("DISHSEARCH_CATALOG", "dishsearch.db"),
		envOr("DISHSEARCH_VECTORS", "dishsearch-vectors"),
		dishsearch.WithDialect(dialect),
		dishsearch.WithEmbeddingConfig(config),
	)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		log.Fatal("Failed to create search engine:", err)
	}
	indexer, err := db.NewIndexer()
	if err != nil {
		log.Fatal("Failed to create indexer:", err)
	}
	defer indexer.Release()

	mux := http.NewServeMux()
	api.NewHandlers(engine, indexer).Routes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	})
	handler := c.Handler(mux)

	port := envOr("PORT", "8000")
	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Server failed:", err)
	}
}
