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


package dishsearch

import (
	"log/slog"

	// Registers the Postgres driver; the SQLite driver is registered by the
	// sqldb package itself.
	_ "github.com/lib/pq"

	"github.com/tavolo/dishsearch/embedding"
	"github.com/tavolo/dishsearch/embedding/openai"
	"github.com/tavolo/dishsearch/indexing"
	"github.com/tavolo/dishsearch/multilang"
	"github.com/tavolo/dishsearch/search"
	"github.com/tavolo/dishsearch/storage"
	"github.com/tavolo/dishsearch/storage/badgervec"
	"github.com/tavolo/dishsearch/storage/sqldb"
)

// Database wires the three externally owned handles of a deployment
// together: the relational catalog, the vector store, and the embedding
// provider. Create one per process, share it across requests, and Close it
// on shutdown.
type Database struct {
	catalog    storage.Catalog
	vectors    storage.VectorStore
	provider   embedding.Provider
	generator  *embedding.Generator
	normalizer *multilang.Normalizer
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	dialect         sqldb.Dialect
	embeddingConfig *embedding.Config
	provider        embedding.Provider
}

// WithDialect selects the relational dialect. Default is SQLite.
func WithDialect(dialect sqldb.Dialect) DatabaseOption {
	return func(o *databaseOptions) {
		o.dialect = dialect
	}
}

// WithEmbeddingConfig configures the default OpenAI-compatible embedding
// provider. Ignored when WithProvider is used.
func WithEmbeddingConfig(config *embedding.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.embeddingConfig = config
	}
}

// WithProvider injects a custom embedding provider, replacing the default
// OpenAI-compatible one. The database takes ownership and closes it.
func WithProvider(provider embedding.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// Open opens a database: the catalog at catalogDSN, the vector store at
// vectorPath, and the embedding provider. The vector store's dimensionality
// is fixed to the provider's; changing providers against an existing index
// requires a full reindex.
func Open(catalogDSN, vectorPath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		dialect:         sqldb.SQLite(),
		embeddingConfig: embedding.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.embeddingConfig)
		if err != nil {
			return nil, err
		}
	}

	catalog, err := sqldb.Open(options.dialect, catalogDSN)
	if err != nil {
		provider.Close()
		return nil, err
	}

	vectors, err := badgervec.Open(vectorPath, provider.Dimensions())
	if err != nil {
		catalog.Close()
		provider.Close()
		return nil, err
	}

	generator, err := embedding.NewGenerator(provider.Embedder())
	if err != nil {
		vectors.Close()
		catalog.Close()
		provider.Close()
		return nil, err
	}

	normalizer, err := multilang.NewNormalizer(generator)
	if err != nil {
		vectors.Close()
		catalog.Close()
		provider.Close()
		return nil, err
	}

	return &Database{
		catalog:    catalog,
		vectors:    vectors,
		provider:   provider,
		generator:  generator,
		normalizer: normalizer,
		logger:     slog.Default(),
	}, nil
}

// Close releases the provider, the vector store, and the catalog.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing embedding provider", "err", err)
	}

	if err := db.vectors.Close(); err != nil {
		db.logger.Error("error closing vector store", "err", err)
		return err
	}

	if err := db.catalog.Close(); err != nil {
		db.logger.Error("error closing catalog", "err", err)
		return err
	}
	return nil
}

// Catalog returns the relational catalog.
func (db *Database) Catalog() storage.Catalog {
	return db.catalog
}

// Vectors returns the vector store.
func (db *Database) Vectors() storage.VectorStore {
	return db.vectors
}

// Generator returns the embedding generator.
func (db *Database) Generator() *embedding.Generator {
	return db.generator
}

// NewEngine creates a search engine over the database's stores.
func (db *Database) NewEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(db.catalog, db.vectors, db.normalizer, opts...)
}

// NewIndexer creates an indexer over the database's stores.
func (db *Database) NewIndexer(opts ...indexing.Option) (*indexing.Indexer, error) {
	return indexing.NewIndexer(db.catalog, db.vectors, db.generator, opts...)
}
