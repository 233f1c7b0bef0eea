package badgervec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/tavolo/dishsearch/storage"
)

// Store implements storage.VectorStore on BadgerDB. Every record is two
// keys: the embedding under vectorPrefix and the metadata map under
// metadataPrefix, written together in one transaction.
//
// Distance metric: cosine distance (see cosineDistance). Fixed for the
// lifetime of an index.
type Store struct {
	backend *Backend
	dims    int
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Open opens a vector store at path with the given fixed dimensionality.
// Changing dims against an existing index invalidates it and requires a
// full reindex; that is not handled automatically.
//
// Returns storage.VectorStore to keep callers decoupled from BadgerDB.
func Open(path string, dims int, opts ...Option) (storage.VectorStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(backend, dims, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return store, nil
}

// NewStore creates a store over an existing backend. The store takes
// ownership of the backend; Close closes it.
func NewStore(backend *Backend, dims int, opts ...Option) (storage.VectorStore, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dims must be positive, got %d", storage.ErrDimensionMismatch, dims)
	}
	s := &Store{
		backend: backend,
		dims:    dims,
		logger:  slog.Default().With("component", "badger-vectors"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the store and its backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) checkVector(vector []float32) error {
	if len(vector) != s.dims {
		return fmt.Errorf("%w: got %d, store holds %d", storage.ErrDimensionMismatch, len(vector), s.dims)
	}
	return nil
}

// Upsert inserts or replaces the record for id. Idempotent by id.
func (s *Store) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	if id == "" {
		return storage.ErrEmptyID
	}
	if err := s.checkVector(vector); err != nil {
		return err
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	return s.backend.Update(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(id), marshalVector(vector)); err != nil {
			return err
		}
		return tx.Set(makeMetadataKey(id), marshalMetadata(metadata))
	})
}

// BatchUpsert upserts each record as an independent unit of work. A failing
// id never aborts or corrupts the others; per-id failures are joined into
// the returned error.
func (s *Store) BatchUpsert(ctx context.Context, records []storage.VectorRecord) error {
	var errs []error
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.Upsert(ctx, rec.ID, rec.Vector, rec.Metadata); err != nil {
			s.logger.Warn("batch upsert entry failed", "id", rec.ID, "err", err)
			errs = append(errs, fmt.Errorf("id %q: %w", rec.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the full record for id, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*storage.VectorRecord, error) {
	var rec storage.VectorRecord
	err := s.backend.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: id %q", storage.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			rec.Vector, err = unmarshalVector(val)
			return err
		}); err != nil {
			return err
		}

		item, err = tx.Get(makeMetadataKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Vector without metadata: record was half-written by an
			// external fault. Surface it as an empty map, not an error.
			rec.Metadata = map[string]string{}
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec.Metadata, err = unmarshalMetadata(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

// Query returns up to k nearest records by cosine distance, ties broken by
// ascending id. With a non-empty filter, only records whose metadata
// contains every filter entry are considered. Returns fewer than k if fewer
// exist.
func (s *Store) Query(ctx context.Context, vector []float32, k int, filter map[string]string) ([]storage.Neighbor, error) {
	if err := s.checkVector(vector); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []storage.Neighbor{}, nil
	}

	var hits []storage.Neighbor
	err := s.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			id := idFromVectorKey(item.Key())

			metadata, err := readMetadata(tx, id)
			if err != nil {
				return err
			}
			if !metadataMatches(metadata, filter) {
				continue
			}

			var stored []float32
			if err := item.Value(func(val []byte) error {
				stored, err = unmarshalVector(val)
				return err
			}); err != nil {
				return err
			}

			hits = append(hits, storage.Neighbor{
				ID:       id,
				Distance: cosineDistance(vector, stored),
				Metadata: metadata,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return compareIDs(hits[i].ID, hits[j].ID) < 0
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func readMetadata(tx *badger.Txn, id string) (map[string]string, error) {
	item, err := tx.Get(makeMetadataKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var metadata map[string]string
	err = item.Value(func(val []byte) error {
		metadata, err = unmarshalMetadata(val)
		return err
	})
	return metadata, err
}

// metadataMatches reports whether metadata contains every filter entry with
// string equality. An empty filter matches everything.
func metadataMatches(metadata, filter map[string]string) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

// Delete removes the record for id. Deleting a nonexistent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.backend.Update(func(tx *badger.Txn) error {
		if err := tx.Delete(makeVectorKey(id)); err != nil {
			return err
		}
		return tx.Delete(makeMetadataKey(id))
	})
}

// Count returns the number of stored records, scanning metadata keys only.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(metadataPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListIDs enumerates all stored ids in ascending numeric order. Cost scales
// with metadata keys only; vectors are never read.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(metadataPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			ids = append(ids, idFromMetadataKey(iter.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return compareIDs(ids[i], ids[j]) < 0 })
	return ids, nil
}
