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


// Package storage provides the storage abstraction layer for dishsearch.
//
// Two stores back the search engine, each behind its own interface:
//
//   - Catalog: the relational side. Holds the restaurant→menu→category→dish
//     hierarchy and answers structured-filter searches.
//   - VectorStore: the similarity side. Holds one embedding per dish keyed by
//     the dish id in string form, with a denormalized metadata snapshot, and
//     answers nearest-neighbor queries.
//
// The two stores are allowed to diverge transiently (a dish may briefly lack
// an embedding after insert, or keep a stale one after update). The indexing
// package detects and reports such divergence; it never makes a search fail.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return these interfaces
// rather than concrete types:
//
//	catalog, err := sqldb.Open(sqldb.SQLite(), dsn)   // returns storage.Catalog
//	vectors, err := badgervec.Open(path, dims)        // returns storage.VectorStore
//
// This keeps callers decoupled from the backing technology: the catalog runs
// against SQLite or PostgreSQL, and the vector store could be re-backed by
// any nearest-neighbor-capable store that honors the operation contracts.
//
// # Thread Safety
//
// Implementations must support concurrent reads from multiple goroutines.
// Concurrent writers to the same dish id must be serialized by the caller;
// the stores provide no per-id locking.
//
// # Context Support
//
// All methods accept context.Context. A blocking call surfaces its own
// timeout or cancellation error, which callers propagate unchanged.
package storage
