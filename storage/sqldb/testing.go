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


package sqldb

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/tavolo/dishsearch/storage"
)

// NewMemoryCatalog creates an in-memory SQLite catalog for testing.
// Caller must close it when done.
func NewMemoryCatalog() (storage.Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// An in-memory SQLite database lives in a single connection; a second
	// pooled connection would see an empty database.
	db.SetMaxOpenConns(1)
	cat, err := New(db, SQLite())
	if err != nil {
		db.Close()
		return nil, err
	}
	return cat, nil
}
