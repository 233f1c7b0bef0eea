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


// Package search orchestrates the two dish search paths.
//
// The Engine type exposes:
//   - Structured search: filter criteria compiled into a single relational
//     query, returning dish ids sorted by price then id
//   - Similarity search: a raw vector, a free-text query, or an existing
//     dish id, ranked by ascending cosine distance
//
// Free-text queries pass through the multilingual normalizer first, which
// detects the query language and produces a localized response label
// alongside the embedding. Both paths can be joined back to full dish and
// restaurant detail records via FetchDetails.
package search
