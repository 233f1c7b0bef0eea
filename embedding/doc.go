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


// Package embedding provides abstractions for turning dishes and queries
// into fixed-length vectors.
//
// Two interfaces define the surface:
//
//   - Embedder: encodes text into vectors (must be deterministic at
//     inference time — identical text, identical vector)
//   - Provider: owns an Embedder's lifecycle and reports the model's fixed
//     output dimensionality
//
// The Generator sits above the Embedder and owns the two encoding paths:
// dish records are first assembled into a canonical text block (DishText —
// field order is part of the contract), while free-text queries are encoded
// verbatim.
//
// # Implementation Packages
//
//   - embedding/openai: production implementation for OpenAI-compatible
//     APIs (Ollama, LocalAI, vLLM, OpenAI itself)
//   - embedding/mock: deterministic test doubles, no network
//
// Public constructors return interface types to keep consumers decoupled
// from any particular backend:
//
//	provider, err := openai.NewProvider(config)  // returns embedding.Provider
//
// Test constructors return concrete types so tests can inject behavior and
// assert on call counts:
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
package embedding
