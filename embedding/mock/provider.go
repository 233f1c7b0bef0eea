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


package mock

import "github.com/tavolo/dishsearch/embedding"

// MockProvider is a test double for embedding.Provider.
type MockProvider struct {
	embedder   *MockEmbedder
	dimensions int
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns embedding.Provider interface for consistency with production
// constructors. Use GetMockEmbedder() to access the concrete type for test
// assertions.
func NewMockProvider() embedding.Provider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		dimensions: 384,
	}
}

// NewMockProviderWithEmbedder creates a mock provider with a custom mock
// embedder. This allows full control over embedding behavior.
func NewMockProviderWithEmbedder(embedder *MockEmbedder, dimensions int) embedding.Provider {
	return &MockProvider{
		embedder:   embedder,
		dimensions: dimensions,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() embedding.Embedder {
	return p.embedder
}

// Dimensions returns the mock model output dimensionality.
func (p *MockProvider) Dimensions() int {
	return p.dimensions
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}
