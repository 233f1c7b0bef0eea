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


package openai

import (
	"log/slog"

	"github.com/tavolo/dishsearch/embedding"
)

// Provider implements embedding.Provider using OpenAI-compatible services.
type Provider struct {
	config   *embedding.Config
	embedder *Embedder
	logger   *slog.Logger
}

// NewProvider creates a provider with an OpenAI-compatible embedding
// service. The config is validated and normalized before use.
//
// Returns embedding.Provider (not *Provider) to enforce abstraction and
// prevent coupling to OpenAI-specific details.
func NewProvider(config *embedding.Config) (embedding.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() embedding.Embedder {
	return p.embedder
}

// Dimensions returns the configured model output dimensionality.
func (p *Provider) Dimensions() int {
	return p.config.Dimensions
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI embedding provider")
	return nil
}
