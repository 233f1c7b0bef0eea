package embedding

import (
	"context"
	"log/slog"

	"github.com/tavolo/dishsearch/core"
)

// Generator turns dish profiles and raw query strings into embedding
// vectors. Dish records go through the canonical DishText assembly; queries
// are encoded as-is (the raw-text path).
type Generator struct {
	embedder Embedder
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
	}
}

// NewGenerator creates a generator over an embedder.
func NewGenerator(embedder Embedder, opts ...GeneratorOption) (*Generator, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	g := &Generator{
		embedder: embedder,
		logger:   slog.Default().With("component", "embedding-generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// EmbedDish validates the profile, assembles its canonical text, and
// encodes it.
func (g *Generator) EmbedDish(ctx context.Context, profile *core.DishProfile) ([]float32, error) {
	if err := core.ValidateProfile(profile); err != nil {
		return nil, err
	}
	text := DishText(profile)
	vector, err := g.embedder.EmbedText(ctx, text)
	if err != nil {
		g.logger.Error("error embedding dish", "dishID", profile.DishID, "err", err)
		return nil, err
	}
	return vector, nil
}

// EmbedQuery encodes a raw query string, bypassing dish-text assembly.
func (g *Generator) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vector, err := g.embedder.EmbedText(ctx, query)
	if err != nil {
		g.logger.Error("error embedding query", "err", err)
		return nil, err
	}
	return vector, nil
}
