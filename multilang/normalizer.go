package multilang

import (
	"context"
	"log/slog"

	"github.com/tavolo/dishsearch/embedding"
)

// NormalizedQuery is the result of running a free-text query through the
// normalizer: the embedding vector, the resolved locale tag, and the
// localized response label for that tag.
type NormalizedQuery struct {
	Vector []float32
	Locale string
	Label  string
}

// Normalizer detects a query's language and encodes it into a vector.
// Detection operates on a punctuation-stripped copy; the embedding always
// uses the original text.
type Normalizer struct {
	generator *embedding.Generator
	chain     []Detector
	logger    *slog.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
	}
}

// WithDetectors replaces the default detection chain. Intended for tests;
// production callers should keep the standard chain.
func WithDetectors(chain []Detector) NormalizerOption {
	return func(n *Normalizer) {
		if len(chain) > 0 {
			n.chain = chain
		}
	}
}

// NewNormalizer creates a normalizer over an embedding generator with the
// standard detection chain.
func NewNormalizer(generator *embedding.Generator, opts ...NormalizerOption) (*Normalizer, error) {
	if generator == nil {
		return nil, embedding.ErrEmbedderRequired
	}
	n := &Normalizer{
		generator: generator,
		chain:     NewDetectorChain(),
		logger:    slog.Default().With("component", "query-normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Normalize detects the query language, encodes the original query text,
// and returns the vector together with the locale tag and its label.
func (n *Normalizer) Normalize(ctx context.Context, query string) (*NormalizedQuery, error) {
	tag := DetectLanguage(n.chain, query)

	vector, err := n.generator.EmbedQuery(ctx, query)
	if err != nil {
		n.logger.Error("error encoding query", "locale", tag, "err", err)
		return nil, err
	}

	n.logger.Debug("normalized query", "locale", tag, "dimensions", len(vector))

	return &NormalizedQuery{
		Vector: vector,
		Locale: tag,
		Label:  Label(tag),
	}, nil
}
