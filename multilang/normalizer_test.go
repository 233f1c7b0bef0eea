package multilang

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/dishsearch/embedding"
	"github.com/tavolo/dishsearch/embedding/mock"
)

func newTestNormalizer(t *testing.T, embedder *mock.MockEmbedder) *Normalizer {
	t.Helper()
	generator, err := embedding.NewGenerator(embedder)
	require.NoError(t, err)
	normalizer, err := NewNormalizer(generator)
	require.NoError(t, err)
	return normalizer
}

func TestNormalizeReturnsVectorAndLabel(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	normalizer := newTestNormalizer(t, embedder)

	result, err := normalizer.Normalize(context.Background(), "I want a spicy chicken burger")
	require.NoError(t, err)

	assert.Len(t, result.Vector, 384)
	assert.Equal(t, TagEnglish, result.Locale)
	assert.Equal(t, Label(TagEnglish), result.Label)
	assert.Equal(t, 1, embedder.CallCount())
}

func TestNormalizeEmbedsOriginalText(t *testing.T) {
	var captured string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		captured = text
		return []float32{0.1, 0.2}, nil
	}
	normalizer := newTestNormalizer(t, embedder)

	// Punctuation is stripped for detection only; the embedder must see
	// the query verbatim.
	query := "what's the best pizza, please?"
	_, err := normalizer.Normalize(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, query, captured)
}

func TestNormalizeMarkerOverride(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	normalizer := newTestNormalizer(t, embedder)

	result, err := normalizer.Normalize(context.Background(), "bghit tabaq dyal djaj har")
	require.NoError(t, err)

	assert.Equal(t, TagDarija, result.Locale)
	assert.Equal(t, Label(TagDarija), result.Label)
}

func TestNormalizePropagatesEmbedderError(t *testing.T) {
	wantErr := errors.New("backend unreachable")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, wantErr
	}
	normalizer := newTestNormalizer(t, embedder)

	_, err := normalizer.Normalize(context.Background(), "any query")
	assert.ErrorIs(t, err, wantErr)
}

func TestNewNormalizerRequiresGenerator(t *testing.T) {
	_, err := NewNormalizer(nil)
	assert.ErrorIs(t, err, embedding.ErrEmbedderRequired)
}
