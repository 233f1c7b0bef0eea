package embedding

import "context"

// Embedder encodes text into fixed-length vectors for similarity search.
// Implementations must be thread-safe and deterministic at inference time:
// identical input text must produce an identical vector.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice matches the input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider owns an Embedder's lifecycle. It replaces the lazy process-wide
// singleton pattern: the caller creates it once, injects it where needed,
// and disposes it on shutdown.
type Provider interface {
	// Embedder returns the text embedding service, safe for concurrent use.
	Embedder() Embedder

	// Dimensions returns the fixed output dimensionality D of the embedding
	// model. D is fixed for the lifetime of a deployed index; changing it
	// invalidates the vector store and requires a full reindex.
	Dimensions() int

	// Close releases resources held by the provider and its services.
	Close() error
}
