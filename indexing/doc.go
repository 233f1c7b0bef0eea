// Package indexing synchronizes the dish catalog with the vector store.
//
// The Indexer embeds dishes through the canonical dish-text assembly and
// writes the resulting vectors with a denormalized metadata snapshot. Batch
// operations run on a bounded worker pool and process ids independently:
// one failing dish never aborts the rest.
//
// Verify detects divergence between the two stores (missing, orphaned, and
// stale records) without re-embedding; Repair fixes a report's findings.
package indexing
