package indexing

import (
	"context"
	"strconv"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/embedding"
)

// Report describes divergence between the catalog and the vector store.
// Divergence is a non-fatal signal: searches keep working, but Missing
// dishes are invisible to similarity search and Stale ones rank against an
// outdated embedding until reindexed.
type Report struct {
	// Missing holds dish ids present in the catalog with no vector record.
	Missing []int64

	// Orphaned holds vector-store ids with no corresponding dish.
	Orphaned []string

	// Stale holds dish ids whose stored fingerprint no longer matches the
	// dish's current embedding text.
	Stale []int64
}

// Clean reports whether the two stores are fully consistent.
func (r *Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Orphaned) == 0 && len(r.Stale) == 0
}

// Verify reconciles the catalog against the vector store without
// re-embedding anything: staleness is detected by comparing the stored
// fingerprint with a fingerprint of the dish's current embedding text.
func (ix *Indexer) Verify(ctx context.Context) (*Report, error) {
	dishIDs, err := ix.catalog.ListDishIDs(ctx)
	if err != nil {
		return nil, err
	}
	vectorIDs, err := ix.vectors.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	indexed := make(map[string]bool, len(vectorIDs))
	for _, id := range vectorIDs {
		indexed[id] = true
	}
	known := make(map[string]bool, len(dishIDs))

	report := &Report{}
	for _, dishID := range dishIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectorID := strconv.FormatInt(dishID, 10)
		known[vectorID] = true

		if !indexed[vectorID] {
			report.Missing = append(report.Missing, dishID)
			continue
		}

		stale, err := ix.isStale(ctx, dishID, vectorID)
		if err != nil {
			return nil, err
		}
		if stale {
			report.Stale = append(report.Stale, dishID)
		}
	}

	for _, vectorID := range vectorIDs {
		if !known[vectorID] {
			report.Orphaned = append(report.Orphaned, vectorID)
		}
	}

	if !report.Clean() {
		ix.logger.Warn("catalog and vector store diverged",
			"missing", len(report.Missing),
			"orphaned", len(report.Orphaned),
			"stale", len(report.Stale))
	}
	return report, nil
}

func (ix *Indexer) isStale(ctx context.Context, dishID int64, vectorID string) (bool, error) {
	record, err := ix.vectors.Get(ctx, vectorID)
	if err != nil {
		return false, err
	}
	profile, err := ix.catalog.GetDishProfile(ctx, dishID)
	if err != nil {
		return false, err
	}
	want := core.Fingerprint(embedding.DishText(profile))
	return record.Metadata["fingerprint"] != want, nil
}

// Repair reindexes every Missing and Stale dish and deletes every Orphaned
// vector record from a prior Verify report.
func (ix *Indexer) Repair(ctx context.Context, report *Report) error {
	ids := make([]int64, 0, len(report.Missing)+len(report.Stale))
	ids = append(ids, report.Missing...)
	ids = append(ids, report.Stale...)
	if err := ix.IndexDishes(ctx, ids); err != nil {
		return err
	}
	for _, vectorID := range report.Orphaned {
		if err := ix.vectors.Delete(ctx, vectorID); err != nil {
			return err
		}
	}
	return nil
}
