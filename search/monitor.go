package search

import "github.com/tavolo/dishsearch/storage"

// SearchMonitor provides hooks to observe the text search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	QueryNormalized(locale string, dimensions int)
	AfterVectorSearch(neighbors []storage.Neighbor)
	Finish(matches []Match)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) QueryNormalized(_ string, _ int)        {}
func (n *noopMonitor) AfterVectorSearch(_ []storage.Neighbor) {}
func (n *noopMonitor) Finish(_ []Match)                       {}
