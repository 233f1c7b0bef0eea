package badgervec

import "math"

// cosineDistance returns 1 − cosine similarity of a and b. This is the
// store's fixed distance metric: identical direction → 0, orthogonal → 1,
// opposite → 2. A zero vector has no direction and is treated as maximally
// distant (distance 1).
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}

// compareIDs orders record ids ascending. Ids are canonical decimal dish
// ids, so shorter-then-lexicographic comparison is numeric order ("9" before
// "10"); non-decimal ids still get a stable total order.
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
