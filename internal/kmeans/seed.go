package kmeans

import (
	"math/rand"
	"slices"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/geom"
)

// RandomSample picks k distinct points uniformly without replacement.
// k must not exceed len(points).
func RandomSample(points []geom.WeightedPoint, k int, rng *rand.Rand) []r3.Vector {
	perm := rng.Perm(len(points))
	centroids := make([]r3.Vector, k)
	for i := range k {
		centroids[i] = points[perm[i]].Point
	}
	return centroids
}

// MostFrequent returns the k heaviest points, ordered by descending weight.
// Equal weights are ordered lexicographically by colour.
// k must not exceed len(points).
func MostFrequent(points []geom.WeightedPoint, k int) []r3.Vector {
	ranked := slices.Clone(points)
	slices.SortFunc(ranked, func(a, b geom.WeightedPoint) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return a.Compare(b)
		}
	})

	centroids := make([]r3.Vector, k)
	for i := range k {
		centroids[i] = ranked[i].Point
	}
	return centroids
}
