package kmeans

import (
	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/geom"
)

// BruteForce is the classic Lloyd assignment pass: every distinct point is
// compared against every centroid.
type BruteForce struct {
	points []geom.WeightedPoint
	total  uint64
}

// NewBruteForce creates a Lloyd assignment pass over points.
func NewBruteForce(points []geom.WeightedPoint) *BruteForce {
	var total uint64
	for _, p := range points {
		total += p.Weight
	}
	return &BruteForce{
		points: points,
		total:  total,
	}
}

// TotalWeight implements Assigner.
func (b *BruteForce) TotalWeight() uint64 {
	return b.total
}

// Assign implements Assigner.
func (b *BruteForce) Assign(centroids []r3.Vector, acc []Accumulator) PassStats {
	for _, p := range b.points {
		acc[geom.Nearest(p.Point, centroids)].AddPoint(p)
	}
	return PassStats{Visited: len(b.points)}
}
