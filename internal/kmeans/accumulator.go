package kmeans

import (
	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/geom"
	"github.com/hupe1980/colorquant/internal/kdtree"
)

// Accumulator collects the weight and weighted coordinate sum of all points
// assigned to one centroid during a pass.
type Accumulator struct {
	Weight uint64
	Sum    r3.Vector
}

// AddPoint adds a single weighted point.
func (a *Accumulator) AddPoint(wp geom.WeightedPoint) {
	a.Weight += wp.Weight
	a.Sum = a.Sum.Add(wp.WeightedSum())
}

// AddStats adds the aggregate of a whole subtree.
func (a *Accumulator) AddStats(s kdtree.Stats) {
	a.Weight += s.Weight
	a.Sum = a.Sum.Add(s.Sum)
}

// Mean returns the weighted mean. Must not be called when Weight is zero.
func (a Accumulator) Mean() r3.Vector {
	w := float64(a.Weight)
	return r3.Vector{X: a.Sum.X / w, Y: a.Sum.Y / w, Z: a.Sum.Z / w}
}

// Reset zeroes the accumulator.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
