package geom

import "github.com/golang/geo/r3"

// WeightedPoint is a distinct colour together with the number of source
// pixels that share it. Weight is always at least one.
type WeightedPoint struct {
	Point  r3.Vector
	Weight uint64
}

// NewWeightedPoint creates a weighted point with the given multiplicity.
func NewWeightedPoint(x, y, z float64, weight uint64) WeightedPoint {
	return WeightedPoint{Point: r3.Vector{X: x, Y: y, Z: z}, Weight: weight}
}

// WeightedSum returns Weight * Point.
func (wp WeightedPoint) WeightedSum() r3.Vector {
	return wp.Point.Mul(float64(wp.Weight))
}

// Compare orders weighted points lexicographically by (x, y, z).
// The weight does not take part in the ordering.
func (wp WeightedPoint) Compare(other WeightedPoint) int {
	return wp.Point.Cmp(other.Point)
}
