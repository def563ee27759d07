package kdtree

import (
	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/geom"
)

// Stats summarises all points of a subtree.
type Stats struct {
	// Weight is the total multiplicity of the subtree.
	Weight uint64
	// Sum is the weighted coordinate sum of the subtree.
	Sum r3.Vector
	// Bounds is the bounding box of all subtree points.
	Bounds geom.Box
}

// Mean returns Sum/Weight. Must not be called on an empty subtree.
func (s Stats) Mean() r3.Vector {
	return s.Sum.Mul(1 / float64(s.Weight))
}

func (s *Stats) addPoint(wp geom.WeightedPoint) {
	s.Weight += wp.Weight
	s.Sum = s.Sum.Add(wp.WeightedSum())
	s.Bounds.ExpandToInclude(wp.Point)
}

func (s *Stats) addStats(other Stats) {
	s.Weight += other.Weight
	s.Sum = s.Sum.Add(other.Sum)
	s.Bounds.ExpandToIncludeBox(other.Bounds)
}

// computeStats fills in the Stats of id and its descendants (post-order).
func (t *Tree) computeStats(id NodeID) Stats {
	n := &t.nodes[id]
	var s Stats
	s.addPoint(n.Point)
	if n.Left != NoNode {
		s.addStats(t.computeStats(n.Left))
	}
	if n.Right != NoNode {
		s.addStats(t.computeStats(n.Right))
	}
	n.Stats = s
	return s
}
