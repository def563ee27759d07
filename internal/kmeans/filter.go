package kmeans

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/bitset"
	"github.com/hupe1980/colorquant/internal/geom"
	"github.com/hupe1980/colorquant/internal/kdtree"
)

// PassStats describes the work done by one assignment pass.
type PassStats struct {
	// Visited is the number of tree nodes (or points) examined.
	Visited int
	// Pruned is the number of candidates removed by the farther test.
	Pruned int
	// Bulk is the number of subtrees assigned to a single candidate at once.
	Bulk int
}

// Assigner performs one assignment pass: every unit of weight is added to
// the accumulator of exactly one centroid.
type Assigner interface {
	Assign(centroids []r3.Vector, acc []Accumulator) PassStats
	TotalWeight() uint64
}

// Filter is the kd-tree filtering assignment pass.
//
// A Filter is bound to one tree and one palette size. It keeps one
// candidate set per tree level, so descending clones the parent's set into
// the next level's buffer and siblings never observe each other's pruning.
// Not safe for concurrent use.
type Filter struct {
	tree    *kdtree.Tree
	k       int
	scratch []*bitset.Set

	centroids []r3.Vector
	acc       []Accumulator
	stats     PassStats
}

// NewFilter prepares a filtering pass over tree for k centroids.
func NewFilter(tree *kdtree.Tree, k int) *Filter {
	scratch := make([]*bitset.Set, tree.Depth()+1)
	for i := range scratch {
		scratch[i] = bitset.New(k)
	}
	return &Filter{
		tree:    tree,
		k:       k,
		scratch: scratch,
	}
}

// TotalWeight implements Assigner.
func (f *Filter) TotalWeight() uint64 {
	return f.tree.TotalWeight()
}

// Assign implements Assigner. acc must hold len(centroids) zeroed entries.
func (f *Filter) Assign(centroids []r3.Vector, acc []Accumulator) PassStats {
	if len(centroids) != f.k || len(acc) != f.k {
		panic(fmt.Sprintf("kmeans: filter built for %d centroids, got %d centroids and %d accumulators", f.k, len(centroids), len(acc)))
	}

	f.centroids = centroids
	f.acc = acc
	f.stats = PassStats{}

	all := f.scratch[0]
	all.Fill()
	f.filter(f.tree.Root(), all, 1)

	f.centroids = nil
	f.acc = nil
	return f.stats
}

// filter assigns the subtree rooted at id using the candidates in cand.
// cand is read-only here; pruning happens on the copy at scratch[level].
func (f *Filter) filter(id kdtree.NodeID, cand *bitset.Set, level int) {
	if id == kdtree.NoNode {
		return
	}
	f.stats.Visited++

	n := f.tree.Node(id)
	if n.IsLeaf() {
		best := f.nearest(cand, n.Point.Point)
		f.acc[best].AddPoint(n.Point)
		return
	}

	cell := n.Stats.Bounds
	best := f.nearest(cand, cell.Center())
	z := f.centroids[best]

	next := f.scratch[level]
	next.CopyFrom(cand)
	for c := cand.Next(0); c >= 0; c = cand.Next(c + 1) {
		if c != best && Farther(cell, z, f.centroids[c]) {
			next.Remove(c)
			f.stats.Pruned++
		}
	}

	if _, ok := next.Single(); ok {
		f.acc[best].AddStats(n.Stats)
		f.stats.Bulk++
		return
	}

	// Several candidates survive: only the node's own point is assigned
	// here, the rest of the subtree is resolved by the recursion.
	own := f.nearest(next, n.Point.Point)
	f.acc[own].AddPoint(n.Point)

	f.filter(n.Left, next, level+1)
	f.filter(n.Right, next, level+1)
}

// nearest returns the candidate closest to p. Ties resolve to the lowest id.
func (f *Filter) nearest(cand *bitset.Set, p r3.Vector) int {
	best := -1
	bestDist := math.Inf(1)
	for c := cand.Next(0); c >= 0; c = cand.Next(c + 1) {
		if d := geom.SquaredDistance(p, f.centroids[c]); d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best < 0 {
		panic("kmeans: empty candidate set")
	}
	return best
}

// Farther reports whether every point of cell is strictly closer to best
// than to cand. It tests the single corner of cell lying furthest in the
// direction from best towards cand.
func Farther(cell geom.Box, best, cand r3.Vector) bool {
	vh := cell.Corner(cand.X < best.X, cand.Y < best.Y, cand.Z < best.Z)
	return geom.SquaredDistance(vh, cand) > geom.SquaredDistance(vh, best)
}
