package kdtree

import "github.com/hupe1980/colorquant/internal/geom"

// Query calls fn for every node whose point lies inside box (boundary
// inclusive) until fn returns false. Subtrees whose bounds do not intersect
// box are skipped.
func (t *Tree) Query(box geom.Box, fn func(id NodeID, n *Node) bool) {
	if box.IsEmpty() {
		return
	}
	t.query(t.root, box, fn)
}

func (t *Tree) query(id NodeID, box geom.Box, fn func(NodeID, *Node) bool) bool {
	if id == NoNode {
		return true
	}
	n := &t.nodes[id]
	if !box.Intersects(n.Stats.Bounds) {
		return true
	}
	if box.Contains(n.Point.Point) && !fn(id, n) {
		return false
	}
	if !t.query(n.Left, box, fn) {
		return false
	}
	return t.query(n.Right, box, fn)
}
