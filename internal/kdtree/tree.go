package kdtree

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/geom"
)

var (
	// ErrEmpty is returned when a tree is built from no points.
	ErrEmpty = errors.New("kdtree: no points")

	// ErrDuplicatePoint is returned when two input points share coordinates.
	ErrDuplicatePoint = errors.New("kdtree: duplicate point")

	// ErrZeroWeight is returned when an input point has zero weight.
	ErrZeroWeight = errors.New("kdtree: point with zero weight")

	// ErrNonFinite is returned when an input point has a NaN or infinite coordinate.
	ErrNonFinite = errors.New("kdtree: non-finite coordinate")
)

// NodeID addresses a node inside the tree arena.
type NodeID int32

// NoNode marks an absent child.
const NoNode NodeID = -1

// Node is a single kd-tree node.
type Node struct {
	// Point is the weighted point stored at this node.
	Point geom.WeightedPoint
	// Axis is the split axis (depth mod 3).
	Axis int
	// Left and Right are the child subtrees, NoNode if absent.
	Left, Right NodeID
	// Stats aggregates this node and all its descendants.
	Stats Stats
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// Tree is a balanced kd-tree built once over distinct weighted points.
type Tree struct {
	nodes []Node
	root  NodeID
	depth int
}

// Build constructs a balanced tree by recursive median splits that rotate
// through the x, y and z axes. Points must be distinct and carry a positive
// weight. The input slice is not modified.
func Build(points []geom.WeightedPoint) (*Tree, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	if err := Validate(points); err != nil {
		return nil, err
	}

	work := slices.Clone(points)
	t := &Tree{
		nodes: make([]Node, 0, len(work)),
	}
	t.root = t.build(work, 0)
	t.computeStats(t.root)

	return t, nil
}

// Validate reports ErrZeroWeight, ErrNonFinite or ErrDuplicatePoint for
// input that Build would reject. An empty slice is valid.
func Validate(points []geom.WeightedPoint) error {
	for i, p := range points {
		if p.Weight == 0 {
			return fmt.Errorf("%w: index %d", ErrZeroWeight, i)
		}
		if !finite(p.Point) {
			return fmt.Errorf("%w: index %d: %v", ErrNonFinite, i, p.Point)
		}
	}

	sorted := slices.Clone(points)
	slices.SortFunc(sorted, geom.WeightedPoint.Compare)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Compare(sorted[i]) == 0 {
			return fmt.Errorf("%w: %v", ErrDuplicatePoint, sorted[i].Point)
		}
	}
	return nil
}

func finite(p r3.Vector) bool {
	for _, v := range [geom.Dimensions]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// build creates the subtree for pts at the given depth and returns its id.
// The median after sorting on the depth's axis is stored at the node, the
// lower half goes left and the upper half right.
func (t *Tree) build(pts []geom.WeightedPoint, depth int) NodeID {
	if len(pts) == 0 {
		return NoNode
	}
	if depth+1 > t.depth {
		t.depth = depth + 1
	}

	axis := depth % geom.Dimensions
	if len(pts) > 1 {
		slices.SortFunc(pts, func(a, b geom.WeightedPoint) int {
			return geom.CompareOnAxis(a.Point, b.Point, axis)
		})
	}

	mid := len(pts) / 2
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Point: pts[mid],
		Axis:  axis,
		Left:  NoNode,
		Right: NoNode,
	})

	left := t.build(pts[:mid], depth+1)
	right := t.build(pts[mid+1:], depth+1)
	t.nodes[id].Left = left
	t.nodes[id].Right = right

	return id
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Len returns the number of nodes, which equals the number of input points.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Depth returns the number of levels of the tree.
func (t *Tree) Depth() int {
	return t.depth
}

// TotalWeight returns the weight of all points in the tree.
func (t *Tree) TotalWeight() uint64 {
	return t.nodes[t.root].Stats.Weight
}

// Leaves returns the number of nodes without children.
func (t *Tree) Leaves() int {
	leaves := 0
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// Walk visits the nodes in order (left subtree, node, right subtree) until
// fn returns false.
func (t *Tree) Walk(fn func(id NodeID, n *Node) bool) {
	t.walk(t.root, fn)
}

func (t *Tree) walk(id NodeID, fn func(NodeID, *Node) bool) bool {
	if id == NoNode {
		return true
	}
	n := &t.nodes[id]
	if !t.walk(n.Left, fn) {
		return false
	}
	if !fn(id, n) {
		return false
	}
	return t.walk(n.Right, fn)
}
