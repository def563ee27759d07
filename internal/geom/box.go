package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Box is an axis-aligned 3-D bounding box.
//
// The zero value is the empty box. A non-empty box always satisfies
// Min <= Max on every axis.
type Box struct {
	Min, Max r3.Vector
	set      bool
}

// EmptyBox returns a box containing no points.
func EmptyBox() Box {
	return Box{}
}

// BoxOf returns the degenerate box around a single point.
func BoxOf(p r3.Vector) Box {
	return Box{Min: p, Max: p, set: true}
}

// NewBox returns the box spanned by two opposite corners given in any order.
func NewBox(a, b r3.Vector) Box {
	return Box{
		Min: r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
		set: true,
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return !b.set
}

// ExpandToInclude grows the box to cover p.
func (b *Box) ExpandToInclude(p r3.Vector) {
	if !b.set {
		*b = BoxOf(p)
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// ExpandToIncludeBox grows the box to cover other. Empty boxes are ignored.
func (b *Box) ExpandToIncludeBox(other Box) {
	if !other.set {
		return
	}
	if !b.set {
		*b = other
		return
	}
	b.ExpandToInclude(other.Min)
	b.ExpandToInclude(other.Max)
}

// Center returns the midpoint of the box. Must not be called on an empty box.
func (b Box) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corner returns one of the eight extremal corners. Each flag selects the
// minimum (true) or maximum (false) coordinate on its axis.
func (b Box) Corner(minX, minY, minZ bool) r3.Vector {
	c := b.Max
	if minX {
		c.X = b.Min.X
	}
	if minY {
		c.Y = b.Min.Y
	}
	if minZ {
		c.Z = b.Min.Z
	}
	return c
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box) Contains(p r3.Vector) bool {
	return b.set &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether other lies completely inside the box.
func (b Box) ContainsBox(other Box) bool {
	if !b.set || !other.set {
		return false
	}
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Intersects reports whether the two boxes share at least one point.
func (b Box) Intersects(other Box) bool {
	if !b.set || !other.set {
		return false
	}
	return other.Min.X <= b.Max.X && other.Max.X >= b.Min.X &&
		other.Min.Y <= b.Max.Y && other.Max.Y >= b.Min.Y &&
		other.Min.Z <= b.Max.Z && other.Max.Z >= b.Min.Z
}

// Intersection returns the overlap of both boxes, or the empty box.
func (b Box) Intersection(other Box) Box {
	if !b.Intersects(other) {
		return Box{}
	}
	return Box{
		Min: r3.Vector{X: math.Max(b.Min.X, other.Min.X), Y: math.Max(b.Min.Y, other.Min.Y), Z: math.Max(b.Min.Z, other.Min.Z)},
		Max: r3.Vector{X: math.Min(b.Max.X, other.Max.X), Y: math.Min(b.Max.Y, other.Max.Y), Z: math.Min(b.Max.Z, other.Max.Z)},
		set: true,
	}
}

// SquaredDistance returns the squared distance from p to the closest point
// of the box; zero when p is inside. Infinite for an empty box.
func (b Box) SquaredDistance(p r3.Vector) float64 {
	if !b.set {
		return math.Inf(1)
	}
	dx := axisGap(p.X, b.Min.X, b.Max.X)
	dy := axisGap(p.Y, b.Min.Y, b.Max.Y)
	dz := axisGap(p.Z, b.Min.Z, b.Max.Z)
	return dx*dx + dy*dy + dz*dz
}

func axisGap(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}
