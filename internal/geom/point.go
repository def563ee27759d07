package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Dimensions is the fixed dimensionality of the colour space.
const Dimensions = 3

// Coord returns the coordinate of p on the given axis (0=x, 1=y, 2=z).
func Coord(p r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	default:
		panic(fmt.Sprintf("geom: invalid axis %d", axis))
	}
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b r3.Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// Nearest returns the index of the palette entry closest to p.
// Ties resolve to the lowest index. Returns -1 for an empty palette.
func Nearest(p r3.Vector, palette []r3.Vector) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range palette {
		if d := SquaredDistance(p, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// CompareOnAxis orders a and b by the given axis and breaks ties with the
// remaining axes in rotation order (axis+1, axis+2).
func CompareOnAxis(a, b r3.Vector, axis int) int {
	for i := 0; i < Dimensions; i++ {
		ax := (axis + i) % Dimensions
		ca, cb := Coord(a, ax), Coord(b, ax)
		if ca < cb {
			return -1
		}
		if ca > cb {
			return 1
		}
	}
	return 0
}
