package colorquant

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/colorquant/internal/geom"
)

// Distortion returns the mean squared error of replacing every pixel by
// its nearest palette entry. Each distinct color counts with its weight.
// It returns 0 for an empty histogram and +Inf for an empty palette.
func Distortion(points []WeightedColor, palette []r3.Vector) float64 {
	if len(points) == 0 {
		return 0
	}

	dist := make([]float64, len(points))
	weights := make([]float64, len(points))
	for i, p := range points {
		weights[i] = float64(p.Weight)
		j := geom.Nearest(p.Point, palette)
		if j < 0 {
			dist[i] = math.Inf(1)
			continue
		}
		dist[i] = geom.SquaredDistance(p.Point, palette[j])
	}
	return stat.Mean(dist, weights)
}
