package kmeans

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/colorquant/internal/geom"
	"github.com/hupe1980/colorquant/testutil"
)

func TestRandomSample(t *testing.T) {
	points := testutil.NewRNG(4711).DistinctColors(200, 3)

	a := RandomSample(points, 20, rand.New(rand.NewSource(1)))
	b := RandomSample(points, 20, rand.New(rand.NewSource(1)))
	assert.Equal(t, a, b, "same seed must give the same sample")

	seen := make(map[r3.Vector]bool)
	for _, c := range a {
		assert.False(t, seen[c], "sample without replacement")
		seen[c] = true
	}

	all := RandomSample(points, len(points), rand.New(rand.NewSource(2)))
	assert.Len(t, all, len(points))
}

func TestMostFrequent(t *testing.T) {
	points := []geom.WeightedPoint{
		geom.NewWeightedPoint(5, 5, 5, 10),
		geom.NewWeightedPoint(1, 1, 1, 50),
		geom.NewWeightedPoint(3, 3, 3, 10),
		geom.NewWeightedPoint(9, 9, 9, 2),
	}

	got := MostFrequent(points, 3)

	assert.Equal(t, []r3.Vector{
		{X: 1, Y: 1, Z: 1},
		{X: 3, Y: 3, Z: 3},
		{X: 5, Y: 5, Z: 5},
	}, got)
	assert.Equal(t, uint64(50), points[1].Weight, "input must not be reordered")
	assert.Equal(t, r3.Vector{X: 5, Y: 5, Z: 5}, points[0].Point)
}
