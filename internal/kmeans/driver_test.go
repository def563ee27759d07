package kmeans

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colorquant/internal/geom"
	"github.com/hupe1980/colorquant/internal/kdtree"
	"github.com/hupe1980/colorquant/testutil"
)

func fourColors() []geom.WeightedPoint {
	return []geom.WeightedPoint{
		geom.NewWeightedPoint(0, 0, 0, 100),
		geom.NewWeightedPoint(10, 10, 10, 50),
		geom.NewWeightedPoint(250, 250, 250, 80),
		geom.NewWeightedPoint(255, 255, 255, 70),
	}
}

func assigners(t *testing.T, points []geom.WeightedPoint, k int) map[string]Assigner {
	t.Helper()
	tree, err := kdtree.Build(points)
	require.NoError(t, err)
	return map[string]Assigner{
		"filter": NewFilter(tree, k),
		"lloyd":  NewBruteForce(points),
	}
}

func TestRun_TwoClusters(t *testing.T) {
	for name, a := range assigners(t, fourColors(), 2) {
		t.Run(name, func(t *testing.T) {
			centroids := []r3.Vector{{}, {X: 255, Y: 255, Z: 255}}

			var history []IterationStats
			res, err := Run(context.Background(), a, centroids, Config{
				OnIteration: func(s IterationStats) {
					s.Centroids = slices.Clone(s.Centroids)
					history = append(history, s)
				},
			})
			require.NoError(t, err)
			require.Len(t, history, 2)

			dark := (0*100 + 10*50) / 150.0
			light := (250*80 + 255*70) / 150.0

			first := history[0]
			assert.Equal(t, 2, first.Moved)
			assert.Empty(t, first.Empty)
			assert.Equal(t, r3.Vector{X: dark, Y: dark, Z: dark}, first.Centroids[0])
			assert.Equal(t, r3.Vector{X: light, Y: light, Z: light}, first.Centroids[1])

			assert.Equal(t, 0, history[1].Moved)
			assert.Equal(t, StateConverged, res.State)
			assert.True(t, res.Converged())
			assert.Equal(t, 2, res.Iterations)
			assert.Equal(t, first.Centroids, res.Centroids)
			assert.True(t, res.Degenerate.IsEmpty())
		})
	}
}

func TestRun_EveryColorOwnCentroid(t *testing.T) {
	rng := testutil.NewRNG(4711)
	points := rng.DistinctColors(50, 5)

	for name, a := range assigners(t, points, len(points)) {
		t.Run(name, func(t *testing.T) {
			centroids := make([]r3.Vector, len(points))
			for i, p := range points {
				centroids[i] = p.Point
			}

			res, err := Run(context.Background(), a, centroids, Config{})
			require.NoError(t, err)

			assert.Equal(t, StateConverged, res.State)
			assert.Equal(t, 1, res.Iterations)
			assert.Equal(t, 0, res.EmptyClusters)
			for i, p := range points {
				assert.Equal(t, p.Point, res.Centroids[i])
			}
		})
	}
}

func TestRun_FixedPointIsIdempotent(t *testing.T) {
	rng := testutil.NewRNG(11)
	points := rng.ClusteredColors(4000, 6, 15)
	k := 8

	for name, a := range assigners(t, points, k) {
		t.Run(name, func(t *testing.T) {
			centroids := RandomSample(points, k, rand.New(rand.NewSource(1)))
			res, err := Run(context.Background(), a, centroids, Config{MaxIterations: 500})
			require.NoError(t, err)
			require.True(t, res.Converged())

			fixed := slices.Clone(res.Centroids)
			again, err := Run(context.Background(), a, slices.Clone(fixed), Config{})
			require.NoError(t, err)

			assert.Equal(t, StateConverged, again.State)
			assert.Equal(t, 1, again.Iterations)
			assert.Equal(t, fixed, again.Centroids)
		})
	}
}

func TestRun_EmptyClusterKeepsPosition(t *testing.T) {
	for name, a := range assigners(t, fourColors(), 3) {
		t.Run(name, func(t *testing.T) {
			far := r3.Vector{X: 1000, Y: 1000, Z: 1000}
			centroids := []r3.Vector{{}, {X: 255, Y: 255, Z: 255}, far}

			var empties [][]int
			res, err := Run(context.Background(), a, centroids, Config{
				OnIteration: func(s IterationStats) {
					empties = append(empties, s.Empty)
				},
			})
			require.NoError(t, err)

			assert.Equal(t, StateConverged, res.State)
			assert.Equal(t, far, res.Centroids[2])
			assert.Equal(t, 1, res.EmptyClusters)
			assert.True(t, res.Degenerate.Contains(2))
			assert.Equal(t, uint64(1), res.Degenerate.GetCardinality())
			for _, e := range empties {
				assert.Equal(t, []int{2}, e)
			}
		})
	}
}

func TestRun_Exhausted(t *testing.T) {
	for name, a := range assigners(t, fourColors(), 2) {
		t.Run(name, func(t *testing.T) {
			centroids := []r3.Vector{{}, {X: 255, Y: 255, Z: 255}}

			res, err := Run(context.Background(), a, centroids, Config{MaxIterations: 1})
			require.NoError(t, err)

			assert.Equal(t, StateExhausted, res.State)
			assert.False(t, res.Converged())
			assert.Equal(t, 1, res.Iterations)
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewBruteForce(fourColors())
	res, err := Run(ctx, a, []r3.Vector{{}}, Config{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Iterations)
}

func TestRun_FilterMatchesLloyd(t *testing.T) {
	rng := testutil.NewRNG(4711)
	points := rng.ClusteredColors(10000, 12, 20)
	k := 16

	tree, err := kdtree.Build(points)
	require.NoError(t, err)

	seed := RandomSample(points, k, rand.New(rand.NewSource(5)))

	filtered, err := Run(context.Background(), NewFilter(tree, k), slices.Clone(seed), Config{})
	require.NoError(t, err)
	lloyd, err := Run(context.Background(), NewBruteForce(points), slices.Clone(seed), Config{})
	require.NoError(t, err)

	assert.Equal(t, lloyd.Iterations, filtered.Iterations)
	assert.Equal(t, lloyd.State, filtered.State)
	for i := range k {
		assert.InDelta(t, lloyd.Centroids[i].X, filtered.Centroids[i].X, 1e-9)
		assert.InDelta(t, lloyd.Centroids[i].Y, filtered.Centroids[i].Y, 1e-9)
		assert.InDelta(t, lloyd.Centroids[i].Z, filtered.Centroids[i].Z, 1e-9)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "iterating", StateIterating.String())
	assert.Equal(t, "converged", StateConverged.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "State(42)", State(42).String())
}
