package kmeans

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/golang/geo/r3"
)

// DefaultMaxIterations caps the number of passes when no limit is given.
const DefaultMaxIterations = 100

// State is the clustering driver state.
type State int

const (
	StateInitializing State = iota
	StateIterating
	StateConverged
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IterationStats is reported after every pass.
type IterationStats struct {
	// Iteration is 1-based.
	Iteration int
	// Moved is the number of centroids whose position changed.
	Moved int
	// Empty lists the centroids that received no weight in this pass.
	Empty []int
	// Pass holds the work counters of the assignment pass.
	Pass PassStats
	// Centroids is the palette after the update. Only valid during the callback.
	Centroids []r3.Vector
}

// Config controls the clustering driver.
type Config struct {
	// MaxIterations caps the number of passes. Defaults to DefaultMaxIterations.
	MaxIterations int
	// OnIteration, if set, is called after each pass.
	OnIteration func(IterationStats)
}

// Result describes a finished clustering run.
type Result struct {
	// Centroids is the final palette (the slice passed to Run, updated in place).
	Centroids []r3.Vector
	// Iterations is the number of passes performed.
	Iterations int
	// State is StateConverged or StateExhausted.
	State State
	// EmptyClusters is the number of centroids that were empty in the last pass.
	EmptyClusters int
	// Degenerate holds every centroid id that was empty in at least one pass.
	Degenerate *roaring.Bitmap
}

// Converged reports whether the run stopped because no centroid moved.
func (r *Result) Converged() bool {
	return r.State == StateConverged
}

// Run iterates assignment passes and centroid updates until no centroid
// moves or the iteration cap is reached. centroids is updated in place.
// Centroids that receive no weight keep their previous position.
func Run(ctx context.Context, a Assigner, centroids []r3.Vector, cfg Config) (*Result, error) {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	res := &Result{
		Centroids:  centroids,
		State:      StateInitializing,
		Degenerate: roaring.New(),
	}
	acc := make([]Accumulator, len(centroids))
	total := a.TotalWeight()

	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.State = StateIterating

		for i := range acc {
			acc[i].Reset()
		}

		pass := a.Assign(centroids, acc)

		var assigned uint64
		for i := range acc {
			assigned += acc[i].Weight
		}
		if assigned != total {
			panic(fmt.Sprintf("kmeans: pass assigned weight %d, expected %d", assigned, total))
		}

		moved, empty := update(centroids, acc)
		for _, id := range empty {
			res.Degenerate.Add(uint32(id))
		}
		res.Iterations = iter
		res.EmptyClusters = len(empty)

		if cfg.OnIteration != nil {
			cfg.OnIteration(IterationStats{
				Iteration: iter,
				Moved:     moved,
				Empty:     empty,
				Pass:      pass,
				Centroids: centroids,
			})
		}

		if moved == 0 {
			res.State = StateConverged
			return res, nil
		}
		if iter >= maxIter {
			res.State = StateExhausted
			return res, nil
		}
	}
}

// update moves every non-empty centroid to the mean of its accumulator.
func update(centroids []r3.Vector, acc []Accumulator) (moved int, empty []int) {
	for i := range centroids {
		if acc[i].Weight == 0 {
			empty = append(empty, i)
			continue
		}
		mean := acc[i].Mean()
		if mean != centroids[i] {
			centroids[i] = mean
			moved++
		}
	}
	return moved, empty
}
