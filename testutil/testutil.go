package testutil

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/colorquant/internal/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Point returns a point with every coordinate uniform in [0, 255).
func (r *RNG) Point() r3.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointLocked()
}

func (r *RNG) pointLocked() r3.Vector {
	return r3.Vector{
		X: r.rand.Float64() * 255,
		Y: r.rand.Float64() * 255,
		Z: r.rand.Float64() * 255,
	}
}

// Points returns n points uniform in [0, 255)^3.
func (r *RNG) Points(n int) []r3.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]r3.Vector, n)
	for i := range points {
		points[i] = r.pointLocked()
	}
	return points
}

// DistinctColors generates n distinct integer RGB points with weights in
// [1, maxWeight]. n must not exceed 256^3.
func (r *RNG) DistinctColors(n int, maxWeight int) []geom.WeightedPoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint32]struct{}, n)
	points := make([]geom.WeightedPoint, 0, n)
	for len(points) < n {
		key := uint32(r.rand.Intn(1 << 24))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		points = append(points, geom.NewWeightedPoint(
			float64(key>>16), float64((key>>8)&0xff), float64(key&0xff),
			uint64(1+r.rand.Intn(maxWeight)),
		))
	}
	return points
}

// ClusteredColors generates distinct integer RGB points scattered with
// Gaussian noise around the given number of random cluster centres.
// Points that collide after rounding are merged by summing their weights.
func (r *RNG) ClusteredColors(num, clusters int, spread float64) []geom.WeightedPoint {
	centres := r.Points(clusters)

	r.mu.Lock()
	defer r.mu.Unlock()

	index := make(map[uint32]int, num)
	points := make([]geom.WeightedPoint, 0, num)
	for i := range num {
		c := centres[i%clusters]
		rr := clampChannel(c.X + r.rand.NormFloat64()*spread)
		gg := clampChannel(c.Y + r.rand.NormFloat64()*spread)
		bb := clampChannel(c.Z + r.rand.NormFloat64()*spread)
		key := uint32(rr)<<16 | uint32(gg)<<8 | uint32(bb)
		if j, ok := index[key]; ok {
			points[j].Weight++
			continue
		}
		index[key] = len(points)
		points = append(points, geom.NewWeightedPoint(float64(rr), float64(gg), float64(bb), 1))
	}
	return points
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// PaletteImage generates a w x h image whose pixels are drawn uniformly
// from a random palette of the given size.
func (r *RNG) PaletteImage(w, h, colors int) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	palette := make([]color.RGBA, colors)
	for i := range palette {
		palette[i] = color.RGBA{
			R: uint8(r.rand.Intn(256)),
			G: uint8(r.rand.Intn(256)),
			B: uint8(r.rand.Intn(256)),
			A: 0xff,
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, palette[r.rand.Intn(colors)])
		}
	}
	return img
}

// SkewedImage generates a w x h image whose pixels pick from a random
// palette with Zipfian frequency (skew s), so a few colours dominate.
func (r *RNG) SkewedImage(w, h, colors int, s float64) *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	palette := make([]color.NRGBA, colors)
	for i := range palette {
		palette[i] = color.NRGBA{
			R: uint8(r.rand.Intn(256)),
			G: uint8(r.rand.Intn(256)),
			B: uint8(r.rand.Intn(256)),
			A: 0xff,
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, palette[r.zipfLocked(colors, s)])
		}
	}
	return img
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// AssignBruteForce assigns every point to its exact nearest palette entry
// and returns the accumulated weight and weighted sum per entry.
func AssignBruteForce(points []geom.WeightedPoint, palette []r3.Vector) ([]uint64, []r3.Vector) {
	weights := make([]uint64, len(palette))
	sums := make([]r3.Vector, len(palette))
	for _, p := range points {
		i := geom.Nearest(p.Point, palette)
		weights[i] += p.Weight
		sums[i] = sums[i].Add(p.WeightedSum())
	}
	return weights, sums
}

// TotalWeight returns the sum of all point weights.
func TotalWeight(points []geom.WeightedPoint) uint64 {
	var total uint64
	for _, p := range points {
		total += p.Weight
	}
	return total
}
