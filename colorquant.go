package colorquant

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/golang/geo/r3"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hupe1980/colorquant/internal/geom"
	"github.com/hupe1980/colorquant/internal/histogram"
	"github.com/hupe1980/colorquant/internal/kdtree"
	"github.com/hupe1980/colorquant/internal/kmeans"
)

// WeightedColor is a distinct RGB color (channels in [0, 255]) together
// with the number of pixels that carry it.
type WeightedColor = geom.WeightedPoint

// State is the terminal state of a clustering run.
type State = kmeans.State

const (
	StateInitializing = kmeans.StateInitializing
	StateIterating    = kmeans.StateIterating
	StateConverged    = kmeans.StateConverged
	StateExhausted    = kmeans.StateExhausted
)

// Method selects how the palette is chosen.
type Method int

const (
	// MethodFiltering runs k-means with the kd-tree filtering algorithm.
	MethodFiltering Method = iota
	// MethodLloyd runs brute-force weighted k-means.
	MethodLloyd
	// MethodMostFrequent takes the most frequent colors. No clustering.
	MethodMostFrequent
	// MethodRandom takes a random sample of the distinct colors. No clustering.
	MethodRandom
)

func (m Method) String() string {
	switch m {
	case MethodFiltering:
		return "filtering"
	case MethodLloyd:
		return "lloyd"
	case MethodMostFrequent:
		return "most-frequent"
	case MethodRandom:
		return "random"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the method with the given name.
func ParseMethod(s string) (Method, error) {
	for m := MethodFiltering; m <= MethodRandom; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfiguration, s)
}

func (m Method) valid() bool {
	return m >= MethodFiltering && m <= MethodRandom
}

func (m Method) clusters() bool {
	return m == MethodFiltering || m == MethodLloyd
}

// Iteration describes one clustering pass.
type Iteration struct {
	// Number is 1-based.
	Number        int
	Moved         int
	EmptyClusters int
	Visited       int
	Pruned        int
	Bulk          int
	// Distortion is the mean squared error after the pass, or -1 when
	// distortion tracking is disabled.
	Distortion float64
}

// Result is a quantized palette.
type Result struct {
	// Centroids holds the palette in RGB space with channels in [0, 255].
	Centroids []r3.Vector
	Method    Method
	// Iterations is the number of clustering passes (0 for methods that do
	// not cluster).
	Iterations int
	// Converged is false when the iteration cap stopped the run.
	Converged bool
	State     State
	// EmptyClusters is the number of entries that received no color in the
	// last pass. They keep their previous value.
	EmptyClusters int
	// Degenerate holds every palette index that was empty in at least one pass.
	Degenerate *roaring.Bitmap
	// DistinctColors is the number of distinct input colors.
	DistinctColors int
	// Pixels is the total input weight.
	Pixels uint64
	// Distortion is the mean squared error of mapping every pixel to its
	// nearest palette entry.
	Distortion float64
	// History has one entry per clustering pass.
	History []Iteration
}

// Palette returns the centroids rounded to 8-bit opaque colors.
func (r *Result) Palette() color.Palette {
	p := make(color.Palette, len(r.Centroids))
	for i, c := range r.Centroids {
		p[i] = color.NRGBA{R: channel(c.X), G: channel(c.Y), B: channel(c.Z), A: 0xff}
	}
	return p
}

// Index returns the index of the centroid nearest to c.
func (r *Result) Index(c color.Color) int {
	return geom.Nearest(colorToVector(c), r.Centroids)
}

// Hex returns the palette as "#rrggbb" strings.
func (r *Result) Hex() []string {
	out := make([]string, len(r.Centroids))
	for i, c := range r.Centroids {
		out[i] = colorful.Color{R: c.X / 255, G: c.Y / 255, B: c.Z / 255}.Clamped().Hex()
	}
	return out
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(int(v + 0.5))
	}
}

func colorToVector(c color.Color) r3.Vector {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return r3.Vector{X: float64(n.R), Y: float64(n.G), Z: float64(n.B)}
}

// Histogram returns the distinct colors of img sorted by (r, g, b).
// The image is scanned in parallel row chunks.
func Histogram(ctx context.Context, img image.Image, optFns ...Option) ([]WeightedColor, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}
	return extract(ctx, img, &o)
}

func extract(ctx context.Context, img image.Image, o *options) ([]WeightedColor, error) {
	if img == nil {
		return nil, ErrEmptyInput
	}
	pixels := img.Bounds().Dx() * img.Bounds().Dy()

	start := time.Now()
	points, err := histogram.Extract(ctx, img, histogram.Options{Workers: o.workers})
	elapsed := time.Since(start)
	o.metricsCollector.RecordExtract(pixels, len(points), elapsed, err)
	o.logger.LogExtract(ctx, pixels, len(points), o.workers, elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("extract colors: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	return points, nil
}

// Quantize computes a palette for img.
//
// Example:
//
//	res, err := colorquant.Quantize(ctx, img,
//	    colorquant.WithPaletteSize(16),
//	    colorquant.WithMethod(colorquant.MethodFiltering),
//	)
//	if err != nil {
//	    return err
//	}
//	pal := res.Palette()
func Quantize(ctx context.Context, img image.Image, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, err := func() (*Result, error) {
		if err := o.validate(); err != nil {
			return nil, err
		}
		points, err := extract(ctx, img, &o)
		if err != nil {
			return nil, err
		}
		return quantize(ctx, points, &o)
	}()

	o.finish(ctx, res, time.Since(start), err)
	return res, err
}

// QuantizePoints computes a palette for an already extracted color
// histogram. Points must be distinct with positive weights.
func QuantizePoints(ctx context.Context, points []WeightedColor, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, err := func() (*Result, error) {
		if err := o.validate(); err != nil {
			return nil, err
		}
		if len(points) == 0 {
			return nil, ErrEmptyInput
		}
		if err := kdtree.Validate(points); err != nil {
			return nil, translateError(err)
		}
		return quantize(ctx, points, &o)
	}()

	o.finish(ctx, res, time.Since(start), err)
	return res, err
}

func (o *options) finish(ctx context.Context, res *Result, elapsed time.Duration, err error) {
	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	o.metricsCollector.RecordQuantize(iterations, elapsed, err)
	o.logger.WithMethod(o.method).LogQuantize(ctx, res, elapsed, err)
}

func quantize(ctx context.Context, points []WeightedColor, o *options) (*Result, error) {
	n, err := o.resolvePaletteSize(len(points))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Method:         o.method,
		DistinctColors: len(points),
		Degenerate:     roaring.New(),
	}
	for _, p := range points {
		res.Pixels += p.Weight
	}

	rng := rand.New(rand.NewSource(o.seed)) //nolint:gosec // deterministic seeding, not security sensitive

	switch o.method {
	case MethodMostFrequent:
		res.Centroids = kmeans.MostFrequent(points, n)
		res.State = StateConverged
		res.Converged = true
	case MethodRandom:
		res.Centroids = kmeans.RandomSample(points, n, rng)
		res.State = StateConverged
		res.Converged = true
	case MethodLloyd, MethodFiltering:
		centroids := o.seedCentroids(points, n, rng)
		assigner, err := o.assigner(ctx, points, n)
		if err != nil {
			return nil, err
		}
		if err := o.cluster(ctx, res, assigner, points, centroids); err != nil {
			return nil, err
		}
	}

	res.Distortion = Distortion(points, res.Centroids)
	return res, nil
}

// resolvePaletteSize applies the palette size rules against the number of
// distinct colors.
func (o *options) resolvePaletteSize(distinct int) (int, error) {
	if o.initialPalette != nil {
		n := len(o.initialPalette)
		if n > distinct {
			return 0, &ErrPaletteSize{Requested: n, Distinct: distinct}
		}
		return n, nil
	}
	n := o.paletteSize
	if !o.paletteSizeSet {
		return min(n, distinct), nil
	}
	if n <= 0 || n > distinct {
		return 0, &ErrPaletteSize{Requested: n, Distinct: distinct}
	}
	return n, nil
}

func (o *options) seedCentroids(points []WeightedColor, n int, rng *rand.Rand) []r3.Vector {
	if o.initialPalette == nil {
		return kmeans.RandomSample(points, n, rng)
	}
	centroids := make([]r3.Vector, len(o.initialPalette))
	for i, c := range o.initialPalette {
		centroids[i] = colorToVector(c)
	}
	return centroids
}

func (o *options) assigner(ctx context.Context, points []WeightedColor, n int) (kmeans.Assigner, error) {
	if o.method == MethodLloyd {
		return kmeans.NewBruteForce(points), nil
	}

	start := time.Now()
	tree, err := kdtree.Build(points)
	if err != nil {
		return nil, translateError(err)
	}
	elapsed := time.Since(start)
	o.metricsCollector.RecordBuild(tree.Len(), elapsed)
	o.logger.LogBuild(ctx, tree.Len(), tree.Depth(), elapsed)

	return kmeans.NewFilter(tree, n), nil
}

func (o *options) cluster(ctx context.Context, res *Result, a kmeans.Assigner, points []WeightedColor, centroids []r3.Vector) error {
	logger := o.logger.WithMethod(o.method).WithPaletteSize(len(centroids))

	cfg := kmeans.Config{
		MaxIterations: o.maxIterations,
		OnIteration: func(s kmeans.IterationStats) {
			it := Iteration{
				Number:        s.Iteration,
				Moved:         s.Moved,
				EmptyClusters: len(s.Empty),
				Visited:       s.Pass.Visited,
				Pruned:        s.Pass.Pruned,
				Bulk:          s.Pass.Bulk,
				Distortion:    -1,
			}
			if o.trackDistortion {
				it.Distortion = Distortion(points, s.Centroids)
			}
			for _, id := range s.Empty {
				logger.LogEmptyCluster(ctx, s.Iteration, id)
			}
			logger.LogIteration(ctx, it)
			o.metricsCollector.RecordIteration(it.Moved, it.EmptyClusters, it.Pruned, it.Bulk)
			res.History = append(res.History, it)
		},
	}

	kr, err := kmeans.Run(ctx, a, centroids, cfg)
	if err != nil {
		return fmt.Errorf("cluster: %w", err)
	}

	res.Centroids = kr.Centroids
	res.Iterations = kr.Iterations
	res.State = kr.State
	res.Converged = kr.Converged()
	res.EmptyClusters = kr.EmptyClusters
	res.Degenerate = kr.Degenerate
	return nil
}
