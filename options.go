package colorquant

import (
	"fmt"
	"image/color"
	"log/slog"
	"runtime"

	"github.com/hupe1980/colorquant/internal/kmeans"
)

// DefaultPaletteSize is the palette size used when none is configured.
const DefaultPaletteSize = 256

type options struct {
	paletteSize      int
	paletteSizeSet   bool
	maxIterations    int
	method           Method
	seed             int64
	initialPalette   []color.Color
	workers          int
	trackDistortion  bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Quantize and QuantizePoints.
type Option func(*options)

// WithPaletteSize sets the number of palette colors.
//
// An explicit size must lie in [1, distinct colors]; otherwise
// *ErrPaletteSize is returned. When no size is given, DefaultPaletteSize
// is used and silently reduced to the number of distinct colors.
func WithPaletteSize(n int) Option {
	return func(o *options) {
		o.paletteSize = n
		o.paletteSizeSet = true
	}
}

// WithMaxIterations caps the number of clustering passes (default 100).
// Values below one are rejected with ErrInvalidConfiguration.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMethod selects the quantization method (default MethodFiltering).
func WithMethod(m Method) Option {
	return func(o *options) {
		o.method = m
	}
}

// WithSeed seeds the random source used by MethodRandom and by the
// initial palette of the clustering methods (default 1).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithInitialPalette starts clustering from the given colors instead of a
// random sample. The palette size becomes len(p), which must not exceed the
// number of distinct input colors. Combining it with a different
// WithPaletteSize is an error. Only valid for MethodLloyd and MethodFiltering.
func WithInitialPalette(p []color.Color) Option {
	return func(o *options) {
		o.initialPalette = p
	}
}

// WithWorkers bounds the number of goroutines scanning the image
// (default runtime.GOMAXPROCS(0)). Negative values are rejected.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithDistortionTracking computes the distortion after every clustering
// pass and reports it to the logger and the iteration history.
// It costs one brute-force pass per iteration.
func WithDistortionTracking(enabled bool) Option {
	return func(o *options) {
		o.trackDistortion = enabled
	}
}

// WithMetricsCollector sets a metrics collector.
//
// Example:
//
//	metrics := &colorquant.BasicMetricsCollector{}
//	res, _ := colorquant.Quantize(ctx, img, colorquant.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger sets a structured logger.
//
// Example:
//
//	logger := colorquant.NewJSONLogger(slog.LevelInfo)
//	res, _ := colorquant.Quantize(ctx, img, colorquant.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel is a convenience option that creates a text logger with the
// given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		paletteSize:      DefaultPaletteSize,
		maxIterations:    kmeans.DefaultMaxIterations,
		method:           MethodFiltering,
		seed:             1,
		workers:          runtime.GOMAXPROCS(0),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o *options) validate() error {
	if !o.method.valid() {
		return &ErrInvalidMethod{Method: o.method}
	}
	if o.maxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfiguration, o.maxIterations)
	}
	if o.workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfiguration, o.workers)
	}
	if o.initialPalette != nil {
		if !o.method.clusters() {
			return fmt.Errorf("%w: initial palette requires a clustering method, got %s", ErrInvalidConfiguration, o.method)
		}
		if len(o.initialPalette) == 0 {
			return &ErrPaletteSize{Requested: 0}
		}
		if o.paletteSizeSet && o.paletteSize != len(o.initialPalette) {
			return fmt.Errorf("%w: palette size %d does not match %d initial colors",
				ErrInvalidConfiguration, o.paletteSize, len(o.initialPalette))
		}
	}
	if o.paletteSizeSet && o.paletteSize <= 0 && o.initialPalette == nil {
		return &ErrPaletteSize{Requested: o.paletteSize}
	}
	return nil
}
