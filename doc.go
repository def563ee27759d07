// Package colorquant reduces the colors of an image to a small palette.
//
// Colorquant treats every distinct color of an image as a weighted point in
// RGB space and clusters the points with k-means. The default method uses
// the filtering algorithm of Kanungo et al.: the points are stored once in a
// balanced kd-tree whose nodes carry the weight, sum and bounding box of
// their subtree, and every pass prunes palette candidates that cannot be
// nearest to any point of a subtree. Whole subtrees are then assigned in a
// single step.
//
// # Quick Start
//
//	ctx := context.Background()
//	res, _ := colorquant.Quantize(ctx, img, colorquant.WithPaletteSize(16))
//	pal := res.Palette()        // color.Palette, rounded to 8 bits
//	idx := res.Index(img.At(0, 0))
//
// # Methods
//
//	MethodFiltering     // k-means with kd-tree filtering (default)
//	MethodLloyd         // brute-force weighted k-means
//	MethodMostFrequent  // top-N colors by pixel count, no clustering
//	MethodRandom        // random sample of distinct colors, no clustering
//
// Both k-means methods start from the same seed palette and produce the same
// palette; filtering only does less work per pass.
//
// # Convergence
//
// A run stops when no palette entry moved in a pass or when the iteration
// cap is reached (Result.Converged is false). Entries that receive no color
// keep their previous value and are reported in Result.Degenerate.
//
// # Concurrency
//
// The distinct color scan runs on a bounded pool of goroutines, one row
// chunk per task. Tree construction and clustering run on the calling
// goroutine. Quantize is safe for concurrent use with different inputs.
package colorquant
