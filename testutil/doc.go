// Package testutil provides testing utilities for colorquant.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic random colour sets and
// images, and brute-force reference results to verify the clustering engine.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	points := rng.DistinctColors(1000, 50)   // weighted, deduplicated RGB points
//	img := rng.PaletteImage(64, 64, 16)      // image using 16 random colours
//
// # Ground Truth
//
//	weights, sums := testutil.AssignBruteForce(points, palette)
package testutil
