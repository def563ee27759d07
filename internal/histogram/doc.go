// Package histogram extracts the distinct colours of an image together with
// their pixel counts.
//
// The row range is split into contiguous partitions that are scanned
// concurrently, each into a private map. The partial maps are merged on the
// caller's goroutine after all partitions finished, so the result does not
// depend on completion order.
package histogram
