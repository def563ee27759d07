// Package kdtree implements a balanced, build-once 3-D kd-tree over weighted
// points.
//
// Nodes live in a single arena slice and reference their children by index.
// Every node carries the aggregate Stats of its subtree (total weight,
// weighted coordinate sum and bounding box), computed bottom-up once after
// the topology is built, so that subtree means and bounds are O(1) queries.
//
// The tree is immutable after Build and safe for concurrent readers.
package kdtree
