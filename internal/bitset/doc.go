// Package bitset provides a fixed-capacity, word-packed bitset.
//
// Architecture:
//   - Capacity fixed at construction: ids are in [0, n)
//   - Copy-on-descend: CopyFrom overwrites a pre-allocated set in O(n/64)
//     so a recursion can clone its parent's set without allocating
//   - Not thread-safe
//
// Used internally for:
//   - Candidate centroid sets of the kd-tree filtering pass
package bitset
