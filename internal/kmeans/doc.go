// Package kmeans implements weighted k-means clustering of 3-D colour points.
//
// Two assignment strategies share one driver (Run): a brute-force Lloyd pass
// over every distinct point, and the kd-tree filtering pass (Filter), which
// prunes candidate centroids per subtree and assigns whole subtrees at once
// when a single candidate survives.
package kmeans
