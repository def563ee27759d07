// Package geom provides the 3-D value types shared by the spatial index and
// the clustering engine: points (r3.Vector), weighted points and
// axis-aligned bounding boxes.
package geom
