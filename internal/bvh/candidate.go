package bvh

import (
	"sort"

	"spectral-renderer/internal/geometry"
)

// candidate is one potential split plane, generated from a face of an item's
// bounding box.
type candidate struct {
	value  float64
	dim    int
	isLeft bool
	item   uint32 // ordinal into the side table
}

// genCandidates appends the six candidate planes of one item.
func genCandidates(dst []candidate, item uint32, bounds geometry.Aabb) []candidate {
	for dim := 0; dim < 3; dim++ {
		dst = append(dst,
			candidate{value: bounds.Min[dim], dim: dim, isLeft: true, item: item},
			candidate{value: bounds.Max[dim], dim: dim, isLeft: false, item: item},
		)
	}
	return dst
}

func sortCandidates(c []candidate) {
	sort.Slice(c, func(i, j int) bool {
		return c[i].value < c[j].value
	})
}

// side classifies an item relative to the chosen split plane.
type side uint8

const (
	sideBoth side = iota
	sideLeft
	sideRight
)
