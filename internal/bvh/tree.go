// Package bvh builds a SAH-guided k-d style bounding volume hierarchy over
// opaque integer item IDs. The same tree serves the scene (over object
// indices) and every mesh (over face indices).
package bvh

import (
	"spectral-renderer/internal/geometry"
)

// BoundsFunc resolves the bounding box of an item ID.
type BoundsFunc func(id uint32) geometry.Aabb

// Tree is an immutable hierarchy over item IDs.
type Tree struct {
	root  *node
	space geometry.Aabb
}

// NewTree builds a tree over the given IDs. The IDs are opaque; only the
// bounds function interprets them.
func NewTree(ids []uint32, bounds BoundsFunc) *Tree {
	space := geometry.EmptyAabb()
	n := len(ids)
	candidates := make([]candidate, 0, n*6)

	for ordinal, id := range ids {
		b := bounds(id)
		candidates = genCandidates(candidates, uint32(ordinal), b)
		space = space.Join(b)
	}

	sortCandidates(candidates)

	sides := make([]side, n)
	root := newNode(space, candidates, n, sides, ids)

	return &Tree{root: root, space: space}
}

// EmptyTree returns a tree that intersects nothing.
func EmptyTree() *Tree {
	return &Tree{root: emptyNode(), space: geometry.EmptyAabb()}
}

// Bounds returns the space covered by all items.
func (t *Tree) Bounds() geometry.Aabb {
	return t.space
}

// Intersect returns the IDs of all leaves the ray passes through. The caller
// resolves the nearest hit; no early termination happens here. IDs of items
// straddling split planes may appear more than once.
func (t *Tree) Intersect(ray geometry.Ray) []uint32 {
	if t.root == nil {
		return nil
	}
	if inside, _ := t.space.Contains(ray.At(ray.TStart)); !inside && !t.space.Intersects(ray) {
		return nil
	}

	var out []uint32
	t.root.intersect(ray, &out)
	return out
}
