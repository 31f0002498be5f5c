package bvh

import (
	"math"

	"spectral-renderer/internal/geometry"
)

// Traversal and intersection cost constants of the surface area heuristic.
const (
	costTraversal    = 15.0
	costIntersection = 20.0
)

type node struct {
	// leaf payload; nil for internal nodes
	values []uint32

	leftSpace  geometry.Aabb
	rightSpace geometry.Aabb
	left       *node
	right      *node
}

func emptyNode() *node {
	return &node{values: []uint32{}}
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// newNode recursively builds the tree below the given space.
// ids maps candidate ordinals back to caller item IDs.
func newNode(space geometry.Aabb, candidates []candidate, n int, sides []side, ids []uint32) *node {
	cost, bestIndex, nL, nR := partition(n, space, candidates)

	// splitting must beat the cost of intersecting everything in a leaf
	if cost > costIntersection*float64(n) {
		return makeLeaf(candidates, ids)
	}

	leftSpace, rightSpace := splitSpace(space, candidates[bestIndex])
	leftCandidates, rightCandidates := classify(candidates, bestIndex, sides)

	// all items straddle the plane; splitting cannot make progress
	if len(leftCandidates) == len(candidates) && len(rightCandidates) == len(candidates) {
		return makeLeaf(candidates, ids)
	}

	return &node{
		leftSpace:  leftSpace,
		rightSpace: rightSpace,
		left:       newNode(leftSpace, leftCandidates, nL, sides, ids),
		right:      newNode(rightSpace, rightCandidates, nR, sides, ids),
	}
}

func makeLeaf(candidates []candidate, ids []uint32) *node {
	values := make([]uint32, 0, len(candidates)/6+1)
	for _, c := range candidates {
		if c.isLeft && c.dim == 0 {
			values = append(values, ids[c.item])
		}
	}
	return &node{values: values}
}

// partition finds the best splitting candidate. It returns the split cost,
// the candidate index, and the item counts of both halves.
func partition(n int, space geometry.Aabb, candidates []candidate) (float64, int, int, int) {
	bestCost := math.Inf(1)
	bestIndex := 0

	// running item counts per dimension while sweeping the sorted planes
	nL := [3]int{}
	nR := [3]int{n, n, n}

	bestNL := 0
	bestNR := n

	for i, c := range candidates {
		if !c.isLeft {
			nR[c.dim]--
		}

		cost := sahCost(space, c, nL[c.dim], nR[c.dim])
		if cost < bestCost {
			bestCost = cost
			bestIndex = i
			bestNL = nL[c.dim]
			bestNR = nR[c.dim]
		}

		if c.isLeft {
			nL[c.dim]++
		}
	}

	return bestCost, bestIndex, bestNL, bestNR
}

// sahCost evaluates the surface area heuristic for one candidate plane.
func sahCost(space geometry.Aabb, c candidate, nL, nR int) float64 {
	left, right := splitSpace(space, c)

	volL := left.Volume()
	volR := right.Volume()
	vol := volL + volR

	// a degenerate half-space cannot be worth splitting
	if vol == 0 || volL == 0 || volR == 0 {
		return math.Inf(1)
	}

	factor := 1.0
	if nL == 0 || nR == 0 {
		// reward cutting off empty space
		factor = 0.8
	}

	return factor * (costTraversal + costIntersection*(float64(nL)*volL+float64(nR)*volR)/vol)
}

func splitSpace(space geometry.Aabb, c candidate) (geometry.Aabb, geometry.Aabb) {
	left := space
	right := space

	v := c.value
	if v < space.Min[c.dim] {
		v = space.Min[c.dim]
	}
	if v > space.Max[c.dim] {
		v = space.Max[c.dim]
	}
	left.Max[c.dim] = v
	right.Min[c.dim] = v

	return left, right
}

// classify assigns every item to the left or right half (or both for
// straddlers) and splices the candidate list accordingly.
func classify(candidates []candidate, bestIndex int, sides []side) ([]candidate, []candidate) {
	bestDim := candidates[bestIndex].dim

	for i := 0; i <= bestIndex; i++ {
		if candidates[i].dim == bestDim {
			if candidates[i].isLeft {
				sides[candidates[i].item] = sideBoth
			} else {
				sides[candidates[i].item] = sideLeft
			}
		}
	}
	for i := bestIndex; i < len(candidates); i++ {
		if candidates[i].dim == bestDim && candidates[i].isLeft {
			sides[candidates[i].item] = sideRight
		}
	}

	left := make([]candidate, 0, len(candidates)/2)
	right := make([]candidate, 0, len(candidates)/2)
	for _, c := range candidates {
		switch sides[c.item] {
		case sideLeft:
			left = append(left, c)
		case sideRight:
			right = append(right, c)
		case sideBoth:
			left = append(left, c)
			right = append(right, c)
		}
	}
	return left, right
}

// intersect descends into every child whose space the ray starts in or
// passes through, collecting all leaf values.
func (n *node) intersect(ray geometry.Ray, out *[]uint32) {
	if n.isLeaf() {
		*out = append(*out, n.values...)
		return
	}

	start := ray.At(ray.TStart)
	if inside, _ := n.rightSpace.Contains(start); inside || n.rightSpace.Intersects(ray) {
		n.right.intersect(ray, out)
	}
	if inside, _ := n.leftSpace.Contains(start); inside || n.leftSpace.Intersects(ray) {
		n.left.intersect(ray, out)
	}
}
