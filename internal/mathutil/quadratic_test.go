package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveQuadraticTwoRoots(t *testing.T) {
	x0, x1, ok := SolveQuadratic(1, -3, 2)
	assert.True(t, ok)
	assert.InDelta(t, 1, x0, 1e-12)
	assert.InDelta(t, 2, x1, 1e-12)
}

func TestSolveQuadraticNoRoot(t *testing.T) {
	_, _, ok := SolveQuadratic(1, 0, 1)
	assert.False(t, ok)
}

func TestSolveQuadraticLinear(t *testing.T) {
	x0, x1, ok := SolveQuadratic(0, 2, -4)
	assert.True(t, ok)
	assert.InDelta(t, 2, x0, 1e-12)
	assert.InDelta(t, 2, x1, 1e-12)
}

func TestSolveQuadraticDoubleRoot(t *testing.T) {
	x0, x1, ok := SolveQuadratic(1, -2, 1)
	assert.True(t, ok)
	assert.InDelta(t, 1, x0, 1e-9)
	assert.InDelta(t, 1, x1, 1e-9)
}
