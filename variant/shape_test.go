package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIndexSingleDim(t *testing.T) {
	lo := []int32{0}
	hi := []int32{2}
	idx := []int32{0}

	var visited [][]int32
	for {
		visited = append(visited, append([]int32{}, idx...))
		if !nextIndex(idx, lo, hi) {
			break
		}
	}
	assert.Equal(t, [][]int32{{0}, {1}, {2}}, visited)
}

func TestNextIndexFirstDimVariesFastest(t *testing.T) {
	lo := []int32{0, 0}
	hi := []int32{1, 2}
	idx := []int32{0, 0}

	var visited [][]int32
	for {
		visited = append(visited, append([]int32{}, idx...))
		if !nextIndex(idx, lo, hi) {
			break
		}
	}
	assert.Equal(t, [][]int32{
		{0, 0}, {1, 0},
		{0, 1}, {1, 1},
		{0, 2}, {1, 2},
	}, visited)
}

func TestNextIndexNonZeroLowerBound(t *testing.T) {
	lo := []int32{1}
	hi := []int32{3}
	idx := []int32{1}

	count := 1
	for nextIndex(idx, lo, hi) {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestShapeDimsOneDim(t *testing.T) {
	flat := []interface{}{1, 2, 3}
	assert.Equal(t, flat, shapeDims(flat, []int32{3}))
}

func TestShapeDimsTwoDims(t *testing.T) {
	// Storage order for extents [2,3]: first dimension fastest.
	flat := []interface{}{"a0b0", "a1b0", "a0b1", "a1b1", "a0b2", "a1b2"}
	got := shapeDims(flat, []int32{2, 3})

	assert.Equal(t, []interface{}{
		[]interface{}{"a0b0", "a1b0"},
		[]interface{}{"a0b1", "a1b1"},
		[]interface{}{"a0b2", "a1b2"},
	}, got)
}
