// Package variant converts between native Go values and platform
// VARIANT values: scalar coercion in both directions, by-reference
// unwrapping, and multi-dimensional safe-array decoding. All raw
// tag-bit handling lives in this package; nothing above it touches a
// variant union directly.
package variant

// nextIndex advances a multi-dimensional index odometer with the first
// dimension varying fastest, which is the platform's array storage
// order. It reports false once every dimension has wrapped.
func nextIndex(idx, lo, hi []int32) bool {
	for d := 0; d < len(idx); d++ {
		idx[d]++
		if idx[d] <= hi[d] {
			return true
		}
		idx[d] = lo[d]
	}
	return false
}

// shapeDims nests a storage-order element list into per-dimension
// slices. The last extent is the outermost dimension.
func shapeDims(flat []interface{}, extents []int32) []interface{} {
	if len(extents) <= 1 {
		return flat
	}
	inner := extents[:len(extents)-1]
	block := 1
	for _, e := range inner {
		block *= int(e)
	}
	outer := make([]interface{}, 0, extents[len(extents)-1])
	for at := 0; at < len(flat); at += block {
		outer = append(outer, shapeDims(flat[at:at+block], inner))
	}
	return outer
}
