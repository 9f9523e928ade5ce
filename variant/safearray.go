//go:build windows

package variant

import (
	"unsafe"

	"github.com/olebind/olebind/olerr"
	"github.com/zzl/go-win32api/v2/win32"
)

// decodeSafeArray walks every element of a (possibly multi-dimensional)
// safe array in storage order and nests the result per dimension, the
// last declared dimension outermost.
func decodeSafeArray(psa *win32.SAFEARRAY) (interface{}, error) {
	if psa == nil {
		return nil, nil
	}

	dims := int(win32.SafeArrayGetDim(psa))
	if dims == 0 {
		return []interface{}{}, nil
	}

	lo := make([]int32, dims)
	hi := make([]int32, dims)
	extents := make([]int32, dims)
	total := 1
	for d := 0; d < dims; d++ {
		hr := win32.SafeArrayGetLBound(psa, uint32(d+1), &lo[d])
		if win32.FAILED(hr) {
			return nil, olerr.Platform("SafeArrayGetLBound", "", int32(hr))
		}
		hr = win32.SafeArrayGetUBound(psa, uint32(d+1), &hi[d])
		if win32.FAILED(hr) {
			return nil, olerr.Platform("SafeArrayGetUBound", "", int32(hr))
		}
		extents[d] = hi[d] - lo[d] + 1
		total *= int(extents[d])
	}
	if total <= 0 {
		return []interface{}{}, nil
	}

	var vt win32.VARENUM
	hr := win32.SafeArrayGetVartype(psa, &vt)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("SafeArrayGetVartype", "", int32(hr))
	}

	idx := make([]int32, dims)
	copy(idx, lo)

	flat := make([]interface{}, 0, total)
	for {
		val, err := safeArrayElement(psa, uint16(vt), idx)
		if err != nil {
			return nil, err
		}
		flat = append(flat, val)
		if !nextIndex(idx, lo, hi) {
			break
		}
	}
	return shapeDims(flat, extents), nil
}

func safeArrayElement(psa *win32.SAFEARRAY, vt uint16, idx []int32) (interface{}, error) {
	// Large enough for the widest element a safe array can hold (a
	// full VARIANT).
	var buf [4]uintptr
	hr := win32.SafeArrayGetElement(psa, &idx[0], unsafe.Pointer(&buf[0]))
	if win32.FAILED(hr) {
		return nil, olerr.Platform("SafeArrayGetElement", "", int32(hr))
	}

	switch win32.VARENUM(vt) {
	case win32.VT_VARIANT:
		pv := (*win32.VARIANT)(unsafe.Pointer(&buf[0]))
		defer Clear(pv)
		return Decode(pv)
	case win32.VT_BSTR:
		bs := *(*win32.BSTR)(unsafe.Pointer(&buf[0]))
		if bs == nil {
			return "", nil
		}
		s := win32.BstrToStr(bs)
		win32.SysFreeString(bs)
		return s, nil
	case win32.VT_DISPATCH:
		// SafeArrayGetElement already AddRef'd the element; that
		// reference passes to the caller as is.
		return *(**win32.IDispatch)(unsafe.Pointer(&buf[0])), nil
	case win32.VT_UNKNOWN:
		return *(**win32.IUnknown)(unsafe.Pointer(&buf[0])), nil
	default:
		return decodeScalar(vt, unsafe.Pointer(&buf[0]))
	}
}
