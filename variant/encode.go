//go:build windows

package variant

import (
	"fmt"
	"unsafe"

	"github.com/olebind/olebind/olerr"
	"github.com/zzl/go-win32api/v2/win32"
)

// Encode builds a VARIANT from a native Go value. String encodings
// allocate; release the result with Clear once the callee has seen it.
// Interface pointers are borrowed, not AddRef'd.
func Encode(v interface{}) (win32.VARIANT, error) {
	var out win32.VARIANT
	raw := rawOf(&out)

	switch x := v.(type) {
	case nil:
		raw.setVT(uint16(win32.VT_EMPTY))
	case bool:
		w := variantFalse
		if x {
			w = variantTrue
		}
		raw.setWord(uint16(win32.VT_BOOL), uintptr(w))
	case int8:
		raw.setI64(uint16(win32.VT_I1), int64(x))
	case uint8:
		raw.setI64(uint16(win32.VT_UI1), int64(x))
	case int16:
		raw.setI64(uint16(win32.VT_I2), int64(x))
	case uint16:
		raw.setI64(uint16(win32.VT_UI2), int64(x))
	case int32:
		raw.setI64(uint16(win32.VT_I4), int64(x))
	case uint32:
		raw.setI64(uint16(win32.VT_UI4), int64(x))
	case int:
		raw.setI64(uint16(win32.VT_I8), int64(x))
	case uint:
		raw.setI64(uint16(win32.VT_UI8), int64(x))
	case int64:
		raw.setI64(uint16(win32.VT_I8), x)
	case uint64:
		raw.setI64(uint16(win32.VT_UI8), int64(x))
	case float32:
		raw.setF32(x)
	case float64:
		raw.setF64(x)
	case string:
		bs := win32.SysAllocString(win32.StrToPwstr(x))
		raw.setPtr(uint16(win32.VT_BSTR), unsafe.Pointer(bs))
	case *win32.IDispatch:
		raw.setPtr(uint16(win32.VT_DISPATCH), unsafe.Pointer(x))
	case *win32.IUnknown:
		raw.setPtr(uint16(win32.VT_UNKNOWN), unsafe.Pointer(x))
	case win32.VARIANT:
		out = x
	case *win32.VARIANT:
		raw.setPtr(uint16(win32.VT_BYREF)|uint16(win32.VT_VARIANT), unsafe.Pointer(x))
	default:
		return out, &olerr.EncodingError{What: fmt.Sprintf("%T", v)}
	}
	return out, nil
}

// Clear releases whatever the variant owns and resets it to empty.
func Clear(pv *win32.VARIANT) {
	win32.VariantClear(pv)
}

// ClearAll clears a marshaled argument array.
func ClearAll(vs []win32.VARIANT) {
	for n := range vs {
		Clear(&vs[n])
	}
}

// FreeEncoded releases only what Encode allocated (string buffers).
// Borrowed interface pointers are left alone, so this is the right
// cleanup for an outbound argument array.
func FreeEncoded(vs []win32.VARIANT) {
	for n := range vs {
		raw := rawOf(&vs[n])
		if raw.vt == uint16(win32.VT_BSTR) && raw.val[0] != 0 {
			win32.SysFreeString(win32.BSTR(raw.ptr()))
			raw.setVT(uint16(win32.VT_EMPTY))
		}
	}
}
