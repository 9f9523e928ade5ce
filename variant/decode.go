//go:build windows

package variant

import (
	"unsafe"

	"github.com/olebind/olebind/olerr"
	"github.com/zzl/go-com/ole"
	"github.com/zzl/go-win32api/v2/win32"
)

// Decode converts a VARIANT into a native Go value. By-reference
// variants unwrap to the referenced value, arrays decode into nested
// []interface{} slices, and a tag this package cannot express comes
// back as an EncodingError.
//
// Interface-typed results are AddRef'd: the caller owns the returned
// reference and must Release it, and clearing the variant afterwards
// cannot strand the result.
func Decode(pv *win32.VARIANT) (interface{}, error) {
	raw := rawOf(pv)
	vt := raw.vt
	p := unsafe.Pointer(&raw.val[0])

	if vt&uint16(win32.VT_BYREF) != 0 {
		vt &^= uint16(win32.VT_BYREF)
		p = raw.ptr()
		if p == nil {
			return nil, nil
		}
	}

	if vt&uint16(win32.VT_ARRAY) != 0 {
		psa := *(**win32.SAFEARRAY)(p)
		return decodeSafeArray(psa)
	}
	return decodeScalar(vt, p)
}

func decodeScalar(vt uint16, p unsafe.Pointer) (interface{}, error) {
	switch win32.VARENUM(vt) {
	case win32.VT_EMPTY, win32.VT_NULL:
		return nil, nil
	case win32.VT_I1:
		return *(*int8)(p), nil
	case win32.VT_UI1:
		return *(*uint8)(p), nil
	case win32.VT_I2:
		return *(*int16)(p), nil
	case win32.VT_UI2:
		return *(*uint16)(p), nil
	case win32.VT_I4, win32.VT_INT:
		return *(*int32)(p), nil
	case win32.VT_UI4, win32.VT_UINT:
		return *(*uint32)(p), nil
	case win32.VT_I8:
		return *(*int64)(p), nil
	case win32.VT_UI8:
		return *(*uint64)(p), nil
	case win32.VT_R4:
		return *(*float32)(p), nil
	case win32.VT_R8:
		return *(*float64)(p), nil
	case win32.VT_BOOL:
		return *(*uint16)(p) != 0, nil
	case win32.VT_ERROR:
		return win32.HRESULT(*(*int32)(p)), nil
	case win32.VT_CY:
		return *(*win32.CY)(p), nil
	case win32.VT_DATE:
		return ole.Date(*(*float64)(p)), nil
	case win32.VT_DECIMAL:
		return *(*win32.DECIMAL)(p), nil
	case win32.VT_BSTR:
		bs := *(*win32.BSTR)(p)
		if bs == nil {
			return "", nil
		}
		return win32.BstrToStr(bs), nil
	case win32.VT_DISPATCH:
		pd := *(**win32.IDispatch)(p)
		if pd != nil {
			pd.AddRef()
		}
		return pd, nil
	case win32.VT_UNKNOWN:
		pu := *(**win32.IUnknown)(p)
		if pu != nil {
			pu.AddRef()
		}
		return pu, nil
	case win32.VT_VARIANT:
		return Decode((*win32.VARIANT)(p))
	}
	return nil, &olerr.EncodingError{What: "variant", VT: vt}
}
