//go:build windows

package typelib

import (
	"unsafe"

	"github.com/olebind/olebind/typedesc"
	"github.com/zzl/go-win32api/v2/win32"
)

// decodeTypeDesc copies a native descriptor tree into its portable
// form. Cross references stay as handles; resolving them is the
// renderer's business.
func decodeTypeDesc(td *win32.TYPEDESC) *typedesc.TypeDesc {
	switch win32.VARENUM(td.Vt) {
	case win32.VT_PTR:
		return typedesc.Ptr(decodeTypeDesc(td.LptdescVal()))
	case win32.VT_SAFEARRAY:
		return typedesc.SafeArray(decodeTypeDesc(td.LptdescVal()))
	case win32.VT_CARRAY:
		ad := td.LpadescVal()
		dims := int(ad.CDims)
		bounds := unsafe.Slice((*win32.SAFEARRAYBOUND)(
			unsafe.Pointer(&ad.Rgbounds)), dims)
		out := make([]uint32, dims)
		for n, b := range bounds {
			out[n] = b.CElements
		}
		return typedesc.Array(decodeTypeDesc(&ad.TdescElem), out...)
	case win32.VT_USERDEFINED:
		return typedesc.UserDefined(uint32(td.HreftypeVal()))
	default:
		return typedesc.Simple(uint16(td.Vt))
	}
}

func decodeDir(idlFlags uint32) typedesc.Dir {
	var d typedesc.Dir
	if idlFlags&uint32(win32.IDLFLAG_FIN) != 0 {
		d |= typedesc.DirIn
	}
	if idlFlags&uint32(win32.IDLFLAG_FOUT) != 0 {
		d |= typedesc.DirOut
	}
	if idlFlags&uint32(win32.IDLFLAG_FRETVAL) != 0 {
		d |= typedesc.DirRetval
	}
	return d
}
