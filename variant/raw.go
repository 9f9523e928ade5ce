//go:build windows

package variant

import (
	"unsafe"

	"github.com/zzl/go-win32api/v2/win32"
)

const (
	variantTrue  = ^uint16(0)
	variantFalse = uint16(0)
)

// rawVariant overlays the variant header and the first machine words
// of the value union. Writing through it is the one place the package
// touches the wire layout.
type rawVariant struct {
	vt         uint16
	r1, r2, r3 uint16
	val        [2]uintptr
}

func rawOf(pv *win32.VARIANT) *rawVariant {
	return (*rawVariant)(unsafe.Pointer(pv))
}

func (this *rawVariant) setVT(vt uint16) {
	this.vt = vt
	this.val[0] = 0
	this.val[1] = 0
}

func (this *rawVariant) setWord(vt uint16, w uintptr) {
	this.setVT(vt)
	this.val[0] = w
}

func (this *rawVariant) setI64(vt uint16, v int64) {
	this.setVT(vt)
	*(*int64)(unsafe.Pointer(&this.val[0])) = v
}

func (this *rawVariant) setF32(v float32) {
	this.setVT(uint16(win32.VT_R4))
	*(*float32)(unsafe.Pointer(&this.val[0])) = v
}

func (this *rawVariant) setF64(v float64) {
	this.setVT(uint16(win32.VT_R8))
	*(*float64)(unsafe.Pointer(&this.val[0])) = v
}

func (this *rawVariant) setPtr(vt uint16, p unsafe.Pointer) {
	this.setVT(vt)
	this.val[0] = uintptr(p)
}

func (this *rawVariant) ptr() unsafe.Pointer {
	return unsafe.Pointer(this.val[0])
}
