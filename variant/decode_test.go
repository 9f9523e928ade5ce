//go:build windows

package variant

import (
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zzl/go-win32api/v2/win32"
)

// countedUnknown is a minimal COM object whose vtable does nothing but
// count references. The vtable pointer must stay the first field.
type countedUnknown struct {
	vtbl *[3]uintptr
	refs int32
}

var countedVtbl = [3]uintptr{
	syscall.NewCallback(countedQueryInterface),
	syscall.NewCallback(countedAddRef),
	syscall.NewCallback(countedRelease),
}

func newCountedUnknown() *countedUnknown {
	return &countedUnknown{vtbl: &countedVtbl, refs: 1}
}

func countedQueryInterface(this, riid, ppv uintptr) uintptr {
	return 0x80004002 // E_NOINTERFACE
}

func countedAddRef(this uintptr) uintptr {
	obj := (*countedUnknown)(unsafe.Pointer(this))
	obj.refs++
	return uintptr(obj.refs)
}

func countedRelease(this uintptr) uintptr {
	obj := (*countedUnknown)(unsafe.Pointer(this))
	obj.refs--
	return uintptr(obj.refs)
}

func TestDecodeKeepsUnknownResultAlive(t *testing.T) {
	obj := newCountedUnknown()
	var v win32.VARIANT
	rawOf(&v).setPtr(uint16(win32.VT_UNKNOWN), unsafe.Pointer(obj))

	got, err := Decode(&v)
	require.NoError(t, err)
	require.Equal(t, int32(2), obj.refs)

	// Clearing the variant must not take the caller's reference with
	// it.
	Clear(&v)
	assert.Equal(t, int32(1), obj.refs)

	pUnk := got.(*win32.IUnknown)
	require.NotNil(t, pUnk)
	assert.Equal(t, uint32(0), pUnk.Release())
}

func TestDecodeKeepsDispatchResultAlive(t *testing.T) {
	obj := newCountedUnknown()
	var v win32.VARIANT
	rawOf(&v).setPtr(uint16(win32.VT_DISPATCH), unsafe.Pointer(obj))

	got, err := Decode(&v)
	require.NoError(t, err)

	pDisp := got.(*win32.IDispatch)
	require.NotNil(t, pDisp)
	assert.Equal(t, int32(2), obj.refs)

	Clear(&v)
	assert.Equal(t, int32(1), obj.refs)
	pDisp.Release()
	assert.Equal(t, int32(0), obj.refs)
}

func TestDecodeNilDispatch(t *testing.T) {
	var v win32.VARIANT
	rawOf(&v).setPtr(uint16(win32.VT_DISPATCH), nil)

	got, err := Decode(&v)
	require.NoError(t, err)
	assert.Nil(t, got.(*win32.IDispatch))
}
