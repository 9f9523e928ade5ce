package typedesc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func namedResolver(names map[uint32]string) func(uint32) (string, error) {
	return func(href uint32) (string, error) {
		if name, ok := names[href]; ok {
			return name, nil
		}
		return "", errors.New("cannot load referenced library")
	}
}

func TestRenderPrimitives(t *testing.T) {
	r := &Renderer{}
	cases := []struct {
		vt   uint16
		want string
	}{
		{VT_I2, "int16"},
		{VT_I4, "int32"},
		{VT_R8, "float64"},
		{VT_BSTR, "win32.BSTR"},
		{VT_BOOL, "win32.VARIANT_BOOL"},
		{VT_VARIANT, "win32.VARIANT"},
		{VT_DISPATCH, "*win32.IDispatch"},
		{VT_UNKNOWN, "*win32.IUnknown"},
		{VT_HRESULT, "win32.HRESULT"},
	}
	for _, c := range cases {
		got := r.Render(Simple(c.vt), DirIn)
		assert.Equal(t, c.want, got.Go, "VT %d", c.vt)
	}
}

func TestRenderPointerAccessPolicy(t *testing.T) {
	r := &Renderer{}
	td := Ptr(Simple(VT_I4))

	assert.Equal(t, ReadOnly, r.Render(td, DirIn).Access)
	assert.Equal(t, ReadWrite, r.Render(td, DirOut).Access)
	assert.Equal(t, ReadWrite, r.Render(td, DirIn|DirOut).Access)
	assert.Equal(t, ReadWrite, r.Render(td, DirNone).Access)

	got := r.Render(td, DirIn)
	assert.Equal(t, "*int32", got.Go)
}

func TestRenderVoidPointer(t *testing.T) {
	r := &Renderer{}
	assert.Equal(t, "unsafe.Pointer", r.Render(Ptr(Simple(VT_VOID)), DirIn).Go)
	assert.Equal(t, "unsafe.Pointer", r.Render(Ptr(Ptr(Simple(VT_VOID))), DirIn).Go)
}

func TestRenderFixedArrayBoundOrder(t *testing.T) {
	r := &Renderer{}
	// First declared bound is the innermost dimension.
	td := Array(Simple(VT_I2), 3, 5)
	got := r.Render(td, DirNone)
	assert.Equal(t, "[5][3]int16", got.Go)
	assert.Equal(t, []string{"CARRAY", "I2"}, got.Detail)
}

func TestRenderSafeArray(t *testing.T) {
	r := &Renderer{Resolve: namedResolver(map[uint32]string{7: "Widget"})}
	got := r.Render(SafeArray(Simple(VT_BSTR)), DirIn)
	assert.Equal(t, "[]win32.BSTR", got.Go)
	assert.Equal(t, []string{"SAFEARRAY", "BSTR"}, got.Detail)

	got = r.Render(SafeArray(Ptr(UserDefined(7))), DirIn)
	assert.Equal(t, "[]*Widget", got.Go)
	assert.Equal(t, []string{"SAFEARRAY", "PTR", "USERDEFINED", "Widget"}, got.Detail)
}

func TestRenderUserDefined(t *testing.T) {
	r := &Renderer{Resolve: namedResolver(map[uint32]string{1: "Account"})}
	got := r.Render(Ptr(UserDefined(1)), DirIn|DirOut)
	assert.Equal(t, "*Account", got.Go)
	assert.Equal(t, ReadWrite, got.Access)
	assert.Zero(t, r.MissingTypes)
}

func TestRenderMissingTypeCountsPerOccurrence(t *testing.T) {
	r := &Renderer{Resolve: namedResolver(nil)}

	got := r.Render(Ptr(UserDefined(9)), DirIn)
	assert.Equal(t, "*"+MissingType, got.Go)
	assert.Equal(t, 1, r.MissingTypes)
	assert.Contains(t, got.Detail, MissingType)

	// Same unresolved reference again: the counter moves every time.
	r.Render(UserDefined(9), DirNone)
	r.Render(UserDefined(12), DirNone)
	assert.Equal(t, 3, r.MissingTypes)
}

func TestRenderDetailChainOrder(t *testing.T) {
	r := &Renderer{Resolve: namedResolver(map[uint32]string{4: "Point"})}
	got := r.Render(Ptr(Ptr(UserDefined(4))), DirNone)
	assert.Equal(t, "**Point", got.Go)
	assert.Equal(t, []string{"PTR", "PTR", "USERDEFINED", "Point"}, got.Detail)
}

func TestSymNameUnknown(t *testing.T) {
	assert.Equal(t, "I4", SymName(VT_I4))
	assert.Equal(t, "Unknown Type 97", SymName(97))
}
