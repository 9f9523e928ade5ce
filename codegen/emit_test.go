package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olebind/olebind/typedesc"
)

func TestStripCommonPrefix(t *testing.T) {
	got := stripCommonPrefix([]string{"MB_OK", "MB_CANCEL", "MB_RETRY"})
	assert.Equal(t, []string{"OK", "CANCEL", "RETRY"}, got)
}

func TestStripCommonPrefixUnderscoreBoundaryOnly(t *testing.T) {
	// The literal common prefix is "wdColor" but there is no
	// underscore to cut at, so nothing is stripped.
	got := stripCommonPrefix([]string{"wdColorRed", "wdColorBlue"})
	assert.Equal(t, []string{"wdColorRed", "wdColorBlue"}, got)
}

func TestStripCommonPrefixKeepsDigitNames(t *testing.T) {
	// Stripping would leave "1BIT" which is not an identifier.
	got := stripCommonPrefix([]string{"FMT_1BIT", "FMT_8BIT"})
	assert.Equal(t, []string{"FMT_1BIT", "FMT_8BIT"}, got)
}

func TestStripCommonPrefixSingleMember(t *testing.T) {
	got := stripCommonPrefix([]string{"ONLY_ONE"})
	assert.Equal(t, []string{"ONLY_ONE"}, got)
}

func TestStripCommonPrefixNoCommonality(t *testing.T) {
	names := []string{"Alpha", "Beta"}
	assert.Equal(t, names, stripCommonPrefix(names))
}

func TestUnionBacking(t *testing.T) {
	elem, count := unionBacking(16, 8)
	assert.Equal(t, "uint64", elem)
	assert.Equal(t, 2, count)

	elem, count = unionBacking(12, 4)
	assert.Equal(t, "uint32", elem)
	assert.Equal(t, 3, count)

	// Size not a multiple of the alignment rounds up.
	elem, count = unionBacking(10, 4)
	assert.Equal(t, "uint32", elem)
	assert.Equal(t, 3, count)

	elem, count = unionBacking(3, 1)
	assert.Equal(t, "byte", elem)
	assert.Equal(t, 3, count)
}

func TestFormatDispID(t *testing.T) {
	assert.Equal(t, "-4", formatDispID(-4))
	assert.Equal(t, "0x00000000", formatDispID(0))
	assert.Equal(t, "0x00000068", formatDispID(0x68))
}

func TestConstExpr(t *testing.T) {
	assert.Equal(t, "3", constExpr(int32(3)))
	assert.Equal(t, "-1", constExpr(int32(-1)))
	assert.Equal(t, `"a\"b"`, constExpr(`a"b`))
	assert.Equal(t, "true", constExpr(true))
}

func TestDispParamType(t *testing.T) {
	assert.Equal(t, "string", dispParamType("win32.BSTR"))
	assert.Equal(t, "bool", dispParamType("win32.VARIANT_BOOL"))
	assert.Equal(t, "interface{}", dispParamType("win32.VARIANT"))
	assert.Equal(t, "*ole.Variant", dispParamType("*win32.VARIANT"))
	assert.Equal(t, "time.Time", dispParamType("ole.Date"))
	assert.Equal(t, "int32", dispParamType("int32"))
	assert.Equal(t, "*Widget", dispParamType("*Widget"))
}

func TestDispRetTable(t *testing.T) {
	r := dispRets[typedesc.VT_BSTR]
	assert.Equal(t, "string", r.goType)
	assert.Contains(t, r.code, "BstrToStrAndFree")

	r = dispRets[typedesc.VT_BOOL]
	assert.Equal(t, "bool", r.goType)

	// VT_ERROR and VT_HRESULT surface the same way.
	assert.Equal(t, dispRets[typedesc.VT_ERROR], dispRets[typedesc.VT_HRESULT])

	_, ok := dispRets[typedesc.VT_VOID]
	assert.False(t, ok)
}
