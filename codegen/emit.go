// Package codegen emits Go bindings from a loaded type library, one
// block per record in library index order.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olebind/olebind/typedesc"
)

// stripCommonPrefix removes the shared tag prefix from a set of enum
// member names. The prefix is only stripped at an underscore boundary,
// and never when stripping would leave a name empty or starting with a
// digit.
func stripCommonPrefix(names []string) []string {
	if len(names) < 2 {
		return names
	}
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return names
			}
		}
	}
	// Back off to the last underscore so "MB_OK"/"MB_CANCEL" strips
	// "MB_" rather than "MB_".."MB_C".
	cut := strings.LastIndexByte(prefix, '_')
	if cut < 0 {
		return names
	}
	cut++

	out := make([]string, len(names))
	for n, name := range names {
		stripped := name[cut:]
		if stripped == "" || (stripped[0] >= '0' && stripped[0] <= '9') {
			return names
		}
		out[n] = stripped
	}
	return out
}

// unionBacking sizes the storage array that stands in for a union:
// one element per alignment unit, rounded up.
func unionBacking(size, align int) (elemType string, count int) {
	switch align {
	case 8:
		elemType = "uint64"
	case 4:
		elemType = "uint32"
	case 2:
		elemType = "uint16"
	default:
		elemType = "byte"
		align = 1
	}
	count = (size + align - 1) / align
	return
}

// formatDispID renders a dispatch id the way the platform headers do:
// negative well-known ids in decimal, everything else in hex.
func formatDispID(id int32) string {
	if id < 0 {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("0x%08x", uint32(id))
}

// constExpr renders a module constant value as a Go literal.
func constExpr(v interface{}) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

// dispRet is the emitted return surface of one dispatch wrapper method:
// the Go type and the statement that unpacks retVal (an *ole.Variant)
// into it.
type dispRet struct {
	goType string
	code   string
}

var dispRets = map[uint16]dispRet{
	typedesc.VT_I2:       {"int16", "return retVal.IValVal()"},
	typedesc.VT_I4:       {"int32", "return retVal.LValVal()"},
	typedesc.VT_INT:      {"int32", "return retVal.LValVal()"},
	typedesc.VT_R4:       {"float32", "return retVal.FltValVal()"},
	typedesc.VT_R8:       {"float64", "return retVal.DblValVal()"},
	typedesc.VT_CY:       {"win32.CY", "return retVal.CyValVal()"},
	typedesc.VT_DATE:     {"time.Time", "return ole.Date(retVal.DateVal()).ToGoTime()"},
	typedesc.VT_BSTR:     {"string", "return win32.BstrToStrAndFree(retVal.BstrValVal())"},
	typedesc.VT_DISPATCH: {"*ole.DispatchClass", "return ole.NewDispatchClass(retVal.PdispValVal(), true)"},
	typedesc.VT_ERROR:    {"com.Error", "return com.NewError(retVal.ScodeVal())"},
	typedesc.VT_HRESULT:  {"com.Error", "return com.NewError(retVal.ScodeVal())"},
	typedesc.VT_BOOL:     {"bool", "return retVal.BoolValVal() != win32.VARIANT_FALSE"},
	typedesc.VT_VARIANT:  {"ole.Variant", "return *retVal"},
	typedesc.VT_UNKNOWN:  {"*com.UnknownClass", "return com.NewUnknownClass(retVal.PunkValVal(), true)"},
	typedesc.VT_DECIMAL:  {"win32.DECIMAL", "return retVal.DecValVal()"},
	typedesc.VT_I1:       {"int8", "return int8(retVal.CValVal())"},
	typedesc.VT_UI1:      {"byte", "return retVal.BValVal()"},
	typedesc.VT_UI2:      {"uint16", "return retVal.UiValVal()"},
	typedesc.VT_UI4:      {"uint32", "return retVal.UintValVal()"},
	typedesc.VT_UINT:     {"uint32", "return retVal.UintValVal()"},
	typedesc.VT_I8:       {"int64", "return retVal.LlValVal()"},
	typedesc.VT_UI8:      {"uint64", "return retVal.UllValVal()"},
}

// dispParamType maps a rendered parameter type to the Go surface of a
// late-bound wrapper, where arguments travel as interface{} values and
// the marshaler prefers plain Go types.
func dispParamType(rendered string) string {
	switch rendered {
	case "win32.BSTR", "win32.PWSTR", "win32.PSTR":
		return "string"
	case "win32.VARIANT_BOOL":
		return "bool"
	case "ole.Date":
		return "time.Time"
	case "win32.VARIANT":
		return "interface{}"
	case "*win32.VARIANT":
		return "*ole.Variant"
	}
	return rendered
}
