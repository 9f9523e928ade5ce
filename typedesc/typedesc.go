// Package typedesc models the recursive type descriptors found in COM
// type libraries and renders them as Go types or as canonical symbolic
// names. The package has no Windows dependency: user-defined type
// references are resolved through a caller-supplied callback, so the
// rendering rules are testable anywhere.
package typedesc

// VT codes for the descriptor tags this package understands. The
// numeric values are fixed by the platform ABI.
const (
	VT_EMPTY       uint16 = 0
	VT_NULL        uint16 = 1
	VT_I2          uint16 = 2
	VT_I4          uint16 = 3
	VT_R4          uint16 = 4
	VT_R8          uint16 = 5
	VT_CY          uint16 = 6
	VT_DATE        uint16 = 7
	VT_BSTR        uint16 = 8
	VT_DISPATCH    uint16 = 9
	VT_ERROR       uint16 = 10
	VT_BOOL        uint16 = 11
	VT_VARIANT     uint16 = 12
	VT_UNKNOWN     uint16 = 13
	VT_DECIMAL     uint16 = 14
	VT_I1          uint16 = 16
	VT_UI1         uint16 = 17
	VT_UI2         uint16 = 18
	VT_UI4         uint16 = 19
	VT_I8          uint16 = 20
	VT_UI8         uint16 = 21
	VT_INT         uint16 = 22
	VT_UINT        uint16 = 23
	VT_VOID        uint16 = 24
	VT_HRESULT     uint16 = 25
	VT_PTR         uint16 = 26
	VT_SAFEARRAY   uint16 = 27
	VT_CARRAY      uint16 = 28
	VT_USERDEFINED uint16 = 29
	VT_LPSTR       uint16 = 30
	VT_LPWSTR      uint16 = 31
	VT_RECORD      uint16 = 36
	VT_INT_PTR     uint16 = 37
	VT_UINT_PTR    uint16 = 38

	VT_ARRAY    uint16 = 0x2000
	VT_BYREF    uint16 = 0x4000
	VT_TYPEMASK uint16 = 0x0fff
)

// TypeDesc is one node of a descriptor tree. VT selects the payload:
// VT_PTR and VT_SAFEARRAY use Elem, VT_CARRAY uses Elem plus Bounds
// (declaration order), VT_USERDEFINED uses HRef. Every other VT is a
// leaf.
type TypeDesc struct {
	VT     uint16
	Elem   *TypeDesc
	Bounds []uint32
	HRef   uint32
}

func Ptr(elem *TypeDesc) *TypeDesc {
	return &TypeDesc{VT: VT_PTR, Elem: elem}
}

func SafeArray(elem *TypeDesc) *TypeDesc {
	return &TypeDesc{VT: VT_SAFEARRAY, Elem: elem}
}

func Array(elem *TypeDesc, bounds ...uint32) *TypeDesc {
	return &TypeDesc{VT: VT_CARRAY, Elem: elem, Bounds: bounds}
}

func UserDefined(href uint32) *TypeDesc {
	return &TypeDesc{VT: VT_USERDEFINED, HRef: href}
}

func Simple(vt uint16) *TypeDesc {
	return &TypeDesc{VT: vt}
}

// Dir carries the direction flags of the parameter a descriptor was
// found on. They drive the pointer access policy only.
type Dir uint8

const (
	DirNone Dir = 0
	DirIn   Dir = 1 << iota
	DirOut
	DirRetval
	DirOptional
)

func (d Dir) In() bool  { return d&DirIn != 0 }
func (d Dir) Out() bool { return d&DirOut != 0 }

// symNames is the canonical symbolic-name table, keyed by VT.
var symNames = map[uint16]string{
	VT_I2:          "I2",
	VT_I4:          "I4",
	VT_R4:          "R4",
	VT_R8:          "R8",
	VT_CY:          "CY",
	VT_DATE:        "DATE",
	VT_BSTR:        "BSTR",
	VT_DISPATCH:    "DISPATCH",
	VT_ERROR:       "ERROR",
	VT_BOOL:        "BOOL",
	VT_VARIANT:     "VARIANT",
	VT_UNKNOWN:     "UNKNOWN",
	VT_DECIMAL:     "DECIMAL",
	VT_I1:          "I1",
	VT_UI1:         "UI1",
	VT_UI2:         "UI2",
	VT_UI4:         "UI4",
	VT_I8:          "I8",
	VT_UI8:         "UI8",
	VT_INT:         "INT",
	VT_UINT:        "UINT",
	VT_VOID:        "VOID",
	VT_HRESULT:     "HRESULT",
	VT_PTR:         "PTR",
	VT_SAFEARRAY:   "SAFEARRAY",
	VT_CARRAY:      "CARRAY",
	VT_USERDEFINED: "USERDEFINED",
	VT_LPSTR:       "LPSTR",
	VT_LPWSTR:      "LPWSTR",
	VT_RECORD:      "RECORD",
}

// goNames maps leaf VTs to the Go types bindings use for them.
var goNames = map[uint16]string{
	VT_I2:       "int16",
	VT_I4:       "int32",
	VT_R4:       "float32",
	VT_R8:       "float64",
	VT_CY:       "win32.CY",
	VT_DATE:     "ole.Date",
	VT_BSTR:     "win32.BSTR",
	VT_DISPATCH: "*win32.IDispatch",
	VT_ERROR:    "win32.HRESULT",
	VT_BOOL:     "win32.VARIANT_BOOL",
	VT_VARIANT:  "win32.VARIANT",
	VT_UNKNOWN:  "*win32.IUnknown",
	VT_DECIMAL:  "win32.DECIMAL",
	VT_I1:       "int8",
	VT_UI1:      "byte",
	VT_UI2:      "uint16",
	VT_UI4:      "uint32",
	VT_I8:       "int64",
	VT_UI8:      "uint64",
	VT_INT:      "int32",
	VT_UINT:     "uint32",
	VT_VOID:     "",
	VT_HRESULT:  "win32.HRESULT",
	VT_LPSTR:    "win32.PSTR",
	VT_LPWSTR:   "win32.PWSTR",
	VT_INT_PTR:  "uintptr",
	VT_UINT_PTR: "uintptr",
}

// SymName returns the canonical symbolic name of a VT code, or
// "Unknown Type N" for codes outside the table.
func SymName(vt uint16) string {
	if s, ok := symNames[vt]; ok {
		return s
	}
	return unknownVT(vt)
}
