package typedesc

import "fmt"

// MissingType is substituted for user-defined references whose
// defining library cannot be loaded.
const MissingType = "__missing_type__"

// Access classifies what the callee may do through a pointer
// parameter.
type Access int

const (
	ReadWrite Access = iota
	ReadOnly
)

func (a Access) String() string {
	if a == ReadOnly {
		return "readonly"
	}
	return "readwrite"
}

// Rendered is the result of rendering one descriptor tree. Detail
// records the canonical name of every node visited, wrappers before
// their element.
type Rendered struct {
	Go     string
	Access Access
	Detail []string
}

// Renderer renders descriptor trees to Go types. Resolve maps a
// user-defined type reference to its name; when it fails the renderer
// substitutes MissingType and increments MissingTypes rather than
// failing the whole render.
type Renderer struct {
	Resolve      func(href uint32) (string, error)
	MissingTypes int
}

// Render renders td as found on a parameter with direction dir.
// Pointer parameters flagged only as input render ReadOnly; output
// and unflagged pointers render ReadWrite.
func (this *Renderer) Render(td *TypeDesc, dir Dir) Rendered {
	out := Rendered{Access: ReadWrite}
	out.Go = this.render(td, dir, &out)
	return out
}

func (this *Renderer) render(td *TypeDesc, dir Dir, out *Rendered) string {
	if td == nil {
		return ""
	}
	switch td.VT {
	case VT_PTR:
		out.Detail = append(out.Detail, "PTR")
		if dir.In() && !dir.Out() {
			out.Access = ReadOnly
		}
		elem := this.render(td.Elem, dir, out)
		if elem == "" || elem == "unsafe.Pointer" {
			return "unsafe.Pointer"
		}
		return "*" + elem

	case VT_SAFEARRAY:
		out.Detail = append(out.Detail, "SAFEARRAY")
		elem := this.render(td.Elem, dir, out)
		if elem == "" {
			return "*win32.SAFEARRAY"
		}
		return "[]" + elem

	case VT_CARRAY:
		out.Detail = append(out.Detail, "CARRAY")
		name := this.render(td.Elem, dir, out)
		for _, b := range td.Bounds {
			name = fmt.Sprintf("[%d]%s", b, name)
		}
		return name

	case VT_USERDEFINED:
		out.Detail = append(out.Detail, "USERDEFINED")
		name := this.resolveName(td.HRef)
		out.Detail = append(out.Detail, name)
		return name

	default:
		sym := SymName(td.VT)
		out.Detail = append(out.Detail, sym)
		if g, ok := goNames[td.VT]; ok {
			return g
		}
		return sym
	}
}

func (this *Renderer) resolveName(href uint32) string {
	if this.Resolve == nil {
		this.MissingTypes++
		return MissingType
	}
	name, err := this.Resolve(href)
	if err != nil {
		this.MissingTypes++
		return MissingType
	}
	return name
}

func unknownVT(vt uint16) string {
	return fmt.Sprintf("Unknown Type %d", vt)
}
