//go:build windows

package typelib

import (
	"syscall"

	"github.com/olebind/olebind/olerr"
	"github.com/olebind/olebind/typedesc"
	"github.com/zzl/go-com/com"
	"github.com/zzl/go-win32api/v2/win32"
)

// ImplEntry describes one implemented-type slot of a record.
type ImplEntry struct {
	Index         int
	Name          string
	Guid          syscall.GUID
	Default       bool
	Source        bool
	DispInterface bool
}

// TypeInfo inspects one type record. The attribute block is copied out
// at construction and released before the constructor returns, so a
// TypeInfo never holds a live attribute pointer.
type TypeInfo struct {
	p   *win32.ITypeInfo
	lib *TypeLib

	doc  Documentation
	attr typeAttr
}

type typeAttr struct {
	guid         syscall.GUID
	kind         win32.TYPEKIND
	flags        uint16
	major, minor uint16
	funcs        int
	vars         int
	impls        int
	size         int
	align        int
	vtblSize     int
	alias        *typedesc.TypeDesc
}

func newTypeInfo(p *win32.ITypeInfo, lib *TypeLib) (*TypeInfo, error) {
	this := &TypeInfo{p: p, lib: lib}

	doc, err := this.memberDoc(win32.MEMBERID_NIL)
	if err != nil {
		p.Release()
		return nil, err
	}
	this.doc = doc

	var pAttr *win32.TYPEATTR
	hr := p.GetTypeAttr(&pAttr)
	if win32.FAILED(hr) {
		p.Release()
		return nil, olerr.Platform("GetTypeAttr", doc.Name, int32(hr))
	}
	return withResource(func() { p.ReleaseTypeAttr(pAttr) },
		func() (*TypeInfo, error) {
			this.attr = typeAttr{
				guid:     pAttr.Guid,
				kind:     pAttr.Typekind,
				flags:    uint16(pAttr.WTypeFlags),
				major:    pAttr.WMajorVerNum,
				minor:    pAttr.WMinorVerNum,
				funcs:    int(pAttr.CFuncs),
				vars:     int(pAttr.CVars),
				impls:    int(pAttr.CImplTypes),
				size:     int(pAttr.CbSizeInstance),
				align:    int(pAttr.CbAlignment),
				vtblSize: int(pAttr.CbSizeVft),
			}
			if pAttr.Typekind == win32.TKIND_ALIAS {
				this.attr.alias = decodeTypeDesc(&pAttr.TdescAlias)
			}
			return this, nil
		})
}

// FromNative wraps a type record obtained outside any library walk,
// such as the one a live object reports for itself. Ownership of p
// passes to the returned TypeInfo.
func FromNative(p *win32.ITypeInfo) (*TypeInfo, error) {
	return newTypeInfo(p, nil)
}

func (this *TypeInfo) memberDoc(memid win32.MEMBERID) (Documentation, error) {
	var bsName, bsDoc, bsHelp com.BStr
	var helpContext uint32
	hr := this.p.GetDocumentation(memid, bsName.PBSTR(), bsDoc.PBSTR(),
		&helpContext, bsHelp.PBSTR())
	if win32.FAILED(hr) {
		return Documentation{}, olerr.Platform("GetDocumentation", "", int32(hr))
	}
	return Documentation{
		Name:        bsName.ToStringAndFree(),
		Doc:         bsDoc.ToStringAndFree(),
		HelpContext: helpContext,
		HelpFile:    bsHelp.ToStringAndFree(),
	}, nil
}

func (this *TypeInfo) Name() string {
	return this.doc.Name
}

func (this *TypeInfo) Documentation() Documentation {
	return this.doc
}

func (this *TypeInfo) Kind() Kind {
	return Kind(this.attr.kind)
}

func (this *TypeInfo) Guid() syscall.GUID {
	return this.attr.guid
}

func (this *TypeInfo) MajorVersion() uint16 { return this.attr.major }
func (this *TypeInfo) MinorVersion() uint16 { return this.attr.minor }

func (this *TypeInfo) Flags() TypeFlags {
	return TypeFlags{
		Hidden:        this.attr.flags&uint16(win32.TYPEFLAG_FHIDDEN) != 0,
		Dual:          this.attr.flags&uint16(win32.TYPEFLAG_FDUAL) != 0,
		Restricted:    this.attr.flags&uint16(win32.TYPEFLAG_FRESTRICTED) != 0,
		OleAutomation: this.attr.flags&uint16(win32.TYPEFLAG_FOLEAUTOMATION) != 0,
	}
}

// Visible reports whether automation clients are meant to see this
// record.
func (this *TypeInfo) Visible() bool {
	f := this.Flags()
	return !f.Hidden && !f.Restricted
}

func (this *TypeInfo) FuncCount() int { return this.attr.funcs }
func (this *TypeInfo) VarCount() int  { return this.attr.vars }
func (this *TypeInfo) ImplCount() int { return this.attr.impls }

// InstanceSize and Alignment describe record and union layout.
func (this *TypeInfo) InstanceSize() int { return this.attr.size }

func (this *TypeInfo) Alignment() int { return this.attr.align }

// VtblSize is the inherited-inclusive vtable size; binding emission
// uses it to separate inherited methods from own ones.
func (this *TypeInfo) VtblSize() int { return this.attr.vtblSize }

// AliasType returns the aliased descriptor for KindAlias records, nil
// otherwise.
func (this *TypeInfo) AliasType() *typedesc.TypeDesc {
	return this.attr.alias
}

// Lib returns the owning library cursor, nil for records reached only
// through cross-references.
func (this *TypeInfo) Lib() *TypeLib {
	return this.lib
}

// RefTypeInfo follows a cross-reference handle, possibly into another
// library. A library that cannot be loaded surfaces as a platform
// error callers may downgrade.
func (this *TypeInfo) RefTypeInfo(href uint32) (*TypeInfo, error) {
	var pti *win32.ITypeInfo
	hr := this.p.GetRefTypeInfo(href, &pti)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetRefTypeInfo", this.doc.Name, int32(hr))
	}
	return newTypeInfo(pti, this.lib)
}

// Resolver adapts cross-reference lookup to the descriptor renderer.
func (this *TypeInfo) Resolver() func(href uint32) (string, error) {
	return func(href uint32) (string, error) {
		ref, err := this.RefTypeInfo(href)
		if err != nil {
			return "", err
		}
		defer ref.Dispose()
		return ref.Name(), nil
	}
}

// ImplTypes lists the implemented-type entries selected by filter.
func (this *TypeInfo) ImplTypes(filter ImplFilter) ([]ImplEntry, error) {
	var out []ImplEntry
	for n := 0; n < this.attr.impls; n++ {
		entry, err := this.implEntry(n)
		if err != nil {
			return nil, err
		}
		switch filter {
		case ImplSource:
			if !entry.Source {
				continue
			}
		case ImplDefault:
			if !entry.Default {
				continue
			}
		case ImplDefaultSource:
			if !entry.Default || !entry.Source {
				continue
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (this *TypeInfo) implEntry(index int) (ImplEntry, error) {
	var flags win32.IMPLTYPEFLAGS
	hr := this.p.GetImplTypeFlags(uint32(index), &flags)
	if win32.FAILED(hr) {
		return ImplEntry{}, olerr.Platform("GetImplTypeFlags", this.doc.Name, int32(hr))
	}

	impl, err := this.ImplInfo(index)
	if err != nil {
		return ImplEntry{}, err
	}
	defer impl.Dispose()

	return ImplEntry{
		Index:         index,
		Name:          impl.Name(),
		Guid:          impl.Guid(),
		Default:       flags&win32.IMPLTYPEFLAG_FDEFAULT != 0,
		Source:        flags&win32.IMPLTYPEFLAG_FSOURCE != 0,
		DispInterface: impl.Kind() == KindDispatch,
	}, nil
}

// ImplInfo decodes the full record behind implemented-type slot index.
func (this *TypeInfo) ImplInfo(index int) (*TypeInfo, error) {
	var href win32.HREFTYPE
	hr := this.p.GetRefTypeOfImplType(uint32(index), &href)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetRefTypeOfImplType", this.doc.Name, int32(hr))
	}
	return this.RefTypeInfo(uint32(href))
}

// CompanionInterface returns the vtable half of a dual dispinterface
// (or the dispatch half of a dual interface). A record with no
// companion returns (nil, nil); that is the normal outcome for
// non-dual records.
func (this *TypeInfo) CompanionInterface() (*TypeInfo, error) {
	var href win32.HREFTYPE
	hr := this.p.GetRefTypeOfImplType(^uint32(0), &href)
	if hr == win32.TYPE_E_ELEMENTNOTFOUND {
		return nil, nil
	}
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetRefTypeOfImplType", this.doc.Name, int32(hr))
	}
	return this.RefTypeInfo(uint32(href))
}

// Variables decodes every variable of the record, carrying per-element
// errors.
func (this *TypeInfo) Variables() []VarResult {
	out := make([]VarResult, 0, this.attr.vars)
	for n := 0; n < this.attr.vars; n++ {
		v, err := this.Variable(n)
		out = append(out, VarResult{Index: n, Var: v, Err: err})
	}
	return out
}

// Variable decodes the variable at index.
func (this *TypeInfo) Variable(index int) (*VarData, error) {
	return newVarData(this, index)
}

// Methods decodes the methods whose invoke kind matches mask, carrying
// per-element errors.
func (this *TypeInfo) Methods(mask InvokeKind) []MethodResult {
	var out []MethodResult
	for n := 0; n < this.attr.funcs; n++ {
		m, err := this.Method(n)
		if err != nil {
			out = append(out, MethodResult{Index: n, Err: err})
			continue
		}
		if m.InvokeKind()&mask == 0 {
			continue
		}
		out = append(out, MethodResult{Index: n, Method: m})
	}
	return out
}

// Method decodes the method at index.
func (this *TypeInfo) Method(index int) (*MethodData, error) {
	return newMethodData(this, index)
}

func (this *TypeInfo) methodNames() []string {
	var names []string
	for _, r := range this.Methods(InvokeAny) {
		if r.Err == nil {
			names = append(names, r.Method.Name())
		}
	}
	return names
}

// sourceViews builds the event-correlation views of a coclass record.
func (this *TypeInfo) sourceViews() []sourceView {
	entries, err := this.ImplTypes(ImplSource)
	if err != nil {
		return nil
	}
	var views []sourceView
	for _, entry := range entries {
		impl, err := this.ImplInfo(entry.Index)
		if err != nil {
			continue
		}
		views = append(views, sourceView{
			Name:    impl.Name(),
			Methods: impl.methodNames(),
		})
		impl.Dispose()
	}
	return views
}

func (this *TypeInfo) Dispose() {
	if this.p == nil {
		return
	}
	this.p.Release()
	this.p = nil
}
