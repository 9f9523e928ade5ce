//go:build windows

package typelib

import (
	"unsafe"

	"github.com/olebind/olebind/olerr"
	"github.com/olebind/olebind/typedesc"
	"github.com/zzl/go-com/ole"
	"github.com/zzl/go-win32api/v2/win32"
)

// ParamData is one decoded parameter of a method.
type ParamData struct {
	Name       string
	Type       *typedesc.TypeDesc
	Dir        typedesc.Dir
	Optional   bool
	HasDefault bool
	Default    interface{}
}

// MethodData is one fully decoded method. The native function
// descriptor is released before the constructor returns; everything a
// caller can reach here is a plain Go value.
type MethodData struct {
	owner *TypeInfo

	doc        Documentation
	memid      win32.MEMBERID
	invkind    InvokeKind
	vtblOffset int
	flags      MethodFlags
	params     []*ParamData
	ret        *typedesc.TypeDesc
}

func newMethodData(owner *TypeInfo, index int) (*MethodData, error) {
	var pFuncDesc *win32.FUNCDESC
	hr := owner.p.GetFuncDesc(uint32(index), &pFuncDesc)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetFuncDesc", owner.Name(), int32(hr))
	}
	return withResource(func() { owner.p.ReleaseFuncDesc(pFuncDesc) },
		func() (*MethodData, error) { return decodeMethod(owner, pFuncDesc) })
}

func decodeMethod(owner *TypeInfo, pFuncDesc *win32.FUNCDESC) (*MethodData, error) {
	this := &MethodData{
		owner:      owner,
		memid:      pFuncDesc.Memid,
		invkind:    InvokeKind(pFuncDesc.Invkind),
		vtblOffset: int(pFuncDesc.OVft),
	}
	if uint16(pFuncDesc.WFuncFlags)&uint16(win32.FUNCFLAG_FRESTRICTED) != 0 {
		this.flags.Restricted = true
	}
	if uint16(pFuncDesc.WFuncFlags)&uint16(win32.FUNCFLAG_FHIDDEN) != 0 {
		this.flags.Hidden = true
	}
	if pFuncDesc.CParamsOpt == -1 {
		this.flags.Vararg = true
	}

	doc, err := owner.memberDoc(pFuncDesc.Memid)
	if err != nil {
		return nil, err
	}
	this.doc = doc

	names, err := owner.fetchNames(pFuncDesc.Memid)
	if err != nil {
		return nil, err
	}

	cParams := int(pFuncDesc.CParams)
	var elemDescs []win32.ELEMDESC
	if cParams > 0 {
		elemDescs = unsafe.Slice(pFuncDesc.LprgelemdescParam, cParams)
	}

	// Dispatch members carry trailing LCID and retval parameters that
	// are not part of the late-bound signature.
	if owner.attr.kind == win32.TKIND_DISPATCH {
		for n := 0; n < cParams; n++ {
			idlFlags := uint32(elemDescs[n].IdldescVal().WIDLFlags)
			if idlFlags&uint32(win32.IDLFLAG_FLCID) != 0 ||
				idlFlags&uint32(win32.IDLFLAG_FRETVAL) != 0 {
				cParams = n
				break
			}
		}
	}

	pNames := paramNames(names, cParams)
	for n := 0; n < cParams; n++ {
		this.params = append(this.params,
			newParamData(pNames[n], &elemDescs[n], pFuncDesc, cParams, n))
	}

	this.ret = decodeTypeDesc(&pFuncDesc.ElemdescFunc.Tdesc)
	return this, nil
}

func newParamData(name string, pElemDesc *win32.ELEMDESC,
	pFuncDesc *win32.FUNCDESC, cParams int, index int) *ParamData {

	param := &ParamData{Name: name}

	idlFlags := uint32(pElemDesc.IdldescVal().WIDLFlags)
	param.Dir = decodeDir(idlFlags)

	if pFuncDesc.CParamsOpt == -1 && index == int(pFuncDesc.CParams-1) ||
		index >= cParams-int(pFuncDesc.CParamsOpt) {
		param.Optional = true
	}

	pd := pElemDesc.ParamdescVal()
	if uint32(pd.WParamFlags)&uint32(win32.PARAMFLAG_FHASDEFAULT) != 0 &&
		pd.Pparamdescex != nil {
		param.HasDefault = true
		param.Default = (*ole.Variant)(unsafe.Pointer(&pd.Pparamdescex.VarDefaultValue)).Value()
	}

	param.Type = decodeTypeDesc(&pElemDesc.Tdesc)
	return param
}

// fetchNames returns the name array of a member: the member's own name
// at slot 0 followed by its parameter names.
func (this *TypeInfo) fetchNames(memid win32.MEMBERID) ([]string, error) {
	const maxNames = 64
	var bsNames [maxNames]win32.BSTR
	var cNames uint32
	hr := this.p.GetNames(memid, &bsNames[0], maxNames, &cNames)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetNames", this.Name(), int32(hr))
	}
	defer func() {
		for n := uint32(0); n < cNames; n++ {
			if bsNames[n] != nil {
				win32.SysFreeString(bsNames[n])
			}
		}
	}()

	names := make([]string, cNames)
	for n := uint32(0); n < cNames; n++ {
		names[n] = win32.BstrToStr(bsNames[n])
	}
	return names, nil
}

func (this *MethodData) Name() string {
	return this.doc.Name
}

func (this *MethodData) Doc() string {
	return this.doc.Doc
}

func (this *MethodData) Documentation() Documentation {
	return this.doc
}

// DispID is the member id used for late-bound invocation.
func (this *MethodData) DispID() int32 {
	return int32(this.memid)
}

func (this *MethodData) InvokeKind() InvokeKind {
	return this.invkind
}

// VtblOffset is the method's vtable slot offset in bytes. It is only
// meaningful on KindInterface records.
func (this *MethodData) VtblOffset() int {
	return this.vtblOffset
}

func (this *MethodData) Flags() MethodFlags {
	return this.flags
}

func (this *MethodData) Visible() bool {
	return !this.flags.Restricted && !this.flags.Hidden
}

func (this *MethodData) Params() []*ParamData {
	return this.params
}

func (this *MethodData) ReturnType() *typedesc.TypeDesc {
	return this.ret
}

// Owner is the record the method was decoded from.
func (this *MethodData) Owner() *TypeInfo {
	return this.owner
}

// IsEvent reports whether the method belongs to an interface some
// coclass of the owning library lists as a source interface.
func (this *MethodData) IsEvent() bool {
	if this.owner == nil || this.owner.lib == nil {
		return false
	}
	return eventMatch(this.Name(), this.owner.Name(), this.owner.lib.sourceViews())
}

// LookupMethod finds a method by exact name: the record's own methods
// first, then one level of implemented types. Deeper ancestry is not
// searched.
func LookupMethod(ti *TypeInfo, name string) (*MethodData, error) {
	return LookupMethodKind(ti, name, InvokeAny)
}

// LookupMethodKind is LookupMethod restricted to an invoke-kind mask,
// for disambiguating property accessors that share a name.
func LookupMethodKind(ti *TypeInfo, name string, mask InvokeKind) (*MethodData, error) {
	for _, r := range ti.Methods(mask) {
		if r.Err == nil && r.Method.Name() == name {
			return r.Method, nil
		}
	}
	for n := 0; n < ti.ImplCount(); n++ {
		impl, err := ti.ImplInfo(n)
		if err != nil {
			continue
		}
		var found *MethodData
		for _, r := range impl.Methods(mask) {
			if r.Err == nil && r.Method.Name() == name {
				found = r.Method
				break
			}
		}
		impl.Dispose()
		if found != nil {
			return found, nil
		}
	}
	return nil, olerr.NotFound("method", name)
}
