//go:build windows

package typelib

import (
	"github.com/olebind/olebind/olerr"
	"github.com/olebind/olebind/typedesc"
	"github.com/zzl/go-com/ole"
	"github.com/zzl/go-win32api/v2/win32"
)

// VarData is one decoded variable: an enum constant, a record or union
// field, or a module-level constant.
type VarData struct {
	Name     string
	Doc      string
	Type     *typedesc.TypeDesc
	Constant bool
	Value    interface{}
}

func newVarData(owner *TypeInfo, index int) (*VarData, error) {
	var pVarDesc *win32.VARDESC
	hr := owner.p.GetVarDesc(uint32(index), &pVarDesc)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetVarDesc", owner.Name(), int32(hr))
	}
	return withResource(func() { owner.p.ReleaseVarDesc(pVarDesc) },
		func() (*VarData, error) { return decodeVar(owner, pVarDesc) })
}

func decodeVar(owner *TypeInfo, pVarDesc *win32.VARDESC) (*VarData, error) {
	doc, err := owner.memberDoc(pVarDesc.Memid)
	if err != nil {
		return nil, err
	}

	this := &VarData{
		Name: doc.Name,
		Doc:  doc.Doc,
		Type: decodeTypeDesc(&pVarDesc.ElemdescVar.Tdesc),
	}
	if pVarDesc.Varkind == win32.VAR_CONST {
		this.Constant = true
		this.Value = (*ole.Variant)(pVarDesc.LpvarValueVal()).Value()
	}
	return this, nil
}
