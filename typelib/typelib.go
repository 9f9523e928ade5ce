//go:build windows

// Package typelib walks COM type libraries: the library cursor, the
// per-record inspector and the method/parameter inspector. Decoding
// is per element; one undecodable record never aborts a library walk.
package typelib

import (
	"syscall"

	"github.com/olebind/olebind/olerr"
	"github.com/zzl/go-com/com"
	"github.com/zzl/go-win32api/v2/win32"
)

// LibAttr is the decoded library attribute block.
type LibAttr struct {
	Guid         syscall.GUID
	Lcid         uint32
	SysKind      win32.SYSKIND
	MajorVersion uint16
	MinorVersion uint16
	Flags        uint16
}

// TypeLib is the cursor over one loaded type library.
type TypeLib struct {
	p    *win32.ITypeLib
	attr LibAttr
	doc  Documentation
}

// NewTypeLibFromFile loads the library stored at (or registered under)
// filePath.
func NewTypeLibFromFile(filePath string) (*TypeLib, error) {
	var p *win32.ITypeLib
	hr := win32.LoadTypeLib(win32.StrToPwstr(filePath), &p)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("LoadTypeLib", filePath, int32(hr))
	}
	return NewTypeLib(p)
}

// NewTypeLib wraps an already-loaded library. Ownership of p passes to
// the returned TypeLib; the attribute block is copied out and released
// before returning.
func NewTypeLib(p *win32.ITypeLib) (*TypeLib, error) {
	this := &TypeLib{p: p}

	var pAttr *win32.TLIBATTR
	hr := p.GetLibAttr(&pAttr)
	if win32.FAILED(hr) {
		p.Release()
		return nil, olerr.Platform("GetLibAttr", "", int32(hr))
	}
	return withResource(func() { p.ReleaseTLibAttr(pAttr) },
		func() (*TypeLib, error) {
			this.attr = LibAttr{
				Guid:         pAttr.Guid,
				Lcid:         pAttr.Lcid,
				SysKind:      pAttr.Syskind,
				MajorVersion: pAttr.WMajorVerNum,
				MinorVersion: pAttr.WMinorVerNum,
				Flags:        uint16(pAttr.WLibFlags),
			}

			doc, err := this.Documentation(int(win32.MEMBERID_NIL))
			if err != nil {
				p.Release()
				return nil, err
			}
			this.doc = doc
			return this, nil
		})
}

func (this *TypeLib) Attr() LibAttr {
	return this.attr
}

func (this *TypeLib) Name() string {
	return this.doc.Name
}

func (this *TypeLib) Doc() string {
	return this.doc.Doc
}

// Documentation returns the documentation quad of the record at index,
// or of the library itself for index -1.
func (this *TypeLib) Documentation(index int) (Documentation, error) {
	var bsName, bsDoc, bsHelp com.BStr
	var helpContext uint32
	hr := this.p.GetDocumentation(int32(index), bsName.PBSTR(), bsDoc.PBSTR(),
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

// Count returns the number of type records in the library.
func (this *TypeLib) Count() int {
	return int(this.p.GetTypeInfoCount())
}

// Get decodes the record at index. The caller owns the returned
// TypeInfo and must Dispose it.
func (this *TypeLib) Get(index int) (*TypeInfo, error) {
	var pti *win32.ITypeInfo
	hr := this.p.GetTypeInfo(uint32(index), &pti)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetTypeInfo", this.doc.Name, int32(hr))
	}
	return newTypeInfo(pti, this)
}

// Records decodes every record in the library, carrying per-record
// errors instead of stopping at the first bad one.
func (this *TypeLib) Records() []RecordResult {
	return collectRecords(this.Count(), this.Get)
}

// Visibles returns the decoded records that are visible to automation
// clients, skipping records that fail to decode.
func (this *TypeLib) Visibles() []*TypeInfo {
	var out []*TypeInfo
	for _, r := range this.Records() {
		if r.Err != nil {
			continue
		}
		if r.Info.Visible() {
			out = append(out, r.Info)
		} else {
			r.Info.Dispose()
		}
	}
	return out
}

func (this *TypeLib) Dispose() {
	if this.p == nil {
		return
	}
	this.p.Release()
	this.p = nil
}

// sourceViews builds the event-correlation views of every coclass in
// the library: each source-flagged implemented interface with its
// method names.
func (this *TypeLib) sourceViews() []sourceView {
	var views []sourceView
	for _, r := range this.Records() {
		if r.Err != nil {
			continue
		}
		if r.Info.Kind() == KindClass {
			views = append(views, r.Info.sourceViews()...)
		}
		r.Info.Dispose()
	}
	return views
}
