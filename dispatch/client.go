//go:build windows

package dispatch

import (
	"syscall"
	"unsafe"

	"github.com/olebind/olebind/olerr"
	"github.com/olebind/olebind/olert"
	"github.com/olebind/olebind/typelib"
	"github.com/olebind/olebind/variant"
	"github.com/zzl/go-win32api/v2/win32"
)

var iidNull syscall.GUID

// Client is a late-bound automation object. It holds one reference to
// the underlying dispatch interface and is stateless between calls.
// Apartment affinity is the caller's problem: keep a client on the
// thread that created it or pin the goroutine with
// runtime.LockOSThread.
type Client struct {
	disp *win32.IDispatch
}

// NewClient creates the automation object named by a ProgID or CLSID
// string.
func NewClient(prog string) (*Client, error) {
	disp, err := olert.CreateObject(prog)
	if err != nil {
		return nil, err
	}
	return &Client{disp: disp}, nil
}

// FromIDispatch wraps an existing dispatch interface. Ownership of one
// reference passes to the client.
func FromIDispatch(disp *win32.IDispatch) *Client {
	return &Client{disp: disp}
}

// IDispatch exposes the wrapped interface without transferring
// ownership.
func (this *Client) IDispatch() *win32.IDispatch {
	return this.disp
}

func (this *Client) AddRef() uint32 {
	return this.disp.AddRef()
}

func (this *Client) Release() uint32 {
	if this.disp == nil {
		return 0
	}
	n := this.disp.Release()
	if n == 0 {
		this.disp = nil
	}
	return n
}

// QueryIID asks the object for another interface.
func (this *Client) QueryIID(iid *syscall.GUID) (unsafe.Pointer, error) {
	var pv unsafe.Pointer
	hr := this.disp.QueryInterface(iid, unsafe.Pointer(&pv))
	if win32.FAILED(hr) {
		sIid, _ := win32.GuidToStr(iid)
		return nil, olerr.Platform("QueryInterface", sIid, int32(hr))
	}
	return pv, nil
}

// TypeInfo returns the type record the live object reports for itself.
func (this *Client) TypeInfo() (*typelib.TypeInfo, error) {
	var pti *win32.ITypeInfo
	hr := this.disp.GetTypeInfo(0, win32.GetUserDefaultLCID(), &pti)
	if win32.FAILED(hr) {
		return nil, olerr.Platform("GetTypeInfo", "", int32(hr))
	}
	return typelib.FromNative(pti)
}

// Resolve maps a member name to its dispatch id. Resolution failure is
// terminal for a call; there is no fuzzy fallback.
func (this *Client) Resolve(name string) (int32, error) {
	pwsName := win32.StrToPwstr(name)
	var dispid int32
	hr := this.disp.GetIDsOfNames(&iidNull, &pwsName, 1,
		win32.GetUserDefaultLCID(), &dispid)
	if win32.FAILED(hr) {
		return 0, olerr.NotFound("member", name)
	}
	return dispid, nil
}

// RespondsTo reports whether the object knows the member name.
func (this *Client) RespondsTo(name string) bool {
	_, err := this.Resolve(name)
	return err == nil
}

// Get reads a property, with optional index arguments.
func (this *Client) Get(name string, args ...interface{}) (interface{}, error) {
	return this.Invoke(name, PropGet, args...)
}

// Put writes a property by value.
func (this *Client) Put(name string, value interface{}) error {
	_, err := this.Invoke(name, PropPut, value)
	return err
}

// PutRef writes a property by reference; the callee keeps the object
// itself rather than a copy.
func (this *Client) PutRef(name string, value interface{}) error {
	_, err := this.Invoke(name, PropPutRef, value)
	return err
}

// Call invokes a method.
func (this *Client) Call(name string, args ...interface{}) (interface{}, error) {
	return this.Invoke(name, Method, args...)
}

// Invoke is the four-phase flow behind Get/Put/PutRef/Call: resolve,
// marshal, invoke, unpack. An interface-typed result carries its own
// reference; releasing it is the caller's job.
func (this *Client) Invoke(name string, kind Kind, args ...interface{}) (interface{}, error) {
	dispid, err := this.Resolve(name)
	if err != nil {
		return nil, err
	}
	result, err := this.invokeID(dispid, kind, args)
	if err != nil {
		return nil, olerr.Wrapf(err, "invoke %s", name)
	}
	return result, nil
}

func (this *Client) invokeID(dispid int32, kind Kind, args []interface{}) (interface{}, error) {
	var dp win32.DISPPARAMS

	// Property puts carry the value as a synthetic named argument.
	namedID := int32(win32.DISPID_PROPERTYPUT)
	if needsPutDispid(kind) {
		dp.RgdispidNamedArgs = &namedID
		dp.CNamedArgs = 1
	}

	var vargs []win32.VARIANT
	if len(args) > 0 {
		vargs = make([]win32.VARIANT, len(args))
		for i, a := range args {
			v, err := variant.Encode(a)
			if err != nil {
				variant.FreeEncoded(vargs)
				return nil, err
			}
			vargs[argSlot(len(args), i)] = v
		}
		defer variant.FreeEncoded(vargs)
		dp.Rgvarg = &vargs[0]
		dp.CArgs = uint32(len(args))
	}

	var result win32.VARIANT
	var excep win32.EXCEPINFO
	var argErr uint32
	hr := this.disp.Invoke(dispid, &iidNull, win32.GetUserDefaultLCID(),
		win32.DISPATCH_FLAGS(kind), &dp, &result, &excep, &argErr)

	switch hr {
	case win32.S_OK:
		// Decode AddRefs interface results, so clearing here only
		// drops the variant's own reference.
		defer variant.Clear(&result)
		return variant.Decode(&result)
	case win32.DISP_E_EXCEPTION:
		return nil, exceptionError(&excep)
	case win32.DISP_E_TYPEMISMATCH:
		return nil, &olerr.ArgumentError{Kind: olerr.ArgTypeMismatch, Index: argErr}
	case win32.DISP_E_PARAMNOTFOUND:
		return nil, &olerr.ArgumentError{Kind: olerr.ArgParameterNotFound, Index: argErr}
	}
	return nil, olerr.Platform("Invoke", "", int32(hr))
}

// exceptionError converts a filled (or deferred) exception block into
// the typed error, releasing the strings the callee allocated.
func exceptionError(ex *win32.EXCEPINFO) error {
	if pfn := uintptr(ex.PfnDeferredFillIn); pfn != 0 {
		syscall.SyscallN(pfn, uintptr(unsafe.Pointer(ex)))
		ex.PfnDeferredFillIn = 0
	}
	return &olerr.ExceptionError{
		Code:        ex.WCode,
		SCode:       int32(ex.Scode),
		Source:      takeBstr(ex.BstrSource),
		Description: takeBstr(ex.BstrDescription),
		HelpFile:    takeBstr(ex.BstrHelpFile),
		HelpContext: ex.DwHelpContext,
	}
}

func takeBstr(bs win32.BSTR) string {
	if bs == nil {
		return ""
	}
	s := win32.BstrToStr(bs)
	win32.SysFreeString(bs)
	return s
}
