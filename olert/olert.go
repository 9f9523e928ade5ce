//go:build windows

// Package olert hosts the process-level automation runtime plumbing:
// per-thread apartment initialization, class resolution and object
// creation, and registry lookup of installed type libraries.
package olert

import (
	"sync"
	"syscall"
	"unsafe"

	"github.com/olebind/olebind/olerr"
	"github.com/zzl/go-win32api/v2/win32"
)

var initMu sync.Mutex
var initThreads = map[uint32]bool{}

// EnsureInitialized initializes OLE on the calling OS thread the first
// time it is called there. Apartment affinity is the caller's problem:
// a goroutine that must stay in its apartment pins itself with
// runtime.LockOSThread before calling in.
func EnsureInitialized() error {
	tid := win32.GetCurrentThreadId()

	initMu.Lock()
	defer initMu.Unlock()
	if initThreads[tid] {
		return nil
	}
	hr := win32.OleInitialize(nil)
	if win32.FAILED(hr) {
		return olerr.Platform("OleInitialize", "", int32(hr))
	}
	initThreads[tid] = true
	return nil
}

// ClassID resolves a ProgID to its class id, accepting a literal
// "{...}" CLSID string as well.
func ClassID(prog string) (syscall.GUID, error) {
	var clsid syscall.GUID
	hr := win32.CLSIDFromProgID(win32.StrToPwstr(prog), &clsid)
	if win32.FAILED(hr) {
		hr = win32.CLSIDFromString(win32.StrToPwstr(prog), &clsid)
		if win32.FAILED(hr) {
			return clsid, olerr.NotFound("class", prog)
		}
	}
	return clsid, nil
}

// CreateInstance creates the coclass and returns the requested
// interface.
func CreateInstance(clsid *syscall.GUID, iid *syscall.GUID) (unsafe.Pointer, error) {
	if err := EnsureInitialized(); err != nil {
		return nil, err
	}
	var pv unsafe.Pointer
	hr := win32.CoCreateInstance(clsid, nil,
		win32.CLSCTX_INPROC_SERVER|win32.CLSCTX_LOCAL_SERVER,
		iid, unsafe.Pointer(&pv))
	if win32.FAILED(hr) {
		sClsid, _ := win32.GuidToStr(clsid)
		return nil, olerr.Platform("CoCreateInstance", sClsid, int32(hr))
	}
	return pv, nil
}

// CreateObject creates the automation object named by a ProgID or
// CLSID string and returns its dispatch interface.
func CreateObject(prog string) (*win32.IDispatch, error) {
	clsid, err := ClassID(prog)
	if err != nil {
		return nil, err
	}
	pv, err := CreateInstance(&clsid, &win32.IID_IDispatch)
	if err != nil {
		return nil, olerr.Wrapf(err, "create %s", prog)
	}
	return (*win32.IDispatch)(pv), nil
}
