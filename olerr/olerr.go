// Package olerr defines the error taxonomy shared by the typelib,
// variant and dispatch packages. Lookups that legitimately find
// nothing use ResolutionError so call sites can branch on "absent"
// without parsing platform status codes.
package olerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// PlatformError wraps a failing HRESULT from a COM call with the
// operation and target that produced it.
type PlatformError struct {
	Op     string
	Target string
	Code   int32
}

func (e *PlatformError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: HRESULT 0x%08X", e.Op, e.Target, uint32(e.Code))
	}
	return fmt.Sprintf("%s: HRESULT 0x%08X", e.Op, uint32(e.Code))
}

func Platform(op, target string, hr int32) error {
	return &PlatformError{Op: op, Target: target, Code: hr}
}

// HResult extracts the status code from err if it carries one.
func HResult(err error) (int32, bool) {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}

// ResolutionError reports that a named lookup found nothing. It is an
// expected outcome at many call sites, not a platform fault.
type ResolutionError struct {
	Kind string // "type", "method", "member", "interface", "typelib"
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

func NotFound(kind, name string) error {
	return &ResolutionError{Kind: kind, Name: name}
}

func IsNotFound(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// ArgKind discriminates the two argument rejections the dispatch
// protocol reports with an offending position.
type ArgKind int

const (
	ArgTypeMismatch ArgKind = iota
	ArgParameterNotFound
)

func (k ArgKind) String() string {
	if k == ArgTypeMismatch {
		return "type mismatch"
	}
	return "parameter not found"
}

// ArgumentError carries the index of the argument a late-bound call
// rejected. The index counts the marshaled (reversed) argument array,
// as reported by the platform.
type ArgumentError struct {
	Kind  ArgKind
	Index uint32
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %d: %s", e.Index, e.Kind)
}

// ExceptionError is a structured application-level exception raised by
// the callee during Invoke.
type ExceptionError struct {
	Code        uint16
	SCode       int32
	Source      string
	Description string
	HelpFile    string
	HelpContext uint32
}

func (e *ExceptionError) Error() string {
	desc := e.Description
	if desc == "" {
		code := uint32(e.SCode)
		if e.Code != 0 {
			code = uint32(e.Code)
		}
		return fmt.Sprintf("%s: exception 0x%08X", e.Source, code)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s", e.Source, desc)
	}
	return desc
}

// EncodingError reports a failed conversion between platform values
// (wide strings, variants) and native Go values.
type EncodingError struct {
	What string
	VT   uint16
}

func (e *EncodingError) Error() string {
	if e.VT != 0 {
		return fmt.Sprintf("cannot convert %s (VT %d)", e.What, e.VT)
	}
	return fmt.Sprintf("cannot convert %s", e.What)
}

// Wrap annotates err with context, preserving the typed cause.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
