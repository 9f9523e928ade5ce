package typelib

// Documentation is the name/doc/help triple-plus-context a library,
// record or method carries.
type Documentation struct {
	Name        string
	Doc         string
	HelpContext uint32
	HelpFile    string
}

// indexed is one element of a per-index walk. An element that fails to
// decode carries its error here; it never aborts the elements that
// follow it.
type indexed[T any] struct {
	Index int
	Value T
	Err   error
}

func enumerate[T any](count int, get func(int) (T, error)) []indexed[T] {
	out := make([]indexed[T], 0, count)
	for n := 0; n < count; n++ {
		v, err := get(n)
		out = append(out, indexed[T]{Index: n, Value: v, Err: err})
	}
	return out
}

// guard pairs an acquire with exactly one release. Close is safe to
// call more than once, and safe on the zero value.
type guard struct {
	release func()
}

func newGuard(release func()) *guard {
	return &guard{release: release}
}

func (this *guard) Close() {
	if this.release == nil {
		return
	}
	release := this.release
	this.release = nil
	release()
}

// withResource runs fn while holding an acquired native resource and
// releases it exactly once on every path out of fn, panics included.
// Every descriptor the decoders borrow from a type record flows
// through here.
func withResource[T any](release func(), fn func() (T, error)) (T, error) {
	g := newGuard(release)
	defer g.Close()
	return fn()
}
