package typelib

// Kind classifies a type record. The values match the on-disk
// TYPEKIND encoding.
type Kind int

const (
	KindEnum Kind = iota
	KindRecord
	KindModule
	KindInterface
	KindDispatch
	KindClass
	KindAlias
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindModule:
		return "module"
	case KindInterface:
		return "interface"
	case KindDispatch:
		return "dispatch"
	case KindClass:
		return "class"
	case KindAlias:
		return "alias"
	case KindUnion:
		return "union"
	}
	return "unknown"
}

// InvokeKind is a bitmask of the ways a method can be invoked. The
// values match the platform INVOKEKIND encoding so masks translate
// directly.
type InvokeKind int

const (
	InvokeFunc InvokeKind = 1 << iota
	InvokeGet
	InvokePut
	InvokePutRef

	InvokeAny = InvokeFunc | InvokeGet | InvokePut | InvokePutRef
)

func (k InvokeKind) String() string {
	switch k {
	case InvokeFunc:
		return "func"
	case InvokeGet:
		return "propget"
	case InvokePut:
		return "propput"
	case InvokePutRef:
		return "propputref"
	}
	return "mixed"
}

// TypeFlags are the record-level attribute flags the inspectors care
// about.
type TypeFlags struct {
	Hidden        bool
	Dual          bool
	Restricted    bool
	OleAutomation bool
}

// MethodFlags are the method-level attribute flags.
type MethodFlags struct {
	Restricted bool
	Hidden     bool
	Vararg     bool
}

// ImplFilter selects which implemented-type entries ImplTypes returns.
type ImplFilter int

const (
	ImplAll ImplFilter = iota
	ImplSource
	ImplDefault
	ImplDefaultSource
)
