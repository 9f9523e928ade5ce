//go:build windows

package typelib

// RecordResult is one element of a full-library enumeration.
type RecordResult struct {
	Index int
	Info  *TypeInfo
	Err   error
}

// VarResult is one element of a variable enumeration.
type VarResult struct {
	Index int
	Var   *VarData
	Err   error
}

// MethodResult is one element of a method enumeration.
type MethodResult struct {
	Index  int
	Method *MethodData
	Err    error
}

func collectRecords(count int, get func(int) (*TypeInfo, error)) []RecordResult {
	out := make([]RecordResult, 0, count)
	for _, e := range enumerate(count, get) {
		out = append(out, RecordResult{Index: e.Index, Info: e.Value, Err: e.Err})
	}
	return out
}
