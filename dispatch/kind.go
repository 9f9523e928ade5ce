// Package dispatch drives late-bound automation calls: member name
// resolution, reverse-order argument marshaling, invocation, and
// result or exception unpacking.
package dispatch

// Kind selects how a member is invoked. The values match the platform
// DISPATCH_* flag encoding.
type Kind int

const (
	Method Kind = 1 << iota
	PropGet
	PropPut
	PropPutRef
)

// needsPutDispid reports whether the call must carry the synthetic
// property-put named argument.
func needsPutDispid(k Kind) bool {
	return k&(PropPut|PropPutRef) != 0
}

// argSlot maps declaration position i of count arguments to its slot
// in the marshaled argument array, which the protocol wants in reverse
// declaration order.
func argSlot(count, i int) int {
	return count - i - 1
}
