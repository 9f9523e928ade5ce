package olert

import (
	"strconv"
	"strings"
)

// typeLibVersionLess orders registry type-library version keys, which
// are dot-separated hexadecimal numbers like "1.0" or "a.2". A key
// that does not parse sorts below every key that does.
func typeLibVersionLess(a, b string) bool {
	av, aok := parseTypeLibVersion(a)
	bv, bok := parseTypeLibVersion(b)
	if aok != bok {
		return !aok
	}
	if !aok {
		return a < b
	}
	if av[0] != bv[0] {
		return av[0] < bv[0]
	}
	return av[1] < bv[1]
}

func parseTypeLibVersion(s string) ([2]uint64, bool) {
	var out [2]uint64
	parts := strings.SplitN(s, ".", 2)
	major, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return out, false
	}
	out[0] = major
	if len(parts) == 2 {
		minor, err := strconv.ParseUint(parts[1], 16, 32)
		if err != nil {
			return out, false
		}
		out[1] = minor
	}
	return out, true
}
