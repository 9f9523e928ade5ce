package typelib

// paramNames maps the name array of a member onto its parameters.
// The array starts with the member's own name, so slot i+1 names
// parameter i; parameters past the end of the array (property setters
// commonly omit the value parameter's name) are filled with "rhs".
func paramNames(names []string, cParams int) []string {
	out := make([]string, cParams)
	for n := 0; n < cParams; n++ {
		if n+1 < len(names) && names[n+1] != "" {
			out[n] = names[n+1]
		} else {
			out[n] = "rhs"
		}
	}
	return out
}

// sourceView is the name of one source-flagged implemented interface
// of a coclass together with its method names.
type sourceView struct {
	Name    string
	Methods []string
}

// eventMatch reports whether a method belongs to an event interface:
// some coclass in the library must list the method's owning interface
// as a source entry, and that entry must carry a method of the same
// name.
func eventMatch(methodName, ownerName string, sources []sourceView) bool {
	for _, src := range sources {
		if src.Name != ownerName {
			continue
		}
		for _, m := range src.Methods {
			if m == methodName {
				return true
			}
		}
	}
	return false
}
