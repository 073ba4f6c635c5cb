package imports

import (
	"slices"
	"strings"
)

// Resolve returns the package name that provides ref. Relative references
// (starting with "." or "..") are local and report local=true with an
// empty name.
func Resolve(ref string) (name string, local bool) {
	parts := strings.Split(ref, "/")
	switch {
	case parts[0] == "." || parts[0] == "..":
		return "", true
	case strings.HasPrefix(ref, "@") && len(parts) >= 2:
		return parts[0] + "/" + parts[1], false
	default:
		return parts[0], false
	}
}

// Names resolves refs, drops local references and returns the distinct
// package names in ascending order.
func Names(refs []string) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if name, local := Resolve(ref); !local && name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
