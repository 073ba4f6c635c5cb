package render

import (
	"path"
	"regexp"
	"strings"
)

var camelRe = regexp.MustCompile(`(?:^\w|[A-Z]|\b\w|\s+|-+)`)

// CamelCase converts a dashed or spaced name to camelCase, or to
// PascalCase when upper is set:
//
//	CamelCase("add-above", false)  // "addAbove"
//	CamelCase("add-above", true)   // "AddAbove"
//
// Zero digits at word starts are dropped along with separators.
func CamelCase(s string, upper bool) string {
	var b strings.Builder
	last := 0
	for _, loc := range camelRe.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:loc[0]])
		last = loc[1]

		match := s[loc[0]:loc[1]]
		switch {
		case match == "0" || strings.TrimSpace(match) == "" || match[0] == '-':
		case loc[0] == 0 && !upper:
			b.WriteString(strings.ToLower(match))
		default:
			b.WriteString(strings.ToUpper(match))
		}
	}
	b.WriteString(s[last:])
	return b.String()
}

// Stem returns the base name of p up to its first dot:
//
//	Stem("style/icons/run.svg")   // "run"
//	Stem("a/b/c.d.ts")            // "c"
func Stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}
