package render

import (
	"maps"
	"slices"
	"strings"
)

// HeaderTemplate is the banner placed at the top of generated files.
const HeaderTemplate = `/*-----------------------------------------------------------------------------
| This file is generated. Do not edit it by hand.
|----------------------------------------------------------------------------*/

/* This file was auto-generated by {{funcName}}() in pkgsync */`

type options struct {
	autoIndent bool
	end        string
	header     bool
}

// Option configures [Template].
type Option func(*options)

// WithEnd sets the terminator appended after trimming. The default is "\n".
func WithEnd(end string) Option { return func(o *options) { o.end = end } }

// WithoutAutoIndent inserts multi-line values verbatim.
func WithoutAutoIndent() Option { return func(o *options) { o.autoIndent = false } }

// WithHeader prepends [HeaderTemplate]. Bind "funcName" to name the generator.
func WithHeader() Option { return func(o *options) { o.header = true } }

// Template replaces every {{key}} in tmpl with subs[key].
func Template(tmpl string, subs map[string]string, opts ...Option) string {
	o := options{autoIndent: true, end: "\n"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.header {
		tmpl = HeaderTemplate + "\n\n" + tmpl
	}

	for _, key := range slices.Sorted(maps.Keys(subs)) {
		tmpl = substitute(tmpl, "{{"+key+"}}", subs[key], o.autoIndent)
	}
	return strings.TrimSpace(tmpl) + o.end
}

// Header renders the generated-file banner for funcName with no terminator.
func Header(funcName string) string {
	return Template(HeaderTemplate, map[string]string{"funcName": funcName}, WithEnd(""))
}

func substitute(tmpl, placeholder, val string, autoIndent bool) string {
	parts := strings.Split(tmpl, placeholder)
	if len(parts) == 1 {
		return tmpl
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		v := val
		if autoIndent {
			if indent := lineIndent(b.String()); indent != "" {
				v = strings.ReplaceAll(val, "\n", "\n"+indent)
			}
		}
		b.WriteString(v)
		b.WriteString(part)
	}
	return b.String()
}

// lineIndent returns the leading blanks of the last line of s.
func lineIndent(s string) string {
	if i := strings.LastIndexAny(s, "\r\n"); i >= 0 {
		s = s[i+1:]
	}
	end := strings.IndexFunc(s, func(r rune) bool {
		return r != ' ' && r != '\t' && r != '\v' && r != '\f'
	})
	if end < 0 {
		return s
	}
	return s[:end]
}
