package reconcile

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/pkgsync/pkg/manifest"
	"github.com/matzehuels/pkgsync/pkg/render"
)

const styleIndexFunc = "ensureStyleIndex"

// syncTypedoc points typedoc.json at the shared API docs directory.
func (o Options) syncTypedoc(_ context.Context, s State) (State, error) {
	if !o.exists("typedoc.json") {
		return s, nil
	}
	parts := strings.Split(s.Manifest.Name, "/")
	return o.updateJSON(s, "typedoc.json", map[string]any{
		"out":  "../../docs/api/" + parts[len(parts)-1],
		"mode": "file",
	})
}

// syncDocOptions points tdoptions.json at the docs directory named after
// the package directory.
func (o Options) syncDocOptions(_ context.Context, s State) (State, error) {
	if !o.exists("tdoptions.json") {
		return s, nil
	}
	dir := filepath.Base(filepath.Clean(o.PkgPath))
	return o.updateJSON(s, "tdoptions.json", map[string]any{
		"out": "../../docs/api/" + dir,
	})
}

// syncReferences replaces the tsconfig.json project references with one
// entry per declared dependency that is a TypeScript workspace sibling.
// The whole list is replaced, including entries unrelated to dependencies.
func (o Options) syncReferences(_ context.Context, s State) (State, error) {
	if strings.Contains(s.Manifest.Name, "example-") {
		return s, nil
	}

	type reference struct {
		Path string `json:"path"`
	}
	var refs []reference
	for _, name := range slices.Sorted(maps.Keys(s.Manifest.Dependencies)) {
		dir, ok := o.Exceptions.Locals[name]
		if !ok || !fileExists(filepath.Join(dir, "tsconfig.json")) {
			continue
		}
		rel, err := relPath(o.PkgPath, dir)
		if err != nil {
			return s, fmt.Errorf("reference %s: %w", name, err)
		}
		refs = append(refs, reference{Path: rel})
	}
	if len(refs) == 0 {
		return s, nil
	}
	return o.updateJSON(s, "tsconfig.json", map[string]any{"references": refs})
}

// ensureStyleIndex regenerates style/index.css, and style/index.js when
// CSS module imports are configured, from the package's CSS dependencies.
func (o Options) ensureStyleIndex(ctx context.Context, s State) (State, error) {
	if !o.exists("style/base.css") {
		return s, nil
	}
	header := render.Header(styleIndexFunc)

	lines := []string{header}
	for _, dep := range o.CSSImports {
		lines = append(lines, fmt.Sprintf("@import url('~%s');", dep))
	}
	lines = append(lines, "@import url('./base.css');\n")
	msgs, err := o.writer().File(ctx, o.path("style/index.css"), strings.Join(lines, "\n"), true)
	if err != nil {
		return s, err
	}
	s = s.report(msgs...)

	if len(o.CSSModuleImports) == 0 {
		return s, nil
	}
	lines = []string{header}
	for _, dep := range o.CSSModuleImports {
		lines = append(lines, fmt.Sprintf("import '%s';", dep))
	}
	lines = append(lines, "import './base.css';\n")
	msgs, err = o.writer().File(ctx, o.path("style/index.js"), strings.Join(lines, "\n"), true)
	if err != nil {
		return s, err
	}
	return s.report(msgs...), nil
}

// updateJSON sets fields on a JSON project file, keeping its key order,
// and reports "Updated <path>" when the file changed.
func (o Options) updateJSON(s State, rel string, fields map[string]any) (State, error) {
	path := o.path(rel)
	obj, err := manifest.LoadObject(path)
	if err != nil {
		return s, err
	}
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if err := obj.Set(key, fields[key]); err != nil {
			return s, err
		}
	}
	changed, err := manifest.WriteObject(path, obj)
	if err != nil {
		return s, err
	}
	if changed {
		s = s.report("Updated " + path)
	}
	return s, nil
}

func relPath(from, to string) (string, error) {
	absFrom, err := filepath.Abs(from)
	if err != nil {
		return "", err
	}
	absTo, err := filepath.Abs(to)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absFrom, absTo)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
