package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pkgsync/pkg/deps"
	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
	"github.com/matzehuels/pkgsync/pkg/manifest"
)

// writeTree creates files below root. Paths are slash separated.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readTree(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func parseManifest(t *testing.T, data string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(data))
	if err != nil {
		t.Fatalf("manifest.Parse() error: %v", err)
	}
	return m
}

// newPackage creates packages/app below a fresh root with a tsconfig.json
// and the given extra files.
func newPackage(t *testing.T, files map[string]string) string {
	t.Helper()
	pkg := filepath.Join(t.TempDir(), "packages", "app")
	tree := map[string]string{"tsconfig.json": "{}\n"}
	for k, v := range files {
		tree[k] = v
	}
	writeTree(t, pkg, tree)
	return pkg
}

func run(t *testing.T, opts Options) *Result {
	t.Helper()
	res, err := Package(context.Background(), opts)
	if err != nil {
		t.Fatalf("Package() error: %v", err)
	}
	return res
}

func TestAddsMissingDependency(t *testing.T) {
	pkg := newPackage(t, map[string]string{"src/index.ts": `import pad from 'left-pad';`})
	res := run(t, Options{
		PkgPath:  pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true, "dependencies": {}}`),
		Versions: deps.NewCache(nil, map[string]string{"left-pad": "~1.3.0"}),
	})

	if diff := cmp.Diff([]string{"Added dependency: left-pad@~1.3.0"}, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"left-pad": "~1.3.0"}, res.Manifest.Dependencies); diff != "" {
		t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestAddsInNameOrder(t *testing.T) {
	pkg := newPackage(t, map[string]string{
		"src/index.ts": "import 'zeta';\nimport '@scope/alpha/lib/x';\nimport 'mid/sub';\nimport './local';",
	})
	res := run(t, Options{
		PkgPath:  pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true}`),
		Versions: deps.NewCache(nil, map[string]string{"zeta": "1", "@scope/alpha": "2", "mid": "3"}),
	})

	want := []string{
		"Added dependency: @scope/alpha@2",
		"Added dependency: mid@3",
		"Added dependency: zeta@1",
	}
	if diff := cmp.Diff(want, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"@scope/alpha", "mid", "zeta"}, res.Imports); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingException(t *testing.T) {
	pkg := newPackage(t, map[string]string{"src/index.ts": `import 'left-pad';`})
	res := run(t, Options{
		PkgPath:    pkg,
		Manifest:   parseManifest(t, `{"name": "@demo/app", "private": true}`),
		Versions:   deps.NewCache(nil, nil),
		Exceptions: Exceptions{Missing: []string{"left-pad"}},
	})
	if len(res.Messages) != 0 {
		t.Errorf("messages = %v, want none", res.Messages)
	}
	if res.Manifest.Dependencies != nil {
		t.Errorf("dependencies = %v, want absent", res.Manifest.Dependencies)
	}
}

func TestReportsUnusedDependency(t *testing.T) {
	pkg := newPackage(t, nil)
	res := run(t, Options{
		PkgPath:  pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true, "dependencies": {"unused-lib": "1.0.0"}}`),
		Versions: deps.NewCache(nil, map[string]string{"unused-lib": "1.0.0"}),
	})

	want := []string{"Unused dependency: unused-lib@1.0.0: remove or add to list of known unused dependencies for this package"}
	if diff := cmp.Diff(want, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"unused-lib": "1.0.0"}, res.Manifest.Dependencies); diff != "" {
		t.Errorf("dependencies changed (-want +got):\n%s", diff)
	}
}

func TestUnusedExemptions(t *testing.T) {
	seed := map[string]string{"jest": "1", "ts-jest": "1", "@demo/testutils": "1", "quiet": "1"}
	tests := []struct {
		name     string
		pkgName  string
		opts     Options
		wantMsgs int
	}{
		{"unused list", "@demo/app", Options{Exceptions: Exceptions{Unused: []string{"jest", "ts-jest", "@demo/testutils", "quiet"}}}, 0},
		{"test package", "@demo/app-tests", Options{TestLibs: []string{"@demo/testutils"}, Exceptions: Exceptions{Unused: []string{"quiet"}}}, 0},
		{"test libs only in test packages", "@demo/app", Options{TestLibs: []string{"@demo/testutils"}}, 4},
		{"no unused switch", "@demo/app", Options{NoUnused: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.PkgPath = newPackage(t, nil)
			opts.Manifest = parseManifest(t, `{"name": "`+tt.pkgName+`", "private": true,
				"dependencies": {"jest": "1", "ts-jest": "1", "@demo/testutils": "1", "quiet": "1"}}`)
			opts.Versions = deps.NewCache(nil, seed)

			res := run(t, opts)
			if len(res.Messages) != tt.wantMsgs {
				t.Errorf("got %d messages, want %d: %v", len(res.Messages), tt.wantMsgs, res.Messages)
			}
		})
	}
}

func TestUpdatesDriftedVersions(t *testing.T) {
	pkg := newPackage(t, map[string]string{"src/index.ts": "import 'foo';\nimport 'pinned';"})
	res := run(t, Options{
		PkgPath: pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true,
			"dependencies":    {"foo": "1.0.0", "pinned": "0.1.0"},
			"devDependencies": {"typescript": "~4.0.0", "rimraf": "~3.0.0"}}`),
		Versions: deps.NewCache(nil, map[string]string{
			"foo": "2.0.0", "pinned": "9.9.9", "typescript": "~5.4.0", "rimraf": "~3.0.0",
		}),
		Exceptions: Exceptions{DifferentVersions: []string{"pinned"}},
	})

	want := []string{
		"Updated dependency: foo@2.0.0",
		"Updated devDependency: typescript@~5.4.0",
	}
	if diff := cmp.Diff(want, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := res.Manifest.Dependencies["pinned"]; got != "0.1.0" {
		t.Errorf("pinned = %q, want untouched", got)
	}
}

func TestInputManifestNotMutated(t *testing.T) {
	pkg := newPackage(t, nil)
	in := parseManifest(t, `{"name": "@demo/app", "dependencies": {"foo": "1.0.0"}, "gitHead": "abc"}`)
	run(t, Options{
		PkgPath:    pkg,
		Manifest:   in,
		Versions:   deps.NewCache(nil, map[string]string{"foo": "2.0.0"}),
		Exceptions: Exceptions{Unused: []string{"foo"}},
	})
	if in.Dependencies["foo"] != "1.0.0" || !in.Has("gitHead") {
		t.Error("Package() mutated the caller's manifest")
	}
}

func TestLookupFailureAborts(t *testing.T) {
	pkg := newPackage(t, map[string]string{"src/index.ts": `import 'not-published';`})
	res, err := Package(context.Background(), Options{
		PkgPath:  pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true}`),
		Versions: deps.NewCache(nil, nil),
	})
	if !pkgerrors.Is(err, pkgerrors.ErrCodeLookup) {
		t.Errorf("Package() error = %v, want LOOKUP_FAILED", err)
	}
	if res != nil {
		t.Error("Package() must not return a partial result")
	}
}

func TestParseErrorAborts(t *testing.T) {
	pkg := newPackage(t, map[string]string{"src/index.ts": "import {"})
	_, err := Package(context.Background(), Options{
		PkgPath:  pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true}`),
		Versions: deps.NewCache(nil, nil),
	})
	if !pkgerrors.Is(err, pkgerrors.ErrCodeParse) {
		t.Errorf("Package() error = %v, want PARSE_ERROR", err)
	}
}

func TestHaltsWithoutTSConfig(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "app")
	writeTree(t, pkg, map[string]string{"src/index.ts": `import 'never-scanned';`})

	res := run(t, Options{
		PkgPath:  pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "dependencies": {"foo": "1"}, "gitHead": "abc"}`),
		Versions: deps.NewCache(nil, map[string]string{"foo": "2"}),
	})
	if !res.Halted {
		t.Error("Halted = false")
	}
	if diff := cmp.Diff([]string{"Updated dependency: foo@2"}, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if !res.Manifest.Has("gitHead") {
		t.Error("halted packages should only receive version updates")
	}
}

func TestCSSImportsInSources(t *testing.T) {
	files := map[string]string{"src/index.ts": "import '../style/index.css';\nimport './widget.css';"}

	res := run(t, Options{
		PkgPath:  newPackage(t, files),
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true}`),
		Versions: deps.NewCache(nil, nil),
	})
	want := []string{"CSS imports are not allowed source files", "CSS imports are not allowed source files"}
	if diff := cmp.Diff(want, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	res = run(t, Options{
		PkgPath:  newPackage(t, files),
		Manifest: parseManifest(t, `{"name": "@demo/example-app", "private": true}`),
		Versions: deps.NewCache(nil, nil),
	})
	if len(res.Messages) != 0 {
		t.Errorf("example packages may import CSS, got %v", res.Messages)
	}
}

func TestFinalize(t *testing.T) {
	pkg := newPackage(t, nil)
	res := run(t, Options{
		PkgPath: pkg,
		Manifest: parseManifest(t, `{"name": "@demo/app", "version": "1.0.0", "gitHead": "abc",
			"dependencies": {}, "devDependencies": {}, "publishConfig": {"registry": "r"}}`),
		Versions: deps.NewCache(nil, nil),
	})

	if diff := cmp.Diff([]string{"prepublishOnly script missing in " + pkg}, res.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	out, err := res.Manifest.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "name": "@demo/app",
  "version": "1.0.0",
  "publishConfig": {
    "registry": "r",
    "access": "public"
  },
  "scripts": {
    "prepublishOnly": "npm run build"
  }
}
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestFinalizePrivate(t *testing.T) {
	res := run(t, Options{
		PkgPath:  newPackage(t, nil),
		Manifest: parseManifest(t, `{"name": "@demo/app", "private": true, "gitHead": "abc"}`),
		Versions: deps.NewCache(nil, nil),
	})
	if len(res.Messages) != 0 {
		t.Errorf("messages = %v", res.Messages)
	}
	if res.Manifest.Has("publishConfig") || res.Manifest.Has("scripts") || res.Manifest.Has("gitHead") {
		t.Error("private packages get no publish metadata and no gitHead")
	}
}

func TestIdempotent(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "packages", "app")
	core := filepath.Join(root, "packages", "core")
	writeTree(t, root, map[string]string{
		"packages/core/tsconfig.json":  "{}\n",
		"packages/app/tsconfig.json":   "{\n  \"references\": [{\"path\": \"../stale\"}]\n}\n",
		"packages/app/typedoc.json":    "{}\n",
		"packages/app/src/index.ts":    "import '@demo/core';\nimport 'react';",
		"packages/app/style/base.css":  "body {}\n",
		"packages/app/style/index.css": "",
	})
	m := parseManifest(t, `{"name": "@demo/app", "files": ["lib/*.js", "style/*.css"], "sideEffects": ["style/*.css"]}`)
	opts := Options{
		PkgPath:    pkg,
		Manifest:   m,
		Versions:   deps.NewCache(nil, map[string]string{"@demo/core": "^1.0.0", "react": "~18.2.0"}),
		Exceptions: Exceptions{Locals: map[string]string{"@demo/core": core}},
		CSSImports: []string{"@demo/core/style/index.css"},
	}

	first := run(t, opts)
	if len(first.Messages) == 0 {
		t.Fatal("first run should report changes")
	}
	if _, err := manifest.Write(filepath.Join(pkg, "package.json"), first.Manifest); err != nil {
		t.Fatal(err)
	}

	opts.Manifest = first.Manifest
	second := run(t, opts)
	if len(second.Messages) != 0 {
		t.Errorf("second run messages = %v, want none", second.Messages)
	}
	changed, err := manifest.Write(filepath.Join(pkg, "package.json"), second.Manifest)
	if err != nil || changed {
		t.Errorf("second manifest write = %v, %v; want unchanged", changed, err)
	}
	if strings.Contains(readTree(t, pkg, "tsconfig.json"), "stale") {
		t.Error("stale reference survived")
	}
}

func TestDeterministicMessages(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var src strings.Builder
	seed := map[string]string{}
	for _, n := range names {
		src.WriteString("import '" + n + "';\n")
		seed[n] = "1.0.0"
	}

	var first []string
	for i := range 5 {
		pkg := newPackage(t, map[string]string{"src/index.ts": src.String()})
		res := run(t, Options{
			PkgPath:  pkg,
			Manifest: parseManifest(t, `{"name": "@demo/app", "private": true}`),
			Versions: deps.NewCache(deps.LookupFunc(func(_ context.Context, name string) (string, error) {
				return seed[name], nil
			}), nil),
		})
		if i == 0 {
			first = res.Messages
			continue
		}
		if diff := cmp.Diff(first, res.Messages); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}
