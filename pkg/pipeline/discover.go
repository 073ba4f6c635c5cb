package pipeline

import (
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
	"github.com/matzehuels/pkgsync/pkg/manifest"
)

// Package is a workspace member.
type Package struct {
	Name     string
	Dir      string // relative to the workspace root, slash separated
	Path     string // absolute directory
	Manifest *manifest.Manifest
}

// Discover finds every directory below root that matches one of patterns
// and holds a package.json. Packages are returned in directory order.
// Two packages with the same name are an error.
func Discover(root string, patterns []string) ([]Package, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fsys := os.DirFS(abs)

	var dirs []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, path.Join(pattern, "package.json"), doublestar.WithFilesOnly())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "workspace pattern %q", pattern)
		}
		for _, m := range matches {
			dirs = append(dirs, path.Dir(m))
		}
	}
	slices.Sort(dirs)
	dirs = slices.Compact(dirs)

	pkgs := make([]Package, 0, len(dirs))
	seen := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		full := filepath.Join(abs, filepath.FromSlash(dir))
		m, err := manifest.Load(filepath.Join(full, "package.json"))
		if err != nil {
			return nil, err
		}
		if m.Name == "" {
			return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidManifest, "%s/package.json has no name", dir)
		}
		if prev, ok := seen[m.Name]; ok {
			return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidManifest, "package %s declared in both %s and %s", m.Name, prev, dir)
		}
		seen[m.Name] = dir
		pkgs = append(pkgs, Package{Name: m.Name, Dir: dir, Path: full, Manifest: m})
	}
	return pkgs, nil
}

// Locals maps package names to their absolute directories.
func Locals(pkgs []Package) map[string]string {
	out := make(map[string]string, len(pkgs))
	for _, p := range pkgs {
		out[p.Name] = p.Path
	}
	return out
}

// Versions maps package names to their local versions.
func Versions(pkgs []Package) map[string]string {
	out := make(map[string]string, len(pkgs))
	for _, p := range pkgs {
		out[p.Name] = p.Manifest.Version()
	}
	return out
}
