package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/pkgsync/pkg/manifest"
)

const (
	defaultSchemaDir = "schema"
	defaultStyle     = "style/index.css"
	stylePattern     = "style/**/*.*"
)

// checkPublished verifies that schemas and style files are covered by the
// manifest's "files" globs and that styled packages declare side effects.
func (o Options) checkPublished(_ context.Context, s State) (State, error) {
	fsys := os.DirFS(o.PkgPath)
	published, err := publishedFiles(fsys, s.Manifest.Files())
	if err != nil {
		return s, err
	}

	schemaDir, declared := s.Manifest.Namespaced(o.Namespace, "schemaDir")
	if !declared {
		schemaDir = defaultSchemaDir
	}
	schemas, err := doublestar.Glob(fsys, path.Join(filepath.ToSlash(schemaDir), "*.json"), doublestar.WithFilesOnly())
	if err != nil {
		return s, err
	}
	switch {
	case declared && len(schemas) == 0 && !strings.Contains(o.PkgPath, "examples"):
		s = s.report(fmt.Sprintf("No schemas found in %s.", o.path(schemaDir)))
	case !declared && len(schemas) > 0:
		s = s.report(fmt.Sprintf("Schemas found, but no schema indicated in %s", o.PkgPath))
	}
	if declared {
		for _, schema := range schemas {
			if !published[schema] {
				s = s.report(fmt.Sprintf("Schema %s not published in %s", o.path(schema), o.PkgPath))
			}
		}
	}

	styles, err := doublestar.Glob(fsys, stylePattern, doublestar.WithFilesOnly())
	if err != nil {
		return s, err
	}
	for _, style := range styles {
		if !published[style] {
			s = s.report(fmt.Sprintf("Style file %s not published in %s", o.path(style), o.PkgPath))
		}
	}
	if len(styles) == 0 {
		return s, nil
	}

	if _, ok := s.Manifest.Style(); !ok {
		s = s.edit()
		if err := s.Manifest.SetStyle(defaultStyle); err != nil {
			return s, err
		}
	}
	if !s.Manifest.SideEffectsDeclared() {
		s = s.report(fmt.Sprintf("Side effects not properly declared in %s", o.PkgPath))
	}
	return s, nil
}

// publishedFiles expands the "files" globs. A glob matching a directory
// publishes everything below it, as npm does.
func publishedFiles(fsys fs.FS, patterns []string) (map[string]bool, error) {
	files := make(map[string]bool)
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "./"), "/")
		if pattern == "" {
			continue
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("files pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := fs.Stat(fsys, m)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				files[m] = true
				continue
			}
			below, err := doublestar.Glob(fsys, path.Join(m, "**"), doublestar.WithFilesOnly())
			if err != nil {
				return nil, err
			}
			for _, f := range below {
				files[f] = true
			}
		}
	}
	return files, nil
}

// finalize normalizes publish metadata.
func (o Options) finalize(_ context.Context, s State) (State, error) {
	s = s.edit()
	m := s.Manifest
	if len(m.Dependencies) == 0 {
		m.Dependencies = nil
	}
	if len(m.DevDependencies) == 0 {
		m.DevDependencies = nil
	}
	m.Delete(manifest.KeyGitHead)

	if m.Private() {
		return s, nil
	}
	if err := m.SetPublishAccess("public"); err != nil {
		return s, err
	}
	if _, ok := m.Script("prepublishOnly"); !ok {
		s = s.report(fmt.Sprintf("prepublishOnly script missing in %s", o.PkgPath))
		if err := m.SetScript("prepublishOnly", "npm run build"); err != nil {
			return s, err
		}
	}
	return s, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return !errors.Is(err, os.ErrNotExist)
}
