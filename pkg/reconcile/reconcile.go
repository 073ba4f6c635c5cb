package reconcile

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
	"github.com/matzehuels/pkgsync/pkg/imports"
	"github.com/matzehuels/pkgsync/pkg/observability"
)

// Package reconciles the package described by opts.
func Package(ctx context.Context, opts Options) (*Result, error) {
	if opts.Manifest == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "no manifest for %s", opts.PkgPath)
	}
	if opts.Versions == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "no version source for %s", opts.PkgPath)
	}

	s := State{Manifest: opts.Manifest.Clone()}
	hooks := observability.Pipeline()
	for _, step := range Steps(opts) {
		if s.Halted {
			break
		}
		start := time.Now()
		next, err := step.Run(ctx, s)
		hooks.OnStepComplete(ctx, opts.Manifest.Name, step.Name, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", opts.PkgPath, step.Name, err)
		}
		s = next
	}

	return &Result{
		Manifest: s.Manifest,
		Messages: s.Messages,
		Imports:  s.Names,
		Halted:   s.Halted,
	}, nil
}

// Steps returns the pipeline for opts in execution order.
func Steps(opts Options) []Step {
	steps := []Step{
		{"update-versions", opts.updateVersions},
		{"require-project", opts.requireProject},
		{"sync-typedoc", opts.syncTypedoc},
		{"extract-imports", opts.extractImports},
		{"add-missing", opts.addMissing},
		{"ensure-style-index", opts.ensureStyleIndex},
	}
	if !opts.NoUnused {
		steps = append(steps, Step{"report-unused", opts.reportUnused})
	}
	steps = append(steps,
		Step{"sync-doc-options", opts.syncDocOptions},
		Step{"sync-references", opts.syncReferences},
		Step{"check-published", opts.checkPublished},
	)
	if opts.Icons != nil {
		steps = append(steps, Step{"generate-icons", opts.generateIcons})
	}
	return append(steps, Step{"finalize", opts.finalize})
}

// updateVersions rewrites declared ranges that differ from the shared ones.
// Dependencies and devDependencies are separate passes; within a pass all
// lookups run concurrently and messages follow in name order.
func (o Options) updateVersions(ctx context.Context, s State) (State, error) {
	s = s.edit()
	passes := []struct {
		label string
		deps  map[string]string
	}{
		{"dependency", s.Manifest.Dependencies},
		{"devDependency", s.Manifest.DevDependencies},
	}
	for _, p := range passes {
		names := slices.DeleteFunc(slices.Sorted(maps.Keys(p.deps)), func(name string) bool {
			return slices.Contains(o.Exceptions.DifferentVersions, name)
		})
		if len(names) == 0 {
			continue
		}
		versions, err := o.Versions.ResolveAll(ctx, names)
		if err != nil {
			return s, err
		}
		for _, name := range names {
			if v := versions[name]; p.deps[name] != v {
				p.deps[name] = v
				s = s.report(fmt.Sprintf("Updated %s: %s@%s", p.label, name, v))
			}
		}
	}
	return s, nil
}

// requireProject halts packages without a TypeScript project.
func (o Options) requireProject(_ context.Context, s State) (State, error) {
	if !o.exists("tsconfig.json") {
		s.Halted = true
	}
	return s, nil
}

func (o Options) extractImports(ctx context.Context, s State) (State, error) {
	scanner := o.Scanner
	if scanner == nil {
		scanner = imports.Extractor{}
	}
	refs, err := scanner.ExtractFiles(ctx, o.PkgPath, o.Sources)
	if err != nil {
		return s, err
	}
	s.Refs = refs
	s.Names = imports.Names(refs)

	if !strings.Contains(s.Manifest.Name, "example") {
		for _, ref := range refs {
			if strings.Contains(ref, ".css") {
				s = s.report("CSS imports are not allowed source files")
			}
		}
	}
	return s, nil
}

// addMissing declares every imported package that is not yet a dependency.
func (o Options) addMissing(ctx context.Context, s State) (State, error) {
	var missing []string
	for _, name := range s.Names {
		if _, ok := s.Manifest.Dependencies[name]; ok {
			continue
		}
		if slices.Contains(o.Exceptions.Missing, name) {
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) == 0 {
		return s, nil
	}

	versions, err := o.Versions.ResolveAll(ctx, missing)
	if err != nil {
		return s, err
	}
	s = s.edit()
	if s.Manifest.Dependencies == nil {
		s.Manifest.Dependencies = make(map[string]string, len(missing))
	}
	for _, name := range missing {
		s.Manifest.Dependencies[name] = versions[name]
		s = s.report(fmt.Sprintf("Added dependency: %s@%s", name, versions[name]))
	}
	return s, nil
}

// reportUnused warns about declared dependencies that no source imports.
func (o Options) reportUnused(_ context.Context, s State) (State, error) {
	isTest := strings.Contains(s.Manifest.Name, "test")
	for _, name := range slices.Sorted(maps.Keys(s.Manifest.Dependencies)) {
		if slices.Contains(o.Exceptions.Unused, name) {
			continue
		}
		if isTest && o.testLib(name) {
			continue
		}
		if _, found := slices.BinarySearch(s.Names, name); found {
			continue
		}
		s = s.report(fmt.Sprintf(
			"Unused dependency: %s@%s: remove or add to list of known unused dependencies for this package",
			name, s.Manifest.Dependencies[name]))
	}
	return s, nil
}

func (o Options) generateIcons(ctx context.Context, s State) (State, error) {
	msgs, err := o.Icons.Ensure(ctx, o.PkgPath)
	if err != nil {
		return s, err
	}
	return s.report(msgs...), nil
}

func (o Options) path(rel string) string {
	return filepath.Join(o.PkgPath, filepath.FromSlash(rel))
}

func (o Options) exists(rel string) bool {
	_, err := os.Stat(o.path(rel))
	return !errors.Is(err, os.ErrNotExist)
}
