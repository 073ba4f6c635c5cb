package deps

import (
	"context"
	"maps"
	"slices"
)

// Workspace resolves packages that live in the repository to ^<version>.
type Workspace struct {
	versions map[string]string
}

// NewWorkspace creates a lookup over local package versions keyed by name.
func NewWorkspace(versions map[string]string) *Workspace {
	return &Workspace{versions: maps.Clone(versions)}
}

// Version implements [Lookup].
func (w *Workspace) Version(_ context.Context, name string) (string, error) {
	v, ok := w.versions[name]
	if !ok || v == "" {
		return "", ErrUnknown
	}
	return "^" + v, nil
}

// Names returns the local package names in ascending order.
func (w *Workspace) Names() []string {
	return slices.Sorted(maps.Keys(w.versions))
}
