package deps

import (
	"context"
	"errors"

	"github.com/matzehuels/pkgsync/pkg/integrations"
)

// DefaultRangePrefix is prepended to registry versions.
const DefaultRangePrefix = "~"

// VersionSource reports the latest published version of a package.
// *npm.Client implements it.
type VersionSource interface {
	LatestVersion(ctx context.Context, name string, refresh bool) (string, error)
}

// Registry resolves packages to <RangePrefix><latest version>.
type Registry struct {
	Source      VersionSource
	RangePrefix string // default "~"
	Refresh     bool   // bypass the response cache
}

// NewRegistry creates a registry lookup using the default range prefix.
func NewRegistry(src VersionSource) *Registry {
	return &Registry{Source: src, RangePrefix: DefaultRangePrefix}
}

// Version implements [Lookup]. Packages missing from the registry report
// [ErrUnknown].
func (r *Registry) Version(ctx context.Context, name string) (string, error) {
	v, err := r.Source.LatestVersion(ctx, name, r.Refresh)
	if errors.Is(err, integrations.ErrNotFound) {
		return "", errors.Join(ErrUnknown, err)
	}
	if err != nil {
		return "", err
	}
	return r.RangePrefix + v, nil
}
