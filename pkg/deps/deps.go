package deps

import (
	"context"
	"errors"
)

// DefaultWorkers bounds concurrent lookups in [Cache.ResolveAll].
const DefaultWorkers = 20

// ErrUnknown is returned by a [Lookup] that has no answer for a name.
// [Chain] moves on to the next lookup when it sees it.
var ErrUnknown = errors.New("unknown package")

// Lookup returns the version range to declare for a package.
type Lookup interface {
	Version(ctx context.Context, name string) (string, error)
}

// LookupFunc adapts a function to [Lookup].
type LookupFunc func(ctx context.Context, name string) (string, error)

// Version calls f.
func (f LookupFunc) Version(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

type chain []Lookup

// Chain returns a Lookup that consults each lookup in order and returns the
// first answer. Errors other than [ErrUnknown] stop the chain.
func Chain(lookups ...Lookup) Lookup {
	return chain(lookups)
}

func (c chain) Version(ctx context.Context, name string) (string, error) {
	for _, l := range c {
		if l == nil {
			continue
		}
		v, err := l.Version(ctx, name)
		if errors.Is(err, ErrUnknown) {
			continue
		}
		return v, err
	}
	return "", ErrUnknown
}
