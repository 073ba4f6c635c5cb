package deps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pkgsync/pkg/integrations"
)

type fakeSource struct {
	versions map[string]string
	refresh  bool
}

func (f *fakeSource) LatestVersion(_ context.Context, name string, refresh bool) (string, error) {
	f.refresh = refresh
	v, ok := f.versions[name]
	if !ok {
		return "", fmt.Errorf("%w: npm package %s", integrations.ErrNotFound, name)
	}
	return v, nil
}

func TestWorkspace(t *testing.T) {
	w := NewWorkspace(map[string]string{"@demo/core": "4.1.0", "@demo/ui": "4.1.0"})
	ctx := context.Background()

	if v, err := w.Version(ctx, "@demo/core"); err != nil || v != "^4.1.0" {
		t.Errorf("Version(@demo/core) = %q, %v", v, err)
	}
	if _, err := w.Version(ctx, "react"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Version(react) error = %v, want ErrUnknown", err)
	}
	if diff := cmp.Diff([]string{"@demo/core", "@demo/ui"}, w.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	src := &fakeSource{versions: map[string]string{"react": "18.3.1"}}
	r := NewRegistry(src)
	r.Refresh = true

	v, err := r.Version(context.Background(), "react")
	if err != nil || v != "~18.3.1" {
		t.Errorf("Version(react) = %q, %v", v, err)
	}
	if !src.refresh {
		t.Error("Refresh flag not passed to the source")
	}

	r.RangePrefix = "^"
	if v, _ := r.Version(context.Background(), "react"); v != "^18.3.1" {
		t.Errorf("Version(react) with ^ = %q", v)
	}

	_, err = r.Version(context.Background(), "nope")
	if !errors.Is(err, ErrUnknown) || !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Version(nope) error = %v, want ErrUnknown and ErrNotFound", err)
	}
}

func TestChain(t *testing.T) {
	local := NewWorkspace(map[string]string{"@demo/core": "1.0.0"})
	remote := NewRegistry(&fakeSource{versions: map[string]string{"@demo/core": "9.9.9", "react": "18.0.0"}})
	l := Chain(local, nil, remote)
	ctx := context.Background()

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{"@demo/core", "^1.0.0", nil},
		{"react", "~18.0.0", nil},
		{"missing", "", ErrUnknown},
	}
	for _, tt := range tests {
		got, err := l.Version(ctx, tt.name)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Version(%s) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Version(%s) = %q, %v; want %q", tt.name, got, err, tt.want)
		}
	}
}

func TestChainStopsOnHardError(t *testing.T) {
	boom := errors.New("boom")
	l := Chain(
		LookupFunc(func(context.Context, string) (string, error) { return "", boom }),
		LookupFunc(func(context.Context, string) (string, error) { return "1", nil }),
	)
	if _, err := l.Version(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("Version() error = %v, want boom", err)
	}
}
