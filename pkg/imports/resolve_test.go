package imports

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		ref       string
		wantName  string
		wantLocal bool
	}{
		{"@scope/pkg/sub/path", "@scope/pkg", false},
		{"@scope/pkg", "@scope/pkg", false},
		{"pkg/sub", "pkg", false},
		{"pkg", "pkg", false},
		{"./local", "", true},
		{"../up/file", "", true},
		{".", "", true},
		{"..", "", true},
		{".hidden", ".hidden", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			name, local := Resolve(tt.ref)
			if name != tt.wantName || local != tt.wantLocal {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.ref, name, local, tt.wantName, tt.wantLocal)
			}
		})
	}
}

func TestNames(t *testing.T) {
	refs := []string{
		"react",
		"@lumino/widgets",
		"./foo",
		"@lumino/widgets/lib/panel",
		"react/jsx-runtime",
		"../style/index.css",
		"@jupyterlab/coreutils",
	}
	want := []string{"@jupyterlab/coreutils", "@lumino/widgets", "react"}
	if diff := cmp.Diff(want, Names(refs)); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if got := Names(nil); len(got) != 0 {
		t.Errorf("Names(nil) = %v, want empty", got)
	}
}
