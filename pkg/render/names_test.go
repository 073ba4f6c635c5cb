package render

import "testing"

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in    string
		upper bool
		want  string
	}{
		{"add-above", false, "addAbove"},
		{"add-above", true, "AddAbove"},
		{"run", false, "run"},
		{"run", true, "Run"},
		{"case-sensitive", false, "caseSensitive"},
		{"some name", false, "someName"},
		{"Jupyter", false, "jupyter"},
		{"file--upload", false, "fileUpload"},
		{"html5", true, "Html5"},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := CamelCase(tt.in, tt.upper); got != tt.want {
			t.Errorf("CamelCase(%q, %v) = %q, want %q", tt.in, tt.upper, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"style/icons/run.svg": "run",
		"a/b/c.d.ts":          "c",
		"noext":               "noext",
		"dir\\win\\name.svg":  "name",
		"ui-components":       "ui-components",
		"style/icons/.hidden": "",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
