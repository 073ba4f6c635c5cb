package ensure

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type upperFormatter struct{ calls int }

func (f *upperFormatter) Format(_ context.Context, content, _ string) (string, error) {
	f.calls++
	return strings.ToUpper(content), nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.css")
	w := &Writer{}

	msgs, err := w.File(context.Background(), path, "body\n", false)
	if err != nil {
		t.Fatalf("File() error: %v", err)
	}
	want := []string{"Tried to ensure the contents of " + path + ", but the file does not exist"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("File() messages mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("File() must not create a missing file")
	}
}

func TestFileIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.css")
	writeFile(t, path, "old\n")
	w := &Writer{}
	ctx := context.Background()

	msgs, err := w.File(ctx, path, "new\n", false)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Updated " + path}, msgs); diff != "" {
		t.Errorf("first File() mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, path); got != "new\n" {
		t.Errorf("contents = %q", got)
	}

	msgs, err = w.File(ctx, path, "new\n", false)
	if err != nil || len(msgs) != 0 {
		t.Errorf("second File() = %v, %v; want no messages", msgs, err)
	}
}

func TestFilePreservesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconimports.ts")
	writeFile(t, path, "a\r\nb\r\n")
	w := &Writer{}
	ctx := context.Background()

	msgs, err := w.File(ctx, path, "a\nb\n", false)
	if err != nil || len(msgs) != 0 {
		t.Errorf("File() = %v, %v; want equal after CRLF conversion", msgs, err)
	}

	if _, err := w.File(ctx, path, "a\nc\n", false); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "a\r\nc\r\n" {
		t.Errorf("contents = %q, want CRLF endings", got)
	}
}

func TestFileFormatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deprecated.css")
	writeFile(t, path, "")
	f := &upperFormatter{}
	w := &Writer{Formatter: f}
	ctx := context.Background()

	if _, err := w.File(ctx, path, "x\n", true); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "X\n" {
		t.Errorf("contents = %q, want formatted", got)
	}
	if _, err := w.File(ctx, path, "y\n", false); err != nil {
		t.Fatal(err)
	}
	if f.calls != 1 {
		t.Errorf("formatter called %d times, want 1", f.calls)
	}
	if got := readFile(t, path); got != "y\n" {
		t.Errorf("contents = %q, want unformatted", got)
	}
}

func TestToCRLF(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"a":       "a",
		"a\nb\n":  "a\r\nb\r\n",
		"a\r\nb\n": "a\r\nb\r\n",
		"\n\n":    "\r\n\r\n",
	}
	for in, want := range tests {
		if got := ToCRLF(in); got != want {
			t.Errorf("ToCRLF(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCommand(t *testing.T) {
	if ParseCommand(nil) != nil {
		t.Error("ParseCommand(nil) should be nil")
	}
	c := ParseCommand([]string{"prettier", "--stdin-filepath"})
	if c.Name != "prettier" || len(c.Args) != 1 {
		t.Errorf("ParseCommand() = %+v", c)
	}
}

func TestCommandFormat(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	// The appended path lands in $1 and is ignored by the script.
	c := &Command{Name: "sh", Args: []string{"-c", "tr a-z A-Z", "--"}}
	got, err := c.Format(context.Background(), "hello\n", "ignored.css")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if got != "HELLO\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestCommandMissingBinary(t *testing.T) {
	c := &Command{Name: "definitely-not-a-formatter-binary"}
	if _, err := c.Format(context.Background(), "x", "a.css"); err == nil {
		t.Error("Format() should fail for a missing binary")
	}
}
