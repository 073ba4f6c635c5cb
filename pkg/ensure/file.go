package ensure

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Writer writes generated files idempotently.
type Writer struct {
	// Formatter prettifies content when File is asked to. Nil means [Noop].
	Formatter Formatter
}

// File makes path hold content. It returns the messages describing what
// happened: nothing when the file is already up to date, "Updated <path>"
// after a write, or a warning when path does not exist.
func (w *Writer) File(ctx context.Context, path, content string, prettify bool) ([]string, error) {
	prev, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{fmt.Sprintf("Tried to ensure the contents of %s, but the file does not exist", path)}, nil
	}
	if err != nil {
		return nil, err
	}

	if prettify && w.Formatter != nil {
		content, err = w.Formatter.Format(ctx, content, path)
		if err != nil {
			return nil, err
		}
	}

	if strings.Contains(string(prev), "\r\n") {
		content = ToCRLF(content)
	}
	if string(prev) == content {
		return nil, nil
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{"Updated " + path}, nil
}

// ToCRLF converts every line ending in s to CRLF.
func ToCRLF(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}
