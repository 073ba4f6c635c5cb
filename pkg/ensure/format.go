package ensure

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Formatter normalizes generated content before it is compared and written.
// The path is the destination file and selects the language.
type Formatter interface {
	Format(ctx context.Context, content, path string) (string, error)
}

// Noop returns content unchanged.
type Noop struct{}

// Format implements [Formatter].
func (Noop) Format(_ context.Context, content, _ string) (string, error) { return content, nil }

// Command runs an external formatter that reads the source on stdin and
// writes the result to stdout. The destination path is appended to Args:
//
//	ensure.Command{Name: "prettier", Args: []string{"--stdin-filepath"}}
type Command struct {
	Name string
	Args []string
	Dir  string // working directory, defaults to the current one
}

// ParseCommand builds a Command from an argv list such as the
// formatter setting in pkgsync.toml. An empty list yields nil.
func ParseCommand(argv []string) *Command {
	if len(argv) == 0 || argv[0] == "" {
		return nil
	}
	return &Command{Name: argv[0], Args: argv[1:]}
}

// Format implements [Formatter].
func (c *Command) Format(ctx context.Context, content, path string) (string, error) {
	if _, err := exec.LookPath(c.Name); err != nil {
		return "", fmt.Errorf("formatter %q not found in PATH: %w", c.Name, err)
	}

	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Dir = c.Dir
	cmd.Stdin = strings.NewReader(content)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %v: %s", c.Name, err, strings.TrimSpace(errBuf.String()))
	}
	return out.String(), nil
}
