package imports

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
	"github.com/matzehuels/pkgsync/pkg/observability"
)

// DefaultPatterns are the source globs scanned when none are configured.
var DefaultPatterns = []string{"src/*.ts*", "src/**/*.ts*"}

// Node kinds of interest in the TypeScript grammar.
const (
	kindImport        = "import_statement"
	kindRequireClause = "import_require_clause"
	kindError         = "ERROR"
)

// Extractor collects module references from TypeScript sources.
// The zero value is ready to use and safe for concurrent use.
type Extractor struct{}

// Extract parses src and returns the module references in document order.
// The path selects the grammar (.tsx uses TSX) and names the file in errors.
func (Extractor) Extract(ctx context.Context, filename string, src []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(filename))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeParse, err, "parse %s", filename)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			p := bad.StartPoint()
			return nil, pkgerrors.New(pkgerrors.ErrCodeParse, "syntax error in %s at line %d, column %d",
				filename, p.Row+1, p.Column+1)
		}
		return nil, pkgerrors.New(pkgerrors.ErrCodeParse, "syntax error in %s", filename)
	}

	var refs []string
	walk(root, src, &refs)
	return refs, nil
}

// ExtractFiles expands patterns below root and extracts the references of
// every matching file. Files are visited in sorted order and each file is
// read once even if several patterns match it.
func (e Extractor) ExtractFiles(ctx context.Context, root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	files, err := Glob(os.DirFS(root), patterns)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	var refs []string
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := filepath.Join(root, filepath.FromSlash(name))
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		found, err := e.Extract(ctx, file, src)
		hooks.OnFileParsed(ctx, name, len(found), err)
		if err != nil {
			return nil, err
		}
		refs = append(refs, found...)
	}
	return refs, nil
}

// Glob expands doublestar patterns against fsys and returns the matching
// files sorted and without duplicates.
func Glob(fsys fs.FS, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "glob %q", pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func languageFor(filename string) *sitter.Language {
	if strings.HasSuffix(filename, ".tsx") {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

func walk(n *sitter.Node, src []byte, refs *[]string) {
	switch n.Type() {
	case kindImport:
		if s := n.ChildByFieldName("source"); s != nil {
			*refs = append(*refs, unquote(s.Content(src)))
			return
		}
	case kindRequireClause:
		if s := n.ChildByFieldName("source"); s != nil {
			*refs = append(*refs, unquote(s.Content(src)))
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), src, refs)
	}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == kindError || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.HasError() || c.IsMissing() {
			if bad := firstError(c); bad != nil {
				return bad
			}
		}
	}
	return nil
}

// unquote strips the quotes of a string literal node. Module specifiers do
// not use escapes in practice, so the body is returned as written.
func unquote(lit string) string {
	if len(lit) >= 2 {
		if q := lit[0]; (q == '\'' || q == '"' || q == '`') && lit[len(lit)-1] == q {
			return lit[1 : len(lit)-1]
		}
	}
	return lit
}
