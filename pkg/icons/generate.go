package icons

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pkgsync/pkg/ensure"
	"github.com/matzehuels/pkgsync/pkg/render"
)

const funcName = "ensureIcons"

const importsTemplate = `import { {{iconClass}} } from '{{iconModule}}';

// icon svg import statements
{{svgImportStatements}}

// icon model records, in asset order
export const iconModels = [
  {{iconModelDeclarations}}
];

// {{iconClass}} instance construction
{{iconConstructions}}
`

const cssTemplate = `/**
 * (DEPRECATED) Support for consuming icons as CSS background images
 */

/* Icons urls */

:root {
  {{iconCSSUrls}}
}

/* Icon CSS class declarations */

{{iconCSSDeclarations}}
`

// Options controls the generated code.
type Options struct {
	Dynamic    bool   // require() the SVGs at runtime instead of importing them
	IconClass  string // default "LabIcon"
	IconModule string // default "./labicon"
	CSSPrefix  string // default "jp"
}

func (o Options) withDefaults() Options {
	if o.IconClass == "" {
		o.IconClass = "LabIcon"
	}
	if o.IconModule == "" {
		o.IconModule = "./labicon"
	}
	if o.CSSPrefix == "" {
		o.CSSPrefix = "jp"
	}
	return o
}

// Generator keeps the icon files of a package in sync with its assets.
type Generator struct {
	Writer  *ensure.Writer
	Options Options
}

// Ensure regenerates src/icon/iconimports.ts and style/deprecated.css for
// the package at pkgPath and returns the file messages.
func (g *Generator) Ensure(ctx context.Context, pkgPath string) ([]string, error) {
	assets, err := Discover(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("discover icons in %s: %w", pkgPath, err)
	}
	w := g.Writer
	if w == nil {
		w = &ensure.Writer{}
	}

	var messages []string
	msgs, err := w.File(ctx, filepath.Join(pkgPath, filepath.FromSlash(ImportsFile)), g.Imports(assets), false)
	if err != nil {
		return nil, err
	}
	messages = append(messages, msgs...)

	msgs, err = w.File(ctx, filepath.Join(pkgPath, filepath.FromSlash(CSSFile)), g.CSS(assets), true)
	if err != nil {
		return nil, err
	}
	return append(messages, msgs...), nil
}

// Imports renders the TypeScript icon module.
func (g *Generator) Imports(assets []Asset) string {
	o := g.Options.withDefaults()

	imports := make([]string, len(assets))
	models := make([]string, len(assets))
	constructions := make([]string, len(assets))
	for i, a := range assets {
		if o.Dynamic {
			imports[i] = fmt.Sprintf("const %s = require('%s').default;", a.SvgVar, a.ImportPath)
		} else {
			imports[i] = fmt.Sprintf("import %s from '%s';", a.SvgVar, a.ImportPath)
		}
		models[i] = fmt.Sprintf("{ name: '%s', svgstr: %s }", a.Name, a.SvgVar)
		constructions[i] = fmt.Sprintf("export const %s = new %s({ name: '%s', svgstr: %s });",
			a.IconVar, o.IconClass, a.Name, a.SvgVar)
	}

	return render.Template(importsTemplate, map[string]string{
		"funcName":              funcName,
		"iconClass":             o.IconClass,
		"iconModule":            o.IconModule,
		"svgImportStatements":   strings.Join(imports, "\n"),
		"iconModelDeclarations": strings.Join(models, ",\n"),
		"iconConstructions":     strings.Join(constructions, "\n"),
	}, render.WithHeader())
}

// CSS renders the deprecated CSS variable and class table.
func (g *Generator) CSS(assets []Asset) string {
	o := g.Options.withDefaults()

	urls := make([]string, len(assets))
	decls := make([]string, len(assets))
	for i, a := range assets {
		urlVar := fmt.Sprintf("--%s-icon-%s", o.CSSPrefix, a.Stem)
		urls[i] = fmt.Sprintf("%s: url('%s');", urlVar, a.URL)
		decls[i] = fmt.Sprintf(".%s-%sIcon {background-image: var(%s)}",
			o.CSSPrefix, render.CamelCase(a.Stem, true), urlVar)
	}

	return render.Template(cssTemplate, map[string]string{
		"funcName":            funcName,
		"iconCSSUrls":         strings.Join(urls, "\n"),
		"iconCSSDeclarations": strings.Join(decls, "\n"),
	}, render.WithHeader())
}
