package icons

import (
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/pkgsync/pkg/render"
)

// Layout of an icon package, relative to its root.
const (
	AssetPattern = "style/icons/**/*.svg"
	ImportsFile  = "src/icon/iconimports.ts"
	CSSFile      = "style/deprecated.css"

	iconSrcDir = "src/icon"
	styleDir   = "style"
)

// Asset describes one SVG icon and the names derived from it.
type Asset struct {
	Path       string // relative to the package, slash separated
	Stem       string // add
	Name       string // ui-components:add
	SvgVar     string // addSvgstr
	IconVar    string // addIcon
	ImportPath string // ../../style/icons/add.svg
	URL        string // icons/add.svg
}

// Discover lists the icon assets of the package at pkgPath in walk order.
func Discover(pkgPath string) ([]Asset, error) {
	matches, err := doublestar.Glob(os.DirFS(pkgPath), AssetPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	pkgStem := render.Stem(filepath.Base(filepath.Clean(pkgPath)))

	assets := make([]Asset, 0, len(matches))
	for _, m := range matches {
		assets = append(assets, NewAsset(pkgStem, m))
	}
	return assets, nil
}

// NewAsset derives the names for the asset at rel inside package pkgStem.
func NewAsset(pkgStem, rel string) Asset {
	stem := render.Stem(rel)
	camel := render.CamelCase(stem, false)
	return Asset{
		Path:       rel,
		Stem:       stem,
		Name:       pkgStem + ":" + stem,
		SvgVar:     camel + "Svgstr",
		IconVar:    camel + "Icon",
		ImportPath: relSlash(iconSrcDir, rel),
		URL:        relSlash(styleDir, rel),
	}
}

// relSlash returns target relative to base, both slash separated paths
// inside the same root.
func relSlash(base, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(target))
	if err != nil {
		return path.Clean(target)
	}
	return filepath.ToSlash(rel)
}
