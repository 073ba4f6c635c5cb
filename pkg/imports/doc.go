// Package imports extracts module references from TypeScript sources and
// resolves them to npm package names.
//
// Extraction is purely syntactic. Sources are parsed with tree-sitter's
// TypeScript grammar (TSX for .tsx files) and the whole tree is walked, so
// imports nested inside blocks or namespaces are found as well:
//
//	import { Widget } from '@lumino/widgets';   // "@lumino/widgets"
//	import '../style/index.css';                // "../style/index.css"
//	import foo = require('foo/lib/bar');        // "foo/lib/bar"
//
// Dynamic import() calls and import aliases (import x = A.B) carry no
// literal package reference and are skipped. A file with syntax errors is
// rejected with a PARSE_ERROR instead of being partially scanned.
//
// [Resolve] maps a reference to the package that provides it:
//
//	@scope/pkg/lib/x  ->  @scope/pkg
//	pkg/lib/x         ->  pkg
//	./local, ../up    ->  local (no package)
package imports
