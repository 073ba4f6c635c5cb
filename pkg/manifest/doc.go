// Package manifest reads and writes package.json and the JSON project files
// that sit next to it (tsconfig.json, typedoc.json, tdoptions.json).
//
// # Key order
//
// Files are edited in place by tooling and by hand, so round-tripping must
// not shuffle them. [Object] keeps the keys of a JSON object in file order
// and stores values as raw JSON; keys added later are appended. Only the
// dependency maps of a [Manifest] are normalized: they are written with
// sorted keys, which matches what npm itself produces.
//
// # Output format
//
// [Marshal] and [WriteObject] emit two-space indentation with a trailing
// newline and never HTML-escape strings, so an unchanged file round-trips
// byte for byte. Writers compare against the current file contents and only
// touch disk when the serialized form differs.
package manifest
