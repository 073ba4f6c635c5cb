// Package render fills text templates for generated source files.
//
// Templates use {{name}} placeholders:
//
//	out := render.Template("export const {{name}}Icon = {{value}};", map[string]string{
//	    "name":  "add",
//	    "value": "new LabIcon({ ... })",
//	})
//
// Substitution is deterministic. Keys are applied in sorted order, the
// result is trimmed, and it ends with exactly one newline unless [WithEnd]
// says otherwise. With auto-indent (the default) every continuation line of
// a multi-line value inherits the indentation of the line holding the
// placeholder, so generated lists line up with the template around them.
//
// [WithHeader] prepends the standard "generated file" banner, which names
// the generator through the {{funcName}} binding.
package render
