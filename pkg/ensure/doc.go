// Package ensure keeps generated files in sync with their desired contents.
//
// [Writer.File] only rewrites a file when its contents would change, and
// only if the file already exists: a missing target is reported rather than
// created, since a generated file that was never checked in usually means
// the package is laid out differently than expected.
//
// Before comparing, content can be passed through a [Formatter] (for example
// prettier via [Command]) so that formatting differences do not cause
// churn, and line endings follow the existing file: a CRLF file stays CRLF.
package ensure
