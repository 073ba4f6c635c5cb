// Package pipeline runs reconciliation over every package of a workspace.
//
// A [Runner] discovers the packages matched by the configured workspace
// globs, builds one shared version cache (workspace siblings first, then the
// npm registry) and reconciles the packages one after another in directory
// order. A package's manifest is written only when its reconciliation
// succeeded, including packages that halted early for lack of a
// tsconfig.json. The run stops at the first fatal error.
package pipeline

import (
	"time"
)

// PackageReport is the outcome of reconciling one package.
type PackageReport struct {
	Name     string
	Dir      string // relative to the workspace root, slash separated
	Messages []string
	Halted   bool // no tsconfig.json, later steps were skipped
	Written  bool // package.json changed on disk
	Duration time.Duration
}

// Report collects the outcome of a run in processing order.
type Report struct {
	Packages []PackageReport
	Duration time.Duration
}

// Messages returns the total number of messages across all packages.
func (r *Report) Messages() int {
	n := 0
	for _, p := range r.Packages {
		n += len(p.Messages)
	}
	return n
}

// Clean reports whether no package produced a message.
func (r *Report) Clean() bool {
	return r.Messages() == 0
}

// WithMessages returns the packages that produced messages.
func (r *Report) WithMessages() []PackageReport {
	var out []PackageReport
	for _, p := range r.Packages {
		if len(p.Messages) > 0 {
			out = append(out, p)
		}
	}
	return out
}
