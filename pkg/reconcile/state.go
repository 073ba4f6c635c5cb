package reconcile

import (
	"context"
	"slices"

	"github.com/matzehuels/pkgsync/pkg/manifest"
)

// State is the snapshot passed between steps. Steps never mutate the state
// they receive; they return an updated copy.
type State struct {
	Manifest *manifest.Manifest
	Messages []string
	Refs     []string // raw module references
	Names    []string // resolved, sorted, deduplicated package names
	Halted   bool
}

// Step is one stage of the reconciliation pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context, s State) (State, error)
}

// report returns a copy of s with msgs appended.
func (s State) report(msgs ...string) State {
	if len(msgs) == 0 {
		return s
	}
	s.Messages = append(slices.Clip(s.Messages), msgs...)
	return s
}

// edit returns a copy of s holding a private clone of the manifest.
func (s State) edit() State {
	s.Manifest = s.Manifest.Clone()
	return s
}
