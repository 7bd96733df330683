package entities

import "fmt"

// DefaultMinOccurrences is the default contributor threshold for promotion.
const DefaultMinOccurrences = 2

// PromoteOptions holds runtime options for a promotion run.
type PromoteOptions struct {
	// WorkspaceRoot is the directory holding the root manifest.
	WorkspaceRoot string

	// MinOccurrences is the minimum number of members that must declare a
	// dependency before it is promoted. Must be at least 1.
	MinOccurrences int

	// Exclude lists dependency names that are never promoted.
	Exclude []string

	// DryRun prints the plan without writing any manifest.
	DryRun bool

	// Quiet and Verbose only affect reporting, never the computed plan.
	Quiet   bool
	Verbose bool
}

// Validate checks option invariants.
func (o PromoteOptions) Validate() error {
	if o.MinOccurrences < 1 {
		return fmt.Errorf("min-occurrences must be at least 1, got %d", o.MinOccurrences)
	}
	return nil
}

// Excluded reports whether the given dependency name is excluded from
// promotion.
func (o PromoteOptions) Excluded(name string) bool {
	for _, excluded := range o.Exclude {
		if excluded == name {
			return true
		}
	}
	return false
}
