package entities

import (
	"errors"
	"fmt"
)

// ErrWorkspaceNotFound is returned when the workspace root manifest does not
// exist or carries no [workspace] section.
var ErrWorkspaceNotFound = errors.New("no Cargo workspace found")

// MalformedInputError reports a duplicate (name, kind) declaration within a
// single member. It is fatal and aborts before aggregation, since every
// downstream invariant assumes uniqueness.
type MalformedInputError struct {
	MemberID     string
	ManifestPath string
	Name         string
	Kind         DependencyKind
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf(
		"member %q (%s) declares dependency %q twice under %s",
		e.MemberID, e.ManifestPath, e.Name, e.Kind.Table(),
	)
}
