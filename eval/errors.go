package eval

import (
	"errors"
	"fmt"

	"github.com/meshcad-xyz/go-meshcad/scad"
)

// ErrNoGeometry is the sentinel for evaluations that produced nothing.
// Match with errors.Is; the returned error is a *NoGeometryError
// carrying the diagnostics that explain what was skipped.
var ErrNoGeometry = errors.New("eval: no geometry produced")

// errUnresolved is the sentinel wrapped by unresolved variable
// references inside argument lists.
var errUnresolved = errors.New("eval: unresolved variable")

// NoGeometryError reports that the full AST evaluated to an empty
// scene. It is fatal for the evaluation: the caller gets this error
// rather than a substitute shape, so "nothing was specified" is never
// conflated with "something was rendered".
type NoGeometryError struct {
	Diagnostics []scad.Diagnostic
}

func (e *NoGeometryError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "eval: no geometry produced"
	}
	return fmt.Sprintf("eval: no geometry produced (%d statements skipped)", len(e.Diagnostics))
}

func (e *NoGeometryError) Is(target error) bool {
	return target == ErrNoGeometry
}
