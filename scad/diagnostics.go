package scad

import "fmt"

// DiagKind classifies a recoverable condition recorded during
// lexing, parsing, or evaluation.
type DiagKind int

const (
	// DiagLexWarning records an unrecognized character skipped by the lexer.
	DiagLexWarning DiagKind = iota
	// DiagUnmatchedStatement records a statement that matched no grammar
	// rule and was dropped.
	DiagUnmatchedStatement
	// DiagUnresolvedVariable records a statement dropped because an
	// argument referenced an unknown variable.
	DiagUnresolvedVariable
)

func (k DiagKind) String() string {
	switch k {
	case DiagLexWarning:
		return "lex warning"
	case DiagUnmatchedStatement:
		return "unmatched statement"
	case DiagUnresolvedVariable:
		return "unresolved variable"
	default:
		return "unknown"
	}
}

// Diagnostic describes one recoverable condition. Recoverable conditions
// accumulate on the result instead of aborting, so a caller can report
// "5 of 6 shapes rendered, 1 skipped" rather than failing outright.
type Diagnostic struct {
	Kind    DiagKind
	Pos     int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("pos %d: %v: %s", d.Pos, d.Kind, d.Message)
}
