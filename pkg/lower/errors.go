package lower

import (
	"fmt"

	"github.com/leapstack-labs/pylower/pkg/token"
)

// UnsupportedSyntaxError reports a construct that is grammatically valid but
// cannot be expressed: either the target version predates it, or its shape is
// structurally disallowed (e.g. a non-name assignment-expression target).
type UnsupportedSyntaxError struct {
	Construct string
	Pos       token.Position
}

func (e *UnsupportedSyntaxError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("unsupported syntax at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Construct)
	}
	return fmt.Sprintf("unsupported syntax: %s", e.Construct)
}

// UnimplementedError reports a node kind with no registered lowering
// routine. It indicates a gap in grammar coverage, never a user error.
type UnimplementedError struct {
	Kind token.Kind
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented construct: %s", e.Kind)
}

// MalformedTreeError reports a parse tree that violates the grammar's
// structural guarantees (e.g. a missing separating colon). It means the
// parser and the lowering engine have drifted out of sync.
type MalformedTreeError struct {
	Kind    token.Kind
	Message string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed parse tree in %s: %s", e.Kind, e.Message)
}

// malformed builds a MalformedTreeError for the given node kind.
func malformed(kind token.Kind, format string, args ...any) error {
	return &MalformedTreeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
