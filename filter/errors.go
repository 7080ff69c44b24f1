package filter

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Parse errors. Use errors.Is to test for them; the concrete errors carry details.
var (
	// ErrUnknownOperator indicates a token in operator position is not in the registry.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrInvalidFilterShape indicates the filter input has the wrong cardinality,
	// arity or nesting for the operator at that position.
	ErrInvalidFilterShape = errors.New("invalid filter shape")
)

// UnknownOperatorError reports a token that matches no registered operator.
type UnknownOperatorError struct {
	Token string
	Path  string // location of the token in the filter input
}

func (e *UnknownOperatorError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unknown operator %q", e.Token)
	}
	return fmt.Sprintf("unknown operator %q at %s", e.Token, e.Path)
}

func (e *UnknownOperatorError) Unwrap() error { return ErrUnknownOperator }

// GRPCStatus maps the error to codes.InvalidArgument.
func (e *UnknownOperatorError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// ShapeError reports filter input that cannot resolve to a single expression.
type ShapeError struct {
	Path   string // location of the offending node, "/" for the root
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid filter shape at %s: %s", e.Path, e.Reason)
}

func (e *ShapeError) Unwrap() error { return ErrInvalidFilterShape }

// GRPCStatus maps the error to codes.InvalidArgument.
func (e *ShapeError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

func newShapeError(path, format string, args ...any) *ShapeError {
	return &ShapeError{Path: displayPath(path), Reason: fmt.Sprintf(format, args...)}
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
