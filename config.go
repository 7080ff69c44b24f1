package filterql

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/filterql/filter"
)

// Options configures how filters are built and rendered.
// The zero value (or a nil *Options) is valid.
type Options struct {
	// FieldMap renames source fields in every rendered form.
	// OPTIONAL: If nil, source field names are used unchanged.
	// Takes precedence over Transformer.
	FieldMap map[string]string

	// Transformer renames fields missing from FieldMap and rewrites their operands.
	// OPTIONAL: If nil, only FieldMap applies.
	Transformer filter.Transformer

	// TemporalStrings parses RFC 3339 and YYYY-MM-DD string operands as times.
	// OPTIONAL: Disabled by default.
	TemporalStrings bool

	// MaxDepth limits filter nesting.
	// OPTIONAL: If 0, uses filter.DefaultMaxDepth. MUST NOT be negative.
	MaxDepth int

	// SQL configures the SQL renderer beyond field renaming.
	// OPTIONAL: If nil, renders "WHERE ..." with plain column identifiers.
	SQL *SQLOptions

	// ORM configures gorm clause rendering.
	// OPTIONAL: If nil, columns without a table prefix stay unqualified.
	ORM *ORMOptions

	// Logger for build and render events.
	// OPTIONAL: If nil and LogLevel is nil, logging is discarded.
	// Note: If LogLevel is specified, a new stderr logger is created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If Logger is also provided, LogLevel is ignored.
	LogLevel *slog.Level
}

// SQLOptions configures SQL rendering.
type SQLOptions struct {
	// ColumnExpressions replaces target column names with SQL expressions.
	ColumnExpressions map[string]string

	// OmitWherePrefix drops the leading "WHERE " keyword.
	OmitWherePrefix bool
}

// ORMOptions configures ORM predicate rendering.
type ORMOptions struct {
	// Table qualifies columns that carry no table prefix of their own.
	Table string
}

// Map adds a field rename and returns o for chaining.
//
//	opts := (&filterql.Options{}).Map("firstName", "first_name").Map("lastName", "last_name")
func (o *Options) Map(source, target string) *Options {
	if o.FieldMap == nil {
		o.FieldMap = make(map[string]string)
	}
	o.FieldMap[source] = target
	return o
}

// Validate reports every problem with the options at once.
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}
	var result *multierror.Error
	for source, target := range o.FieldMap {
		if strings.TrimSpace(source) == "" {
			result = multierror.Append(result, fmt.Errorf("field map: empty source field (target %q)", target))
		}
		if strings.TrimSpace(target) == "" {
			result = multierror.Append(result, fmt.Errorf("field map: empty target for field %q", source))
		}
		if filter.IsOperator(source) {
			result = multierror.Append(result, fmt.Errorf("field map: source %q is an operator token", source))
		}
	}
	if o.MaxDepth < 0 {
		result = multierror.Append(result, fmt.Errorf("max depth must not be negative, got %d", o.MaxDepth))
	}
	if o.SQL != nil {
		for column, expr := range o.SQL.ColumnExpressions {
			if strings.TrimSpace(expr) == "" {
				result = multierror.Append(result, fmt.Errorf("sql: empty expression for column %q", column))
			}
		}
	}
	return result.ErrorOrNil()
}

func (o *Options) parseOptions() *filter.ParseOptions {
	if o == nil {
		return nil
	}
	return &filter.ParseOptions{TemporalStrings: o.TemporalStrings, MaxDepth: o.MaxDepth}
}

// Standard errors returned by the filterql package.
var (
	// ErrMissingFilter indicates a render was requested for a spec built without a filter.
	// Check HasFilter first when the filter is optional.
	ErrMissingFilter = errors.New("no filter to render")

	// ErrUnknownFormat indicates an unsupported or unset render format.
	ErrUnknownFormat = errors.New("unknown render format")

	// ErrInvalidOptions indicates Options validation failed.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrInvalidInput indicates raw filter input could not be decoded.
	ErrInvalidInput = errors.New("invalid filter input")
)

// codedError attaches a gRPC status code to an error.
type codedError struct {
	code codes.Code
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Unwrap() error { return e.err }

// GRPCStatus lets status.FromError and status.Code report the attached code.
func (e *codedError) GRPCStatus() *status.Status {
	return status.New(e.code, e.err.Error())
}

func withCode(code codes.Code, err error) error {
	return &codedError{code: code, err: err}
}
