package filterql

import (
	"fmt"
	"log/slog"

	"google.golang.org/grpc/codes"
	"gorm.io/gorm/clause"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/internal/logging"
	"github.com/hugr-lab/filterql/internal/recovery"
	"github.com/hugr-lab/filterql/predicate/arrowmatch"
	"github.com/hugr-lab/filterql/predicate/document"
	"github.com/hugr-lab/filterql/predicate/gormclause"
	"github.com/hugr-lab/filterql/predicate/search"
)

// FilterArgument is the argument name BuildFromArgs reads the filter from.
const FilterArgument = "filter"

// FilterSpec is a parsed filter ready to be rendered.
// It is built per request and must not be shared between goroutines.
type FilterSpec struct {
	root   filter.Expression
	fields *filter.FieldResolver
	sql    SQLOptions
	orm    gormclause.Builder
	logger *slog.Logger
}

// Build parses raw filter input into a FilterSpec.
//
// raw may be a generic document (map[string]any as produced by DecodeJSON or
// DecodeMsgpack), or a struct whose json-tagged fields spell out the filter
// shape. Struct fields should use omitempty so absent operators are dropped.
// A nil or empty raw yields a spec with no filter (HasFilter is false).
//
// Error conditions:
//   - ErrInvalidOptions: opts failed validation
//   - filter.ErrInvalidFilterShape, filter.ErrUnknownOperator: raw is malformed
func Build(raw any, opts *Options) (*FilterSpec, error) {
	if err := opts.Validate(); err != nil {
		return nil, withCode(codes.InvalidArgument, fmt.Errorf("%w: %v", ErrInvalidOptions, err))
	}

	spec := &FilterSpec{}
	if opts != nil {
		spec.logger = logging.Resolve(opts.Logger, opts.LogLevel)
		spec.fields = filter.NewFieldResolver(opts.FieldMap, opts.Transformer)
		if opts.SQL != nil {
			spec.sql = *opts.SQL
		}
		if opts.ORM != nil {
			spec.orm.Table = opts.ORM.Table
		}
	} else {
		spec.logger = logging.Discard()
	}

	node, err := normalizeInput(raw)
	if err != nil {
		return nil, err
	}
	if isEmptyInput(node) {
		spec.logger.Debug("No filter supplied")
		return spec, nil
	}

	root, err := filter.NewParser(opts.parseOptions()).Parse(node)
	if err != nil {
		spec.logger.Debug("Filter rejected", "error", err)
		return nil, err
	}
	spec.root = root

	spec.logger.Debug("Filter built", "fields", filter.Fields(root))
	return spec, nil
}

// BuildFromArgs builds a FilterSpec from the "filter" entry of a request's
// argument map. A missing entry yields a spec with no filter.
func BuildFromArgs(args map[string]any, opts *Options) (*FilterSpec, error) {
	return Build(args[FilterArgument], opts)
}

// BuildJSON decodes a JSON document and builds a FilterSpec from it.
func BuildJSON(data []byte, opts *Options) (*FilterSpec, error) {
	raw, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return Build(raw, opts)
}

// HasFilter reports whether the spec carries a filter expression.
func (s *FilterSpec) HasFilter() bool {
	return s != nil && s.root != nil
}

// Expression returns the parsed expression tree, or nil if there is none.
func (s *FilterSpec) Expression() filter.Expression {
	if s == nil {
		return nil
	}
	return s.root
}

// Fields returns the field resolver built from the options. It may be nil.
func (s *FilterSpec) Fields() *filter.FieldResolver {
	if s == nil {
		return nil
	}
	return s.fields
}

// Render renders the filter in the requested format. The concrete result type is:
//   - FormatInfix, FormatSQL: string
//   - FormatORMPredicate: clause.Expression
//   - FormatSearchCriteria: search.Query
//   - FormatDocumentCriteria: document.Criteria
//
// Error conditions:
//   - ErrMissingFilter: the spec has no filter
//   - ErrUnknownFormat: f is not a valid format
func (s *FilterSpec) Render(f Format) (any, error) {
	switch f {
	case FormatInfix:
		return s.Infix()
	case FormatSQL:
		return s.SQL()
	case FormatORMPredicate:
		return s.ORMPredicate()
	case FormatSearchCriteria:
		return s.SearchCriteria()
	case FormatDocumentCriteria:
		return s.DocumentCriteria()
	default:
		return nil, withCode(codes.InvalidArgument, fmt.Errorf("%w: %s", ErrUnknownFormat, f))
	}
}

// Infix renders the filter as parenthesized infix text.
func (s *FilterSpec) Infix() (string, error) {
	return render(s, FormatInfix, func() (string, error) {
		return filter.NewInfixRenderer(s.fields).Render(s.root)
	})
}

// SQL renders the filter as a SQL WHERE clause.
func (s *FilterSpec) SQL() (string, error) {
	return render(s, FormatSQL, func() (string, error) {
		return filter.NewSQLRenderer(&filter.SQLOptions{
			Fields:            s.fields,
			ColumnExpressions: s.sql.ColumnExpressions,
			OmitWherePrefix:   s.sql.OmitWherePrefix,
		}).Render(s.root)
	})
}

// ORMPredicate renders the filter as a gorm clause expression.
func (s *FilterSpec) ORMPredicate() (clause.Expression, error) {
	return render(s, FormatORMPredicate, func() (clause.Expression, error) {
		return s.orm.Render(s.root, s.fields)
	})
}

// SearchCriteria renders the filter as an Elasticsearch query clause.
func (s *FilterSpec) SearchCriteria() (search.Query, error) {
	return render(s, FormatSearchCriteria, func() (search.Query, error) {
		return search.Render(s.root, s.fields)
	})
}

// DocumentCriteria renders the filter as a MongoDB query document.
func (s *FilterSpec) DocumentCriteria() (document.Criteria, error) {
	return render(s, FormatDocumentCriteria, func() (document.Criteria, error) {
		return document.Render(s.root, s.fields)
	})
}

// Matcher compiles the filter into a row matcher for Arrow record batches.
// Unlike the render formats, a spec with no filter yields a match-all matcher.
func (s *FilterSpec) Matcher() (arrowmatch.Matcher, error) {
	if s == nil {
		return arrowmatch.Render(nil, nil)
	}
	return recovery.Guard(s.logger, "compile matcher", func() (arrowmatch.Matcher, error) {
		return arrowmatch.Render(s.root, s.fields)
	})
}

// render guards a backend call and logs its outcome.
func render[T any](s *FilterSpec, f Format, fn func() (T, error)) (T, error) {
	var zero T
	if !s.HasFilter() {
		return zero, withCode(codes.FailedPrecondition, ErrMissingFilter)
	}
	out, err := recovery.Guard(s.logger, "render "+f.String(), fn)
	if err != nil {
		s.logger.Debug("Render failed", "format", f.String(), "error", err)
		return zero, err
	}
	s.logger.Debug("Filter rendered", "format", f.String())
	return out, nil
}
