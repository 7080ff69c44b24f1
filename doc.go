// Package filterql turns nested, user-supplied filter specifications into
// query predicates for SQL databases, ORMs, search engines and document stores.
//
// A filter is a tree of single-entry mappings, typically received as a
// request argument:
//
//	{
//	  "and": [
//	    {"firstName": {"contains": "Saurabh"}},
//	    {"age": {"gte": 25}}
//	  ]
//	}
//
// # Quick Start
//
//	spec, err := filterql.BuildJSON(body, (&filterql.Options{}).Map("firstName", "first_name"))
//	if err != nil {
//	    return err // status.Code(err) == codes.InvalidArgument
//	}
//	if !spec.HasFilter() {
//	    return listAll()
//	}
//
//	where, err := spec.SQL()
//	// WHERE ((first_name LIKE '%Saurabh%') AND (age >= '25'))
//
// # Formats
//
// One FilterSpec renders to any of:
//   - Infix text for logs and debugging (FormatInfix)
//   - A SQL WHERE clause (FormatSQL)
//   - A gorm clause.Expression (FormatORMPredicate)
//   - An Elasticsearch query clause (FormatSearchCriteria)
//   - A MongoDB query document (FormatDocumentCriteria)
//
// Use the typed helpers (SQL, ORMPredicate, ...) or Render with a Format.
// Matcher additionally compiles the filter for Arrow record batches.
//
// # Field Mapping
//
// Options.FieldMap renames API field names to storage names in every format,
// including inside nested and/or/not groups. Fields missing from the map may
// be handled by an Options.Transformer, which can also rewrite their operands.
//
// # Errors
//
// Errors wrap sentinels for errors.Is (filter.ErrInvalidFilterShape,
// filter.ErrUnknownOperator, ErrMissingFilter, ErrUnknownFormat,
// ErrInvalidOptions, ErrInvalidInput) and carry gRPC status codes, so a gRPC
// handler may return them unchanged.
package filterql
