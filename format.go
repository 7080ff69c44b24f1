package filterql

import (
	"fmt"
	"strings"
)

// Format selects a rendered form of a filter.
// The zero Format is not a valid choice; callers must pick one explicitly.
type Format int

const (
	// FormatInfix renders human-readable text: (firstName contains Saurabh).
	FormatInfix Format = iota + 1
	// FormatSQL renders a SQL WHERE clause.
	FormatSQL
	// FormatORMPredicate renders a gorm clause.Expression.
	FormatORMPredicate
	// FormatSearchCriteria renders an Elasticsearch query DSL clause.
	FormatSearchCriteria
	// FormatDocumentCriteria renders a MongoDB query document.
	FormatDocumentCriteria
)

var formatNames = map[Format]string{
	FormatInfix:            "infix",
	FormatSQL:              "sql",
	FormatORMPredicate:     "orm",
	FormatSearchCriteria:   "search",
	FormatDocumentCriteria: "document",
}

var formatAliases = map[string]Format{
	"infix":             FormatInfix,
	"text":              FormatInfix,
	"sql":               FormatSQL,
	"orm":               FormatORMPredicate,
	"orm-predicate":     FormatORMPredicate,
	"gorm":              FormatORMPredicate,
	"search":            FormatSearchCriteria,
	"search-criteria":   FormatSearchCriteria,
	"elasticsearch":     FormatSearchCriteria,
	"document":          FormatDocumentCriteria,
	"document-criteria": FormatDocumentCriteria,
	"mongo":             FormatDocumentCriteria,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f names a supported format.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseFormat parses a format name such as "sql" or "search-criteria".
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
