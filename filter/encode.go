package filter

import (
	"strings"
	"time"
)

// SQLOptions configures SQL rendering.
type SQLOptions struct {
	// Fields applies the rename table and transformer to column names and operands.
	// OPTIONAL: If nil, source field names are used as column names.
	Fields *FieldResolver

	// ColumnExpressions maps target column names to SQL expressions.
	// Takes precedence over plain identifiers.
	// Use for computed columns, e.g. "full_name" -> "CONCAT(first_name, ' ', last_name)".
	ColumnExpressions map[string]string

	// OmitWherePrefix drops the leading "WHERE " keyword.
	OmitWherePrefix bool
}

const sqlTimestampLayout = "2006-01-02 15:04:05.999999"

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// literal renders a normalized operand as a quoted SQL literal.
// Times use the UTC timestamp form DuckDB and PostgreSQL both accept.
func literal(v any) string {
	if t, ok := v.(time.Time); ok {
		return quoteLiteral(t.UTC().Format(sqlTimestampLayout))
	}
	return quoteLiteral(FormatOperand(v))
}

// QuoteName quotes a possibly schema-qualified table or column name for SQL.
func QuoteName(name string) string {
	return quoteColumn(name)
}

// quoteColumn quotes each dot-separated segment of a column reference that needs it.
func quoteColumn(name string) string {
	if !strings.Contains(name, ".") {
		return quoteIdentifier(name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// quoteIdentifier returns a quoted identifier if needed.
// Standard SQL uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	// Check first character (must be letter or underscore)
	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}

	// Check remaining characters (letters, digits, or underscore)
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Check for reserved words (simplified list)
	upper := strings.ToUpper(name)
	switch upper {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TABLE", "INDEX",
		"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "ON", "AS", "IN", "IS", "LIKE",
		"BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END", "ORDER", "BY",
		"GROUP", "HAVING", "LIMIT", "OFFSET", "UNION", "EXCEPT", "INTERSECT",
		"ALL", "DISTINCT", "VALUES", "SET", "INTO", "PRIMARY", "KEY", "FOREIGN",
		"REFERENCES", "CONSTRAINT", "DEFAULT", "CHECK", "UNIQUE", "ASC", "DESC",
		"NULLS", "FIRST", "LAST", "CAST", "INTERVAL", "DATE", "TIME", "TIMESTAMP":
		return true
	}

	return false
}

// isLetter returns true if c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit returns true if c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
