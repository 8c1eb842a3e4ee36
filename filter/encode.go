package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/hugr-lab/tabprobe/table"
)

// SQL renders the condition as a DuckDB WHERE clause body.
// An empty condition renders as TRUE.
func (c Condition) SQL() string {
	if len(c) == 0 {
		return "TRUE"
	}
	parts := make([]string, 0, len(c))
	for _, name := range c.columns() {
		parts = append(parts, quoteIdentifier(name)+" = "+formatLiteral(c[name]))
	}
	return strings.Join(parts, " AND ")
}

// SQL renders the range as a DuckDB WHERE clause body with inclusive bounds.
func (r RangeSpec) SQL() string {
	col := quoteIdentifier(r.Column)
	return col + " >= " + formatLiteral(r.Low) + " AND " + col + " <= " + formatLiteral(r.High)
}

// formatLiteral formats a scalar as a SQL literal.
// Values are normalized the way the engine compares them; anything
// that does not normalize renders as NULL.
func formatLiteral(v any) string {
	nv, err := table.Normalize(v)
	if err != nil {
		return "NULL"
	}
	switch x := nv.(type) {
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return quoteLiteral(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	default:
		return "NULL"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NULL"
	case math.IsInf(f, 1):
		return "'Infinity'::DOUBLE"
	case math.IsInf(f, -1):
		return "'-Infinity'::DOUBLE"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
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

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Reserved words (simplified list)
	switch strings.ToUpper(name) {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"TABLE", "JOIN", "ON", "AS", "IN", "IS", "LIKE", "BETWEEN", "CASE", "WHEN",
		"THEN", "ELSE", "END", "ORDER", "BY", "GROUP", "HAVING", "LIMIT", "OFFSET",
		"ALL", "DISTINCT", "VALUES", "KEY", "DEFAULT", "ASC", "DESC", "CAST", "DATE",
		"TIME", "TIMESTAMP", "NAME", "VALUE":
		return true
	}

	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
