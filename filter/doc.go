// Package filter implements column projection and row filtering over tables.
//
// All operations are pure: they read an immutable input table and return a
// new one. Row order is always preserved.
//
// # Projection
//
//	out, err := filter.SelectColumns(tbl, []string{"name", "score"})
//
// # Equality
//
// Condition entries are ANDed. Comparison is type-aware, so a numeric column
// never matches the text "1" and null never matches anything:
//
//	out, err := filter.ByCondition(tbl, filter.Condition{"grade": "A"})
//
// # Ranges
//
// Bounds are inclusive and must be of the column's kind:
//
//	out, err := filter.Range(tbl, "score", 80, 100)
//
// # SQL Rendering
//
// Condition and RangeSpec render as DuckDB WHERE clause bodies, with
// identifiers and literals quoted:
//
//	filter.Condition{"grade": "A"}.SQL()          // grade = 'A'
//	filter.RangeSpec{"score", 80, 100}.SQL()      // score >= 80 AND score <= 100
package filter
