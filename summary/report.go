package summary

import (
	"github.com/hugr-lab/tabprobe/table"
)

// Report is the structural and statistical summary of a table.
// Field names on the wire follow the pandas-style report the summary
// action has always produced.
type Report struct {
	RowCount int            `json:"row_count" msgpack:"row_count"`
	Columns  []ColumnStats  `json:"columns" msgpack:"columns"`
	Head     []table.Record `json:"sample_head" msgpack:"sample_head"`
	Tail     []table.Record `json:"sample_tail" msgpack:"sample_tail"`
}

// ColumnStats describes one column.
//
// Min, Max, Mean and StdDev are set only for numeric columns with finite
// results. StdDev additionally needs at least two non-null values.
// Mode is nil when the column holds no non-null value.
type ColumnStats struct {
	Name      string     `json:"name" msgpack:"name"`
	Type      table.Type `json:"dtype" msgpack:"dtype"`
	Distinct  int        `json:"unique" msgpack:"unique"`
	NullCount int        `json:"null_count" msgpack:"null_count"`
	Min       *float64   `json:"min" msgpack:"min"`
	Max       *float64   `json:"max" msgpack:"max"`
	Mean      *float64   `json:"mean" msgpack:"mean"`
	StdDev    *float64   `json:"std" msgpack:"std"`
	Mode      any        `json:"top" msgpack:"top"`
}

// Column returns the stats of the named column.
func (r *Report) Column(name string) (ColumnStats, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}
