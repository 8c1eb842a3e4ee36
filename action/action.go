// Package action dispatches named engine operations with loosely typed
// parameters, as they arrive from a transport.
//
//	res, err := action.Execute(tbl, action.Request{
//	    Action: action.GroupBySample,
//	    Params: action.Params{"by": "grade", "n": 2, "seed": 42},
//	})
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
package action

import (
	"github.com/hugr-lab/tabprobe/filter"
	"github.com/hugr-lab/tabprobe/sample"
	"github.com/hugr-lab/tabprobe/summary"
	"github.com/hugr-lab/tabprobe/table"
)

// Action names.
const (
	FilterByFields    = "filter_by_fields"
	FilterByCondition = "filter_by_condition"
	FilterByRange     = "filter_by_range"
	RandomSample      = "random_sample"
	GroupBySample     = "groupby_sample"
	RangeSample       = "range_sample"
	Summary           = "summary"
)

// Defaults applied when a count parameter is absent.
const (
	DefaultRandomCount   = 10
	DefaultGroupCount    = 3
	DefaultSummarySample = summary.DefaultSampleSize
)

// Descriptor documents one action.
type Descriptor struct {
	Name        string
	Description string
}

var descriptors = []Descriptor{
	{FilterByFields, "Keep the columns listed in 'fields', in that order; no fields keeps no columns."},
	{FilterByCondition, "Keep rows where every column in 'condition' equals its value; no condition keeps every row."},
	{FilterByRange, "Keep rows where min_value <= 'field' <= max_value."},
	{RandomSample, "Draw 'n' rows (default 10) uniformly without replacement; optional 'seed'."},
	{GroupBySample, "Draw up to 'n' rows (default 3) for each value of 'by'; optional 'seed'."},
	{RangeSample, "Return every row where min_value <= 'field' <= max_value."},
	{Summary, "Column statistics with 'sample_size' head and tail rows (default 10)."},
}

// Actions lists the supported actions in a stable order.
func Actions() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Request names an action and carries its parameters.
type Request struct {
	Action string
	Params Params
}

// Result holds either a table or a summary report.
type Result struct {
	Table  *table.Table
	Report *summary.Report
}

// Release frees the result table, if any.
func (r *Result) Release() {
	if r != nil && r.Table != nil {
		r.Table.Release()
	}
}

// Execute runs req against t.
// An unknown action or a malformed parameter yields *table.InvalidParameterError.
func Execute(t *table.Table, req Request) (*Result, error) {
	p := req.Params
	if p == nil {
		p = Params{}
	}

	switch req.Action {
	case FilterByFields:
		fields, err := p.Strings("fields")
		if err != nil {
			return nil, err
		}
		return tableResult(filter.SelectColumns(t, fields))

	case FilterByCondition:
		cond, err := p.Condition("condition")
		if err != nil {
			return nil, err
		}
		return tableResult(filter.ByCondition(t, cond))

	case FilterByRange, RangeSample:
		spec, err := rangeSpec(p)
		if err != nil {
			return nil, err
		}
		if req.Action == RangeSample {
			return tableResult(sample.Apply(t, sample.InRange(spec.Column, spec.Low, spec.High)))
		}
		return tableResult(filter.ByRange(t, spec))

	case RandomSample:
		n, err := p.Int("n", DefaultRandomCount)
		if err != nil {
			return nil, err
		}
		seed, err := p.Seed()
		if err != nil {
			return nil, err
		}
		return tableResult(sample.Apply(t, sample.Uniform(n, seed)))

	case GroupBySample:
		by, err := p.String("by")
		if err != nil {
			return nil, err
		}
		n, err := p.Int("n", DefaultGroupCount)
		if err != nil {
			return nil, err
		}
		seed, err := p.Seed()
		if err != nil {
			return nil, err
		}
		return tableResult(sample.Apply(t, sample.ByGroup(by, n, seed)))

	case Summary:
		size, err := p.Int("sample_size", DefaultSummarySample)
		if err != nil {
			return nil, err
		}
		report, err := summary.Summarize(t, summary.WithSampleSize(size))
		if err != nil {
			return nil, err
		}
		return &Result{Report: report}, nil

	default:
		return nil, table.InvalidParameter("action", "unknown action %q", req.Action)
	}
}

// Where renders the row predicate of a filter or range action as a DuckDB
// WHERE clause body. It reports false for other actions and for parameters
// Execute would reject.
func (r Request) Where() (string, bool) {
	switch r.Action {
	case FilterByCondition:
		cond, err := r.Params.Condition("condition")
		if err != nil {
			return "", false
		}
		return cond.SQL(), true
	case FilterByRange, RangeSample:
		spec, err := rangeSpec(r.Params)
		if err != nil {
			return "", false
		}
		return spec.SQL(), true
	default:
		return "", false
	}
}

func rangeSpec(p Params) (filter.RangeSpec, error) {
	field, err := p.String("field")
	if err != nil {
		return filter.RangeSpec{}, err
	}
	low, err := p.Value("min_value")
	if err != nil {
		return filter.RangeSpec{}, err
	}
	high, err := p.Value("max_value")
	if err != nil {
		return filter.RangeSpec{}, err
	}
	return filter.RangeSpec{Column: field, Low: low, High: high}, nil
}

func tableResult(t *table.Table, err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	return &Result{Table: t}, nil
}
