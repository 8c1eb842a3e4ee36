package action

import (
	"errors"
	"reflect"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/tabprobe/internal/tabletest"
	"github.com/hugr-lab/tabprobe/table"
)

func TestExecuteTableActions(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	tests := []struct {
		name     string
		req      Request
		wantRows int
		wantCols []string
	}{
		{
			name:     "FilterByFields",
			req:      Request{FilterByFields, Params{"fields": []any{"grade", "name"}}},
			wantRows: 8,
			wantCols: []string{"grade", "name"},
		},
		{
			name:     "FilterByCondition",
			req:      Request{FilterByCondition, Params{"condition": map[string]any{"grade": "A"}}},
			wantRows: 3,
		},
		{
			name:     "FilterByFieldsMissing",
			req:      Request{FilterByFields, nil},
			wantRows: 8,
			wantCols: []string{},
		},
		{
			name:     "FilterByConditionMissing",
			req:      Request{FilterByCondition, Params{}},
			wantRows: 8,
			wantCols: []string{"name", "grade", "score", "age", "passed", "city", "remark"},
		},
		{
			name:     "FilterByConditionNull",
			req:      Request{FilterByCondition, Params{"condition": nil}},
			wantRows: 8,
		},
		{
			name:     "FilterByRange",
			req:      Request{FilterByRange, Params{"field": "age", "min_value": int8(21), "max_value": 22.0}},
			wantRows: 4,
		},
		{
			name:     "RangeSample",
			req:      Request{RangeSample, Params{"field": "name", "min_value": "A", "max_value": "C"}},
			wantRows: 2,
		},
		{
			name:     "RandomSampleDefault",
			req:      Request{RandomSample, nil},
			wantRows: 8,
		},
		{
			name:     "RandomSampleSeeded",
			req:      Request{RandomSample, Params{"n": uint8(3), "seed": 42}},
			wantRows: 3,
		},
		{
			name:     "GroupBySampleDefault",
			req:      Request{GroupBySample, Params{"by": "grade"}},
			wantRows: 8,
		},
		{
			name:     "GroupBySampleOne",
			req:      Request{GroupBySample, Params{"by": "grade", "n": 1.0}},
			wantRows: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Execute(tbl, tt.req)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			defer res.Release()

			if res.Table == nil || res.Report != nil {
				t.Fatalf("expected a table result, got %+v", res)
			}
			if res.Table.NumRows() != tt.wantRows {
				t.Errorf("NumRows() = %d, want %d", res.Table.NumRows(), tt.wantRows)
			}
			if tt.wantCols != nil && !reflect.DeepEqual(res.Table.ColumnNames(), tt.wantCols) {
				t.Errorf("ColumnNames() = %v, want %v", res.Table.ColumnNames(), tt.wantCols)
			}
		})
	}
}

func TestExecuteSeededIsReproducible(t *testing.T) {
	tbl := tabletest.Sequence(t, memory.DefaultAllocator, 30)
	defer tbl.Release()

	req := Request{RandomSample, Params{"n": 5, "seed": int64(42)}}
	first, err := Execute(tbl, req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	defer first.Release()

	second, err := Execute(tbl, req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	defer second.Release()

	if !reflect.DeepEqual(first.Table.Records(), second.Table.Records()) {
		t.Error("seeded random_sample is not reproducible")
	}
}

func TestExecuteSummary(t *testing.T) {
	tbl := tabletest.Students(t, memory.DefaultAllocator)
	defer tbl.Release()

	res, err := Execute(tbl, Request{Summary, Params{"sample_size": 2}})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	defer res.Release()

	if res.Report == nil {
		t.Fatal("expected a report")
	}
	if res.Report.RowCount != 8 {
		t.Errorf("RowCount = %d, want 8", res.Report.RowCount)
	}
	if len(res.Report.Head) != 2 || len(res.Report.Tail) != 2 {
		t.Errorf("sample sizes = %d/%d, want 2/2", len(res.Report.Head), len(res.Report.Tail))
	}
}

func TestExecuteErrors(t *testing.T) {
	tbl := tabletest.Students(t, memory.DefaultAllocator)
	defer tbl.Release()

	tests := []struct {
		name   string
		req    Request
		target error
	}{
		{"UnknownAction", Request{"chart", nil}, table.ErrInvalidParameter},
		{"FieldsNotStrings", Request{FilterByFields, Params{"fields": []any{1}}}, table.ErrInvalidParameter},
		{"UnknownField", Request{FilterByFields, Params{"fields": []string{"house"}}}, table.ErrUnknownColumn},
		{"ConditionNotMap", Request{FilterByCondition, Params{"condition": "grade=A"}}, table.ErrInvalidParameter},
		{"MissingMax", Request{FilterByRange, Params{"field": "age", "min_value": 1}}, table.ErrInvalidParameter},
		{"RangeOnBoolean", Request{RangeSample, Params{"field": "passed", "min_value": 0, "max_value": 1}}, table.ErrUnsupportedType},
		{"FractionalCount", Request{RandomSample, Params{"n": 2.5}}, table.ErrInvalidParameter},
		{"TextCount", Request{RandomSample, Params{"n": "3"}}, table.ErrInvalidParameter},
		{"MissingBy", Request{GroupBySample, nil}, table.ErrInvalidParameter},
		{"UnknownBy", Request{GroupBySample, Params{"by": "house"}}, table.ErrUnknownColumn},
		{"NegativeSampleSize", Request{Summary, Params{"sample_size": -1}}, table.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Execute(tbl, tt.req)
			if err == nil {
				res.Release()
				t.Fatalf("expected %v, got success", tt.target)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestActionsListsEveryAction(t *testing.T) {
	var names []string
	for _, d := range Actions() {
		names = append(names, d.Name)
	}
	want := []string{FilterByFields, FilterByCondition, FilterByRange, RandomSample, GroupBySample, RangeSample, Summary}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Actions() = %v, want %v", names, want)
	}
}

func TestRequestWhere(t *testing.T) {
	tests := []struct {
		name   string
		req    Request
		want   string
		wantOK bool
	}{
		{"Condition", Request{FilterByCondition, Params{"condition": map[string]any{"age": uint8(20)}}}, "age = 20", true},
		{"EmptyCondition", Request{FilterByCondition, nil}, "TRUE", true},
		{"Range", Request{FilterByRange, Params{"field": "name", "min_value": "A", "max_value": "C"}}, "name >= 'A' AND name <= 'C'", true},
		{"RangeSample", Request{RangeSample, Params{"field": "age", "min_value": 1, "max_value": 2.5}}, "age >= 1 AND age <= 2.5", true},
		{"MissingBound", Request{FilterByRange, Params{"field": "age"}}, "", false},
		{"NoPredicate", Request{RandomSample, Params{"n": 2}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.req.Where()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Where() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
