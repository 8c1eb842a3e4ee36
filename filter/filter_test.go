package filter

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/tabprobe/internal/tabletest"
	"github.com/hugr-lab/tabprobe/table"
)

func names(t *testing.T, tbl *table.Table) []string {
	t.Helper()
	idx, err := tbl.ColumnIndex("name")
	if err != nil {
		t.Fatalf("no name column: %v", err)
	}
	out := []string{}
	for r := 0; r < tbl.NumRows(); r++ {
		out = append(out, tbl.Value(idx, r).(string))
	}
	return out
}

func TestSelectColumns(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	out, err := SelectColumns(tbl, []string{"score", "name"})
	if err != nil {
		t.Fatalf("SelectColumns failed: %v", err)
	}
	defer out.Release()

	if got, want := out.ColumnNames(), []string{"score", "name"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnNames() = %v, want %v", got, want)
	}
	if out.NumRows() != tbl.NumRows() {
		t.Errorf("NumRows() = %d, want %d", out.NumRows(), tbl.NumRows())
	}
	for r := 0; r < tbl.NumRows(); r++ {
		rec := out.Row(r)
		if len(rec) != 2 {
			t.Fatalf("row %d has %d keys, want 2", r, len(rec))
		}
		src := tbl.Row(r)
		if rec["name"] != src["name"] || rec["score"] != src["score"] {
			t.Errorf("row %d = %v, want values from %v", r, rec, src)
		}
	}
	if got := out.Column(0).Type; got != table.TypeNumeric {
		t.Errorf("score type = %s, want numeric", got)
	}
}

func TestSelectColumnsErrors(t *testing.T) {
	tbl := tabletest.Students(t, memory.DefaultAllocator)
	defer tbl.Release()

	_, err := SelectColumns(tbl, []string{"name", "missing"})
	var uerr *table.UnknownColumnError
	if !errors.As(err, &uerr) || uerr.Column != "missing" {
		t.Errorf("expected UnknownColumnError for missing, got %v", err)
	}

	_, err = SelectColumns(tbl, []string{"name", "name"})
	if !errors.Is(err, table.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for duplicate, got %v", err)
	}
}

func TestByCondition(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	tests := []struct {
		name string
		cond Condition
		want []string
	}{
		{"Text", Condition{"grade": "A"}, []string{"Ann", "Cid", "Fay"}},
		{"IntMatchesFloat", Condition{"score": 78}, []string{"Bob"}},
		{"FloatMatchesInt", Condition{"age": 22.0}, []string{"Bob", "Fay"}},
		{"Boolean", Condition{"passed": false}, []string{"Dee", "Gus"}},
		{"Conjunction", Condition{"grade": "B", "age": 21}, []string{"Hal"}},
		{"TypeMismatch", Condition{"age": "20"}, []string{}},
		{"NilMatchesNothing", Condition{"grade": nil}, []string{}},
		{"NoMatch", Condition{"grade": "Z"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ByCondition(tbl, tt.cond)
			if err != nil {
				t.Fatalf("ByCondition failed: %v", err)
			}
			defer out.Release()

			if got := names(t, out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(out.ColumnNames(), tbl.ColumnNames()) {
				t.Errorf("columns changed: %v", out.ColumnNames())
			}
		})
	}
}

func TestByConditionEmptyReturnsInput(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	out, err := ByCondition(tbl, Condition{})
	if err != nil {
		t.Fatalf("ByCondition failed: %v", err)
	}
	defer out.Release()

	if out.NumRows() != tbl.NumRows() {
		t.Errorf("NumRows() = %d, want %d", out.NumRows(), tbl.NumRows())
	}
}

func TestByConditionIdempotent(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	cond := Condition{"city": "Oslo"}
	once, err := ByCondition(tbl, cond)
	if err != nil {
		t.Fatalf("ByCondition failed: %v", err)
	}
	defer once.Release()

	twice, err := ByCondition(once, cond)
	if err != nil {
		t.Fatalf("ByCondition failed: %v", err)
	}
	defer twice.Release()

	if !reflect.DeepEqual(once.Records(), twice.Records()) {
		t.Errorf("second application changed the result: %v vs %v", once.Records(), twice.Records())
	}
}

func TestByConditionUnknownColumn(t *testing.T) {
	tbl := tabletest.Students(t, memory.DefaultAllocator)
	defer tbl.Release()

	_, err := ByCondition(tbl, Condition{"grade": "A", "house": "x"})
	if !errors.Is(err, table.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestRange(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	tests := []struct {
		name      string
		column    string
		low, high any
		want      []string
	}{
		{"NumericInclusive", "score", 78, 91.5, []string{"Ann", "Bob", "Cid", "Eve"}},
		{"NullsExcluded", "score", 0, 100, []string{"Ann", "Bob", "Cid", "Dee", "Eve", "Fay", "Hal"}},
		{"Text", "name", "B", "Dz", []string{"Bob", "Cid", "Dee"}},
		{"LowAboveHigh", "age", 30, 10, []string{}},
		{"SinglePoint", "age", 22, 22, []string{"Bob", "Fay"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Range(tbl, tt.column, tt.low, tt.high)
			if err != nil {
				t.Fatalf("Range failed: %v", err)
			}
			defer out.Release()

			if got := names(t, out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeErrors(t *testing.T) {
	tbl := tabletest.Students(t, memory.DefaultAllocator)
	defer tbl.Release()

	mixed, err := table.New([]string{"m"}, [][]any{{1}, {"a"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer mixed.Release()

	tests := []struct {
		name   string
		tbl    *table.Table
		spec   RangeSpec
		target error
	}{
		{"UnknownColumn", tbl, RangeSpec{"house", 1, 2}, table.ErrUnknownColumn},
		{"BooleanColumn", tbl, RangeSpec{"passed", 0, 1}, table.ErrUnsupportedType},
		{"MixedColumn", mixed, RangeSpec{"m", 0, 1}, table.ErrUnsupportedType},
		{"TextBoundOnNumeric", tbl, RangeSpec{"score", "a", 100}, table.ErrInvalidParameter},
		{"NilBound", tbl, RangeSpec{"score", nil, 100}, table.ErrInvalidParameter},
		{"BoolBound", tbl, RangeSpec{"score", true, 100}, table.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ByRange(tt.tbl, tt.spec)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestRangeNullColumn(t *testing.T) {
	tbl, err := table.New([]string{"x"}, [][]any{{nil}, {nil}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer tbl.Release()

	out, err := Range(tbl, "x", 0, 10)
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	defer out.Release()

	if out.NumRows() != 0 {
		t.Errorf("NumRows() = %d, want 0", out.NumRows())
	}
}

func TestSQL(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Condition", Condition{"grade": "A", "age": 20}.SQL(), "age = 20 AND grade = 'A'"},
		{"ConditionQuoting", Condition{"first name": "O'Neil"}.SQL(), `"first name" = 'O''Neil'`},
		{"ConditionBool", Condition{"passed": true}.SQL(), "passed = TRUE"},
		{"Empty", Condition{}.SQL(), "TRUE"},
		{"Range", RangeSpec{"score", 1.5, 9}.SQL(), "score >= 1.5 AND score <= 9"},
		{"ReservedWord", RangeSpec{"order", "a", "b"}.SQL(), `"order" >= 'a' AND "order" <= 'b'`},
		{"SmallInts", Condition{"age": uint8(20), "rank": int16(-3)}.SQL(), "age = 20 AND rank = -3"},
		{"JSONNumber", RangeSpec{"score", json.Number("7"), json.Number("9.5")}.SQL(), "score >= 7 AND score <= 9.5"},
		{"NilValue", Condition{"grade": nil}.SQL(), "grade = NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("SQL() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
