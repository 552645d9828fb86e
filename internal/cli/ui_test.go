package cli

import (
	"fmt"
	"strings"
	"testing"

	"prompt-insights/internal/executor"
)

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name string
		res  *executor.Result
		want []string
	}{
		{
			name: "empty",
			res:  &executor.Result{Success: true},
			want: []string{"No results found."},
		},
		{
			name: "more rows than shown",
			res: func() *executor.Result {
				res := &executor.Result{Success: true, Columns: []string{"desk", "trades"}}
				for i := 0; i < 12; i++ {
					res.Rows = append(res.Rows, executor.Row{"desk": fmt.Sprintf("desk-%02d", i), "trades": i})
				}
				res.RowCount = len(res.Rows)
				return res
			}(),
			want: []string{"desk-09", "... and 2 more rows"},
		},
		{
			name: "null and long values",
			res: &executor.Result{
				Success:  true,
				Columns:  []string{"desk", "comment"},
				Rows:     []executor.Row{{"desk": nil, "comment": strings.Repeat("x", 60)}},
				RowCount: 1,
			},
			want: []string{"NULL", strings.Repeat("x", cellWidth-3) + "..."},
		},
		{
			name: "truncated",
			res: &executor.Result{
				Success:   true,
				Columns:   []string{"desk"},
				Rows:      []executor.Row{{"desk": "Rates"}},
				RowCount:  1,
				Truncated: true,
			},
			want: []string{"Result truncated at 1 rows"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderResult(tt.res)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderResult() missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestRenderResultWideTable(t *testing.T) {
	res := &executor.Result{Success: true, RowCount: 1, Rows: []executor.Row{{}}}
	for i := 0; i < displayColumns+2; i++ {
		c := fmt.Sprintf("col_%d", i)
		res.Columns = append(res.Columns, c)
		res.Rows[0][c] = i
	}

	got := renderResult(res)
	if !strings.Contains(got, "Table has 10 columns, showing first 8") {
		t.Errorf("missing wide table note:\n%s", got)
	}
	if strings.Contains(got, "col_9") {
		t.Error("columns past the limit should be hidden")
	}
}
