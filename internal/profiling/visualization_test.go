package profiling

import (
	"testing"

	"datascope/domain/stats"
)

func TestSelectVisualization_Policy(t *testing.T) {
	cases := []struct {
		name string
		st   stats.ColumnStatistics
		want stats.VisualizationType
	}{
		{
			name: "all-unique column is ID-like",
			st:   stats.ColumnStatistics{Name: "email", Type: stats.TypeCategorical, TotalCount: 10, UniqueValues: 10, Frequencies: map[string]int{"a": 1, "b": 2}},
			want: stats.VizNone,
		},
		{
			name: "id-named column is ID-like",
			st:   stats.ColumnStatistics{Name: "user_id", Type: stats.TypeNumeric, TotalCount: 10, UniqueValues: 4},
			want: stats.VizNone,
		},
		{
			name: "numeric with many distinct values gets a box plot",
			st:   stats.ColumnStatistics{Name: "spend", Type: stats.TypeNumeric, TotalCount: 100, UniqueValues: 37, Frequencies: map[string]int{"1": 2, "2": 3}},
			want: stats.VizBoxPlot,
		},
		{
			name: "small-cardinality numeric gets a bar chart",
			st:   stats.ColumnStatistics{Name: "rating", Type: stats.TypeNumeric, TotalCount: 100, UniqueValues: 5, Frequencies: map[string]int{"1": 40, "2": 60}},
			want: stats.VizBar,
		},
		{
			name: "uniform categorical frequencies get a summary",
			st:   stats.ColumnStatistics{Name: "bucket", Type: stats.TypeCategorical, TotalCount: 9, UniqueValues: 3, Frequencies: map[string]int{"a": 3, "b": 3, "c": 3}},
			want: stats.VizSummary,
		},
		{
			name: "high-cardinality categorical gets a summary",
			st:   stats.ColumnStatistics{Name: "city", Type: stats.TypeCategorical, TotalCount: 100, UniqueValues: 21, Frequencies: map[string]int{"a": 1, "b": 99}},
			want: stats.VizSummary,
		},
		{
			name: "binary categorical gets a summary",
			st:   stats.ColumnStatistics{Name: "variant", Type: stats.TypeCategorical, TotalCount: 100, UniqueValues: 2, Frequencies: map[string]int{"a": 30, "b": 70}},
			want: stats.VizSummary,
		},
		{
			name: "mid-cardinality categorical gets a pie",
			st:   stats.ColumnStatistics{Name: "plan", Type: stats.TypeCategorical, TotalCount: 100, UniqueValues: 5, Frequencies: map[string]int{"a": 10, "b": 20, "c": 30, "d": 15, "e": 25}},
			want: stats.VizPie,
		},
		{
			name: "larger categorical gets a bar of top categories",
			st:   stats.ColumnStatistics{Name: "country", Type: stats.TypeCategorical, TotalCount: 100, UniqueValues: 12, Frequencies: map[string]int{"a": 10, "b": 90}},
			want: stats.VizBar,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectVisualization(tc.st); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
