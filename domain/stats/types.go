package stats

import (
	"datascope/domain/core"
)

// ColumnType is the inferred statistical type of a column
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDate        ColumnType = "date"
)

// ColumnStatistics is an immutable per-column summary snapshot.
// Numeric shape fields (mean through percentile75) are meaningful only
// when ValidCount > 0 for a numeric column; degenerate cases resolve
// to zero rather than NaN.
type ColumnStatistics struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	TotalCount   int        `json:"total_count"`
	ValidCount   int        `json:"valid_count"`
	NullCount    int        `json:"null_count"`    // literal "null" tokens
	MissingCount int        `json:"missing_count"` // empty / absent cells
	Completeness float64    `json:"completeness"`  // percent in [0,100]

	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	StandardDeviation float64 `json:"standard_deviation"`
	Skewness          float64 `json:"skewness"`
	Kurtosis          float64 `json:"kurtosis"` // excess kurtosis
	Percentile25      float64 `json:"percentile_25"`
	Percentile75      float64 `json:"percentile_75"`

	Frequencies  map[string]int `json:"frequencies"`
	UniqueValues int            `json:"unique_values"`
	Mode         string         `json:"mode"`
	// ModeNumeric carries the mode cast back to a number for numeric columns
	ModeNumeric float64 `json:"mode_numeric,omitempty"`
}

// ColumnOutcome is the Result-style outcome of profiling one column:
// either clean statistics, or a zeroed fallback with the recovery reason.
type ColumnOutcome struct {
	Stats     ColumnStatistics `json:"stats"`
	Recovered bool             `json:"recovered"`
	Reason    string           `json:"reason,omitempty"`
}

// Profile is the immutable result of profiling one dataset snapshot.
type Profile struct {
	ID               core.ProfileID           `json:"id"`
	CreatedAt        core.Timestamp           `json:"created_at"`
	RowCount         int                      `json:"row_count"`
	ColumnOrder      []string                 `json:"column_order"`
	Columns          map[string]ColumnOutcome `json:"columns"`
	DependentMetrics []string                 `json:"dependent_metrics"` // auto-detected candidates
}

// Statistics returns the statistics for a named column, or false when absent
func (p *Profile) Statistics(name string) (ColumnStatistics, bool) {
	out, ok := p.Columns[name]
	if !ok {
		return ColumnStatistics{}, false
	}
	return out.Stats, true
}

// DependencyKind distinguishes the two pairwise association measures
type DependencyKind string

const (
	KindCorrelation            DependencyKind = "correlation"
	KindCategoricalAssociation DependencyKind = "categorical_association"
)

// DependencyMetric is a detected pairwise relationship between two columns.
// Strength is in [0,1]: |Pearson r| for correlations, Cramér's V for
// categorical associations. PValue is an informational approximation and
// never gates reporting.
type DependencyMetric struct {
	ColumnA     string         `json:"column_a"`
	ColumnB     string         `json:"column_b"`
	Kind        DependencyKind `json:"kind"`
	Strength    float64        `json:"strength"`
	Signed      float64        `json:"signed,omitempty"` // raw Pearson r for correlations
	PValue      float64        `json:"p_value"`
	Description string         `json:"description"`
}

// BoxPlotSummary is the five-number summary plus fence outliers for a
// numeric column. Min/Max are clipped to the nearest in-fence values.
type BoxPlotSummary struct {
	Column     string    `json:"column"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers"`
}

// VisualizationType is the chart category picked for a column
type VisualizationType string

const (
	VizNone    VisualizationType = "none"
	VizBoxPlot VisualizationType = "box_plot"
	VizBar     VisualizationType = "bar"
	VizPie     VisualizationType = "pie"
	VizSummary VisualizationType = "summary"
)
