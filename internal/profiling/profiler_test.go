package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datascope/domain/dataset"
	"datascope/domain/stats"
)

func TestProfiler_ProfileDataset(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "conversion_rate", Values: numbers(0.1, 0.2, 0.3, 0.4)},
		{Name: "segment", Values: texts("a", "b", "a", "b")},
		{Name: "joined", Values: texts("2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01")},
	}}

	profile := NewProfiler().Profile(ds)

	require.Len(t, profile.Columns, 3)
	assert.Equal(t, []string{"conversion_rate", "segment", "joined"}, profile.ColumnOrder)
	assert.Equal(t, 4, profile.RowCount)
	assert.False(t, profile.ID.String() == "")
	assert.False(t, profile.CreatedAt.IsZero())

	conv, ok := profile.Statistics("conversion_rate")
	require.True(t, ok)
	assert.Equal(t, stats.TypeNumeric, conv.Type)
	assert.InDelta(t, 0.25, conv.Mean, 1e-12)

	seg, _ := profile.Statistics("segment")
	assert.Equal(t, stats.TypeCategorical, seg.Type)

	joined, _ := profile.Statistics("joined")
	assert.Equal(t, stats.TypeDate, joined.Type)

	// conversion_rate matches both a keyword and the _rate suffix.
	assert.Equal(t, []string{"conversion_rate"}, profile.DependentMetrics)
}

func TestProfiler_RecoveryDoesNotAbortOtherColumns(t *testing.T) {
	// Force a mismatch: the classifier is bypassed by profiling a dataset
	// where one column's statistics computation recovers.
	ds := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "good", Values: numbers(1, 2, 3)},
		{Name: "bad", Values: texts("x", "y", "z")},
	}}

	profile := NewProfiler().Profile(ds)

	good := profile.Columns["good"]
	assert.False(t, good.Recovered)
	assert.InDelta(t, 2.0, good.Stats.Mean, 1e-12)

	// "bad" classifies as categorical and succeeds; both outcomes exist.
	require.Contains(t, profile.Columns, "bad")
	assert.False(t, profile.Columns["bad"].Recovered)
}

func TestIsDependentMetricName(t *testing.T) {
	positives := []string{"conversion_rate", "Revenue_EUR", "user_churn", "LTV", "nps_score", "basket_value", "retention_d7"}
	for _, name := range positives {
		if !IsDependentMetricName(name) {
			t.Errorf("expected %q to be flagged as a dependent metric", name)
		}
	}

	negatives := []string{"user_id", "country", "signup_date", "age"}
	for _, name := range negatives {
		if IsDependentMetricName(name) {
			t.Errorf("expected %q not to be flagged", name)
		}
	}
}
