package profiling

import (
	"strings"

	"datascope/domain/core"
	"datascope/domain/dataset"
	"datascope/domain/stats"
	"datascope/internal"
)

// dependentMetricKeywords flags likely experiment outcome columns.
var dependentMetricKeywords = []string{
	"conversion", "revenue", "retention", "churn", "ltv",
	"engagement", "arpu", "clicks", "purchases", "signups",
}

// dependentMetricSuffixes are name endings that flag outcome columns.
var dependentMetricSuffixes = []string{"_rate", "_score", "_value"}

// Profiler turns a dataset snapshot into an immutable Profile. One
// invocation per dataset version; callers hold the result and derive
// associations, chart picks, and box plots from it.
type Profiler struct {
	classifier *Classifier
	logger     *internal.Logger
}

// NewProfiler creates a profiler with the default date parser
func NewProfiler() *Profiler {
	return &Profiler{
		classifier: NewClassifier(NewDateParser()),
		logger:     internal.DefaultLogger.Named("profiler"),
	}
}

// NewProfilerWithDates creates a profiler with an injected date parser
func NewProfilerWithDates(dates DateParser) *Profiler {
	return &Profiler{
		classifier: NewClassifier(dates),
		logger:     internal.DefaultLogger.Named("profiler"),
	}
}

// Profile classifies and summarizes every column. Per-column failures
// are recorded as Recovered outcomes and logged; they never abort the
// rest of the dataset.
func (p *Profiler) Profile(ds *dataset.Dataset) *stats.Profile {
	profile := &stats.Profile{
		ID:          core.ProfileID(core.NewID()),
		CreatedAt:   core.Now(),
		RowCount:    ds.RowCount(),
		ColumnOrder: ds.ColumnNames(),
		Columns:     make(map[string]stats.ColumnOutcome, len(ds.Columns)),
	}

	for _, col := range ds.Columns {
		colType := p.classifier.Classify(col.Values)
		outcome := ComputeColumnStatistics(col, colType)
		if outcome.Recovered {
			p.logger.Warn("column %q recovered with fallback statistics: %s", col.Name, outcome.Reason)
		}
		profile.Columns[col.Name] = outcome

		if IsDependentMetricName(col.Name) {
			profile.DependentMetrics = append(profile.DependentMetrics, col.Name)
		}
	}

	return profile
}

// IsDependentMetricName reports whether a column name looks like an
// experiment outcome metric (keyword match or a flagged suffix).
func IsDependentMetricName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range dependentMetricKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, suffix := range dependentMetricSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
