package profiling

import (
	"strings"

	"datascope/domain/stats"
)

// SelectVisualization picks a chart category for a column from its
// statistics. Pure policy, no state; thresholds are fixed policy.
func SelectVisualization(st stats.ColumnStatistics) stats.VisualizationType {
	if isIDLike(st) {
		return stats.VizNone
	}

	if st.Type == stats.TypeNumeric {
		if st.UniqueValues > 5 {
			return stats.VizBoxPlot
		}
		return stats.VizBar
	}

	// Categorical (and date) columns
	if uniformFrequencies(st.Frequencies) || st.UniqueValues > 20 || st.UniqueValues <= 2 {
		return stats.VizSummary
	}
	if st.UniqueValues <= 8 {
		return stats.VizPie
	}
	return stats.VizBar // top categories only
}

// isIDLike flags identifier columns: every value distinct, or an
// id-flavored name.
func isIDLike(st stats.ColumnStatistics) bool {
	if st.TotalCount > 0 && st.UniqueValues == st.TotalCount {
		return true
	}
	name := strings.ToLower(st.Name)
	return strings.Contains(name, "id") || strings.Contains(name, "identifier")
}

// uniformFrequencies reports whether every category occurs equally often.
func uniformFrequencies(freq map[string]int) bool {
	if len(freq) == 0 {
		return true
	}
	first := -1
	for _, count := range freq {
		if first == -1 {
			first = count
			continue
		}
		if count != first {
			return false
		}
	}
	return true
}
