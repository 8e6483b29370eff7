package profiling

import (
	"sort"

	"datascope/domain/dataset"
	"datascope/domain/stats"
	"datascope/internal/errors"
)

// iqrFenceMultiplier is the Tukey fence width in IQR units.
const iqrFenceMultiplier = 1.5

// ComputeBoxPlot builds a box-plot summary from a numeric column's valid
// values. Quartiles use truncating-index selection on the sorted values,
// matching the statistics engine. Displayed min/max are clipped to the
// nearest in-fence values, falling back to the global extremes when every
// value is an outlier.
func ComputeBoxPlot(col dataset.Column) (stats.BoxPlotSummary, error) {
	var values []float64
	for _, v := range col.Values {
		if v.IsNumber() {
			values = append(values, v.Number())
		}
	}
	if len(values) == 0 {
		return stats.BoxPlotSummary{}, errors.InvalidInputf("column %q has no numeric values for box plot", col.Name)
	}

	sort.Float64s(values)

	q1 := truncatedPercentile(values, 0.25)
	median := truncatedPercentile(values, 0.5)
	q3 := truncatedPercentile(values, 0.75)
	iqr := q3 - q1

	lowerFence := q1 - iqrFenceMultiplier*iqr
	upperFence := q3 + iqrFenceMultiplier*iqr

	summary := stats.BoxPlotSummary{
		Column:     col.Name,
		Q1:         q1,
		Median:     median,
		Q3:         q3,
		LowerFence: lowerFence,
		UpperFence: upperFence,
		Outliers:   []float64{},
	}

	// Whiskers end at the extreme in-fence values.
	clippedMin := values[len(values)-1]
	clippedMax := values[0]
	inFence := false
	for _, v := range values {
		if v < lowerFence || v > upperFence {
			summary.Outliers = append(summary.Outliers, v)
			continue
		}
		inFence = true
		if v < clippedMin {
			clippedMin = v
		}
		if v > clippedMax {
			clippedMax = v
		}
	}

	if inFence {
		summary.Min = clippedMin
		summary.Max = clippedMax
	} else {
		summary.Min = values[0]
		summary.Max = values[len(values)-1]
	}

	return summary, nil
}
