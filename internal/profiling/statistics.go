package profiling

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	montstats "github.com/montanaflynn/stats"

	"datascope/domain/dataset"
	"datascope/domain/stats"
	apperrors "datascope/internal/errors"
)

// ComputeColumnStatistics builds the per-column summary snapshot for a
// column of known type. It never returns an error: a failed computation
// yields a Recovered outcome with a zeroed, categorical-shaped fallback
// so one malformed column cannot abort dataset profiling.
func ComputeColumnStatistics(col dataset.Column, colType stats.ColumnType) stats.ColumnOutcome {
	st, err := computeStatistics(col, colType)
	if err != nil {
		return stats.ColumnOutcome{
			Stats:     fallbackStatistics(col),
			Recovered: true,
			Reason:    err.Error(),
		}
	}
	return stats.ColumnOutcome{Stats: st}
}

// fallbackStatistics is the safe zeroed record used on recovery.
func fallbackStatistics(col dataset.Column) stats.ColumnStatistics {
	return stats.ColumnStatistics{
		Name:        col.Name,
		Type:        stats.TypeCategorical,
		TotalCount:  len(col.Values),
		Frequencies: map[string]int{},
	}
}

func computeStatistics(col dataset.Column, colType stats.ColumnType) (stats.ColumnStatistics, error) {
	st := stats.ColumnStatistics{
		Name:        col.Name,
		Type:        colType,
		TotalCount:  len(col.Values),
		Frequencies: map[string]int{},
	}

	// Frequency keys in first-encountered order; the map alone cannot
	// carry the mode tie-break.
	var order []string
	var numeric []float64

	for _, v := range col.Values {
		switch {
		case v.IsNull():
			st.MissingCount++
		case v.IsNullToken():
			st.NullCount++
		default:
			st.ValidCount++
			key := v.String()
			if _, seen := st.Frequencies[key]; !seen {
				order = append(order, key)
			}
			st.Frequencies[key]++
			if v.IsNumber() {
				numeric = append(numeric, v.Number())
			}
		}
	}

	if st.TotalCount > 0 {
		st.Completeness = 100 * float64(st.ValidCount) / float64(st.TotalCount)
	}

	st.UniqueValues = len(st.Frequencies)
	st.Mode = modeOf(st.Frequencies, order)

	if colType == stats.TypeNumeric {
		if st.ValidCount > 0 && len(numeric) == 0 {
			return stats.ColumnStatistics{}, apperrors.ComputationFailed(
				fmt.Sprintf("column %q declared numeric but holds no numeric values", col.Name), nil)
		}
		if err := fillNumericShape(&st, numeric); err != nil {
			return stats.ColumnStatistics{}, err
		}
		if st.Mode != "" {
			// Mode is computed over stringified values and cast back for
			// numeric columns.
			if m, err := strconv.ParseFloat(st.Mode, 64); err == nil {
				st.ModeNumeric = m
			}
		}
	}

	return st, nil
}

// modeOf picks the most frequent key; ties keep the first-encountered key.
func modeOf(freq map[string]int, order []string) string {
	mode := ""
	best := 0
	for _, key := range order {
		if freq[key] > best {
			best = freq[key]
			mode = key
		}
	}
	return mode
}

// fillNumericShape computes central tendency, dispersion, and shape over
// the valid numeric values. Degenerate cases (no values, one value, zero
// spread) resolve to zeros rather than NaN.
func fillNumericShape(st *stats.ColumnStatistics, numeric []float64) error {
	if len(numeric) == 0 {
		return nil
	}

	mean, err := montstats.Mean(numeric)
	if err != nil {
		return apperrors.ComputationFailed("mean", err)
	}
	min, err := montstats.Min(numeric)
	if err != nil {
		return apperrors.ComputationFailed("min", err)
	}
	max, err := montstats.Max(numeric)
	if err != nil {
		return apperrors.ComputationFailed("max", err)
	}

	st.Mean = mean
	st.Min = min
	st.Max = max

	sorted := make([]float64, len(numeric))
	copy(sorted, numeric)
	sort.Float64s(sorted)

	st.Median = truncatedPercentile(sorted, 0.5)
	st.Percentile25 = truncatedPercentile(sorted, 0.25)
	st.Percentile75 = truncatedPercentile(sorted, 0.75)

	if len(numeric) < 2 {
		return nil
	}

	stdDev, err := montstats.StandardDeviationPopulation(numeric)
	if err != nil {
		return apperrors.ComputationFailed("standard deviation", err)
	}
	st.StandardDeviation = stdDev

	if stdDev == 0 {
		return nil
	}

	// Population third and fourth standardized moments; kurtosis is excess.
	n := float64(len(numeric))
	sum3 := 0.0
	sum4 := 0.0
	for _, x := range numeric {
		d := (x - mean) / stdDev
		d3 := d * d * d
		sum3 += d3
		sum4 += d3 * d
	}
	st.Skewness = sum3 / n
	st.Kurtosis = sum4/n - 3

	return nil
}

// truncatedPercentile selects sorted[floor(n*p)], the non-interpolating
// convention downstream consumers compare against. Clamps the index so
// p=1 stays in range.
func truncatedPercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
