package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datascope/domain/stats"
	apperrors "datascope/internal/errors"
)

func baseRequest() stats.PowerRequest {
	return stats.PowerRequest{
		MetricName:    "revenue",
		Mean:          100,
		StdDev:        20,
		Alpha:         0.05,
		Power:         0.8,
		MDE:           5,
		MDEKind:       stats.MDEPercent,
		TwoTailed:     true,
		Arms:          2,
		AllocationPct: []float64{50, 50},
	}
}

func TestCalculate_TwoArmScenario(t *testing.T) {
	results, err := NewCalculator().Calculate(baseRequest())
	require.NoError(t, err)

	// δ = 5% of 100 = 5; n0 = ceil(2·400·(1.9600+0.8416)²/25) = 252.
	assert.InDelta(t, 5.0, results.AbsoluteMDE, 1e-12)
	assert.InDelta(t, 0.05, results.RelativeMDE, 1e-12)
	assert.Equal(t, 252, results.BaseSampleSize)
	assert.Equal(t, 1, results.ComparisonCount)
	assert.InDelta(t, 0.05, results.CorrectedAlpha, 1e-12)
	assert.InDelta(t, 1.959964, results.ZAlpha, 1e-4)
	assert.InDelta(t, 0.841621, results.ZBeta, 1e-4)

	require.Len(t, results.Comparisons, 1)
	pair := results.Comparisons[0]
	assert.InDelta(t, 4.0, pair.VAF, 1e-12)
	assert.Equal(t, 1008, pair.SampleSize)
	assert.Equal(t, 1008, results.RequiredSampleSize)
	assert.Empty(t, results.Advisories)
}

func TestCalculate_MDEMonotonicity(t *testing.T) {
	calc := NewCalculator()

	small := baseRequest()
	small.MDE = 2

	large := baseRequest()
	large.MDE = 10

	smallRes, err := calc.Calculate(small)
	require.NoError(t, err)
	largeRes, err := calc.Calculate(large)
	require.NoError(t, err)

	assert.Greater(t, smallRes.BaseSampleSize, largeRes.BaseSampleSize,
		"smaller MDE must require more samples")
}

func TestCalculate_PowerMonotonicity(t *testing.T) {
	calc := NewCalculator()

	lower := baseRequest()
	lower.Power = 0.8

	higher := baseRequest()
	higher.Power = 0.95

	lowerRes, err := calc.Calculate(lower)
	require.NoError(t, err)
	higherRes, err := calc.Calculate(higher)
	require.NoError(t, err)

	assert.Greater(t, higherRes.BaseSampleSize, lowerRes.BaseSampleSize,
		"higher power must require more samples")
}

func TestCalculate_MoreArmsNeverLowerZAlpha(t *testing.T) {
	calc := NewCalculator()
	prev := 0.0

	for arms := 2; arms <= 8; arms++ {
		req := baseRequest()
		req.Arms = arms
		req.AllocationPct = equalSplit(arms)

		results, err := calc.Calculate(req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, results.ZAlpha, prev, "arms=%d", arms)
		prev = results.ZAlpha
	}
}

func TestCalculate_BonferroniAdvisoryIsStrictlyAboveTen(t *testing.T) {
	calc := NewCalculator()

	five := baseRequest()
	five.Arms = 5
	five.AllocationPct = equalSplit(5)
	results, err := calc.Calculate(five)
	require.NoError(t, err)
	assert.Equal(t, 10, results.ComparisonCount)
	assert.Empty(t, results.Advisories)

	six := baseRequest()
	six.Arms = 6
	six.AllocationPct = equalSplit(6)
	results, err = calc.Calculate(six)
	require.NoError(t, err)
	assert.Equal(t, 15, results.ComparisonCount)
	require.Len(t, results.Advisories, 1)
	assert.Contains(t, results.Advisories[0], "conservative")
}

func TestCalculate_UnequalAllocationVAF(t *testing.T) {
	req := baseRequest()
	req.AllocationPct = []float64{80, 20}

	results, err := NewCalculator().Calculate(req)
	require.NoError(t, err)

	// 1/0.8 + 1/0.2 = 6.25, worse than the 4.0 of an even split.
	require.Len(t, results.Comparisons, 1)
	assert.InDelta(t, 6.25, results.Comparisons[0].VAF, 1e-12)
}

func TestCalculate_OneTailedNeedsFewerSamples(t *testing.T) {
	two := baseRequest()

	one := baseRequest()
	one.TwoTailed = false

	twoRes, err := NewCalculator().Calculate(two)
	require.NoError(t, err)
	oneRes, err := NewCalculator().Calculate(one)
	require.NoError(t, err)

	assert.Less(t, oneRes.BaseSampleSize, twoRes.BaseSampleSize)
}

func TestCalculate_ValidationFailures(t *testing.T) {
	calc := NewCalculator()

	cases := []struct {
		name   string
		mutate func(*stats.PowerRequest)
	}{
		{"zero stddev", func(r *stats.PowerRequest) { r.StdDev = 0 }},
		{"missing MDE", func(r *stats.PowerRequest) { r.MDE = 0 }},
		{"one arm", func(r *stats.PowerRequest) { r.Arms = 1; r.AllocationPct = []float64{100} }},
		{"ratio sum off", func(r *stats.PowerRequest) { r.AllocationPct = []float64{60, 50} }},
		{"ratio count mismatch", func(r *stats.PowerRequest) { r.AllocationPct = []float64{100} }},
		{"negative ratio", func(r *stats.PowerRequest) { r.AllocationPct = []float64{110, -10} }},
		{"alpha out of range", func(r *stats.PowerRequest) { r.Alpha = 1.2 }},
		{"power out of range", func(r *stats.PowerRequest) { r.Power = 0 }},
		{"unknown MDE kind", func(r *stats.PowerRequest) { r.MDEKind = "relative" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)

			_, err := calc.Calculate(req)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
		})
	}
}

func TestCalculate_RatioSumWithinTolerancePasses(t *testing.T) {
	req := baseRequest()
	req.AllocationPct = []float64{50.004, 49.999}

	_, err := NewCalculator().Calculate(req)
	assert.NoError(t, err)
}

func TestCalculate_PercentMDEWithZeroMeanRejected(t *testing.T) {
	req := baseRequest()
	req.Mean = 0

	_, err := NewCalculator().Calculate(req)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func equalSplit(arms int) []float64 {
	out := make([]float64, arms)
	for i := range out {
		out[i] = 100 / float64(arms)
	}
	return out
}
