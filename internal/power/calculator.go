package power

import (
	"fmt"
	"math"

	"datascope/domain/stats"
	"datascope/internal/errors"
)

const (
	// allocationTolerance is how far the allocation percentages may drift
	// from 100 before the request is rejected.
	allocationTolerance = 0.01
	// bonferroniAdvisoryComparisons is the strict comparison count above
	// which the conservativeness advisory is surfaced.
	bonferroniAdvisoryComparisons = 10
)

// Calculator computes required per-arm and per-comparison sample sizes
// for an A/B/n experiment with Bonferroni correction across pairwise
// comparisons.
type Calculator struct{}

// NewCalculator creates a sample-size calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate validates the request and computes the full results table.
// Validation failures are synchronous input-domain errors naming the
// invalid field; nothing is produced on failure.
func (c *Calculator) Calculate(req stats.PowerRequest) (*stats.CalculationResults, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	delta := req.MDE
	relative := 0.0
	if req.MDEKind == stats.MDEPercent {
		delta = (req.MDE / 100) * req.Mean
		if delta == 0 {
			return nil, errors.InvalidInput("percentage MDE resolves to zero because the metric mean is zero")
		}
		if delta < 0 {
			delta = -delta
		}
	}
	if req.Mean != 0 {
		relative = math.Abs(delta / req.Mean)
	}

	comparisons := req.Arms * (req.Arms - 1) / 2
	correctedAlpha := req.Alpha / float64(comparisons)

	alphaProbability := 1 - correctedAlpha
	if req.TwoTailed {
		alphaProbability = 1 - correctedAlpha/2
	}
	zAlpha, err := InverseNormalCDF(alphaProbability)
	if err != nil {
		return nil, errors.Wrap(err, "corrected alpha outside quantile domain")
	}
	zBeta, err := InverseNormalCDF(req.Power)
	if err != nil {
		return nil, errors.Wrap(err, "power outside quantile domain")
	}

	variance := req.StdDev * req.StdDev
	zSum := zAlpha + zBeta
	baseN := int(math.Ceil(2 * variance * zSum * zSum / (delta * delta)))

	results := &stats.CalculationResults{
		MetricName:      req.MetricName,
		BaseSampleSize:  baseN,
		ComparisonCount: comparisons,
		CorrectedAlpha:  correctedAlpha,
		ZAlpha:          zAlpha,
		ZBeta:           zBeta,
		AbsoluteMDE:     delta,
		RelativeMDE:     relative,
	}

	for i := 0; i < req.Arms; i++ {
		for j := i + 1; j < req.Arms; j++ {
			ri := req.AllocationPct[i] / 100
			rj := req.AllocationPct[j] / 100
			vaf := 1/ri + 1/rj
			pair := stats.PairComparison{
				ArmA:       i,
				ArmB:       j,
				VAF:        vaf,
				SampleSize: int(math.Ceil(vaf * float64(baseN))),
			}
			results.Comparisons = append(results.Comparisons, pair)
			if pair.SampleSize > results.RequiredSampleSize {
				results.RequiredSampleSize = pair.SampleSize
			}
		}
	}

	if comparisons > bonferroniAdvisoryComparisons {
		results.Advisories = append(results.Advisories, fmt.Sprintf(
			"Bonferroni correction across %d pairwise comparisons is conservative; consider fewer arms or a less strict correction",
			comparisons))
	}

	return results, nil
}

func (c *Calculator) validate(req stats.PowerRequest) error {
	if math.IsNaN(req.Mean) || math.IsNaN(req.StdDev) {
		return errors.InvalidInput("metric mean and standard deviation must be numeric")
	}
	if req.StdDev <= 0 {
		return errors.InvalidInput("metric standard deviation must be positive")
	}
	if req.Alpha <= 0 || req.Alpha >= 1 {
		return errors.InvalidInputf("alpha must be in (0,1), got %v", req.Alpha)
	}
	if req.Power <= 0 || req.Power >= 1 {
		return errors.InvalidInputf("power must be in (0,1), got %v", req.Power)
	}
	if req.MDE <= 0 {
		return errors.InvalidInput("minimum detectable effect is required and must be positive")
	}
	if req.MDEKind != stats.MDEAbsolute && req.MDEKind != stats.MDEPercent {
		return errors.InvalidInputf("unknown MDE kind %q", req.MDEKind)
	}
	if req.Arms < 2 {
		return errors.InvalidInputf("experiment needs at least 2 arms, got %d", req.Arms)
	}
	if len(req.AllocationPct) != req.Arms {
		return errors.InvalidInputf("allocation ratios must cover all %d arms, got %d entries", req.Arms, len(req.AllocationPct))
	}

	sum := 0.0
	for i, pct := range req.AllocationPct {
		if pct <= 0 {
			return errors.InvalidInputf("allocation ratio for arm %d must be positive, got %v", i, pct)
		}
		sum += pct
	}
	if math.Abs(sum-100) > allocationTolerance {
		return errors.InvalidInputf("allocation ratios must sum to 100, got %v", sum)
	}

	return nil
}
