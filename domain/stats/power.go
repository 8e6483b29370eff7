package stats

// MDEKind says whether the minimum detectable effect is given in the
// metric's units or as a percentage of its mean.
type MDEKind string

const (
	MDEAbsolute MDEKind = "absolute"
	MDEPercent  MDEKind = "percent"
)

// PowerRequest carries the validated inputs of a sample-size calculation.
// AllocationPct holds per-arm traffic percentages and must sum to 100
// within tolerance 0.01.
type PowerRequest struct {
	MetricName    string    `json:"metric_name"`
	Mean          float64   `json:"mean"`
	StdDev        float64   `json:"std_dev"`
	Alpha         float64   `json:"alpha"`
	Power         float64   `json:"power"`
	MDE           float64   `json:"mde"`
	MDEKind       MDEKind   `json:"mde_kind"`
	TwoTailed     bool      `json:"two_tailed"`
	Arms          int       `json:"arms"`
	AllocationPct []float64 `json:"allocation_pct"`
}

// PairComparison is the variance-adjusted requirement for one unordered
// pair of arms.
type PairComparison struct {
	ArmA       int     `json:"arm_a"`
	ArmB       int     `json:"arm_b"`
	VAF        float64 `json:"vaf"` // 1/r_a + 1/r_b with allocations as proportions
	SampleSize int     `json:"sample_size"`
}

// CalculationResults is the full output of a power analysis run.
// RequiredSampleSize is the max over all pairwise comparisons.
type CalculationResults struct {
	MetricName         string           `json:"metric_name"`
	BaseSampleSize     int              `json:"base_sample_size"`
	RequiredSampleSize int              `json:"required_sample_size"`
	Comparisons        []PairComparison `json:"comparisons"`
	ComparisonCount    int              `json:"comparison_count"`
	CorrectedAlpha     float64          `json:"corrected_alpha"`
	ZAlpha             float64          `json:"z_alpha"`
	ZBeta              float64          `json:"z_beta"`
	AbsoluteMDE        float64          `json:"absolute_mde"`
	RelativeMDE        float64          `json:"relative_mde"` // fraction of the mean, 0 when mean is 0
	Advisories         []string         `json:"advisories,omitempty"`
}
