package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"datascope/domain/dataset"
	"datascope/domain/stats"
)

// Reporting thresholds. Target-relative mode is more permissive because
// one side of every pair is already a nominated outcome metric.
const (
	correlationThreshold       = 0.5
	correlationTargetThreshold = 0.3
	associationThreshold       = 0.3
	associationTargetThreshold = 0.2
	minCompletenessForPair     = 50.0
	fisherZMinSamples          = 4 // Fisher z needs n-3 > 0
)

// Detector runs the pairwise association scans over a profiled dataset.
type Detector struct{}

// NewDetector creates an association detector
func NewDetector() *Detector {
	return &Detector{}
}

// DetectAll scans every unordered column pair in general mode.
func (d *Detector) DetectAll(ds *dataset.Dataset, profile *stats.Profile) []stats.DependencyMetric {
	var metrics []stats.DependencyMetric
	names := profile.ColumnOrder

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if m, ok := d.scorePair(ds, profile, names[i], names[j], false); ok {
				metrics = append(metrics, m)
			}
		}
	}

	sortByStrength(metrics)
	return metrics
}

// DetectForTarget fixes one side of every pair to the nominated dependent
// metric and scans the remaining columns with the relaxed thresholds.
func (d *Detector) DetectForTarget(ds *dataset.Dataset, profile *stats.Profile, target string) []stats.DependencyMetric {
	var metrics []stats.DependencyMetric

	for _, name := range profile.ColumnOrder {
		if name == target {
			continue
		}
		if m, ok := d.scorePair(ds, profile, target, name, true); ok {
			metrics = append(metrics, m)
		}
	}

	sortByStrength(metrics)
	return metrics
}

// scorePair computes the association for one unordered pair, applying
// the completeness gate and the kind-specific reporting threshold.
// Mixed-type pairs are never scored.
func (d *Detector) scorePair(ds *dataset.Dataset, profile *stats.Profile, nameA, nameB string, targetMode bool) (stats.DependencyMetric, bool) {
	statsA, okA := profile.Statistics(nameA)
	statsB, okB := profile.Statistics(nameB)
	if !okA || !okB {
		return stats.DependencyMetric{}, false
	}
	if statsA.Completeness < minCompletenessForPair || statsB.Completeness < minCompletenessForPair {
		return stats.DependencyMetric{}, false
	}

	colA, okA := ds.Column(nameA)
	colB, okB := ds.Column(nameB)
	if !okA || !okB {
		return stats.DependencyMetric{}, false
	}

	switch {
	case statsA.Type == stats.TypeNumeric && statsB.Type == stats.TypeNumeric:
		return d.scoreCorrelation(colA, colB, targetMode)
	case statsA.Type == stats.TypeCategorical && statsB.Type == stats.TypeCategorical:
		return d.scoreCategorical(colA, colB, targetMode)
	default:
		return stats.DependencyMetric{}, false
	}
}

func (d *Detector) scoreCorrelation(colA, colB dataset.Column, targetMode bool) (stats.DependencyMetric, bool) {
	x, y := pairedNumeric(colA, colB)
	r := pearson(x, y)

	threshold := correlationThreshold
	if targetMode {
		threshold = correlationTargetThreshold
	}
	strength := math.Abs(r)
	if strength <= threshold {
		return stats.DependencyMetric{}, false
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	return stats.DependencyMetric{
		ColumnA:  colA.Name,
		ColumnB:  colB.Name,
		Kind:     stats.KindCorrelation,
		Strength: strength,
		Signed:   r,
		PValue:   correlationPValue(r, len(x)),
		Description: fmt.Sprintf("%s %s correlation between %s and %s (r=%.3f)",
			strengthWord(strength), direction, colA.Name, colB.Name, r),
	}, true
}

func (d *Detector) scoreCategorical(colA, colB dataset.Column, targetMode bool) (stats.DependencyMetric, bool) {
	catA, catB := pairedCategorical(colA, colB)
	v, chiSq, df, n := cramersV(catA, catB)

	threshold := associationThreshold
	if targetMode {
		threshold = associationTargetThreshold
	}
	if v <= threshold {
		return stats.DependencyMetric{}, false
	}

	return stats.DependencyMetric{
		ColumnA:  colA.Name,
		ColumnB:  colB.Name,
		Kind:     stats.KindCategoricalAssociation,
		Strength: v,
		PValue:   chiSquarePValue(chiSq, df),
		Description: fmt.Sprintf("%s association between %s and %s (V=%.3f, n=%d)",
			strengthWord(v), colA.Name, colB.Name, v, n),
	}, true
}

// pairedNumeric extracts rows where both cells are valid numbers.
func pairedNumeric(colA, colB dataset.Column) ([]float64, []float64) {
	n := len(colA.Values)
	if len(colB.Values) < n {
		n = len(colB.Values)
	}
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if colA.Values[i].IsNumber() && colB.Values[i].IsNumber() {
			x = append(x, colA.Values[i].Number())
			y = append(y, colB.Values[i].Number())
		}
	}
	return x, y
}

// pairedCategorical extracts rows where both cells are valid (non-null,
// non-missing, non-"null"-token).
func pairedCategorical(colA, colB dataset.Column) ([]string, []string) {
	n := len(colA.Values)
	if len(colB.Values) < n {
		n = len(colB.Values)
	}
	a := make([]string, 0, n)
	b := make([]string, 0, n)
	for i := 0; i < n; i++ {
		va, vb := colA.Values[i], colB.Values[i]
		if va.IsNull() || vb.IsNull() || va.IsNullToken() || vb.IsNullToken() {
			continue
		}
		a = append(a, va.String())
		b = append(b, vb.String())
	}
	return a, b
}

// pearson computes the correlation coefficient; zero spread on either
// side resolves to 0 rather than NaN.
func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	n := float64(len(x))
	sumX, sumY := 0.0, 0.0
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	numerator := 0.0
	sumXX, sumYY := 0.0, 0.0
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	denominator := math.Sqrt(sumXX) * math.Sqrt(sumYY)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// cramersV builds the contingency table over the joint categories and
// returns V, the chi-square statistic, degrees of freedom, and n.
// Degenerate tables (a single category on either side) resolve to 0.
func cramersV(a, b []string) (v, chiSq float64, df, n int) {
	n = len(a)
	if n == 0 {
		return 0, 0, 0, 0
	}

	catsA := map[string]int{}
	catsB := map[string]int{}
	joint := map[[2]string]int{}
	for i := 0; i < n; i++ {
		catsA[a[i]]++
		catsB[b[i]]++
		joint[[2]string{a[i], b[i]}]++
	}

	r := len(catsA)
	c := len(catsB)
	if r < 2 || c < 2 {
		return 0, 0, 0, n
	}

	for key, observed := range joint {
		expected := float64(catsA[key[0]]) * float64(catsB[key[1]]) / float64(n)
		if expected > 0 {
			diff := float64(observed) - expected
			chiSq += diff * diff / expected
		}
	}
	// Cells with zero observed count still contribute (observed-expected)²/expected.
	for keyA, countA := range catsA {
		for keyB, countB := range catsB {
			if _, present := joint[[2]string{keyA, keyB}]; present {
				continue
			}
			expected := float64(countA) * float64(countB) / float64(n)
			chiSq += expected
		}
	}

	minDim := math.Min(float64(r-1), float64(c-1))
	v = math.Sqrt(chiSq / (float64(n) * minDim))
	if v > 1 {
		v = 1
	}
	df = (r - 1) * (c - 1)
	return v, chiSq, df, n
}

// correlationPValue approximates significance via Fisher's z-transform.
// Informational only; it never gates reporting.
func correlationPValue(r float64, n int) float64 {
	absR := math.Abs(r)
	if n < fisherZMinSamples || absR >= 1 {
		return 0
	}
	if absR == 0 {
		return 1
	}
	z := 0.5 * math.Log((1+absR)/(1-absR))
	se := 1.0 / math.Sqrt(float64(n-3))
	p := 2 * distuv.UnitNormal.Survival(z/se)
	return clampProbability(p)
}

// chiSquarePValue is the survival probability of the chi-square statistic.
func chiSquarePValue(chiSq float64, df int) float64 {
	if df <= 0 || chiSq <= 0 {
		return 1
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return clampProbability(dist.Survival(chiSq))
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func strengthWord(strength float64) string {
	switch {
	case strength < 0.3:
		return "weak"
	case strength < 0.6:
		return "moderate"
	case strength < 0.8:
		return "strong"
	default:
		return "very strong"
	}
}

// sortByStrength orders by descending strength; ties keep original pair
// order (stable sort).
func sortByStrength(metrics []stats.DependencyMetric) {
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Strength > metrics[j].Strength
	})
}
