package power

import (
	"math"

	"datascope/internal/errors"
)

// Rational-approximation coefficients for the standard normal quantile
// (Odeh & Evans 1974). The approximation runs on y = √(-2·ln p) for the
// lower tail and negates; absolute error stays well under 1e-4 across
// p ∈ [0.0001, 0.9999].
var (
	quantileNum = [5]float64{
		-0.322232431088,
		-1.0,
		-0.342242088547,
		-0.0204231210245,
		-0.0000453642210148,
	}
	quantileDen = [5]float64{
		0.0993484626060,
		0.588581570495,
		0.531103462366,
		0.103537752850,
		0.0038560700634,
	}
)

// InverseNormalCDF returns the z-score with Φ(z) = p. Probabilities
// outside the open interval (0,1) are rejected with an input-domain
// error.
func InverseNormalCDF(p float64) (float64, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, errors.InvalidInputf("probability must be in (0,1), got %v", p)
	}

	if p < 0.5 {
		return -quantileTail(p), nil
	}
	return quantileTail(1 - p), nil
}

// quantileTail evaluates the rational approximation for the upper-tail
// magnitude of the quantile at tail probability p ∈ (0, 0.5].
func quantileTail(p float64) float64 {
	y := math.Sqrt(-2 * math.Log(p))

	num := ((((quantileNum[4]*y+quantileNum[3])*y+quantileNum[2])*y)+quantileNum[1])*y + quantileNum[0]
	den := ((((quantileDen[4]*y+quantileDen[3])*y+quantileDen[2])*y)+quantileDen[1])*y + quantileDen[0]

	return y + num/den
}
