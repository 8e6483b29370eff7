package power

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	apperrors "datascope/internal/errors"
)

func TestInverseNormalCDF_AccuracyAgainstReference(t *testing.T) {
	// Dense grid across the supported range plus the extreme endpoints.
	grid := []float64{0.0001, 0.001, 0.01, 0.025, 0.05, 0.1, 0.25, 0.4,
		0.5, 0.6, 0.75, 0.9, 0.95, 0.975, 0.99, 0.999, 0.9999}

	for _, p := range grid {
		got, err := InverseNormalCDF(p)
		if err != nil {
			t.Fatalf("p=%v: unexpected error %v", p, err)
		}
		want := distuv.UnitNormal.Quantile(p)
		if math.Abs(got-want) > 1e-4 {
			t.Errorf("p=%v: got %v, reference %v (diff %v)", p, got, want, math.Abs(got-want))
		}
	}
}

func TestInverseNormalCDF_RoundTrip(t *testing.T) {
	for _, p := range []float64{0.01, 0.05, 0.1, 0.5, 0.9, 0.95, 0.99} {
		z, err := InverseNormalCDF(p)
		if err != nil {
			t.Fatalf("p=%v: unexpected error %v", p, err)
		}
		back := distuv.UnitNormal.CDF(z)
		if math.Abs(back-p) > 1e-3 {
			t.Errorf("p=%v: Φ(z)=%v drifted more than 1e-3", p, back)
		}
	}
}

func TestInverseNormalCDF_KnownValues(t *testing.T) {
	cases := []struct {
		p    float64
		want float64
	}{
		{0.5, 0},
		{0.975, 1.959964},
		{0.025, -1.959964},
		{0.8, 0.841621},
		{0.95, 1.644854},
	}
	for _, tc := range cases {
		got, err := InverseNormalCDF(tc.p)
		if err != nil {
			t.Fatalf("p=%v: unexpected error %v", tc.p, err)
		}
		if math.Abs(got-tc.want) > 1e-4 {
			t.Errorf("p=%v: got %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestInverseNormalCDF_Symmetry(t *testing.T) {
	for _, p := range []float64{0.01, 0.1, 0.3, 0.45} {
		lo, _ := InverseNormalCDF(p)
		hi, _ := InverseNormalCDF(1 - p)
		if math.Abs(lo+hi) > 1e-9 {
			t.Errorf("p=%v: expected z(p) = -z(1-p), got %v and %v", p, lo, hi)
		}
	}
}

func TestInverseNormalCDF_RejectsOutOfDomain(t *testing.T) {
	for _, p := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		if _, err := InverseNormalCDF(p); err == nil {
			t.Errorf("p=%v: expected an input-domain error", p)
		} else if apperrors.GetCode(err) != apperrors.CodeInvalidInput {
			t.Errorf("p=%v: expected %s, got %s", p, apperrors.CodeInvalidInput, apperrors.GetCode(err))
		}
	}
}
