package pipeline

import (
	"fmt"
	"math"
)

// Scaler standardizes each column as (x - mean) / scale
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler creates a scaler from per-column means and scales
func NewScaler(spec ScalerSpec) (*Scaler, error) {
	if len(spec.Mean) != len(spec.Scale) {
		return nil, fmt.Errorf("scaler has %d means but %d scales", len(spec.Mean), len(spec.Scale))
	}
	for i, s := range spec.Scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("scaler column %d has invalid scale %v", i, s)
		}
	}

	sc := &Scaler{
		mean:  make([]float64, len(spec.Mean)),
		scale: make([]float64, len(spec.Scale)),
	}
	copy(sc.mean, spec.Mean)
	copy(sc.scale, spec.Scale)
	return sc, nil
}

// Width returns the number of columns the scaler expects
func (sc *Scaler) Width() int {
	return len(sc.mean)
}

// Transform standardizes every row. Input rows are not modified.
func (sc *Scaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for r, row := range rows {
		if len(row) != len(sc.mean) {
			return nil, fmt.Errorf("row %d has %d features, scaler expects %d", r, len(row), len(sc.mean))
		}
		t := make([]float64, len(row))
		for i, v := range row {
			t[i] = (v - sc.mean[i]) / sc.scale[i]
		}
		out[r] = t
	}
	return out, nil
}
