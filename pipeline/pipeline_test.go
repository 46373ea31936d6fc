package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/liamcoop/hypertension/predictor"
)

// testSpec returns an identity-scaled artifact whose decision fires when age > 50
func testSpec() Spec {
	spec := Spec{
		Name:     "test-model",
		Version:  "1",
		Features: append([]string(nil), predictor.FeatureNames[:]...),
		Scaler: ScalerSpec{
			Mean:  make([]float64, predictor.FeatureCount),
			Scale: make([]float64, predictor.FeatureCount),
		},
		Model: ModelSpec{
			Weights:  make([]float64, predictor.FeatureCount),
			Bias:     -50,
			Decision: "z > 0.0 ? 1 : 0",
		},
	}
	for i := range spec.Scaler.Scale {
		spec.Scaler.Scale[i] = 1
	}
	spec.Model.Weights[0] = 1
	return spec
}

func testSpecJSON(t *testing.T, spec Spec) []byte {
	t.Helper()
	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("Failed to marshal spec: %v", err)
	}
	return data
}

func exampleRow(age float64) []float64 {
	return []float64{age, 1, 1, 130, 250, 0, 0, 150, 0, 1, 1, 0, 1}
}
