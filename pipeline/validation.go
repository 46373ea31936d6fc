package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/liamcoop/hypertension/predictor"
)

// maxDecisionLength caps the size of a decision expression
const maxDecisionLength = 4096

// Validate checks an artifact spec against the feature layout the predictor assembles
// Returns an error describing the first problem found, nil if the spec is valid
func Validate(spec Spec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("artifact name cannot be empty")
	}

	if len(spec.Features) != predictor.FeatureCount {
		return fmt.Errorf("artifact declares %d features, expected %d", len(spec.Features), predictor.FeatureCount)
	}
	for i, name := range spec.Features {
		if name != predictor.FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, name, predictor.FeatureNames[i])
		}
	}

	if err := validateColumns("scaler mean", spec.Scaler.Mean, false); err != nil {
		return err
	}
	if err := validateColumns("scaler scale", spec.Scaler.Scale, true); err != nil {
		return err
	}

	// Weights are optional; a decision may read x directly
	if len(spec.Model.Weights) > 0 {
		if err := validateColumns("model weights", spec.Model.Weights, false); err != nil {
			return err
		}
	}
	if math.IsNaN(spec.Model.Bias) || math.IsInf(spec.Model.Bias, 0) {
		return fmt.Errorf("model bias must be finite, got %v", spec.Model.Bias)
	}

	return validateDecision(spec.Model.Decision)
}

func validateColumns(name string, values []float64, nonZero bool) error {
	if len(values) != predictor.FeatureCount {
		return fmt.Errorf("%s has %d values, expected %d", name, len(values), predictor.FeatureCount)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s for %s must be finite, got %v", name, predictor.FeatureNames[i], v)
		}
		if nonZero && v == 0 {
			return fmt.Errorf("%s for %s cannot be zero", name, predictor.FeatureNames[i])
		}
	}
	return nil
}

func validateDecision(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return fmt.Errorf("model decision cannot be empty")
	}
	if len(expression) > maxDecisionLength {
		return fmt.Errorf("model decision length %d exceeds maximum of %d characters", len(expression), maxDecisionLength)
	}

	env, err := NewDecisionEnv()
	if err != nil {
		return err
	}
	if _, err := compileDecision(env, expression); err != nil {
		return fmt.Errorf("invalid model decision: %w", err)
	}
	return nil
}
