package pipeline

import (
	"math"
	"strings"
	"testing"
)

func TestValidate_ValidSpec(t *testing.T) {
	if err := Validate(testSpec()); err != nil {
		t.Errorf("Expected test spec to be valid, got error: %v", err)
	}
}

func TestValidate_WeightsOptional(t *testing.T) {
	spec := testSpec()
	spec.Model.Weights = nil
	spec.Model.Decision = "x[0] > 0.0 ? 1 : 0"

	if err := Validate(spec); err != nil {
		t.Errorf("Expected spec without weights to be valid, got error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Spec)
		contains string
	}{
		{"empty name", func(s *Spec) { s.Name = "  " }, "name"},
		{"missing features", func(s *Spec) { s.Features = s.Features[:12] }, "12 features"},
		{"reordered features", func(s *Spec) {
			s.Features = append([]string{}, s.Features...)
			s.Features[0], s.Features[1] = s.Features[1], s.Features[0]
		}, `"sex"`},
		{"short mean", func(s *Spec) { s.Scaler.Mean = s.Scaler.Mean[:5] }, "scaler mean"},
		{"non-finite mean", func(s *Spec) { s.Scaler.Mean[2] = math.NaN() }, "cp"},
		{"zero scale", func(s *Spec) { s.Scaler.Scale[7] = 0 }, "thalach"},
		{"long weights", func(s *Spec) { s.Model.Weights = append(s.Model.Weights, 1) }, "model weights"},
		{"infinite weight", func(s *Spec) { s.Model.Weights[11] = math.Inf(1) }, "ca"},
		{"infinite bias", func(s *Spec) { s.Model.Bias = math.Inf(-1) }, "bias"},
		{"empty decision", func(s *Spec) { s.Model.Decision = "" }, "decision cannot be empty"},
		{"oversized decision", func(s *Spec) { s.Model.Decision = strings.Repeat("z", maxDecisionLength+1) }, "exceeds maximum"},
		{"uncompilable decision", func(s *Spec) { s.Model.Decision = "z >>> 1" }, "invalid model decision"},
		{"string decision", func(s *Spec) { s.Model.Decision = "'high'" }, "invalid model decision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.modify(&spec)

			err := Validate(spec)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got: %v", tt.contains, err)
			}
		})
	}
}
