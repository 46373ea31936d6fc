package predictor

import (
	"errors"
	"strings"
	"testing"
)

func TestCategoryCodes(t *testing.T) {
	tests := []struct {
		m     CategoryMap
		label string
		want  int
	}{
		{Sex, "Male", 1},
		{Sex, "Female", 0},
		{FastingBloodSugar, "on or above 120 mg/dl", 1},
		{FastingBloodSugar, "below 120 mg/dl", 0},
		{RestingECG, "Normal", 0},
		{RestingECG, "T wave inversion and/or ST elevation/depression > 0.05mV", 1},
		{RestingECG, "Left Ventricular Hypertrophy (by Estes' criteria)", 2},
		{ExerciseAngina, "Yes", 1},
		{ExerciseAngina, "No", 0},
		{STSlope, "Upsloping", 0},
		{STSlope, "Flat", 1},
		{STSlope, "Downsloping", 2},
		{ChestPainType, "Asymptomatic", 0},
		{ChestPainType, "Typical Angina", 1},
		{ChestPainType, "Atypical Angina", 2},
		{ChestPainType, "Non-Anginal Pain", 3},
		{Thalassemia, "Normal", 1},
		{Thalassemia, "Fixed Defect", 2},
		{Thalassemia, "Reversible Defect", 3},
	}

	for _, tt := range tests {
		got, err := tt.m.Code(tt.label)
		if err != nil {
			t.Errorf("%s[%q]: unexpected error: %v", tt.m.Field(), tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s[%q] = %d, want %d", tt.m.Field(), tt.label, got, tt.want)
		}
	}
}

func TestCategoryCode_Unknown(t *testing.T) {
	_, err := Sex.Code("Other")
	if !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got: %v", err)
	}
	if !strings.Contains(err.Error(), `"Other"`) || !strings.Contains(err.Error(), "sex") {
		t.Errorf("expected error to mention label and field, got: %v", err)
	}
}

// TestCategoryLabels_DisplayOrder verifies labels keep their declared order and cannot be mutated
func TestCategoryLabels_DisplayOrder(t *testing.T) {
	labels := ChestPainType.Labels()
	want := []string{"Asymptomatic", "Typical Angina", "Atypical Angina", "Non-Anginal Pain"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], labels[i])
		}
	}

	labels[0] = "mutated"
	if ChestPainType.Labels()[0] != "Asymptomatic" {
		t.Error("Labels() should return a copy")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 7 {
		t.Fatalf("expected 7 categorical fields, got %d", len(cats))
	}
	seen := make(map[string]bool)
	for _, c := range cats {
		if seen[c.Field()] {
			t.Errorf("duplicate field %s", c.Field())
		}
		seen[c.Field()] = true
		if len(c.Labels()) == 0 {
			t.Errorf("field %s has no labels", c.Field())
		}
	}
}
