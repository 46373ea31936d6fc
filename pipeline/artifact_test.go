package pipeline

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/liamcoop/hypertension/predictor"
)

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`{"name": "m", "weights": [1]}`))
	if err == nil {
		t.Fatal("Expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "weights") {
		t.Errorf("Expected error to mention the unknown field, got: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte(`{"name": `)); err == nil {
		t.Error("Expected error for truncated document, got nil")
	}
}

func TestLoad_FromBytes(t *testing.T) {
	source := &BytesSource{Label: "test", Data: testSpecJSON(t, testSpec())}

	a, err := Load(source)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if a.Name() != "test-model" || a.Version() != "1" {
		t.Errorf("Unexpected artifact identity: %s %s", a.Name(), a.Version())
	}
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("Expected artifact ID to be a UUID, got %q", a.ID)
	}
	if a.LoadedAt.IsZero() {
		t.Error("Expected LoadedAt to be set")
	}
	if len(a.Features()) != predictor.FeatureCount {
		t.Errorf("Expected %d features, got %d", predictor.FeatureCount, len(a.Features()))
	}
	if a.Decision() != "z > 0.0 ? 1 : 0" {
		t.Errorf("Unexpected decision: %q", a.Decision())
	}
}

func TestLoad_InvalidSpec(t *testing.T) {
	spec := testSpec()
	spec.Scaler.Scale[0] = 0
	source := &BytesSource{Data: testSpecJSON(t, spec)}

	_, err := Load(source)
	if err == nil {
		t.Fatal("Expected error for invalid spec, got nil")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Expected validation failure, got: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))

	_, err := Load(source)
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got: %v", err)
	}
}

func TestLoad_EmptyBytes(t *testing.T) {
	if _, err := Load(&BytesSource{}); err == nil {
		t.Error("Expected error for empty source, got nil")
	}
}

// TestArtifact_WithService verifies an artifact drives the prediction service end to end
func TestArtifact_WithService(t *testing.T) {
	a, err := Build(testSpec())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	svc := predictor.NewService(a, a)

	in := predictor.RawInput{
		Age:               55,
		Sex:               "Male",
		ChestPainType:     "Typical Angina",
		RestingBP:         130,
		Cholesterol:       250,
		FastingBloodSugar: "below 120 mg/dl",
		RestingECG:        "Normal",
		MaxHeartRate:      150,
		ExerciseAngina:    "No",
		STDepression:      1.0,
		STSlope:           "Flat",
		VesselCount:       0,
		Thalassemia:       "Normal",
	}

	if got := svc.Predict(in); got != predictor.MessageDetected {
		t.Errorf("age 55: expected %q, got %q", predictor.MessageDetected, got)
	}

	in.Age = 45
	if got := svc.Predict(in); got != predictor.MessageNotDetected {
		t.Errorf("age 45: expected %q, got %q", predictor.MessageNotDetected, got)
	}
}

// TestShippedArtifact verifies the artifact bundled with the repository loads and predicts
func TestShippedArtifact(t *testing.T) {
	a, err := Load(NewFileSource(filepath.Join("..", "artifacts", "hypertension.json")))
	if err != nil {
		t.Fatalf("Load() failed for shipped artifact: %v", err)
	}

	svc := predictor.NewService(a, a)
	out := svc.Evaluate(predictor.RawInput{
		Age:               55,
		Sex:               "Male",
		ChestPainType:     "Typical Angina",
		RestingBP:         130,
		Cholesterol:       250,
		FastingBloodSugar: "below 120 mg/dl",
		RestingECG:        "Normal",
		MaxHeartRate:      150,
		ExerciseAngina:    "No",
		STDepression:      1.0,
		STSlope:           "Flat",
		VesselCount:       0,
		Thalassemia:       "Normal",
	})
	if out.Kind != predictor.KindNotDetected {
		t.Errorf("Expected %s for reference input, got %s (%s)", predictor.KindNotDetected, out.Kind, out.Message)
	}
}
