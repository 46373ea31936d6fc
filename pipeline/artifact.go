package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Spec is the serialized form of an artifact
type Spec struct {
	Name     string     `json:"name"`
	Version  string     `json:"version"`
	Features []string   `json:"features"`
	Scaler   ScalerSpec `json:"scaler"`
	Model    ModelSpec  `json:"model"`
}

// ScalerSpec holds the fitted parameters of the preprocessing transform
type ScalerSpec struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ModelSpec holds the fitted linear model and its decision rule
type ModelSpec struct {
	Weights  []float64 `json:"weights"`
	Bias     float64   `json:"bias"`
	Decision string    `json:"decision"`
}

// Artifact is a loaded, immutable transform and classifier pair
type Artifact struct {
	ID       string
	LoadedAt time.Time

	spec       Spec
	scaler     *Scaler
	classifier *Classifier
}

// Parse decodes an artifact document
func Parse(data []byte) (Spec, error) {
	var spec Spec
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return spec, nil
}

// Build validates spec and compiles it into an Artifact
func Build(spec Spec) (*Artifact, error) {
	if err := Validate(spec); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	scaler, err := NewScaler(spec.Scaler)
	if err != nil {
		return nil, err
	}

	classifier, err := NewClassifier(spec.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to compile decision: %w", err)
	}

	return &Artifact{
		ID:         uuid.NewString(),
		LoadedAt:   time.Now(),
		spec:       spec,
		scaler:     scaler,
		classifier: classifier,
	}, nil
}

// Load reads, parses and builds an artifact from source
func Load(source Source) (*Artifact, error) {
	data, err := source.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact from %s: %w", source, err)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return Build(spec)
}

func (a *Artifact) Name() string {
	return a.spec.Name
}

func (a *Artifact) Version() string {
	return a.spec.Version
}

// Features returns the declared feature names
func (a *Artifact) Features() []string {
	features := make([]string, len(a.spec.Features))
	copy(features, a.spec.Features)
	return features
}

// Decision returns the source of the decision expression
func (a *Artifact) Decision() string {
	return a.classifier.Decision()
}

// Transform runs the preprocessing stage
func (a *Artifact) Transform(rows [][]float64) ([][]float64, error) {
	return a.scaler.Transform(rows)
}

// Predict runs the decision stage
func (a *Artifact) Predict(rows [][]float64) ([]float64, error) {
	return a.classifier.Predict(rows)
}
