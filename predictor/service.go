package predictor

import (
	"errors"
	"fmt"
)

// Transformer is the preprocessing stage of a loaded artifact
type Transformer interface {
	Transform(rows [][]float64) ([][]float64, error)
}

// Classifier is the decision stage of a loaded artifact
// It returns exactly one prediction per input row.
type Classifier interface {
	Predict(rows [][]float64) ([]float64, error)
}

// ValidationError is a domain validation failure whose message is shown verbatim
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service turns a RawInput into a prediction result
// A Service holds no mutable state and is safe for concurrent use as long as
// its Transformer and Classifier are.
type Service struct {
	transformer Transformer
	classifier  Classifier
}

// NewService creates a service over a transform stage and a decision stage
func NewService(transformer Transformer, classifier Classifier) *Service {
	return &Service{
		transformer: transformer,
		classifier:  classifier,
	}
}

// Predict returns the text rendered to the user for in
func (s *Service) Predict(in RawInput) string {
	return s.Evaluate(in).Message
}

// Evaluate validates and maps in, runs it through the artifact and reports
// which branch was taken
func (s *Service) Evaluate(in RawInput) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = failed(fmt.Errorf("prediction aborted: %v", r), out.Features)
		}
	}()

	features, err := Assemble(in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return Outcome{Kind: KindInvalid, Message: verr.Message}
		}
		return failed(err, nil)
	}
	out.Features = &features

	pred, err := s.decide(features)
	if err != nil {
		return failed(err, &features)
	}

	if pred == 1 {
		return Outcome{Kind: KindDetected, Message: MessageDetected, Features: &features}
	}
	return Outcome{Kind: KindNotDetected, Message: MessageNotDetected, Features: &features}
}

func (s *Service) decide(features FeatureVector) (float64, error) {
	transformed, err := s.transformer.Transform([][]float64{features.Row()})
	if err != nil {
		return 0, fmt.Errorf("transform: %w", err)
	}
	if len(transformed) != 1 {
		return 0, fmt.Errorf("transform returned %d rows for 1 input row", len(transformed))
	}

	preds, err := s.classifier.Predict(transformed)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	if len(preds) != 1 {
		return 0, fmt.Errorf("model returned %d predictions for 1 input row", len(preds))
	}
	return preds[0], nil
}

func failed(err error, features *FeatureVector) Outcome {
	return Outcome{
		Kind:     KindError,
		Message:  errorPrefix + err.Error(),
		Features: features,
	}
}

// Assemble validates in and builds its FeatureVector
// Range violations are returned as *ValidationError; unknown labels and
// non-numeric scalars are returned as plain errors.
func Assemble(in RawInput) (FeatureVector, error) {
	var fv FeatureVector

	ca, err := toInt("vessel count", in.VesselCount)
	if err != nil {
		return fv, err
	}
	if ca < 0 || ca > 3 {
		return fv, &ValidationError{Message: MessageVesselCount}
	}

	age, err := toInt("age", in.Age)
	if err != nil {
		return fv, err
	}
	if age <= 0 {
		return fv, &ValidationError{Message: MessageNonPositive}
	}
	vitals := []struct {
		field string
		value any
		dst   *float64
	}{
		{"resting BP", in.RestingBP, &fv[3]},
		{"cholesterol", in.Cholesterol, &fv[4]},
		{"max heart rate", in.MaxHeartRate, &fv[7]},
	}
	for _, v := range vitals {
		f, err := toFloat(v.field, v.value)
		if err != nil {
			return fv, err
		}
		if f <= 0 {
			return fv, &ValidationError{Message: MessageNonPositive}
		}
		*v.dst = f
	}

	categorical := []struct {
		m     CategoryMap
		label string
		dst   *float64
	}{
		{Sex, in.Sex, &fv[1]},
		{ChestPainType, in.ChestPainType, &fv[2]},
		{FastingBloodSugar, in.FastingBloodSugar, &fv[5]},
		{RestingECG, in.RestingECG, &fv[6]},
		{ExerciseAngina, in.ExerciseAngina, &fv[8]},
	}
	for _, c := range categorical {
		code, err := c.m.Code(c.label)
		if err != nil {
			return fv, err
		}
		*c.dst = float64(code)
	}

	oldpeak, err := toFloat("ST depression", in.STDepression)
	if err != nil {
		return fv, err
	}

	slope, err := STSlope.Code(in.STSlope)
	if err != nil {
		return fv, err
	}
	thal, err := Thalassemia.Code(in.Thalassemia)
	if err != nil {
		return fv, err
	}

	fv[0] = float64(age)
	fv[9] = oldpeak
	fv[10] = float64(slope)
	fv[11] = float64(ca)
	fv[12] = float64(thal)
	return fv, nil
}
