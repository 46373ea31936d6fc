package predictor

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when a categorical value is not a key of its CategoryMap
var ErrUnknownLabel = errors.New("unknown label")

type categoryEntry struct {
	label string
	code  int
}

// CategoryMap maps the display labels of one categorical field to classifier codes
// A CategoryMap is built once at package init and never mutated.
type CategoryMap struct {
	field  string
	labels []string
	codes  map[string]int
}

func newCategoryMap(field string, entries ...categoryEntry) CategoryMap {
	m := CategoryMap{
		field:  field,
		labels: make([]string, 0, len(entries)),
		codes:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		m.labels = append(m.labels, e.label)
		m.codes[e.label] = e.code
	}
	return m
}

// Field returns the name of the field the map belongs to
func (m CategoryMap) Field() string {
	return m.field
}

// Labels returns the labels in display order
func (m CategoryMap) Labels() []string {
	labels := make([]string, len(m.labels))
	copy(labels, m.labels)
	return labels
}

// Code looks up the classifier code for label
func (m CategoryMap) Code(label string) (int, error) {
	code, ok := m.codes[label]
	if !ok {
		return 0, fmt.Errorf("%w %q for %s", ErrUnknownLabel, label, m.field)
	}
	return code, nil
}

var (
	Sex = newCategoryMap("sex",
		categoryEntry{"Male", 1},
		categoryEntry{"Female", 0},
	)

	FastingBloodSugar = newCategoryMap("fasting blood sugar",
		categoryEntry{"on or above 120 mg/dl", 1},
		categoryEntry{"below 120 mg/dl", 0},
	)

	RestingECG = newCategoryMap("resting ECG",
		categoryEntry{"Normal", 0},
		categoryEntry{"T wave inversion and/or ST elevation/depression > 0.05mV", 1},
		categoryEntry{"Left Ventricular Hypertrophy (by Estes' criteria)", 2},
	)

	ExerciseAngina = newCategoryMap("exercise-induced angina",
		categoryEntry{"Yes", 1},
		categoryEntry{"No", 0},
	)

	STSlope = newCategoryMap("ST slope",
		categoryEntry{"Upsloping", 0},
		categoryEntry{"Flat", 1},
		categoryEntry{"Downsloping", 2},
	)

	ChestPainType = newCategoryMap("chest pain type",
		categoryEntry{"Asymptomatic", 0},
		categoryEntry{"Typical Angina", 1},
		categoryEntry{"Atypical Angina", 2},
		categoryEntry{"Non-Anginal Pain", 3},
	)

	Thalassemia = newCategoryMap("thalassemia type",
		categoryEntry{"Normal", 1},
		categoryEntry{"Fixed Defect", 2},
		categoryEntry{"Reversible Defect", 3},
	)
)

// Categories returns every CategoryMap in form order
func Categories() []CategoryMap {
	return []CategoryMap{
		Sex,
		ChestPainType,
		FastingBloodSugar,
		RestingECG,
		ExerciseAngina,
		STSlope,
		Thalassemia,
	}
}
