package main

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/liamcoop/hypertension/predictor"
)

// fieldDef describes one form control
type fieldDef struct {
	name     string
	label    string
	min, max string
	step     string
	category *predictor.CategoryMap
}

// formLayout mirrors the rows of the form
var formLayout = [][]fieldDef{
	{
		{name: "age", label: "Age (years)", min: "1", step: "1"},
		{name: "sex", label: "Sex", category: &predictor.Sex},
		{name: "cp", label: "Chest Pain Type", category: &predictor.ChestPainType},
	},
	{
		{name: "trestbps", label: "Resting BP (mmHg)", step: "any"},
		{name: "chol", label: "Serum Cholesterol (mg/dl)", step: "any"},
		{name: "fbs", label: "Fasting Blood Sugar", category: &predictor.FastingBloodSugar},
	},
	{
		{name: "restecg", label: "Resting ECG Result", category: &predictor.RestingECG},
		{name: "thalach", label: "Max Heart Rate", step: "any"},
		{name: "exang", label: "Exercise-Induced Angina", category: &predictor.ExerciseAngina},
	},
	{
		{name: "oldpeak", label: "ST Depression", step: "any"},
		{name: "slope", label: "ST Slope", category: &predictor.STSlope},
		{name: "ca", label: "No. of Major Vessels (0–3)", min: "0", max: "3", step: "1"},
		{name: "thal", label: "Thalassemia Type", category: &predictor.Thalassemia},
	},
}

type formOption struct {
	Value    string
	Selected bool
}

type formField struct {
	Name    string
	Label   string
	Value   string
	Min     string
	Max     string
	Step    string
	Options []formOption
}

type pageData struct {
	Rows   [][]formField
	Result string
}

// newPageData lays out the form with the submitted values filled back in
func newPageData(values url.Values, result string) pageData {
	rows := make([][]formField, 0, len(formLayout))
	for _, defs := range formLayout {
		row := make([]formField, 0, len(defs))
		for _, d := range defs {
			f := formField{
				Name:  d.name,
				Label: d.label,
				Value: values.Get(d.name),
				Min:   d.min,
				Max:   d.max,
				Step:  d.step,
			}
			if d.category != nil {
				for _, label := range d.category.Labels() {
					f.Options = append(f.Options, formOption{
						Value:    label,
						Selected: label == f.Value,
					})
				}
			}
			row = append(row, f)
		}
		rows = append(rows, row)
	}
	return pageData{Rows: rows, Result: result}
}

// rawInputFromForm maps submitted form values onto the predictor input
// Number inputs behave like a numeric widget: blank is no value, a parseable
// value is a float, and vessel count is rounded half to even.
func rawInputFromForm(values url.Values) predictor.RawInput {
	return predictor.RawInput{
		Age:               formNumber(values, "age", false),
		Sex:               values.Get("sex"),
		ChestPainType:     values.Get("cp"),
		RestingBP:         formNumber(values, "trestbps", false),
		Cholesterol:       formNumber(values, "chol", false),
		FastingBloodSugar: values.Get("fbs"),
		RestingECG:        values.Get("restecg"),
		MaxHeartRate:      formNumber(values, "thalach", false),
		ExerciseAngina:    values.Get("exang"),
		STDepression:      formNumber(values, "oldpeak", false),
		STSlope:           values.Get("slope"),
		VesselCount:       formNumber(values, "ca", true),
		Thalassemia:       values.Get("thal"),
	}
}

// formNumber returns nil for a blank value and the raw string when it does not parse
func formNumber(values url.Values, name string, whole bool) any {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if whole {
		return math.RoundToEven(f)
	}
	return f
}
