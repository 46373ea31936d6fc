package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/liamcoop/hypertension/pipeline"
	"github.com/liamcoop/hypertension/predictor"
)

// exampleInput is the reference patient used by the predict command
var exampleInput = predictor.RawInput{
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

func main() {
	var artifactPath string
	var inputPath string
	var command string

	flag.StringVar(&artifactPath, "path", "", "Path to the artifact file")
	flag.StringVar(&inputPath, "input", "", "JSON input for the predict command (defaults to the reference patient)")
	flag.StringVar(&command, "command", "validate", "Artifact command: validate, describe, predict")
	flag.Parse()

	if artifactPath == "" {
		artifactPath = os.Getenv("ARTIFACT_PATH")
	}
	if artifactPath == "" {
		log.Fatal("Artifact path is required. Use -path flag or ARTIFACT_PATH environment variable")
	}

	artifact, err := pipeline.Load(pipeline.NewFileSource(artifactPath))
	if err != nil {
		log.Fatalf("Failed to load artifact: %v", err)
	}

	switch command {
	case "validate":
		log.Printf("Artifact %s (version %s) is valid", artifact.Name(), artifact.Version())

	case "describe":
		log.Printf("Name: %s", artifact.Name())
		log.Printf("Version: %s", artifact.Version())
		log.Printf("Features: %s", strings.Join(artifact.Features(), ", "))
		log.Printf("Decision: %s", artifact.Decision())

	case "predict":
		in := exampleInput
		if inputPath != "" {
			in, err = readInput(inputPath)
			if err != nil {
				log.Fatalf("Failed to read input: %v", err)
			}
		}

		out := predictor.NewService(artifact, artifact).Evaluate(in)
		if out.Features != nil {
			log.Printf("Features: %v", out.Features.Row())
		}
		log.Printf("Kind: %s", out.Kind)
		log.Printf("Result: %s", out.Message)

	default:
		log.Fatalf("Unknown command: %s (use: validate, describe, predict)", command)
	}
}

func readInput(path string) (predictor.RawInput, error) {
	var in predictor.RawInput

	data, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	err = dec.Decode(&in)
	return in, err
}
