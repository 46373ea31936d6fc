package main

import (
	"time"

	"github.com/liamcoop/hypertension/internal/logger"
	"github.com/liamcoop/hypertension/predictor"
)

// API request and response models

// PredictResponse is returned for every prediction, whichever branch produced it
type PredictResponse struct {
	Result   string         `json:"result" example:"No Hypertension Detected."`
	Kind     predictor.Kind `json:"kind" example:"not_detected"`
	Features []float64      `json:"features,omitempty"`
}

// CategoryOptions lists the accepted labels of one categorical field
type CategoryOptions struct {
	Field  string   `json:"field" example:"sex"`
	Labels []string `json:"labels"`
}

// OptionsResponse lists every categorical field in form order
type OptionsResponse struct {
	Categories []CategoryOptions `json:"categories"`
}

// ArtifactInfo describes the active artifact
type ArtifactInfo struct {
	ID       string    `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name     string    `json:"name" example:"hypertension-linear"`
	Version  string    `json:"version" example:"2024.1"`
	Decision string    `json:"decision" example:"z >= 0.0 ? 1 : 0"`
	LoadedAt time.Time `json:"loadedAt"`
	Loads    int       `json:"loads" example:"1"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string          `json:"status" example:"healthy"`
	Artifact *ArtifactInfo   `json:"artifact,omitempty"`
	Counters logger.Snapshot `json:"counters"`
	Error    string          `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid request body"`
	Details string `json:"details,omitempty"`
}
