package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/liamcoop/hypertension/internal/config"
	"github.com/liamcoop/hypertension/internal/logger"
	"github.com/liamcoop/hypertension/pipeline"
	"github.com/liamcoop/hypertension/predictor"
)

//go:embed templates/index.html
var indexHTML string

// maxBodyBytes caps request bodies; the form is thirteen short fields
const maxBodyBytes = 64 << 10

// Options tunes the HTTP layer
type Options struct {
	RequestTimeout time.Duration
	SlowRequest    time.Duration
}

type Server struct {
	artifacts *pipeline.Manager
	page      *template.Template
	opts      Options
	router    *chi.Mux
}

func NewServer(artifacts *pipeline.Manager, opts Options) (*Server, error) {
	page, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, err
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	s := &Server{
		artifacts: artifacts,
		page:      page,
		opts:      opts,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.opts.SlowRequest))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(middleware.RequestSize(maxBodyBytes))

	// Form
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSubmit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/options", s.handleOptions)
		r.Post("/predict", s.handlePredict)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// evaluate runs in against the artifact active at call time
func (s *Server) evaluate(r *http.Request, in predictor.RawInput) predictor.Outcome {
	artifact, err := s.artifacts.Current()
	if err != nil {
		logger.Error("no artifact available", "error", err)
		return predictor.Outcome{Kind: predictor.KindError, Message: "Error: " + err.Error()}
	}

	out := predictor.NewService(artifact, artifact).Evaluate(in)
	logger.Debug("prediction",
		"kind", out.Kind,
		"artifactId", artifact.ID,
		"requestId", middleware.GetReqID(r.Context()),
	)
	if out.Features != nil {
		logger.Trace("prediction features",
			"features", out.Features.Row(),
			"requestId", middleware.GetReqID(r.Context()),
		)
	}
	return out
}

// Form page handler
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, newPageData(nil, ""))
}

// Form submit handler
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, newPageData(nil, "Error: "+err.Error()))
		return
	}

	out := s.evaluate(r, rawInputFromForm(r.PostForm))
	s.renderPage(w, http.StatusOK, newPageData(r.PostForm, out.Message))
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		logger.Error("failed to render page", "error", err)
	}
}

// Prediction handler
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in predictor.RawInput

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	out := s.evaluate(r, in)

	resp := PredictResponse{
		Result: out.Message,
		Kind:   out.Kind,
	}
	if out.Features != nil {
		resp.Features = out.Features.Row()
	}

	respondJSON(w, http.StatusOK, resp)
}

// Options handler
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	cats := predictor.Categories()
	resp := OptionsResponse{Categories: make([]CategoryOptions, 0, len(cats))}
	for _, c := range cats {
		resp.Categories = append(resp.Categories, CategoryOptions{
			Field:  c.Field(),
			Labels: c.Labels(),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.artifacts.Current()
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Counters: logger.Counters(),
			Error:    err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Artifact: &ArtifactInfo{
			ID:       artifact.ID,
			Name:     artifact.Name(),
			Version:  artifact.Version(),
			Decision: artifact.Decision(),
			LoadedAt: artifact.LoadedAt,
			Loads:    s.artifacts.Loads(),
		},
		Counters: logger.Counters(),
	})
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	respondJSON(w, status, response)
}

func reloadArtifact(artifacts *pipeline.Manager) {
	artifact, err := artifacts.Reload()
	if err != nil {
		logger.Error("artifact reload failed, keeping current artifact", "source", artifacts.Source().String(), "error", err)
		return
	}
	logger.Info("artifact reloaded",
		"name", artifact.Name(),
		"version", artifact.Version(),
		"id", artifact.ID,
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	if err := logger.Setup(context.Background(), logger.Options{
		Level:       cfg.Log.Level,
		OTELEnabled: cfg.Log.OTELEnabled,
		ServiceName: cfg.Log.ServiceName,
		SampleRate:  cfg.Log.SampleRate,
	}); err != nil {
		logger.Warn("logger setup incomplete", "error", err)
	}

	// Load the artifact before serving anything
	artifacts := pipeline.NewManager(pipeline.NewFileSource(cfg.ArtifactPath))
	artifact, err := artifacts.Reload()
	if err != nil {
		logger.Fatal("failed to load artifact", "path", cfg.ArtifactPath, "error", err)
	}
	logger.Info("artifact loaded",
		"name", artifact.Name(),
		"version", artifact.Version(),
		"id", artifact.ID,
	)

	server, err := NewServer(artifacts, Options{
		RequestTimeout: cfg.RequestTimeout,
		SlowRequest:    cfg.SlowRequest,
	})
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// SIGHUP reloads the artifact, anything else shuts down
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigChan {
		if sig != syscall.SIGHUP {
			break
		}
		reloadArtifact(artifacts)
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		logger.Error("logger shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
