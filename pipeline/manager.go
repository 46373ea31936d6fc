package pipeline

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotLoaded is returned by Current before the first successful load
var ErrNotLoaded = errors.New("artifact not loaded")

// Manager holds the active artifact and replaces it on reload
// Readers get an immutable snapshot, so a reload never interrupts a prediction
// that is already running.
type Manager struct {
	source  Source
	current *Artifact
	loads   int
	mu      sync.RWMutex
}

// NewManager creates a manager for artifacts read from source
func NewManager(source Source) *Manager {
	return &Manager{source: source}
}

// Source returns where the manager loads artifacts from
func (m *Manager) Source() Source {
	return m.source
}

// Reload loads a fresh artifact from the source and atomically swaps it in
// On failure the previously active artifact stays in place.
func (m *Manager) Reload() (*Artifact, error) {
	next, err := Load(m.source)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}

	m.mu.Lock()
	m.current = next
	m.loads++
	m.mu.Unlock()

	return next, nil
}

// Current returns the active artifact
func (m *Manager) Current() (*Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrNotLoaded
	}
	return m.current, nil
}

// Loads returns how many artifacts have been successfully loaded
func (m *Manager) Loads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loads
}
