package pipeline

import (
	"fmt"
	"os"
)

// Source provides the serialized bytes of an artifact
// This allows swapping between a file on disk, an embedded copy, or other origins
type Source interface {
	// Read returns the full artifact document
	Read() ([]byte, error)

	// String describes the source for logs and errors
	String() string
}

// FileSource reads an artifact from a path on disk
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the artifact at path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Read() ([]byte, error) {
	return os.ReadFile(s.Path)
}

func (s *FileSource) String() string {
	return "file " + s.Path
}

// BytesSource serves an artifact held in memory
type BytesSource struct {
	Label string
	Data  []byte
}

func (s *BytesSource) Read() ([]byte, error) {
	if len(s.Data) == 0 {
		return nil, fmt.Errorf("artifact %s is empty", s)
	}
	data := make([]byte, len(s.Data))
	copy(data, s.Data)
	return data, nil
}

func (s *BytesSource) String() string {
	if s.Label == "" {
		return "memory"
	}
	return "memory " + s.Label
}
