package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ArtifactStore persists rendered contract documents. The engine never
// depends on artifact contents; rendering is lazy and on demand.
type ArtifactStore interface {
	// Save writes the artifact and returns its handle.
	Save(name string, data []byte) (string, error)
	// Open returns the artifact's filesystem path for serving.
	Open(handle string) (string, error)
}

// LocalArtifactStore keeps artifacts on the local filesystem.
type LocalArtifactStore struct {
	baseDir string
}

func NewLocalArtifactStore(baseDir string) (*LocalArtifactStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &LocalArtifactStore{baseDir: baseDir}, nil
}

func (s *LocalArtifactStore) Save(name string, data []byte) (string, error) {
	handle := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(name))
	path := filepath.Join(s.baseDir, handle)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return handle, nil
}

func (s *LocalArtifactStore) Open(handle string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.Base(handle))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact not found: %w", err)
	}
	return path, nil
}
