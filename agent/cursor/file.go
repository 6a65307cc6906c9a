package cursor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-json"
)

type fileEntry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore keeps cursors in a small JSON file, written through on every
// Set. The write cadence is one per poll tick, so there is no need to
// batch.
type FileStore struct {
	path string

	mu      sync.Mutex
	cursors map[string]fileEntry
}

// DefaultFilePath resolves the cursor file under the XDG state directory,
// creating parent directories as needed.
func DefaultFilePath() (string, error) {
	return xdg.StateFile("magpie/cursors.json")
}

// NewFileStore opens or creates a cursor file. An empty path selects the
// XDG default location.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultFilePath()
		if err != nil {
			return nil, fmt.Errorf("resolving cursor file path: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	s := &FileStore{
		path:    path,
		cursors: make(map[string]fileEntry),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, &s.cursors); err != nil {
		return nil, fmt.Errorf("parsing cursor file %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) Get(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursors[name].Value, nil
}

func (s *FileStore) Set(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[name] = fileEntry{Value: value, UpdatedAt: time.Now().UTC()}
	b, err := json.MarshalIndent(s.cursors, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0600)
}
