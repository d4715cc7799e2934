package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"faal-poster/internal/domain"
)

// JSONFile keeps deliveries in a single JSON document, oldest first.
type JSONFile struct {
	path       string
	mu         sync.RWMutex
	deliveries []domain.Delivery
}

// NewJSONFile opens the journal at path, creating its directory if needed.
func NewJSONFile(path string) (*JSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	j := &JSONFile{path: path}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return j, nil
	case err != nil:
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &j.deliveries); err != nil {
			return nil, fmt.Errorf("parse journal %s: %w", path, err)
		}
	}
	return j, nil
}

// Record appends d and rewrites the file.
func (j *JSONFile) Record(_ context.Context, d domain.Delivery) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.deliveries = append(j.deliveries, d)
	data, err := json.MarshalIndent(j.deliveries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		j.deliveries = j.deliveries[:len(j.deliveries)-1]
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Recent returns up to limit deliveries, newest first.
func (j *JSONFile) Recent(_ context.Context, limit int) ([]domain.Delivery, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := len(j.deliveries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Delivery, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, j.deliveries[i])
	}
	return out, nil
}

func (j *JSONFile) Close() error { return nil }
