package ml

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// LoadPipeline reads a fitted pipeline from its JSON cache.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline cache: %w", err)
	}

	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline cache: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline cache is invalid: %w", err)
	}
	return &p, nil
}

// SavePipeline writes the pipeline to path atomically.
func SavePipeline(path string, p *Pipeline) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode pipeline: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pipeline-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write pipeline cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close pipeline cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move pipeline cache into place: %w", err)
	}
	return nil
}
