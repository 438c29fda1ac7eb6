// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records the outcome of a conversion run as a YAML file
// placed alongside the written documents. The manifest ties each output
// filename back to its source conversation, so later tooling (or the
// document catalog) can trace provenance without re-reading the export.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-export/internal/write"
	"github.com/pdiddy/transcript-export/pkg/types"
)

// FileName is the manifest's name inside the output directory.
const FileName = "export-manifest.yaml"

// Manifest is the on-disk record of one conversion run.
type Manifest struct {
	RunID     string                 `yaml:"run_id"`
	Input     string                 `yaml:"input"`
	OutputDir string                 `yaml:"output_dir"`
	Timestamp time.Time              `yaml:"timestamp"`
	Summary   Summary                `yaml:"summary"`
	Documents []types.DocumentRecord `yaml:"documents"`
}

// Summary mirrors the batch tally.
type Summary struct {
	Written int `yaml:"written"`
	Skipped int `yaml:"skipped"`
	Failed  int `yaml:"failed"`
	Total   int `yaml:"total"`
}

// New builds a manifest for a completed run with a fresh run id.
func New(input, outputDir string, result write.BatchResult) Manifest {
	return Manifest{
		RunID:     uuid.NewString(),
		Input:     input,
		OutputDir: outputDir,
		Timestamp: time.Now().UTC(),
		Summary: Summary{
			Written: result.Written,
			Skipped: result.Skipped,
			Failed:  result.Failed,
			Total:   result.Total(),
		},
		Documents: result.Documents,
	}
}

// WriteFile saves the manifest into dir as FileName.
func WriteFile(dir string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}

// ReadFile loads a previously written manifest.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
