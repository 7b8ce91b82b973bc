package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	manifestPath = "input/manifest.yaml"
	resultsPath  = "output/results/items.yaml"
)

// Extract runs batch extraction over input/manifest.yaml and writes the
// items to output/results/items.yaml.
func Extract() error {
	mg.Deps(Build)
	if _, err := os.Stat(manifestPath); err != nil {
		return fmt.Errorf("manifest not found: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resultsPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(resultsPath), err)
	}
	return sh.RunV(binPath, "extract", "--manifest", manifestPath, "--out", resultsPath)
}
