package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"monomachia/internal/model"
)

const (
	runConfigFile = "run_config.json"
	fitnessFile   = "fitness.json"
)

// WriteRunArtifacts lays out one run's reporting directory under baseDir:
// the run record and the per-generation fitness series as JSON. Returns
// the run directory path.
func WriteRunArtifacts(baseDir string, run model.RunRecord, series []model.GenerationRecord) (string, error) {
	if run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}
	runDir := filepath.Join(baseDir, run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, runConfigFile), run); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, fitnessFile), series); err != nil {
		return "", err
	}
	return runDir, nil
}

// ReadRunConfig loads the persisted run record from a run directory.
func ReadRunConfig(baseDir, runID string) (model.RunRecord, bool, error) {
	var run model.RunRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, runConfigFile), &run)
	return run, ok, err
}

// ReadFitnessSeries loads the persisted fitness series from a run
// directory.
func ReadFitnessSeries(baseDir, runID string) ([]model.GenerationRecord, bool, error) {
	var series []model.GenerationRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, fitnessFile), &series)
	return series, ok, err
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}
