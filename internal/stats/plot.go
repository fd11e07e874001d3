package stats

import (
	"os"
	"path/filepath"

	"monomachia/internal/model"
)

// PlotPoint is one sample of a fitness curve, for an external plotting
// consumer.
type PlotPoint struct {
	Generation int     `json:"generation"`
	Value      float64 `json:"value"`
}

// Side selects one population of a two-sided series.
type Side int

const (
	SideA Side = iota
	SideB
)

// BuildAveragePlot extracts a side's average-fitness curve from a stats
// series.
func BuildAveragePlot(series []model.GenerationRecord, side Side) []PlotPoint {
	points := make([]PlotPoint, 0, len(series))
	for _, rec := range series {
		value := rec.AvgA
		if side == SideB {
			value = rec.AvgB
		}
		points = append(points, PlotPoint{Generation: rec.Generation, Value: value})
	}
	return points
}

// BuildMaxPlot extracts a side's maximum-fitness curve from a stats
// series.
func BuildMaxPlot(series []model.GenerationRecord, side Side) []PlotPoint {
	points := make([]PlotPoint, 0, len(series))
	for _, rec := range series {
		value := rec.MaxA
		if side == SideB {
			value = rec.MaxB
		}
		points = append(points, PlotPoint{Generation: rec.Generation, Value: value})
	}
	return points
}

// WritePlotArtifacts renders all four fitness curves of a run as plot-point
// JSON files in its run directory and returns the file paths.
func WritePlotArtifacts(baseDir, runID string, series []model.GenerationRecord) ([]string, error) {
	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, err
	}
	curves := []struct {
		name   string
		points []PlotPoint
	}{
		{"avg_side_a", BuildAveragePlot(series, SideA)},
		{"avg_side_b", BuildAveragePlot(series, SideB)},
		{"max_side_a", BuildMaxPlot(series, SideA)},
		{"max_side_b", BuildMaxPlot(series, SideB)},
	}
	paths := make([]string, 0, len(curves))
	for _, curve := range curves {
		path := filepath.Join(runDir, curve.name+".json")
		if err := writeJSON(path, curve.points); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
