package telemetry

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	ID           string             `json:"id"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Transmission string             `json:"transmission"`
	Upgrades     []string           `json:"upgrades"`
	Steps        int                `json:"steps"`
	Samples      []Sample           `json:"samples"`
	Metrics      map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, samples []Sample) ExportData {
	return ExportData{
		ID:           meta.ID,
		Seed:         meta.Seed,
		Dt:           meta.Dt,
		Duration:     meta.Duration,
		Transmission: meta.Transmission,
		Upgrades:     meta.Upgrades,
		Steps:        len(samples),
		Samples:      samples,
		Metrics:      meta.Metrics,
	}
}

func encodeJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta *RunMetadata, samples []Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeJSON(file, exportData(meta, samples))
}

func ExportJSONStdout(meta *RunMetadata, samples []Sample) error {
	return encodeJSON(os.Stdout, exportData(meta, samples))
}
