package telemetry

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Transmission string             `json:"transmission"`
	Upgrades     []string           `json:"upgrades"`
	Metrics      map[string]float64 `json:"metrics"`
}

var csvHeader = []string{
	"time", "rpm", "speed", "gear", "accel", "jerk", "temp", "water",
	"power", "torque", "thermal_eff", "vol_eff", "fuel", "bsfc", "co2", "nox",
}

func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, sm := range samples {
		if err := w.Write(record(sm)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func record(s Sample) []string {
	water := "0"
	if s.WaterInjection {
		water = "1"
	}
	return []string{
		strconv.FormatFloat(s.Time, 'f', 6, 64),
		strconv.FormatFloat(s.RPM, 'f', 6, 64),
		strconv.FormatFloat(s.VehicleSpeed, 'f', 6, 64),
		strconv.Itoa(s.Gear),
		strconv.FormatFloat(s.Acceleration, 'f', 6, 64),
		strconv.FormatFloat(s.Jerk, 'f', 6, 64),
		strconv.FormatFloat(s.Temperature, 'f', 6, 64),
		water,
		strconv.FormatFloat(s.PowerOutput, 'f', 6, 64),
		strconv.FormatFloat(s.Torque, 'f', 6, 64),
		strconv.FormatFloat(s.ThermalEfficiency, 'f', 6, 64),
		strconv.FormatFloat(s.VolumetricEfficiency, 'f', 6, 64),
		strconv.FormatFloat(s.FuelConsumption, 'f', 6, 64),
		strconv.FormatFloat(s.BSFC, 'f', 6, 64),
		strconv.FormatFloat(s.CO2Emissions, 'f', 6, 64),
		strconv.FormatFloat(s.NOxEmissions, 'f', 6, 64),
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		sm, err := parseRecord(rec)
		if err != nil {
			continue
		}
		samples = append(samples, sm)
	}

	return samples, nil
}

func parseRecord(rec []string) (Sample, error) {
	f := make([]float64, len(rec))
	for i, cell := range rec {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Sample{}, err
		}
		f[i] = v
	}
	return Sample{
		Time:                 f[0],
		RPM:                  f[1],
		VehicleSpeed:         f[2],
		Gear:                 int(f[3]),
		Acceleration:         f[4],
		Jerk:                 f[5],
		Temperature:          f[6],
		WaterInjection:       f[7] != 0,
		PowerOutput:          f[8],
		Torque:               f[9],
		ThermalEfficiency:    f[10],
		VolumetricEfficiency: f[11],
		FuelConsumption:      f[12],
		BSFC:                 f[13],
		CO2Emissions:         f[14],
		NOxEmissions:         f[15],
	}, nil
}
