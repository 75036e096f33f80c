// Package storage persists completed runs under a base directory, one
// subdirectory per run holding metadata.json and energies.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mdsim/internal/md"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the persisted summary of one run.
type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	ParticleCount int                `json:"particle_count"`
	Dimensions    int                `json:"dimensions"`
	Mass          float64            `json:"mass"`
	TimeStep      float64            `json:"time_step"`
	StepCount     int                `json:"step_count"`
	Seed          int32              `json:"seed"`
	Baseline      float64            `json:"baseline_energy"`
	Potential     float64            `json:"final_potential"`
	Kinetic       float64            `json:"final_kinetic"`
	Drift         float64            `json:"energy_drift"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
}

// Save writes one run directory and returns its id.
func (s *Store) Save(p md.Params, result *md.Result) (string, error) {
	runID := fmt.Sprintf("md_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		ParticleCount: p.Particles,
		Dimensions:    p.Dims,
		Mass:          p.Mass,
		TimeStep:      p.Dt,
		StepCount:     p.Steps,
		Seed:          p.Seed,
		Baseline:      result.Baseline,
		Potential:     result.Potential,
		Kinetic:       result.Kinetic,
		Drift:         result.Drift,
		Metrics:       result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "energies.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "potential", "kinetic", "total"}); err != nil {
		return "", err
	}
	for _, sample := range result.Samples {
		row := []string{
			strconv.Itoa(sample.Step),
			strconv.FormatFloat(sample.Time, 'f', 6, 64),
			strconv.FormatFloat(sample.Potential, 'g', -1, 64),
			strconv.FormatFloat(sample.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(sample.Total(), 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run, newest last.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads one run's per-step energy samples.
func (s *Store) LoadSeries(runID string) ([]md.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "energies.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []md.Sample{}, nil
	}

	samples := make([]md.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		pe, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		ke, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}
		samples = append(samples, md.Sample{Step: step, Time: t, Potential: pe, Kinetic: ke})
	}
	return samples, nil
}
