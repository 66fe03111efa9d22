package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/platesim/internal/config"
	"github.com/san-kum/platesim/internal/plate"
)

// ErrNonFiniteGrid is returned by Save for a grid holding NaN or Inf.
var ErrNonFiniteGrid = errors.New("storage: grid holds NaN or Inf")

const (
	stagingPrefix = ".staging-"
	metadataFile = "metadata.json"
	gridFile     = "grid.csv"
	historyFile  = "history.csv"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Config     config.Config      `json:"config"`
	Iterations int                `json:"iterations"`
	Delta      float64            `json:"delta"`
	Converged  bool               `json:"converged"`
	Average    float64            `json:"average"`
	Min        float64            `json:"min"`
	Max        float64            `json:"max"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is everything a solve produces that is worth keeping.
type Run struct {
	Config  *config.Config
	Result  plate.Result
	Grid    *plate.Grid
	History []float64
	Elapsed time.Duration
}

func newRunID(now time.Time) string {
	return fmt.Sprintf("plate_%s_%s", now.Format("20060102-150405"), uuid.New().String()[:8])
}

// Save writes the run into a staging directory and renames it into place,
// so a failed save never leaves a partial run behind for List to find.
func (s *Store) Save(run Run) (string, error) {
	if run.Grid == nil || !run.Grid.IsValid() {
		return "", ErrNonFiniteGrid
	}

	now := time.Now()
	runID := newRunID(now)
	runDir := filepath.Join(s.baseDir, runID)
	staging := filepath.Join(s.baseDir, stagingPrefix+runID)

	if err := os.MkdirAll(staging, 0755); err != nil {
		return "", err
	}
	if err := writeRun(staging, runID, now, run); err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	if err := os.Rename(staging, runDir); err != nil {
		os.RemoveAll(staging)
		return "", err
	}

	slog.Debug("saved run", "id", runID, "dir", runDir, "sweeps", len(run.History))
	return runID, nil
}

func writeRun(dir, runID string, now time.Time, run Run) error {
	stats := plate.GridStats(run.Grid)
	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		Config:     *run.Config,
		Iterations: run.Result.Iterations,
		Delta:      run.Result.Delta,
		Converged:  run.Result.Converged,
		Average:    run.Result.Average,
		Min:        stats.Min,
		Max:        stats.Max,
		Elapsed:    run.Elapsed,
		Metrics:    finiteMetrics(run.Result.Metrics),
	}

	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	if err := writeGridCSV(filepath.Join(dir, gridFile), run.Grid); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if err := writeHistoryCSV(filepath.Join(dir, historyFile), run.History); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}

// finiteMetrics drops values JSON cannot encode.
func finiteMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			slog.Warn("dropping non-finite metric", "metric", k, "value", v)
			continue
		}
		out[k] = v
	}
	return out
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
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			slog.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadGrid(runID string) (*plate.Grid, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, gridFile))
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("grid row %d col %d: %w", i, j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return plate.FromRows(rows)
}

func (s *Store) LoadHistory(runID string) ([]float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, historyFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	deltas := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		d, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		deltas = append(deltas, d)
	}
	return deltas, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeGridCSV(path string, g *plate.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteGridCSV(w, g); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteGridCSV writes one CSV record per grid row.
func WriteGridCSV(w *csv.Writer, g *plate.Grid) error {
	record := make([]string, g.N)
	for r := 0; r < g.N; r++ {
		for c, v := range g.Row(r) {
			record[c] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeHistoryCSV(path string, deltas []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"sweep", "delta"}); err != nil {
		return err
	}
	for i, d := range deltas {
		if err := w.Write([]string{strconv.Itoa(i + 1), strconv.FormatFloat(d, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
