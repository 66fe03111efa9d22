package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Grid    [][]float64 `json:"grid"`
	History []float64   `json:"history"`
}

// Export gathers a stored run into a single document.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	g, err := s.LoadGrid(runID)
	if err != nil {
		return nil, err
	}
	history, err := s.LoadHistory(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Grid: g.Rows(), History: history}, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func ExportJSONStdout(data *ExportData) error {
	return WriteJSON(os.Stdout, data)
}
