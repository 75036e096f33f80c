package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/mdsim/internal/md"
)

// ExportData is the full JSON export of a stored run.
type ExportData struct {
	RunMetadata
	Samples []md.Sample `json:"samples"`
}

// Export writes metadata and the energy series for runID to w as
// indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Samples: samples})
}
