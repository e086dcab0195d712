package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Metadata *RunMetadata `json:"metadata"`
	Field    *FieldTable  `json:"field,omitempty"`
}

// ExportJSON writes a run as one JSON document. The field table is left
// out unless withField is set.
func (s *Store) ExportJSON(w io.Writer, runID string, withField bool) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	data := ExportData{Metadata: meta}
	if withField {
		if data.Field, err = s.LoadField(runID); err != nil {
			return err
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies a run's field.csv to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	f, err := os.Open(s.FieldPath(runID))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
