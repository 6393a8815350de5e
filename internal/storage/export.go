package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Session   SessionMetadata `json:"session"`
	Frames    []int           `json:"frames"`
	ElapsedUS []int64         `json:"elapsed_us"`
	Recycled  []int           `json:"recycled"`
}

// Export writes a stored session and its frame samples as indented JSON.
func (s *Store) Export(id string, w io.Writer) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	samples, err := s.LoadFrames(id)
	if err != nil {
		return err
	}

	data := ExportData{
		Session:   *meta,
		Frames:    make([]int, len(samples)),
		ElapsedUS: make([]int64, len(samples)),
		Recycled:  make([]int, len(samples)),
	}
	for i, f := range samples {
		data.Frames[i] = f.Frame
		data.ElapsedUS[i] = f.Elapsed.Microseconds()
		data.Recycled[i] = f.Recycled
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportFile(id, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.Export(id, file)
}
