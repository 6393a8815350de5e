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

	"github.com/san-kum/snowfetti/internal/metrics"
)

// Store keeps benchmark sessions on disk, one directory per session.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID        string             `json:"id"`
	Profile   []string           `json:"profile"`
	Amount    int                `json:"amount"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Surface   string             `json:"surface"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv and returns the session id.
func (s *Store) Save(meta SessionMetadata, frames []metrics.FrameSample) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		kind := "snow"
		if len(meta.Profile) > 0 {
			kind = meta.Profile[0]
		}
		meta.ID = fmt.Sprintf("%s_%d_%d", kind, meta.Amount, now.UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	meta.Frames = len(frames)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "elapsed_us", "recycled"}); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.FormatInt(f.Elapsed.Microseconds(), 10),
			strconv.Itoa(f.Recycled),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable session, oldest first.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(id string) ([]metrics.FrameSample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []metrics.FrameSample{}, nil
	}

	frames := make([]metrics.FrameSample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		us, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			continue
		}
		recycled, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		frames = append(frames, metrics.FrameSample{
			Frame:    frame,
			Elapsed:  time.Duration(us) * time.Microsecond,
			Recycled: recycled,
		})
	}

	return frames, nil
}
