package storage

import (
	"context"
	"path/filepath"

	"github.com/Tiliavir/mood-journal/internal/model"
)

const statsFile = "stats.json"

// statsDocument is the top-level structure stored in stats.json.
type statsDocument struct {
	Days map[string]model.DailyStats `json:"days"`
}

// StatsFile keeps the day→stats mapping in a single JSON document.
type StatsFile struct {
	path string
}

// NewStatsFile returns a stats store writing <base>/stats.json.
func NewStatsFile(base string) *StatsFile {
	return &StatsFile{path: filepath.Join(base, statsFile)}
}

// Load returns every stored day. A missing file yields an empty map.
func (f *StatsFile) Load(_ context.Context) (map[string]model.DailyStats, error) {
	var doc statsDocument
	if _, err := readJSON(f.path, &doc); err != nil {
		return nil, err
	}
	if doc.Days == nil {
		doc.Days = map[string]model.DailyStats{}
	}
	return doc.Days, nil
}

// Save replaces the stored mapping with days.
func (f *StatsFile) Save(_ context.Context, days map[string]model.DailyStats) error {
	if days == nil {
		days = map[string]model.DailyStats{}
	}
	return writeJSON(f.path, statsDocument{Days: days})
}
