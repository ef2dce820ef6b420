package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mood bounds for a diary entry.
const (
	MinMood = 0.0
	MaxMood = 10.0
)

// ErrValidation is returned when an entry or update is rejected before it
// reaches storage.
var ErrValidation = errors.New("validation error")

// DiaryEntry is a single journal record. Entries are values: an edit produces
// a new DiaryEntry carrying the same ID and Date.
type DiaryEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Mood      float64   `json:"mood"`
	Content   string    `json:"content"`
	Images    [][]byte  `json:"images"`
	VideoRefs []string  `json:"video_refs"`
}

// IndexEntry is the lightweight projection used to enumerate entries without
// loading content or media.
type IndexEntry struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Mood float64   `json:"mood"`
}

// DiaryIndex is the top-level structure stored in diary_index.json.
type DiaryIndex struct {
	Entries []IndexEntry `json:"entries"`
}

// Manifest lists the artifacts stored in an entry bucket, so loading does not
// depend on probing for files.
type Manifest struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Mood   float64   `json:"mood"`
	Images []string  `json:"images"`
	Videos []string  `json:"videos"`
}

// Index returns the index projection of e.
func (e DiaryEntry) Index() IndexEntry {
	return IndexEntry{ID: e.ID, Date: e.Date, Mood: e.Mood}
}

// Validate checks the mood range and that an entry carries either text or media.
func (e DiaryEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if e.Mood < MinMood || e.Mood > MaxMood {
		return fmt.Errorf("%w: mood %.1f outside [%.0f, %.0f]", ErrValidation, e.Mood, MinMood, MaxMood)
	}
	if strings.TrimSpace(e.Content) == "" && len(e.Images) == 0 && len(e.VideoRefs) == 0 {
		return fmt.Errorf("%w: content may only be empty when media is attached", ErrValidation)
	}
	return nil
}

// WithContent returns a copy of e with new text.
func (e DiaryEntry) WithContent(content string) DiaryEntry {
	e.Content = content
	return e
}

// WithMood returns a copy of e with a new mood score.
func (e DiaryEntry) WithMood(mood float64) DiaryEntry {
	e.Mood = mood
	return e
}

// WithMedia returns a copy of e with its media replaced.
func (e DiaryEntry) WithMedia(images [][]byte, videoRefs []string) DiaryEntry {
	e.Images = images
	e.VideoRefs = videoRefs
	return e
}
