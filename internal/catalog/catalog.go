// Package catalog keeps the in-memory, newest-first view of the diary and is
// the only writer of diary storage.
package catalog

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/storage"
	"github.com/Tiliavir/mood-journal/internal/timecalc"
)

type diaryStore interface {
	Save(entry model.DiaryEntry) error
	Delete(id string) error
	ListAll() ([]model.DiaryEntry, error)
	SaveDraft(entry *model.DiaryEntry) error
	LoadDraft() (*model.DiaryEntry, error)
}

// Catalog caches every diary entry. Each mutation reloads the full list from
// storage.
type Catalog struct {
	log   *slog.Logger
	store diaryStore
	now   func() time.Time
	newID func() string

	entries []model.DiaryEntry
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the clock used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// WithIDGenerator overrides how new entry IDs are allocated.
func WithIDGenerator(newID func() string) Option {
	return func(c *Catalog) { c.newID = newID }
}

// New creates a Catalog and loads all stored entries.
func New(log *slog.Logger, store diaryStore, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		log:   log,
		store: store,
		now:   time.Now,
		newID: timecalc.GenerateID,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Create stores a new entry stamped with a fresh ID and the current time.
func (c *Catalog) Create(content string, mood float64, images [][]byte, videoRefs []string) (model.DiaryEntry, error) {
	entry := model.DiaryEntry{
		ID:        c.newID(),
		Date:      c.now(),
		Mood:      mood,
		Content:   content,
		Images:    images,
		VideoRefs: videoRefs,
	}
	if err := c.save(entry); err != nil {
		return model.DiaryEntry{}, err
	}
	c.log.Info("diary entry created", slog.String("id", entry.ID), slog.Float64("mood", entry.Mood))
	return entry, nil
}

// Update replaces the stored entry with the same ID. The original creation
// date is kept regardless of entry.Date.
func (c *Catalog) Update(entry model.DiaryEntry) (model.DiaryEntry, error) {
	existing, err := c.Get(entry.ID)
	if err != nil {
		return model.DiaryEntry{}, err
	}
	entry.Date = existing.Date
	if err := c.save(entry); err != nil {
		return model.DiaryEntry{}, err
	}
	c.log.Info("diary entry updated", slog.String("id", entry.ID))
	return entry, nil
}

func (c *Catalog) save(entry model.DiaryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := c.store.Save(entry); err != nil {
		c.log.Error("save diary entry", slog.String("id", entry.ID), slog.String("error", err.Error()))
		return fmt.Errorf("save diary entry: %w", err)
	}
	// A committed entry supersedes whatever draft was in progress.
	if err := c.store.SaveDraft(nil); err != nil {
		c.log.Warn("clear draft", slog.String("error", err.Error()))
	}
	return c.reload()
}

// Delete removes the entry with the given ID. Unknown IDs are ignored.
func (c *Catalog) Delete(id string) error {
	if err := c.store.Delete(id); err != nil {
		c.log.Error("delete diary entry", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("delete diary entry: %w", err)
	}
	c.log.Info("diary entry deleted", slog.String("id", id))
	return c.reload()
}

// List returns every entry, newest first. Entries sharing a date are ordered
// by ID.
func (c *Catalog) List() []model.DiaryEntry {
	out := make([]model.DiaryEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the cached entry with the given ID.
func (c *Catalog) Get(id string) (model.DiaryEntry, error) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.DiaryEntry{}, fmt.Errorf("diary entry %s: %w", id, storage.ErrNotFound)
}

// Draft returns the in-progress draft, or nil.
func (c *Catalog) Draft() (*model.DiaryEntry, error) {
	draft, err := c.store.LoadDraft()
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return draft, nil
}

// SetDraft stores draft as the in-progress entry; nil clears it. The catalog
// itself is not affected.
func (c *Catalog) SetDraft(draft *model.DiaryEntry) error {
	if err := c.store.SaveDraft(draft); err != nil {
		c.log.Error("save draft", slog.String("error", err.Error()))
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// reload replaces the cache from storage. On failure the previous cache is kept.
func (c *Catalog) reload() error {
	entries, err := c.store.ListAll()
	if err != nil {
		c.log.Error("load diary entries", slog.String("error", err.Error()))
		return fmt.Errorf("load diary entries: %w", err)
	}
	sortNewestFirst(entries)
	c.entries = entries
	return nil
}

func sortNewestFirst(entries []model.DiaryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
}
