package storage_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/storage"
)

func sampleEntry(id string) model.DiaryEntry {
	return model.DiaryEntry{
		ID:        id,
		Date:      time.Date(2026, 2, 27, 8, 30, 0, 0, time.UTC),
		Mood:      7.5,
		Content:   "Morning run, felt clear.",
		Images:    [][]byte{{0xff, 0xd8, 0x01}, {0xff, 0xd8, 0x02, 0x03}},
		VideoRefs: []string{"file:///videos/run.mov"},
	}
}

func assertSameEntry(t *testing.T, got, want model.DiaryEntry) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if !got.Date.Equal(want.Date) {
		t.Errorf("Date = %v, want %v", got.Date, want.Date)
	}
	if got.Mood != want.Mood {
		t.Errorf("Mood = %v, want %v", got.Mood, want.Mood)
	}
	if got.Content != want.Content {
		t.Errorf("Content = %q, want %q", got.Content, want.Content)
	}
	if len(got.Images) != len(want.Images) {
		t.Fatalf("Images = %d, want %d", len(got.Images), len(want.Images))
	}
	for i := range want.Images {
		if !bytes.Equal(got.Images[i], want.Images[i]) {
			t.Errorf("Images[%d] = %v, want %v", i, got.Images[i], want.Images[i])
		}
	}
	if len(got.VideoRefs) != len(want.VideoRefs) {
		t.Fatalf("VideoRefs = %v, want %v", got.VideoRefs, want.VideoRefs)
	}
	for i := range want.VideoRefs {
		if got.VideoRefs[i] != want.VideoRefs[i] {
			t.Errorf("VideoRefs[%d] = %q, want %q", i, got.VideoRefs[i], want.VideoRefs[i])
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := storage.NewDiaryStore(t.TempDir())
	entry := sampleEntry("e1")

	if err := s.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("e1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameEntry(t, got, entry)
}

func TestLoadMissing(t *testing.T) {
	s := storage.NewDiaryStore(t.TempDir())
	_, err := s.Load("nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Load missing: err = %v, want ErrNotFound", err)
	}
}

func TestSaveReplacesByID(t *testing.T) {
	base := t.TempDir()
	s := storage.NewDiaryStore(base)

	first := sampleEntry("e1")
	if err := s.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := s.Save(sampleEntry("e2")); err != nil {
		t.Fatalf("Save e2: %v", err)
	}

	second := first.WithContent("Edited").WithMedia([][]byte{{0x09}}, nil)
	if err := s.Save(second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListAll = %d entries, want 2", len(all))
	}
	// Index order is preserved: the replaced entry keeps its slot.
	if all[0].ID != "e1" || all[1].ID != "e2" {
		t.Errorf("ListAll order = [%s %s], want [e1 e2]", all[0].ID, all[1].ID)
	}
	assertSameEntry(t, all[0], second)

	stale := filepath.Join(base, "diaries", "e1", "image_1.jpg")
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale image %s still exists (err=%v)", stale, err)
	}
}

func TestDelete(t *testing.T) {
	base := t.TempDir()
	s := storage.NewDiaryStore(base)
	for _, id := range []string{"e1", "e2"} {
		if err := s.Save(sampleEntry(id)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	if err := s.Delete("e1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load after delete: err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(filepath.Join(base, "diaries", "e1")); !os.IsNotExist(err) {
		t.Errorf("bucket still exists after delete (err=%v)", err)
	}

	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].ID != "e2" {
		t.Errorf("ListAll after delete = %v, want only e2", all)
	}

	// Deleting again is a no-op.
	if err := s.Delete("e1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestRejectsPathLikeIDs(t *testing.T) {
	s := storage.NewDiaryStore(t.TempDir())
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if err := s.Save(sampleEntry(id)); !errors.Is(err, model.ErrValidation) {
			t.Errorf("Save(%q): err = %v, want ErrValidation", id, err)
		}
	}
}

func TestLoadLegacyBucketWithoutManifest(t *testing.T) {
	base := t.TempDir()
	s := storage.NewDiaryStore(base)
	entry := sampleEntry("legacy")
	if err := s.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.Remove(filepath.Join(base, "diaries", "legacy", "manifest.json")); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load("legacy")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameEntry(t, got, entry)
}

func TestCorruptIndexIsBackedUp(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "diary_index.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := storage.NewDiaryStore(base)
	_, err := s.ListAll()
	if !errors.Is(err, storage.ErrIO) {
		t.Fatalf("ListAll on corrupt index: err = %v, want ErrIO", err)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
}

func TestDraft(t *testing.T) {
	s := storage.NewDiaryStore(t.TempDir())

	draft, err := s.LoadDraft()
	if err != nil || draft != nil {
		t.Fatalf("LoadDraft on empty store = %v, %v; want nil, nil", draft, err)
	}

	entry := sampleEntry("")
	if err := s.SaveDraft(&entry); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	draft, err = s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if draft == nil {
		t.Fatal("LoadDraft = nil, want draft")
	}
	assertSameEntry(t, *draft, entry)

	// The draft is not part of the index.
	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ListAll = %d entries, want 0", len(all))
	}

	if err := s.SaveDraft(nil); err != nil {
		t.Fatalf("SaveDraft(nil): %v", err)
	}
	if draft, _ := s.LoadDraft(); draft != nil {
		t.Errorf("LoadDraft after clear = %v, want nil", draft)
	}
	if err := s.SaveDraft(nil); err != nil {
		t.Errorf("clearing an empty draft: %v", err)
	}
}

func TestStatsFile(t *testing.T) {
	ctx := context.Background()
	f := storage.NewStatsFile(t.TempDir())

	days, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("Load empty = %v, want no days", days)
	}

	want := map[string]model.DailyStats{
		"2026-02-27": {FocusSeconds: 135, DrivingDistanceKm: 1.0},
		"2026-02-28": {RestSeconds: 300, MeditationSeconds: 600},
	}
	if err := f.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
	for day, s := range want {
		if got[day] != s {
			t.Errorf("day %s = %+v, want %+v", day, got[day], s)
		}
	}
}
