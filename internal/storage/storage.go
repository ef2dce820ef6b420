package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/mood-journal/internal/model"
)

const (
	indexFile    = "diary_index.json"
	diariesDir   = "diaries"
	contentFile  = "content.txt"
	videosFile   = "videos.json"
	manifestFile = "manifest.json"
	imagePrefix  = "image_"
)

// DiaryStore persists diary entries as one directory per entry plus a shared
// index file:
//
//	<base>/diary_index.json
//	<base>/diaries/<id>/content.txt
//	<base>/diaries/<id>/image_<n>.jpg
//	<base>/diaries/<id>/videos.json
//	<base>/diaries/<id>/manifest.json
//	<base>/current_draft.json
type DiaryStore struct {
	base string
}

// NewDiaryStore returns a store rooted at base. Directories are created lazily.
func NewDiaryStore(base string) *DiaryStore {
	return &DiaryStore{base: base}
}

func (s *DiaryStore) indexPath() string { return filepath.Join(s.base, indexFile) }

func (s *DiaryStore) entryDir(id string) string {
	return filepath.Join(s.base, diariesDir, id)
}

func imageName(i int) string { return fmt.Sprintf("%s%d.jpg", imagePrefix, i) }

// checkID rejects IDs that would escape the diaries directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid entry id %q", model.ErrValidation, id)
	}
	return nil
}

// Save writes entry content and media into the entry's bucket and upserts its
// index record. Media from any earlier version of the entry is removed first.
// Each file is replaced atomically, the save as a whole is not.
func (s *DiaryStore) Save(entry model.DiaryEntry) error {
	if err := checkID(entry.ID); err != nil {
		return err
	}
	dir := s.entryDir(entry.ID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return ioErr("mkdir", dir, err)
	}
	if err := removeMedia(dir); err != nil {
		return err
	}

	if err := writeFileAtomic(filepath.Join(dir, contentFile), []byte(entry.Content)); err != nil {
		return err
	}

	manifest := model.Manifest{
		ID:     entry.ID,
		Date:   entry.Date,
		Mood:   entry.Mood,
		Images: make([]string, 0, len(entry.Images)),
		Videos: nonNilStrings(entry.VideoRefs),
	}
	for i, img := range entry.Images {
		name := imageName(i)
		if err := writeFileAtomic(filepath.Join(dir, name), img); err != nil {
			return err
		}
		manifest.Images = append(manifest.Images, name)
	}

	if err := writeJSON(filepath.Join(dir, videosFile), manifest.Videos); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, manifestFile), manifest); err != nil {
		return err
	}

	return s.updateIndex(entry.Index())
}

// removeMedia deletes every image artifact in dir, including leftovers from
// interrupted writes.
func removeMedia(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return ioErr("readdir", dir, err)
	}
	for _, f := range files {
		if !strings.HasPrefix(f.Name(), imagePrefix) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return ioErr("remove", path, err)
		}
	}
	return nil
}

// Load reconstructs the entry with the given id. It returns ErrNotFound when
// the id has no index record.
func (s *DiaryStore) Load(id string) (model.DiaryEntry, error) {
	idx, err := s.loadIndex()
	if err != nil {
		return model.DiaryEntry{}, err
	}
	pos := findIndex(idx.Entries, id)
	if pos < 0 {
		return model.DiaryEntry{}, fmt.Errorf("diary entry %s: %w", id, ErrNotFound)
	}
	return s.loadBucket(idx.Entries[pos])
}

func (s *DiaryStore) loadBucket(ie model.IndexEntry) (model.DiaryEntry, error) {
	if err := checkID(ie.ID); err != nil {
		return model.DiaryEntry{}, err
	}
	dir := s.entryDir(ie.ID)

	contentPath := filepath.Join(dir, contentFile)
	content, err := os.ReadFile(contentPath)
	if err != nil {
		return model.DiaryEntry{}, ioErr("read", contentPath, err)
	}

	var manifest model.Manifest
	found, err := readJSON(filepath.Join(dir, manifestFile), &manifest)
	if err != nil {
		return model.DiaryEntry{}, err
	}
	if !found {
		// Buckets written before manifests existed.
		if manifest, err = legacyManifest(dir); err != nil {
			return model.DiaryEntry{}, err
		}
	}

	images := make([][]byte, 0, len(manifest.Images))
	for _, name := range manifest.Images {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return model.DiaryEntry{}, ioErr("read", path, err)
		}
		images = append(images, data)
	}

	return model.DiaryEntry{
		ID:        ie.ID,
		Date:      ie.Date,
		Mood:      ie.Mood,
		Content:   string(content),
		Images:    images,
		VideoRefs: nonNilStrings(manifest.Videos),
	}, nil
}

// legacyManifest rebuilds a manifest by probing image_0, image_1, … until one
// is missing, and reading videos.json when present.
func legacyManifest(dir string) (model.Manifest, error) {
	var m model.Manifest
	for i := 0; ; i++ {
		name := imageName(i)
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return m, ioErr("stat", filepath.Join(dir, name), err)
		}
		m.Images = append(m.Images, name)
	}
	if _, err := readJSON(filepath.Join(dir, videosFile), &m.Videos); err != nil {
		return m, err
	}
	return m, nil
}

// Delete removes the entry bucket and its index record. Deleting an unknown
// id is a no-op.
func (s *DiaryStore) Delete(id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	dir := s.entryDir(id)
	if err := os.RemoveAll(dir); err != nil {
		return ioErr("remove", dir, err)
	}

	idx, err := s.loadIndex()
	if err != nil {
		return err
	}
	pos := findIndex(idx.Entries, id)
	if pos < 0 {
		return nil
	}
	idx.Entries = append(idx.Entries[:pos], idx.Entries[pos+1:]...)
	return s.saveIndex(idx)
}

// ListAll loads every indexed entry in index order.
func (s *DiaryStore) ListAll() ([]model.DiaryEntry, error) {
	idx, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	entries := make([]model.DiaryEntry, 0, len(idx.Entries))
	for _, ie := range idx.Entries {
		e, err := s.loadBucket(ie)
		if err != nil {
			return nil, fmt.Errorf("loading diary entry %s: %w", ie.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *DiaryStore) loadIndex() (model.DiaryIndex, error) {
	var idx model.DiaryIndex
	if _, err := readJSON(s.indexPath(), &idx); err != nil {
		return model.DiaryIndex{}, err
	}
	if idx.Entries == nil {
		idx.Entries = []model.IndexEntry{}
	}
	return idx, nil
}

func (s *DiaryStore) saveIndex(idx model.DiaryIndex) error {
	return writeJSON(s.indexPath(), idx)
}

// updateIndex replaces the record with the same id in place or appends it.
func (s *DiaryStore) updateIndex(ie model.IndexEntry) error {
	idx, err := s.loadIndex()
	if err != nil {
		return err
	}
	if pos := findIndex(idx.Entries, ie.ID); pos >= 0 {
		idx.Entries[pos] = ie
	} else {
		idx.Entries = append(idx.Entries, ie)
	}
	return s.saveIndex(idx)
}

func findIndex(entries []model.IndexEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
