package storage

import (
	"os"
	"path/filepath"

	"github.com/Tiliavir/mood-journal/internal/model"
)

const draftFile = "current_draft.json"

func (s *DiaryStore) draftPath() string { return filepath.Join(s.base, draftFile) }

// SaveDraft stores entry as the single in-progress draft. A nil entry clears it.
func (s *DiaryStore) SaveDraft(entry *model.DiaryEntry) error {
	if entry == nil {
		if err := os.Remove(s.draftPath()); err != nil && !os.IsNotExist(err) {
			return ioErr("remove", s.draftPath(), err)
		}
		return nil
	}
	return writeJSON(s.draftPath(), entry)
}

// LoadDraft returns the stored draft, or nil when there is none.
func (s *DiaryStore) LoadDraft() (*model.DiaryEntry, error) {
	var draft model.DiaryEntry
	found, err := readJSON(s.draftPath(), &draft)
	if err != nil || !found {
		return nil, err
	}
	return &draft, nil
}
