package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BaseDir returns the default root data directory (~/.mj).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".mj"), nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return ioErr("mkdir", filepath.Dir(path), err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return ioErr("write", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return ioErr("rename", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ioErr("encode", path, err)
	}
	return writeFileAtomic(path, data)
}

// readJSON decodes path into v. It reports found=false when the file does not
// exist. A file that fails to decode is moved aside to <path>.corrupt.
func readJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, ioErr("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return false, ioErr("decode", path, fmt.Errorf("corrupt JSON (backed up to %s): %w", backupPath, err))
	}
	return true, nil
}
