// Package fileutil writes files so that readers only ever observe the old
// or the new content.
package fileutil

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

// DefaultDirPerm is used for destination directories created on demand.
const DefaultDirPerm = 0o755

// AtomicWriteFile replaces path with data by writing a sibling temp file and
// renaming it over the target. The parent directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blue-gardener-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	renamed := false
	defer func() {
		if !renamed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true
	return nil
}

// WriteFileIfChanged atomically writes data to path unless the file already
// holds exactly data, creating parent directories as needed. It reports
// whether anything was written.
func WriteFileIfChanged(path string, data []byte, perm os.FileMode) (bool, error) {
	existing, err := ReadFileWithLimit(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrFileTooLarge):
		return false, errors.Wrap(err, "reading existing file")
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
		return false, errors.Wrap(err, "creating parent directory")
	}
	if err := AtomicWriteFile(path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}

// MarshalJSON encodes v with two-space indentation and a trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encoding JSON")
	}
	return buf.Bytes(), nil
}
