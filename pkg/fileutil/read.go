package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

// MaxFileSize caps how much of a manifest or instructions file is read.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned when a file is bigger than MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds %d bytes", MaxFileSize)

// ReadFileWithLimit reads path whole, refusing files over MaxFileSize.
// A missing file yields an error matching fs.ErrNotExist.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrap(ErrFileTooLarge, path)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	switch {
	case err != nil:
		return nil, errors.Wrapf(err, "reading %s", path)
	case len(data) > MaxFileSize:
		// grew between Stat and Read
		return nil, errors.Wrap(ErrFileTooLarge, path)
	}
	return data, nil
}
