package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// MaxFileSize bounds the store, schema and edited files solvercfg reads
// into memory. Parameter files are a few kilobytes.
const MaxFileSize = 1 << 20

// ErrFileTooLarge marks reads refused because the file exceeds the limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadFileWithLimit reads path, refusing files over MaxFileSize. A missing
// file yields an error matching fs.ErrNotExist.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadLimited(path, MaxFileSize)
}

// ReadLimited reads path, refusing files over limit bytes. The size is
// checked before reading and again while reading, since the file may grow.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	tooLarge := func(size int64) error {
		return errors.Mark(errors.Newf("%s: %d bytes exceeds the %d byte limit", path, size, limit), ErrFileTooLarge)
	}

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, tooLarge(info.Size())
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, tooLarge(int64(len(data)))
	}
	return data, nil
}
