package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/pkg/fileutil"
)

// Format names a file encoding for a Document.
type Format string

// Supported formats. FormatAuto picks one from the file extension.
const (
	FormatAuto Format = "auto"
	FormatINI  Format = "ini"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FilePerm is the permission used when writing store files.
const FilePerm os.FileMode = 0o644

// ErrUnknownFormat indicates a format name or file extension that no backend handles.
var ErrUnknownFormat = errors.New("unknown store format")

// Formats returns the accepted format names.
func Formats() []string {
	return []string{string(FormatAuto), string(FormatINI), string(FormatTOML), string(FormatYAML)}
}

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatINI, FormatTOML, FormatYAML:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// DetectFormat picks a format from the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg", ".conf":
		return FormatINI, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "extension of %q", path)
	}
}

// New returns an empty Document of the given concrete format.
func New(format Format) (Document, error) {
	switch format {
	case FormatINI:
		return NewINI(), nil
	case FormatTOML:
		return NewTOML(), nil
	case FormatYAML:
		return NewYAML(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// Decode parses data in the given concrete format.
func Decode(format Format, data []byte) (Document, error) {
	switch format {
	case FormatINI:
		return DecodeINI(data)
	case FormatTOML:
		return DecodeTOML(data)
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// File is a Document bound to a path on disk.
type File struct {
	Document

	// Path is where the document is read from and saved to.
	Path string

	// Format is the resolved concrete format.
	Format Format

	// Existed reports whether the file was present when opened.
	Existed bool
}

func resolve(path string, format Format) (Format, error) {
	if path == "" {
		return "", errors.New("store path is required")
	}
	if format == "" || format == FormatAuto {
		return DetectFormat(path)
	}
	return ParseFormat(string(format))
}

// Open reads the store at path. A missing file is reported as an error
// matching errors.ErrNotFound.
func Open(path string, format Format) (*File, error) {
	f, err := resolve(path, format)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "store %s", path), errors.ErrNotFound)
		}
		return nil, errors.Wrapf(err, "reading store %s", path)
	}

	doc, err := Decode(f, data)
	if err != nil {
		return nil, errors.Wrapf(err, "store %s", path)
	}
	return &File{Document: doc, Path: path, Format: f, Existed: true}, nil
}

// OpenOrCreate reads the store at path, or returns an empty document for
// it when the file does not exist yet. Nothing is written until Save.
func OpenOrCreate(path string, format Format) (*File, error) {
	file, err := Open(path, format)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	f, err := resolve(path, format)
	if err != nil {
		return nil, err
	}
	doc, err := New(f)
	if err != nil {
		return nil, err
	}
	return &File{Document: doc, Path: path, Format: f}, nil
}

// Save writes the document back to Path, creating parent directories.
// It reports whether the file content changed.
func (f *File) Save() (bool, error) {
	data, err := f.Encode()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return false, errors.Wrap(err, "creating store directory")
	}
	changed, err := fileutil.WriteIfChanged(f.Path, data, FilePerm)
	if err != nil {
		return false, errors.Wrapf(err, "saving store %s", f.Path)
	}
	if changed {
		f.Existed = true
	}
	return changed, nil
}
