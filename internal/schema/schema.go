package schema

import (
	_ "embed"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/pkg/fileutil"
)

//go:embed solver.yaml
var defaultSchema []byte

// Format is a schema file encoding.
type Format string

// Schema encodings.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat indicates a schema file whose extension is neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown schema format")

// File is the decoded form of a schema document.
type File struct {
	Categories []CategoryDecl `yaml:"categories" toml:"categories" json:"categories"`
}

// CategoryDecl declares one category and its options in display order.
type CategoryDecl struct {
	Name    string       `yaml:"name" toml:"name" json:"name"`
	Options []OptionDecl `yaml:"options" toml:"options" json:"options"`
}

// OptionDecl declares one option. Default holds a scalar or its text.
type OptionDecl struct {
	Name    string `yaml:"name" toml:"name" json:"name"`
	Type    string `yaml:"type" toml:"type" json:"type"`
	Default any    `yaml:"default" toml:"default" json:"default"`
	Help    string `yaml:"help,omitempty" toml:"help,omitempty" json:"help,omitempty"`
}

// Default builds the model of the built-in solver schema.
func Default() (*option.Model, error) {
	m, err := Parse(defaultSchema, FormatYAML)
	if err != nil {
		return nil, errors.Wrap(err, "built-in schema")
	}
	return m, nil
}

// Load reads a schema file and builds its model. The format follows the
// file extension (.yaml, .yml or .toml).
func Load(path string) (*option.Model, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "extension of %q", path)
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "schema %s", path), errors.ErrNotFound)
		}
		return nil, errors.Wrapf(err, "reading schema %s", path)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s", path)
	}
	return m, nil
}

// Parse decodes a schema document and builds its model.
func Parse(data []byte, format Format) (*option.Model, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "decoding yaml schema")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "decoding toml schema")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return Build(&f)
}

// Build registers every declared option, in order, into a new model.
func Build(f *File) (*option.Model, error) {
	m := option.NewModel()
	for _, cat := range f.Categories {
		for _, decl := range cat.Options {
			spec, err := decl.spec()
			if err != nil {
				return nil, &option.RegistrationError{Category: cat.Name, Option: decl.Name, Err: err}
			}
			if err := m.Register(cat.Name, spec); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (d OptionDecl) spec() (option.OptionSpec, error) {
	tag, err := option.ParseTypeTag(d.Type)
	if err != nil {
		return option.OptionSpec{}, err
	}
	text, err := defaultText(d.Default)
	if err != nil {
		return option.OptionSpec{}, err
	}
	def, err := option.Coerce(tag, text)
	if err != nil {
		return option.OptionSpec{}, errors.Wrap(err, "default")
	}
	return option.OptionSpec{
		Name:     d.Name,
		Type:     tag,
		TypeName: strings.ToLower(strings.TrimSpace(d.Type)),
		Default:  def,
		Help:     d.Help,
	}, nil
}

// defaultText renders a decoded default scalar as the text Coerce reads.
func defaultText(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", errors.New("default is required")
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", errors.Newf("default must be a scalar, got %T", v)
	}
}

// FromModel describes m as a schema document. Defaults are written in
// their persisted text form.
func FromModel(m *option.Model) *File {
	f := &File{}
	for _, cat := range m.Categories() {
		decl := CategoryDecl{Name: cat.Name}
		for _, spec := range cat.Options() {
			decl.Options = append(decl.Options, OptionDecl{
				Name:    spec.Name,
				Type:    spec.DeclaredType(),
				Default: option.Format(spec.Default),
				Help:    spec.Help,
			})
		}
		f.Categories = append(f.Categories, decl)
	}
	return f
}

// Encode writes f in the given format.
func Encode(f *File, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatTOML:
		return toml.Marshal(f)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}
