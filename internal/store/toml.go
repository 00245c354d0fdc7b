package store

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// TOML is a Store backed by a TOML document with one table per section.
// Keys are written in sorted order.
type TOML struct {
	*Memory
}

// NewTOML returns an empty TOML document.
func NewTOML() *TOML {
	return &TOML{Memory: NewMemory()}
}

// DecodeTOML parses data. Typed TOML scalars are kept as their text form.
func DecodeTOML(data []byte) (*TOML, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing TOML")
	}

	doc := NewTOML()
	for _, section := range sortedKeys(raw) {
		table, ok := raw[section].(map[string]any)
		if !ok {
			return nil, errors.Newf("parsing TOML: top-level key %q is not a table", section)
		}
		_ = doc.AddSection(section)
		for _, key := range sortedKeys(table) {
			text, err := scalarText(table[key])
			if err != nil {
				return nil, errors.Wrapf(err, "parsing TOML: %s.%s", section, key)
			}
			doc.put(section, key, text)
		}
	}
	return doc, nil
}

// Encode implements Document. Every value is written as a string.
func (d *TOML) Encode() ([]byte, error) {
	tree := make(map[string]map[string]string, len(d.sections))
	for _, sec := range d.sections {
		table := make(map[string]string, len(sec.keys))
		for _, k := range sec.keys {
			table[k] = sec.values[k]
		}
		tree[sec.name] = table
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tree); err != nil {
		return nil, errors.Wrap(err, "writing TOML")
	}
	return buf.Bytes(), nil
}

func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case time.Time, toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(x), nil
	default:
		return "", errors.Newf("unsupported value of type %T", v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
