package store

import (
	"slices"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

type memSection struct {
	name   string
	keys   []string
	values map[string]string
}

// Memory is an ordered in-process Store.
// The zero value is ready to use.
type Memory struct {
	sections []*memSection
	index    map[string]*memSection
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) section(name string) *memSection {
	if m.index == nil {
		return nil
	}
	return m.index[name]
}

// Get implements Store.
func (m *Memory) Get(section, key string) (string, error) {
	sec := m.section(section)
	if sec == nil {
		return "", errors.Wrapf(ErrNoSection, "%q", section)
	}
	v, ok := sec.values[key]
	if !ok {
		return "", errors.Wrapf(ErrNoOption, "%q in section %q", key, section)
	}
	return v, nil
}

// Set implements Store.
func (m *Memory) Set(section, key, value string) error {
	sec := m.section(section)
	if sec == nil {
		return errors.Wrapf(ErrNoSection, "%q", section)
	}
	if _, ok := sec.values[key]; !ok {
		sec.keys = append(sec.keys, key)
	}
	sec.values[key] = value
	return nil
}

// HasSection implements Store.
func (m *Memory) HasSection(section string) bool {
	return m.section(section) != nil
}

// HasOption implements Store.
func (m *Memory) HasOption(section, key string) bool {
	sec := m.section(section)
	if sec == nil {
		return false
	}
	_, ok := sec.values[key]
	return ok
}

// AddSection implements Store.
func (m *Memory) AddSection(section string) error {
	if section == "" {
		return errors.New("section name is required")
	}
	if m.index == nil {
		m.index = make(map[string]*memSection)
	}
	if _, ok := m.index[section]; ok {
		return nil
	}
	sec := &memSection{name: section, values: make(map[string]string)}
	m.sections = append(m.sections, sec)
	m.index[section] = sec
	return nil
}

// Sections implements Store.
func (m *Memory) Sections() []string {
	names := make([]string, len(m.sections))
	for i, s := range m.sections {
		names[i] = s.name
	}
	return names
}

// Keys implements Store.
func (m *Memory) Keys(section string) []string {
	sec := m.section(section)
	if sec == nil {
		return nil
	}
	return slices.Clone(sec.keys)
}

// put adds section and key in one step, used by decoders.
func (m *Memory) put(section, key, value string) {
	_ = m.AddSection(section)
	_ = m.Set(section, key, value)
}
