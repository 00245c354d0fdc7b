package store

import (
	"bytes"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// iniOptions keeps '#' and ';' after a value as part of the value.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// INI is a Store backed by an INI document. Section names are
// case-sensitive. Option names match case-insensitively, like the classic
// INI reader, but keep the spelling they were first written with.
type INI struct {
	f *ini.File
}

// NewINI returns an empty INI document.
func NewINI() *INI {
	return &INI{f: ini.Empty(iniOptions)}
}

// DecodeINI parses an INI document.
func DecodeINI(data []byte) (*INI, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing INI")
	}
	return &INI{f: f}, nil
}

// keyName returns how sec spells key, or "" when sec does not define it.
// Keys inherited from a dotted parent section do not count.
func keyName(sec *ini.Section, key string) string {
	for _, name := range sec.KeyStrings() {
		if strings.EqualFold(name, key) {
			return name
		}
	}
	return ""
}

// Get implements Store.
func (s *INI) Get(section, key string) (string, error) {
	sec, err := s.f.GetSection(section)
	if err != nil {
		return "", errors.Wrapf(ErrNoSection, "%q", section)
	}
	name := keyName(sec, key)
	if name == "" {
		return "", errors.Wrapf(ErrNoOption, "%q in section %q", key, section)
	}
	return sec.Key(name).String(), nil
}

// Set implements Store.
func (s *INI) Set(section, key, value string) error {
	sec, err := s.f.GetSection(section)
	if err != nil {
		return errors.Wrapf(ErrNoSection, "%q", section)
	}
	if name := keyName(sec, key); name != "" {
		sec.Key(name).SetValue(value)
		return nil
	}
	if _, err := sec.NewKey(key, value); err != nil {
		return errors.Wrapf(err, "adding %q to section %q", key, section)
	}
	return nil
}

// HasSection implements Store.
func (s *INI) HasSection(section string) bool {
	return s.f.HasSection(section)
}

// HasOption implements Store.
func (s *INI) HasOption(section, key string) bool {
	sec, err := s.f.GetSection(section)
	if err != nil {
		return false
	}
	return keyName(sec, key) != ""
}

// AddSection implements Store.
func (s *INI) AddSection(section string) error {
	if _, err := s.f.NewSection(section); err != nil {
		return errors.Wrapf(err, "adding section %q", section)
	}
	return nil
}

// Sections implements Store. The implicit DEFAULT section is listed only
// when it holds keys.
func (s *INI) Sections() []string {
	var names []string
	for _, name := range s.f.SectionStrings() {
		if name == ini.DefaultSection && len(s.f.Section(name).Keys()) == 0 {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Keys implements Store.
func (s *INI) Keys(section string) []string {
	sec, err := s.f.GetSection(section)
	if err != nil {
		return nil
	}
	return sec.KeyStrings()
}

// Encode implements Document.
func (s *INI) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.f.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "writing INI")
	}
	return buf.Bytes(), nil
}
