package store

import (
	"github.com/thoreinstein/solvercfg/internal/errors"
)

// Lookup failures returned by Store.Get and Store.Set.
var (
	ErrNoSection = errors.New("no such section")
	ErrNoOption  = errors.New("no such option")
)

// Store is a section/key/string-value text store.
type Store interface {
	// Get returns the text stored under section and key.
	// It returns ErrNoSection or ErrNoOption when either is absent.
	Get(section, key string) (string, error)

	// Set stores text under section and key. The section must exist.
	Set(section, key, value string) error

	// HasSection reports whether section exists.
	HasSection(section string) bool

	// HasOption reports whether key exists inside section.
	HasOption(section, key string) bool

	// AddSection creates an empty section. Adding an existing section is a no-op.
	AddSection(section string) error

	// Sections returns the section names in store order.
	Sections() []string

	// Keys returns the keys of section in store order.
	Keys(section string) []string
}

// Document is a Store that can serialize itself.
type Document interface {
	Store
	Encode() ([]byte, error)
}
