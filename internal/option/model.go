package option

import (
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// OptionSpec is a single named, typed configuration parameter.
type OptionSpec struct {
	// Name is the option key inside its category.
	Name string
	// Type decides coercion, formatting and the editing cell kind.
	Type TypeTag
	// TypeName is the tag as declared in the schema, e.g. "double".
	// Empty means Type.String().
	TypeName string
	// Default is the value used whenever the store cannot supply one.
	Default Value
	// Help is optional descriptive text.
	Help string

	value Value
}

// Value returns the option's current value.
func (o *OptionSpec) Value() Value { return o.value }

// DeclaredType returns the tag as written in the schema.
func (o *OptionSpec) DeclaredType() string {
	if o.TypeName != "" {
		return o.TypeName
	}
	return o.Type.String()
}

// Assign replaces the current value. The value's kind must match Type.
func (o *OptionSpec) Assign(v Value) error {
	if v.Kind() != o.Type {
		return errors.Wrapf(errors.ErrCommitConsistency, "%s holds %s, want %s",
			o.Name, v.Kind(), o.Type)
	}
	o.value = v
	return nil
}

// Reset sets the current value back to the default.
func (o *OptionSpec) Reset() { o.value = o.Default }

// Category is a named, ordered group of options.
type Category struct {
	Name    string
	options []*OptionSpec
	index   map[string]*OptionSpec
}

// Options returns the category's options in registration order.
func (c *Category) Options() []*OptionSpec {
	out := make([]*OptionSpec, len(c.options))
	copy(out, c.options)
	return out
}

// Option returns the named option, or nil.
func (c *Category) Option(name string) *OptionSpec {
	return c.index[name]
}

// Model is the ordered category -> option registry.
type Model struct {
	categories []*Category
	index      map[string]*Category
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{index: make(map[string]*Category)}
}

// Register adds spec under category. The option starts at its default.
// Category names may contain dots; option names may not, so every
// "category.option" reference splits unambiguously at its last dot.
func (m *Model) Register(category string, spec OptionSpec) error {
	fail := func(err error) error {
		return &RegistrationError{Category: category, Option: spec.Name, Err: err}
	}

	switch {
	case strings.TrimSpace(category) == "":
		return fail(errors.Wrap(ErrEmptyName, "category"))
	case strings.TrimSpace(spec.Name) == "":
		return fail(errors.Wrap(ErrEmptyName, "option"))
	case strings.Contains(spec.Name, "."):
		return fail(ErrDottedName)
	case !spec.Type.Valid():
		return fail(errors.Wrapf(errors.ErrUnknownType, "%q", spec.DeclaredType()))
	case spec.Default.Kind() != spec.Type:
		return fail(errors.Wrapf(ErrDefaultMismatch, "default is %s, type is %s",
			spec.Default.Kind(), spec.Type))
	}

	cat := m.index[category]
	if cat == nil {
		cat = &Category{Name: category, index: make(map[string]*OptionSpec)}
		m.categories = append(m.categories, cat)
		m.index[category] = cat
	}
	if _, exists := cat.index[spec.Name]; exists {
		return fail(ErrDuplicate)
	}

	s := spec
	s.value = spec.Default
	cat.options = append(cat.options, &s)
	cat.index[spec.Name] = &s
	return nil
}

// MustRegister registers spec and panics on error.
// Useful for built-in declarations in tests.
func (m *Model) MustRegister(category string, spec OptionSpec) {
	if err := m.Register(category, spec); err != nil {
		panic(err)
	}
}

// Categories returns the categories in registration order.
func (m *Model) Categories() []*Category {
	out := make([]*Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// Category returns the named category, or nil.
func (m *Model) Category(name string) *Category {
	return m.index[name]
}

// Lookup returns the option registered under category and name.
func (m *Model) Lookup(category, name string) (*OptionSpec, bool) {
	cat := m.index[category]
	if cat == nil {
		return nil, false
	}
	spec, ok := cat.index[name]
	return spec, ok
}

// Resolve looks up a "category.option" reference. The option name is the
// part after the last dot, so category names may themselves contain dots.
func (m *Model) Resolve(ref string) (string, *OptionSpec, error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return "", nil, errors.Wrapf(errors.ErrUnknownOption, "%q: want category.option", ref)
	}
	category, name := ref[:i], ref[i+1:]
	spec, ok := m.Lookup(category, name)
	if !ok {
		return "", nil, errors.Wrapf(errors.ErrUnknownOption, "%q", ref)
	}
	return category, spec, nil
}

// Len returns the number of registered options.
func (m *Model) Len() int {
	n := 0
	for _, c := range m.categories {
		n += len(c.options)
	}
	return n
}

// Walk calls fn for every option in registration order and stops at the
// first error.
func (m *Model) Walk(fn func(category string, spec *OptionSpec) error) error {
	for _, c := range m.categories {
		for _, o := range c.options {
			if err := fn(c.Name, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// Refs returns every option as a "category.option" reference in order.
func (m *Model) Refs() []string {
	refs := make([]string, 0, m.Len())
	_ = m.Walk(func(category string, spec *OptionSpec) error {
		refs = append(refs, category+"."+spec.Name)
		return nil
	})
	return refs
}

// Snapshot returns the current values keyed by category then option name.
func (m *Model) Snapshot() map[string]map[string]Value {
	out := make(map[string]map[string]Value, len(m.categories))
	for _, c := range m.categories {
		vals := make(map[string]Value, len(c.options))
		for _, o := range c.options {
			vals[o.Name] = o.value
		}
		out[c.Name] = vals
	}
	return out
}
