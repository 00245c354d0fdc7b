package session

import (
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/option"
)

// Cell is one editable value inside a Session.
type Cell struct {
	category string
	name     string
	tag      option.TypeTag
	declared string
	help     string
	value    option.Value
	owner    *Session
}

// newCell builds the cell for spec, dispatching on its type tag.
func newCell(owner *Session, category string, spec *option.OptionSpec) (*Cell, error) {
	c := &Cell{
		category: category,
		name:     spec.Name,
		tag:      spec.Type,
		declared: spec.DeclaredType(),
		help:     spec.Help,
		owner:    owner,
	}
	switch spec.Type {
	case option.TypeInt:
		n, _ := spec.Value().Int()
		c.value = option.IntValue(n)
	case option.TypeFloat:
		f, _ := spec.Value().Float()
		c.value = option.FloatValue(f)
	case option.TypeBool:
		b, _ := spec.Value().Bool()
		c.value = option.BoolValue(b)
	default:
		return nil, &option.RegistrationError{
			Category: category,
			Option:   spec.Name,
			Err:      errors.Wrapf(errors.ErrUnknownType, "tag %d", int(spec.Type)),
		}
	}
	return c, nil
}

// Category returns the category of the cell's option.
func (c *Cell) Category() string { return c.category }

// Name returns the option name.
func (c *Cell) Name() string { return c.name }

// Ref returns "category.option".
func (c *Cell) Ref() string { return c.category + "." + c.name }

// Type returns the option's type tag.
func (c *Cell) Type() option.TypeTag { return c.tag }

// DeclaredType returns the type as written in the schema.
func (c *Cell) DeclaredType() string { return c.declared }

// Get returns the cell's current value.
func (c *Cell) Get() option.Value { return c.value }

// Text returns the cell's value in persisted text form.
func (c *Cell) Text() string { return option.Format(c.value) }

// Set replaces the cell's value. The kind is not checked here; Commit
// rejects the whole edit if it does not match the option type.
func (c *Cell) Set(v option.Value) error {
	if c.owner.state != StateEditing {
		return errors.Wrapf(errors.ErrSessionClosed, "set %s", c.Ref())
	}
	c.value = v
	return nil
}

// SetText coerces text by the cell's type and stores the result. On a
// coercion error the cell keeps its previous value.
func (c *Cell) SetText(text string) error {
	v, err := option.Coerce(c.tag, text)
	if err != nil {
		return errors.Wrapf(err, "set %s", c.Ref())
	}
	return c.Set(v)
}
