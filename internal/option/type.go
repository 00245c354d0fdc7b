package option

import (
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// TypeTag identifies the runtime kind of an option's value.
type TypeTag int

// Supported type tags. The zero value is not a valid tag.
const (
	TypeInt TypeTag = iota + 1
	TypeFloat
	TypeBool
)

// typeNames maps the textual tags accepted in schemas to their TypeTag.
// "double" is an alias of "float" and coerces identically.
var typeNames = map[string]TypeTag{
	"int":    TypeInt,
	"float":  TypeFloat,
	"double": TypeFloat,
	"bool":   TypeBool,
}

// ParseTypeTag converts a textual tag such as "int" or "double".
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseTypeTag(s string) (TypeTag, error) {
	tag, ok := typeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, errors.Wrapf(errors.ErrUnknownType, "%q", s)
	}
	return tag, nil
}

// Valid reports whether t is one of the supported tags.
func (t TypeTag) Valid() bool {
	switch t {
	case TypeInt, TypeFloat, TypeBool:
		return true
	default:
		return false
	}
}

// String returns the canonical textual tag.
func (t TypeTag) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// TypeNames returns the textual tags accepted by ParseTypeTag.
func TypeNames() []string {
	return []string{"int", "float", "double", "bool"}
}
