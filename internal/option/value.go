package option

import "fmt"

// Value is a sealed variant holding an int, a float or a bool.
// The zero Value holds nothing and reports an invalid Kind.
type Value struct {
	kind TypeTag
	i    int
	f    float64
	b    bool
}

// IntValue returns a Value of kind TypeInt.
func IntValue(v int) Value { return Value{kind: TypeInt, i: v} }

// FloatValue returns a Value of kind TypeFloat.
func FloatValue(v float64) Value { return Value{kind: TypeFloat, f: v} }

// BoolValue returns a Value of kind TypeBool.
func BoolValue(v bool) Value { return Value{kind: TypeBool, b: v} }

// Kind returns the runtime kind of the value.
func (v Value) Kind() TypeTag { return v.kind }

// IsZero reports whether v holds no value at all.
func (v Value) IsZero() bool { return v.kind == 0 }

// Int returns the integer held by v and whether v is of kind TypeInt.
func (v Value) Int() (int, bool) { return v.i, v.kind == TypeInt }

// Float returns the float held by v and whether v is of kind TypeFloat.
func (v Value) Float() (float64, bool) { return v.f, v.kind == TypeFloat }

// Bool returns the boolean held by v and whether v is of kind TypeBool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == TypeBool }

// Any returns the held value as an int, float64 or bool, or nil for the zero Value.
func (v Value) Any() any {
	switch v.kind {
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeBool:
		return v.b
	default:
		return nil
	}
}

// String returns the persisted text form of v. See Format.
func (v Value) String() string { return Format(v) }

// GoString makes %#v output readable in test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("option.Value{%s: %v}", v.kind, v.Any())
}
