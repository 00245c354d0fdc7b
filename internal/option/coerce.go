package option

import (
	"math"
	"strconv"
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// ErrCoerce indicates stored text could not be converted to the declared type.
var ErrCoerce = errors.New("cannot coerce value")

// boolWords is the boolean grammar accepted when reading stored text.
var boolWords = map[string]bool{
	"true":  true,
	"false": false,
	"1":     true,
	"0":     false,
	"yes":   true,
	"no":    false,
	"on":    true,
	"off":   false,
}

// Coerce converts stored text into a Value of kind tag.
// Surrounding whitespace is ignored. Floats are parsed independently of
// the process locale.
func Coerce(tag TypeTag, text string) (Value, error) {
	s := strings.TrimSpace(text)
	switch tag {
	case TypeInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return Value{}, errors.Wrapf(ErrCoerce, "%q as int", text)
		}
		return IntValue(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, errors.Wrapf(ErrCoerce, "%q as float", text)
		}
		return FloatValue(f), nil
	case TypeBool:
		b, ok := boolWords[strings.ToLower(s)]
		if !ok {
			return Value{}, errors.Wrapf(ErrCoerce, "%q as bool", text)
		}
		return BoolValue(b), nil
	default:
		return Value{}, errors.Wrapf(errors.ErrUnknownType, "tag %d", int(tag))
	}
}

// Format returns the canonical text written to the persisted store.
//
// Booleans are written as True/False. Integers use base 10. Floats use the
// shortest digits that round-trip, with a trailing ".0" on integral values
// so the text still reads back as a float.
func Format(v Value) string {
	switch v.kind {
	case TypeInt:
		return strconv.Itoa(v.i)
	case TypeFloat:
		return formatFloat(v.f)
	case TypeBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// formatFloat writes positional notation for magnitudes in [1e-4, 1e16)
// and exponent notation outside it, so 1e6 reads "1000000.0" while 1e-9
// stays "1e-09".
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	var s string
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
