// Package option holds the typed configuration model edited by solvercfg.
//
// A [Model] is an ordered mapping of category to ordered options. Every
// [OptionSpec] carries a [TypeTag] from the closed set {int, float, bool},
// a current [Value] and the default it was registered with. The tag decides
// how stored text is coerced ([Coerce]), how values are written back
// ([Format]) and which kind of editing cell a session creates.
//
// The model is owned by the caller and passed by pointer. Its values change
// only through [OptionSpec.Assign], which the hydrate and session packages
// call; nothing in this package keeps global state.
//
//	m := option.NewModel()
//	err := m.Register("Numeric", option.OptionSpec{
//	    Name:    "count",
//	    Type:    option.TypeInt,
//	    Default: option.IntValue(0),
//	    Help:    "number of iterations",
//	})
package option
