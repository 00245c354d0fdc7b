// Package hydrate synchronizes an option.Model with a store.Store.
//
// [Hydrate] fills every registered option from the store, coercing text
// by the option's type and falling back to the default on any failure.
// The fallback is silent by contract: Hydrate never returns an error.
// [Diagnose] reports what Hydrate would have fallen back on, for tools
// that want to surface it. [Persist] writes current values back as text.
package hydrate
