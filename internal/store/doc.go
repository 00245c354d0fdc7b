// Package store implements the persisted section/key/value text stores
// that solvercfg hydrates from and persists to.
//
// Every backend satisfies [Store]: sections map to option categories, keys
// to option names, and every value is text regardless of the option's type.
// [Memory] keeps everything in process. [Open] and [OpenOrCreate] load a
// file in INI, TOML or YAML form and return a [File] whose Save method
// writes it back atomically in a deterministic order, so saving an
// unchanged store produces byte-identical output.
package store
