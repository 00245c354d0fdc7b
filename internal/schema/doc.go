// Package schema declares which options exist.
//
// A schema file lists categories in order, each with its options:
//
//	categories:
//	  - name: DEFAULTSOLVER
//	    options:
//	      - name: NbThreads
//	        type: int
//	        default: 4
//	        help: number of worker threads
//
// TOML schemas use the same shape with [[categories]] and
// [[categories.options]] tables. Defaults may be written as scalars or as
// text; either way they are coerced through the option's type, so a
// default the type cannot read is rejected at registration.
//
// [Default] returns the built-in acoustic solver schema.
package schema
