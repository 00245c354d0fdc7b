// Package logging builds the slog loggers used by solvercfg.
//
// Commands log through the logger carried on their context
// ([NewContext], [FromContext]). The level comes from the -q flag, the -v
// count and the SOLVERCFG_DEBUG variable ([LevelFor]):
//
//	-q          error
//	(default)   warn
//	-v          info: editing sessions committed or cancelled
//	-vv         debug: config file used, stores saved
//	-vvv        trace: every option that falls back to its default
//
// Records go to stderr as colorized text or as JSON, and optionally to a
// JSON log file as well:
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFor(false, 2, ""),
//		Format: logging.FormatText,
//		File:   f,
//	})
//
// Tests use [ForTest], which logs through t.Log at trace level.
package logging
