package hydrate

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/store"
)

// Option configures Hydrate and Persist.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger routes fallback and write traces to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func apply(opts []Option) settings {
	s := settings{logger: logging.NewDiscard()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Hydrate sets every option in m from s. Each option is read and coerced
// independently; a missing section, missing key or malformed text leaves
// that option at its default. No error is reported.
func Hydrate(m *option.Model, s store.Store, opts ...Option) {
	cfg := apply(opts)

	_ = m.Walk(func(category string, spec *option.OptionSpec) error {
		v, err := read(s, category, spec)
		if err != nil {
			cfg.logger.Log(context.Background(), logging.LevelTrace, "option falls back to default",
				"option", category+"."+spec.Name, "reason", err.Error())
			spec.Reset()
			return nil
		}
		if err := spec.Assign(v); err != nil {
			spec.Reset()
		}
		return nil
	})
}

func read(s store.Store, category string, spec *option.OptionSpec) (option.Value, error) {
	text, err := s.Get(category, spec.Name)
	if err != nil {
		return option.Value{}, err
	}
	return option.Coerce(spec.Type, text)
}

// Persist writes the current value of every option in m into s, creating
// sections as needed. Defaults are never consulted.
func Persist(m *option.Model, s store.Store, opts ...Option) error {
	cfg := apply(opts)

	return m.Walk(func(category string, spec *option.OptionSpec) error {
		if !s.HasSection(category) {
			if err := s.AddSection(category); err != nil {
				return errors.Wrapf(err, "adding section %q", category)
			}
		}
		text := option.Format(spec.Value())
		if err := s.Set(category, spec.Name, text); err != nil {
			return errors.Wrapf(err, "writing %s.%s", category, spec.Name)
		}
		cfg.logger.Log(context.Background(), logging.LevelTrace, "option written",
			"option", category+"."+spec.Name, "value", text)
		return nil
	})
}
