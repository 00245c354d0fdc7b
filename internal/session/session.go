package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
)

// State is a session lifecycle state.
type State int

// Session states.
const (
	StateEditing State = iota
	StateCommitting
	StateDone
	StateCancelled
	StateError
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateCommitting:
		return "committing"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible. Cancelled
// is transient: Cancel passes through it on the way to Done.
func (s State) Terminal() bool {
	return s == StateDone || s == StateError
}

// Option configures Open.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is a detached, commit-or-cancel working copy of a model's values.
type Session struct {
	id     string
	model  *option.Model
	cells  []*Cell
	index  map[string]*Cell
	state  State
	logger *slog.Logger

	cancelled bool
}

// Open snapshots the current value of every option in m into a new cell.
// It fails with an *option.RegistrationError if an option carries a type
// tag outside int, float and bool.
func Open(m *option.Model, opts ...Option) (*Session, error) {
	s := &Session{
		id:     uuid.NewString(),
		model:  m,
		index:  make(map[string]*Cell, m.Len()),
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	err := m.Walk(func(category string, spec *option.OptionSpec) error {
		c, err := newCell(s, category, spec)
		if err != nil {
			return err
		}
		s.cells = append(s.cells, c)
		s.index[c.Ref()] = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("editing session opened", "session", s.id, "options", len(s.cells))
	return s, nil
}

// Committed reports whether the session ended by a successful Commit.
func (s *Session) Committed() bool { return s.state == StateDone && !s.cancelled }

// Cancelled reports whether the session ended by Cancel.
func (s *Session) Cancelled() bool { return s.cancelled }

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Cells returns every cell in registration order.
func (s *Session) Cells() []*Cell {
	out := make([]*Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Cell returns the cell for category and name.
func (s *Session) Cell(category, name string) (*Cell, bool) {
	c, ok := s.index[category+"."+name]
	return c, ok
}

// Resolve returns the cell for a "category.option" reference.
func (s *Session) Resolve(ref string) (*Cell, error) {
	if c, ok := s.index[ref]; ok {
		return c, nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownOption, "%q", ref)
}

// Changed returns the cells whose value differs from the model's current value.
func (s *Session) Changed() []*Cell {
	var out []*Cell
	for _, c := range s.cells {
		spec, ok := s.model.Lookup(c.category, c.name)
		if !ok || spec.Value() != c.value {
			out = append(out, c)
		}
	}
	return out
}

// Commit copies every cell value into the model. If any cell holds a value
// whose kind does not match its option type, no option is changed, the
// session moves to StateError and a *CommitConsistencyError is returned.
func (s *Session) Commit() error {
	if s.state != StateEditing {
		return errors.Wrapf(errors.ErrSessionClosed, "commit in state %s", s.state)
	}
	s.state = StateCommitting

	specs := make([]*option.OptionSpec, len(s.cells))
	for i, c := range s.cells {
		spec, ok := s.model.Lookup(c.category, c.name)
		if !ok {
			return s.fail(errors.Wrapf(errors.ErrUnknownOption, "commit %s", c.Ref()))
		}
		if c.value.Kind() != spec.Type {
			return s.fail(&CommitConsistencyError{
				Category: c.category,
				Option:   c.name,
				Want:     spec.Type,
				Got:      c.value.Kind(),
				Err:      errors.ErrCommitConsistency,
			})
		}
		specs[i] = spec
	}

	changed := len(s.Changed())
	for i, c := range s.cells {
		if err := specs[i].Assign(c.value); err != nil {
			// Unreachable after the kind check above.
			panic(err)
		}
	}

	s.state = StateDone
	s.logger.Info("editing session committed", "session", s.id, "changed", changed)
	return nil
}

func (s *Session) fail(err error) error {
	s.state = StateError
	s.logger.Log(context.Background(), slog.LevelError, "editing session rejected", "session", s.id, "error", err)
	return err
}

// Cancel discards the session and moves it through StateCancelled to
// StateDone. The model is left untouched.
func (s *Session) Cancel() error {
	if s.state != StateEditing {
		return errors.Wrapf(errors.ErrSessionClosed, "cancel in state %s", s.state)
	}
	s.state = StateCancelled
	s.cancelled = true
	s.logger.Info("editing session cancelled", "session", s.id)
	s.state = StateDone
	return nil
}
