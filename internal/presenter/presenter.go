// Package presenter connects an editing session to a user interface.
//
// A [Presenter] receives a declarative description of the session (one
// [session.Tab] per category) and two terminal actions. It renders the
// fields, lets the operator change cells, and invokes exactly one of
// Confirm or Cancel. [Run] drives a whole episode and enforces that rule
// even for presenters that get it wrong.
package presenter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/session"
)

// Actions are the two terminal triggers of an editing episode.
type Actions struct {
	// Confirm commits every cell into the model. It returns the commit
	// error, if any; the episode is over either way.
	Confirm func() error
	// Cancel discards the session.
	Cancel func()
}

// Presenter renders tabs and reports the operator's decision.
type Presenter interface {
	// Present blocks until the episode ends. It must invoke exactly one of
	// actions.Confirm or actions.Cancel before returning, unless it fails.
	Present(ctx context.Context, tabs []session.Tab, actions Actions) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(ctx context.Context, tabs []session.Tab, actions Actions) error

// Present implements Presenter.
func (f PresenterFunc) Present(ctx context.Context, tabs []session.Tab, actions Actions) error {
	return f(ctx, tabs, actions)
}

// Outcome is how an editing episode ended.
type Outcome int

// Episode outcomes.
const (
	OutcomeCancelled Outcome = iota
	OutcomeCommitted
	OutcomeFailed
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

// Run opens a session on m, hands it to p and returns once the episode is
// over. Only the first action the presenter invokes counts; later calls
// are ignored (Confirm reports errors.ErrSessionClosed). A presenter that
// returns without acting, or fails, leaves the model untouched.
func Run(ctx context.Context, m *option.Model, p Presenter, opts ...session.Option) (Outcome, error) {
	logger := logging.FromContext(ctx)
	s, err := session.Open(m, append([]session.Option{session.WithLogger(logger)}, opts...)...)
	if err != nil {
		return OutcomeFailed, err
	}

	var (
		mu        sync.Mutex
		done      bool
		commitErr error
	)
	actions := Actions{
		Confirm: func() error {
			mu.Lock()
			defer mu.Unlock()
			if done {
				return errors.Wrap(errors.ErrSessionClosed, "confirm after episode ended")
			}
			done = true
			commitErr = s.Commit()
			return commitErr
		},
		Cancel: func() {
			mu.Lock()
			defer mu.Unlock()
			if done {
				return
			}
			done = true
			_ = s.Cancel()
		},
	}

	presentErr := p.Present(ctx, s.Tabs(), actions)

	mu.Lock()
	defer mu.Unlock()
	if !done {
		done = true
		_ = s.Cancel()
		logger.Debug("presenter ended without an action", "session", s.ID())
	}

	switch {
	case s.State() == session.StateError:
		return OutcomeFailed, commitErr
	case presentErr != nil && !s.Committed():
		return OutcomeFailed, errors.Wrap(presentErr, "presenting options")
	case s.Committed():
		if presentErr != nil {
			logger.Log(ctx, slog.LevelWarn, "presenter failed after commit", "error", presentErr)
		}
		return OutcomeCommitted, nil
	default:
		return OutcomeCancelled, nil
	}
}
