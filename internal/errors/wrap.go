package errors

import (
	stderrors "errors"

	crdb "github.com/cockroachdb/errors"
)

// New creates an error with a stack trace.
func New(msg string) error { return crdb.New(msg) }

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...any) error { return crdb.Newf(format, args...) }

// Wrap annotates err with msg. Wrap returns nil when err is nil.
func Wrap(err error, msg string) error { return crdb.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. Wrapf returns nil when err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.Wrapf(err, format, args...)
}

// Join combines errs into one error, dropping nils. It returns nil when
// every err is nil.
func Join(errs ...error) error { return crdb.Join(errs...) }

// Mark attaches reference as an additional identity of err for Is checks.
func Mark(err error, reference error) error { return crdb.Mark(err, reference) }

// Is reports whether any error in err's chain matches reference, either by
// mark identity or through an Is method such as the one on syscall.Errno.
func Is(err, reference error) bool {
	return crdb.Is(err, reference) || stderrors.Is(err, reference)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// WithHint decorates err with a user-facing hint.
func WithHint(err error, hint string) error { return crdb.WithHint(err, hint) }

// FlattenHints returns the hints attached anywhere in err's chain.
func FlattenHints(err error) string { return crdb.FlattenHints(err) }
