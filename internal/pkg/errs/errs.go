// Package errs narrows cockroachdb/errors to the three operations the rest
// of the codebase needs: creating sentinels, wrapping with context, and
// marking an error so callers can match it with errors.Is while the full
// cause chain stays intact for logging.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

// New creates a sentinel error. Stack capture happens at the call site, so
// package-level sentinels carry their declaration site, which is fine: the
// interesting stack is added by Wrap at the failure site.
func New(msg string) error {
	return cr.New(msg)
}

// Wrap annotates err with msg. Returns nil when err is nil so call sites can
// wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark makes err match markErr under errors.Is without losing err's own
// message and stack. A nil err degrades to the mark itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
