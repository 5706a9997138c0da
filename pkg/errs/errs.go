// Package errs holds the error taxonomy shared by the pricing, matching,
// job and payment layers. Callers classify errors with errs.Is against
// the sentinels below; adapters attach them with Mark so the original
// cause and stack survive.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

var (
	// ErrInvalidInput is a malformed request the caller can correct.
	ErrInvalidInput = cr.New("invalid input")
	// ErrUnsupportedMaterial is returned by strict pricing when the template does not offer the material.
	ErrUnsupportedMaterial = cr.New("unsupported material")
	// ErrHubIncompatible is returned when the requested hub cannot produce the part.
	ErrHubIncompatible = cr.New("hub incompatible")
	// ErrPaymentMismatch flags a payment whose amount or currency disagrees with the quote.
	ErrPaymentMismatch = cr.New("payment mismatch")
	// ErrPaymentConflict flags a redelivered payment reference carrying a different terminal status.
	ErrPaymentConflict = cr.New("payment conflict")
	// ErrConflict is an optimistic-concurrency loss.
	ErrConflict = cr.New("conflict")
	// ErrQuoteExpired means the quote is gone or past its validity window.
	ErrQuoteExpired = cr.New("quote expired")
	// ErrInvalidTransition is a job state machine violation.
	ErrInvalidTransition = cr.New("invalid transition")
	ErrNotFound          = cr.New("not found")
	// ErrDataUnavailable is a persistence or collaborator failure. It is never
	// papered over with sample data.
	ErrDataUnavailable = cr.New("data unavailable")
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark attaches markErr to err so Is(err, markErr) holds.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Markf builds a new error with the given message marked as kind.
func Markf(kind error, format string, args ...any) error {
	return cr.Mark(cr.Newf(format, args...), kind)
}

// Is understands both wrapped and marked errors. Prefer it over the
// standard library errors.Is for anything that may carry a mark.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// IsRetryable reports whether a usecase may retry the operation that
// produced err.
func IsRetryable(err error) bool {
	return cr.Is(err, ErrConflict) || cr.Is(err, ErrDataUnavailable)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
