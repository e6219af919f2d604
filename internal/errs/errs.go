// Package errs provides the typed error vocabulary shared across silo:
// configuration failures and invariant violations, both fatal and both
// reported to the top level by kind and message.
package errs

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Kind classifies a silo error the way the error-handling design requires:
// Configuration errors are caller mistakes (bad CLI argument, malformed
// input file); Invariant errors are the program catching itself having
// violated its own contract (lost portions, missing clear text).
type Kind string

const (
	Configuration Kind = "CONFIGURATION"
	Invariant     Kind = "INVARIANT"
)

// New constructs a Kind-tagged error with a static message.
func New(kind Kind, message string) error {
	return goerrors.New(goerrors.ErrorCode(kind), message)
}

// Newf constructs a Kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return goerrors.New(goerrors.ErrorCode(kind), fmt.Sprintf(format, args...))
}

// KindOf extracts the Kind from err, if err (or something it wraps) was
// produced by New or Newf.
func KindOf(err error) (Kind, bool) {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return Kind(e.Code), true
	}
	return "", false
}
