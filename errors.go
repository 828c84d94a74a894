//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned when an operation runs before an image is
	// loaded, laid out, or selected.
	ErrNotReady = errors.New("image or selection not ready")

	// ErrResourceExhausted is returned when a raster would not fit in the
	// pixel budget of the active tier, or its allocation failed.
	ErrResourceExhausted = errors.New("raster resources exhausted")

	// ErrPageOverflow is wrapped by the validation error returned when the
	// whole scaled image would not fit on the page.
	ErrPageOverflow = errors.New("scaled image larger than page")

	// ErrEncode is wrapped by all bitmap serialization failures.
	ErrEncode = errors.New("encode failed")
)

// ValidationError reports a user input that was rejected before any work.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a user input rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type ErrUnknownPage string

func (e ErrUnknownPage) Error() string {
	return fmt.Sprintf("page '%s' unknown", string(e))
}

type ErrUnknownTier string

func (e ErrUnknownTier) Error() string {
	return fmt.Sprintf("tier '%s' unknown", string(e))
}

type ErrUnknownPolicy string

func (e ErrUnknownPolicy) Error() string {
	return fmt.Sprintf("scale policy '%s' unknown", string(e))
}
