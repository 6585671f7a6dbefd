// Package errors defines the error taxonomy shared by every energytrace package.
//
// Errors are sentinel values wrapped with path and shard context using %w, so
// callers test them with errors.Is. The root package re-exports the sentinels.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports malformed input: bad CSV columns or rows, invalid
	// index property values, or a series payload whose length does not fit
	// its element width.
	ErrFormat = errors.New("format error")

	// ErrDecode reports a compressed series payload that failed to decode.
	ErrDecode = errors.New("decode error")

	// ErrEmptyCapture reports a capture with no shards or no samples.
	ErrEmptyCapture = errors.New("empty capture")

	// ErrMissingCompanionFile reports a binary capture root without its index file.
	ErrMissingCompanionFile = errors.New("missing companion file")

	// ErrIO reports an unreadable or missing input file.
	ErrIO = errors.New("i/o error")
)

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// Formatf returns an ErrFormat wrapping a formatted message.
func Formatf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// Decodef returns an ErrDecode wrapping a formatted message.
func Decodef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}

// Emptyf returns an ErrEmptyCapture wrapping a formatted message.
func Emptyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEmptyCapture, fmt.Sprintf(format, args...))
}

// WrapIO wraps a file system error for path as ErrIO. The original error stays
// reachable through errors.Is, so fs.ErrNotExist checks keep working.
func WrapIO(path string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
}

// MissingCompanion returns an ErrMissingCompanionFile for the expected index path.
func MissingCompanion(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMissingCompanionFile, path, err)
}

// IsInputError returns true if err was caused by the input files themselves
// rather than by in-memory decoding.
func IsInputError(err error) bool {
	return errors.Is(err, ErrFormat) ||
		errors.Is(err, ErrIO) ||
		errors.Is(err, ErrMissingCompanionFile) ||
		errors.Is(err, ErrEmptyCapture)
}
