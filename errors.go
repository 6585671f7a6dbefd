package energytrace

import errs "github.com/ArthurRichard/energytrace/internal/errors"

// Error taxonomy. Test with errors.Is.
var (
	ErrFormat               = errs.ErrFormat
	ErrDecode               = errs.ErrDecode
	ErrEmptyCapture         = errs.ErrEmptyCapture
	ErrMissingCompanionFile = errs.ErrMissingCompanionFile
	ErrIO                   = errs.ErrIO
)

// IsInputError reports whether err was caused by the capture files rather
// than by in-memory decoding.
func IsInputError(err error) bool {
	return errs.IsInputError(err)
}
