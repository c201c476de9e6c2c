package transform

import "errors"

// errTransformDispatch and errFormatUnsupported back the two
// programming-bug assertion classes: a miss in the exhaustive
// depth/format dispatch matrix, and a format/depth value outside the
// recognized enumeration. Both are panics, never returned as error
// values — they signal a programmer error, not a recoverable one.
var (
	errTransformDispatch = errors.New("transform: unreachable dispatch combination")
	errFormatUnsupported = errors.New("transform: unsupported pixel format or depth")
)

// errProfileUnqueryable is returned (not panicked) by Prepare when a
// profile's Query fails — a recoverable ProfileQuery-class error.
var errProfileUnqueryable = errors.New("transform: source or destination profile failed to query")
