package colorimetry

import "errors"

var (
	errNaNComponent        = errors.New("colorimetry: primaries component is NaN")
	errComponentOutOfRange = errors.New("colorimetry: primaries component outside [0,1]")
	errCollinearPrimaries  = errors.New("colorimetry: red, green and blue primaries are collinear")
	errSingularMatrix      = errors.New("colorimetry: primaries matrix is singular")
)
