// Package colorimetry implements the pure-math layer of the color core:
// chromaticity validation, the Hoffmann RGB->XYZ matrix derivation, and the
// gamma/PQ/HLG transfer functions. It has no knowledge of ICC byte formats
// or pixel buffers.
package colorimetry

import "math"

// Primaries holds the CIE xy chromaticities of the red, green and blue
// reference stimuli plus the reference white point.
type Primaries struct {
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
	WhiteX, WhiteY float64
}

// StockBT709 is the BT.709/sRGB primaries set with the D65 white point.
var StockBT709 = Primaries{
	RedX: 0.64, RedY: 0.33,
	GreenX: 0.30, GreenY: 0.60,
	BlueX: 0.15, BlueY: 0.06,
	WhiteX: 0.3127, WhiteY: 0.3290,
}

// collinearTolerance bounds how close the R/G/B points may come to lying on
// a single line before the matrix they'd produce is considered singular.
const collinearTolerance = 1e-9

// Validate checks that every component lies in [0,1], none is NaN, and the
// three RGB points are not collinear (a collinear triangle has zero area
// and is not invertible).
func (p Primaries) Validate() error {
	for _, v := range []float64{p.RedX, p.RedY, p.GreenX, p.GreenY, p.BlueX, p.BlueY, p.WhiteX, p.WhiteY} {
		if math.IsNaN(v) {
			return errNaNComponent
		}
		if v < 0 || v > 1 {
			return errComponentOutOfRange
		}
	}
	area := (p.GreenX-p.RedX)*(p.BlueY-p.RedY) - (p.BlueX-p.RedX)*(p.GreenY-p.RedY)
	if math.Abs(area) < collinearTolerance {
		return errCollinearPrimaries
	}
	return nil
}
