// Package referencecmm implements the fallback colorimetric engine the
// transform engine delegates to when a profile's tone curve is Complex or
// Unknown: one the built-in gamma/PQ/HLG math in colorimetry cannot
// evaluate directly. It works straight off a profile's declared curv/para
// TRC tags and its derived RGB<->XYZ matrix, the same shape of engine
// seehuhn-go-icc's Transform builds from a parsed profile, generalized
// here to go from one profile's device RGB to another's.
package referencecmm

import (
	"errors"

	"github.com/rubo77/colorist/colorimetry"
	"github.com/rubo77/colorist/icc"
	"github.com/rubo77/colorist/profile"
)

var errMissingColorants = errors.New("referencecmm: profile has no usable primaries")

// channel identifies which TRC tag Transform reads for a given position
// in an RGB triplet.
type channel struct {
	sig icc.Signature
}

var (
	redChannel   = channel{icc.TagRedTRC}
	greenChannel = channel{icc.TagGreenTRC}
	blueChannel  = channel{icc.TagBlueTRC}
)

// Transform converts device RGB colors from one profile's space to
// another's by linearizing with the source TRCs, applying the source
// RGB->XYZ matrix, applying the destination's inverse matrix, and
// delinearizing with the destination's inverse TRCs. It performs absolute
// colorimetric conversion: no gamut mapping, no additional chromatic
// adaptation beyond what each profile's own primaries already encode.
//
// A Transform is not safe for concurrent use by multiple goroutines on
// its own, but is safe for many goroutines to call Convert concurrently
// once built, since Convert never mutates Transform state after New
// returns (the underlying icc.Curve inverse-LUT caches are warmed once
// by New before any concurrent use).
type Transform struct {
	srcMatrix    colorimetry.Matrix3
	dstMatrixInv colorimetry.Matrix3
	srcTRC       [3]*icc.Curve
	dstTRC       [3]*icc.Curve
}

// New builds a Transform from a source and destination profile. A nil
// profile is treated as the XYZ pass-through space: identity matrix, no
// TRC.
func New(src, dst *profile.Profile) (*Transform, error) {
	t := &Transform{
		srcMatrix:    colorimetry.Identity3,
		dstMatrixInv: colorimetry.Identity3,
	}

	if src != nil {
		matrix, err := deriveMatrix(src)
		if err != nil {
			return nil, err
		}
		t.srcMatrix = matrix
		t.srcTRC = channelCurves(src)
	}

	if dst != nil {
		matrix, err := deriveMatrix(dst)
		if err != nil {
			return nil, err
		}
		inv, err := matrix.Inverted()
		if err != nil {
			return nil, err
		}
		t.dstMatrixInv = inv
		t.dstTRC = channelCurves(dst)
	}

	// warm any sampled-curve inverse tables now so Convert never builds
	// one lazily under concurrent access later.
	for _, c := range t.dstTRC {
		if c != nil {
			c.Invert(0.5)
		}
	}

	return t, nil
}

func deriveMatrix(p *profile.Profile) (colorimetry.Matrix3, error) {
	primaries, _, _, err := p.Query()
	if err != nil {
		return colorimetry.Matrix3{}, errMissingColorants
	}
	return colorimetry.DeriveMatrix(primaries)
}

func channelCurves(p *profile.Profile) [3]*icc.Curve {
	var out [3]*icc.Curve
	for i, ch := range []channel{redChannel, greenChannel, blueChannel} {
		data, ok := p.RawTag(ch.sig)
		if !ok {
			continue
		}
		curve, err := icc.DecodeCurve(data)
		if err != nil {
			continue
		}
		out[i] = curve
	}
	return out
}

// Convert maps one device RGB triplet (each in [0,1]) from the source
// profile's space to the destination profile's space.
func (t *Transform) Convert(r, g, b float64) (float64, float64, float64) {
	lr := evaluate(t.srcTRC[0], r)
	lg := evaluate(t.srcTRC[1], g)
	lb := evaluate(t.srcTRC[2], b)

	x, y, z := t.srcMatrix.Transform(lr, lg, lb)

	dr, dg, db := t.dstMatrixInv.Transform(x, y, z)

	or := invert(t.dstTRC[0], dr)
	og := invert(t.dstTRC[1], dg)
	ob := invert(t.dstTRC[2], db)
	return clamp01(or), clamp01(og), clamp01(ob)
}

func evaluate(c *icc.Curve, x float64) float64 {
	if c == nil {
		return x
	}
	return c.Evaluate(x)
}

func invert(c *icc.Curve, y float64) float64 {
	if c == nil {
		return y
	}
	return c.Invert(y)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
