package profile

import (
	"time"

	"github.com/rubo77/colorist/colorimetry"
	"github.com/rubo77/colorist/icc"
)

// Create synthesizes a display-RGB profile from primaries, a tone curve
// and a luminance. A Gamma curve is mirrored onto all three TRC tags as a
// type 0 parametric curve; PQ and HLG curves are packed as a sampled LUT
// approximation, and when description is empty it is set to "PQ" or
// "HLG", the marker Query's PQ/HLG recognition looks for.
func Create(primaries colorimetry.Primaries, curve colorimetry.Curve, luminance int, description string) (*Profile, error) {
	matrix, err := colorimetry.DeriveMatrix(primaries)
	if err != nil {
		return nil, err
	}
	red := [3]float64{matrix[0][0], matrix[0][1], matrix[0][2]}
	green := [3]float64{matrix[1][0], matrix[1][1], matrix[1][2]}
	blue := [3]float64{matrix[2][0], matrix[2][1], matrix[2][2]}
	whiteX, whiteY, whiteZ := matrix.Transform(1, 1, 1)
	white := [3]float64{whiteX, whiteY, whiteZ}

	desc := curveDescription(curve, description)

	trcData := encodeCurveTag(curve)
	raw := &icc.Profile{
		Version:         icc.Version4_3_0,
		Class:           icc.DisplayDeviceProfile,
		ColorSpace:      icc.SigRGB,
		PCS:             icc.SigXYZ,
		CreationDate:    time.Now(),
		RenderingIntent: icc.AbsoluteColorimetric,
		TagData: map[icc.Signature][]byte{
			icc.TagRedColorant:     icc.EncodeXYZ(red),
			icc.TagGreenColorant:   icc.EncodeXYZ(green),
			icc.TagBlueColorant:    icc.EncodeXYZ(blue),
			icc.TagMediaWhitePoint: icc.EncodeXYZ(white),
			icc.TagRedTRC:          trcData,
			icc.TagGreenTRC:        trcData,
			icc.TagBlueTRC:         trcData,
			icc.TagLuminance:       icc.EncodeXYZ([3]float64{0, float64(luminance), 0}),
		},
	}
	if desc != "" {
		raw.TagData[icc.TagProfileDescription] = icc.EncodeMLUC("en", "US", desc)
	}

	return &Profile{raw: raw, description: desc}, nil
}

func curveDescription(curve colorimetry.Curve, description string) string {
	switch curve.Kind {
	case colorimetry.CurvePQ:
		if description == "" {
			return "PQ"
		}
	case colorimetry.CurveHLG:
		if description == "" {
			return "HLG"
		}
	}
	return description
}

func encodeCurveTag(curve colorimetry.Curve) []byte {
	switch curve.Kind {
	case colorimetry.CurveGamma:
		return icc.EncodeParametric(0, []float64{curve.Gamma})
	case colorimetry.CurvePQ, colorimetry.CurveHLG:
		return encodeSampledCurve(curve, 256)
	default:
		return icc.EncodeGamma(1.0)
	}
}

func encodeSampledCurve(curve colorimetry.Curve, n int) []byte {
	table := make([]uint16, n)
	for i := range table {
		x := float64(i) / float64(n-1)
		y := curve.Decode(x)
		if y < 0 {
			y = 0
		} else if y > 1 {
			y = 1
		}
		table[i] = uint16(y * 65535.0)
	}
	return icc.EncodeSampledCurve(table)
}

// CreateStockSRGB returns the canonical BT.709/sRGB display profile: the
// primaries and gamma the core's built-in math treats as the baseline
// output target.
func CreateStockSRGB() (*Profile, error) {
	return Create(colorimetry.StockBT709, colorimetry.GammaCurve(2.4), 300, "SRGB")
}

// CreateLinear returns a profile sharing source's primaries and luminance
// but with a Gamma(1.0) linear-light tone curve, used as an intermediate
// working space.
func CreateLinear(source *Profile) (*Profile, error) {
	primaries, _, luminance, err := source.Query()
	if err != nil {
		return nil, err
	}
	return Create(primaries, colorimetry.GammaCurve(1.0), luminance, source.description+" (Linear)")
}
