package profile

import (
	"math"

	"github.com/rubo77/colorist/colorimetry"
	"github.com/rubo77/colorist/icc"
)

// Query derives the primaries, tone curve classification and luminance a
// profile exposes. It fails when the media white point tag is missing or
// unreadable, or when no colorant matrix can be read (neither decodable
// rXYZ/gXYZ/bXYZ tags nor a valid A2B0 matrix); a curve or luminance
// shortfall degrades gracefully (Complex/Unknown curve, zero luminance).
func (p *Profile) Query() (colorimetry.Primaries, colorimetry.Curve, int, error) {
	primaries, err := p.queryPrimaries()
	if err != nil {
		return colorimetry.Primaries{}, colorimetry.Curve{}, 0, err
	}
	curve := p.queryCurve()
	luminance := p.queryLuminance()
	return primaries, curve, luminance, nil
}

func (p *Profile) queryPrimaries() (colorimetry.Primaries, error) {
	whiteData, ok := p.raw.TagData[icc.TagMediaWhitePoint]
	if !ok {
		return colorimetry.Primaries{}, errMissingWhitePoint
	}
	whiteXYZ, err := icc.DecodeXYZ(whiteData)
	if err != nil {
		return colorimetry.Primaries{}, errMissingWhitePoint
	}

	colorants, err := p.colorantMatrix()
	if err != nil {
		return colorimetry.Primaries{}, err
	}

	// A profile's own chad tag, when present, always qualifies as the
	// "explicitly carries chad" condition for adapting the white point;
	// the ICC-version check only matters for profiles with no chad tag
	// at all, where there is nothing here to adapt with anyway.
	if chadData, ok := p.raw.TagData[icc.TagChromaticAdaption]; ok {
		if chad, err := icc.DecodeS15Fixed16Matrix(chadData); err == nil {
			if inv, err := invert3x3(chad); err == nil {
				colorants = mulMat3(inv, colorants)
				whiteXYZ = mulMat3Vec(inv, whiteXYZ)
			}
		}
	}

	redX, redY := xyzToXy(colorants[0][0], colorants[1][0], colorants[2][0])
	greenX, greenY := xyzToXy(colorants[0][1], colorants[1][1], colorants[2][1])
	blueX, blueY := xyzToXy(colorants[0][2], colorants[1][2], colorants[2][2])
	whiteX, whiteY := xyzToXy(whiteXYZ[0], whiteXYZ[1], whiteXYZ[2])

	return colorimetry.Primaries{
		RedX: redX, RedY: redY,
		GreenX: greenX, GreenY: greenY,
		BlueX: blueX, BlueY: blueY,
		WhiteX: whiteX, WhiteY: whiteY,
	}, nil
}

// colorantMatrix returns the 3x3 matrix whose columns are the red, green
// and blue colorants in XYZ, preferring rXYZ/gXYZ/bXYZ tags over the A2B0
// fallback.
func (p *Profile) colorantMatrix() ([3][3]float64, error) {
	redData, hasRed := p.raw.TagData[icc.TagRedColorant]
	greenData, hasGreen := p.raw.TagData[icc.TagGreenColorant]
	blueData, hasBlue := p.raw.TagData[icc.TagBlueColorant]
	if hasRed && hasGreen && hasBlue {
		red, err := icc.DecodeXYZ(redData)
		if err != nil {
			return [3][3]float64{}, err
		}
		green, err := icc.DecodeXYZ(greenData)
		if err != nil {
			return [3][3]float64{}, err
		}
		blue, err := icc.DecodeXYZ(blueData)
		if err != nil {
			return [3][3]float64{}, err
		}
		return [3][3]float64{
			{red[0], green[0], blue[0]},
			{red[1], green[1], blue[1]},
			{red[2], green[2], blue[2]},
		}, nil
	}

	a2b0, ok := p.raw.TagData[icc.TagAToB0]
	if !ok {
		return [3][3]float64{}, errNoColorants
	}
	return icc.DecodeA2B0Matrix(a2b0)
}

func xyzToXy(x, y, z float64) (float64, float64) {
	sum := x + y + z
	if sum == 0 {
		return 0, 0
	}
	return x / sum, y / sum
}

func invert3x3(m [3][3]float64) ([3][3]float64, error) {
	cm := colorimetry.Matrix3(m)
	inv, err := cm.Inverted()
	return [3][3]float64(inv), err
}

func mulMat3(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := range 3 {
		for j := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func mulMat3Vec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// queryCurve classifies the red TRC: Gamma when it is a pure power-law
// curve, Complex otherwise, carrying an estimated exponent either way. A
// profile with no TRC tag but an A2B0 tag is still Complex (LUT-driven);
// one with neither is Unknown.
func (p *Profile) queryCurve() colorimetry.Curve {
	data, hasTRC := p.raw.TagData[icc.TagRedTRC]
	_, hasA2B0 := p.raw.TagData[icc.TagAToB0]

	scale := 1.0
	if a2b0, ok := p.raw.TagData[icc.TagAToB0]; ok {
		if s, ok := icc.DecodeA2B0MatrixCurveScale(a2b0); ok {
			scale = s
		}
	}

	if p.isPQ() {
		return colorimetry.Curve{Kind: colorimetry.CurvePQ, MatrixCurveScale: scale}
	}
	if p.description == "HLG" {
		return colorimetry.Curve{Kind: colorimetry.CurveHLG, MatrixCurveScale: scale}
	}

	if !hasTRC {
		if hasA2B0 {
			return colorimetry.Curve{Kind: colorimetry.CurveComplex, EstimatedGamma: -1, MatrixCurveScale: scale}
		}
		return colorimetry.Curve{Kind: colorimetry.CurveUnknown, MatrixCurveScale: scale}
	}

	curve, err := icc.DecodeCurve(data)
	if err != nil {
		return colorimetry.Curve{Kind: colorimetry.CurveComplex, EstimatedGamma: -1, MatrixCurveScale: scale}
	}
	if gamma, ok := curve.IsPureGamma(); ok {
		return colorimetry.Curve{Kind: colorimetry.CurveGamma, Gamma: gamma, EstimatedGamma: gamma, MatrixCurveScale: scale}
	}
	return colorimetry.Curve{Kind: colorimetry.CurveComplex, EstimatedGamma: estimateGamma(curve), MatrixCurveScale: scale}
}

// estimateGamma samples a non-pure curve and fits a single exponent via
// log-domain least squares: a reporting-only estimate for complex curves
// (a descriptive number, not something the transform engine ever
// evaluates against).
func estimateGamma(c *icc.Curve) float64 {
	const samples = 32
	var sumLogXLogY, sumLogXLogX float64
	count := 0
	for i := 1; i < samples; i++ {
		x := float64(i) / float64(samples)
		y := c.Evaluate(x)
		if y <= 0 || x <= 0 {
			continue
		}
		lx, ly := math.Log(x), math.Log(y)
		sumLogXLogY += lx * ly
		sumLogXLogX += lx * lx
		count++
	}
	if count == 0 || sumLogXLogX == 0 {
		return -1
	}
	return sumLogXLogY / sumLogXLogX
}

func (p *Profile) queryLuminance() int {
	data, ok := p.raw.TagData[icc.TagLuminance]
	if !ok {
		return UnspecifiedLuminance
	}
	xyz, err := icc.DecodeXYZ(data)
	if err != nil {
		return UnspecifiedLuminance
	}
	return int(xyz[1])
}

// isPQ reports whether this profile's description declares ST.2084
// semantics. Real PQ profiles in the wild mark themselves this way in
// their desc tag rather than through any dedicated ICC tag.
func (p *Profile) isPQ() bool {
	switch p.description {
	case "PQ", "SMPTE ST 2084", "ST.2084", "ST2084":
		return true
	}
	return false
}
