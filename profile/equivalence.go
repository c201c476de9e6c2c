package profile

import (
	"bytes"
	"math"
	"sync/atomic"

	"github.com/kovidgoyal/go-parallel"

	"github.com/rubo77/colorist/colorimetry"
	"github.com/rubo77/colorist/icc"
)

const floatEqualityThreshold = 1e-4

// sampledComparisonPoints is how finely Equivalent samples a Complex
// curve pair when a scalar gamma comparison isn't available.
const sampledComparisonPoints = 256

// Equivalent reports whether two profiles are structurally equal for the
// purposes of selecting a reformat-only transform kernel: either their
// packed bytes match exactly, or their derived primaries, luminance and
// tone curve agree. A nil profile represents the XYZ pass-through space.
func Equivalent(a, b *Profile) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if bytes.Equal(a.Pack(), b.Pack()) {
		return true
	}

	primA, curveA, lumA, errA := a.Query()
	primB, curveB, lumB, errB := b.Query()
	if errA != nil || errB != nil {
		return false
	}
	if lumA != lumB {
		return false
	}
	if !primariesEqual(primA, primB) {
		return false
	}
	return curvesEqual(curveA, curveB, a, b)
}

func primariesEqual(a, b colorimetry.Primaries) bool {
	const tol = 1e-4
	return math.Abs(a.RedX-b.RedX) < tol && math.Abs(a.RedY-b.RedY) < tol &&
		math.Abs(a.GreenX-b.GreenX) < tol && math.Abs(a.GreenY-b.GreenY) < tol &&
		math.Abs(a.BlueX-b.BlueX) < tol && math.Abs(a.BlueY-b.BlueY) < tol &&
		math.Abs(a.WhiteX-b.WhiteX) < tol && math.Abs(a.WhiteY-b.WhiteY) < tol
}

func curvesEqual(ca, cb colorimetry.Curve, a, b *Profile) bool {
	if ca.Kind != cb.Kind {
		return false
	}
	switch ca.Kind {
	case colorimetry.CurveGamma:
		return math.Abs(ca.Gamma-cb.Gamma) < 1e-3
	case colorimetry.CurvePQ, colorimetry.CurveHLG, colorimetry.CurveUnknown:
		return true
	default:
		return sampledCurvesEqual(a, b)
	}
}

// sampledCurvesEqual evaluates both profiles' red TRC at a shared grid of
// points in parallel, deciding whether two tone curves behave identically
// when no closed-form description is available.
func sampledCurvesEqual(a, b *Profile) bool {
	curveA, okA := a.redCurve()
	curveB, okB := b.redCurve()
	if !okA || !okB {
		return false
	}

	var mismatched atomic.Bool
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			x := float64(i) / float64(sampledComparisonPoints-1)
			if math.Abs(curveA.Evaluate(x)-curveB.Evaluate(x)) > floatEqualityThreshold {
				mismatched.Store(true)
				return
			}
		}
	}
	_ = parallel.Run_in_parallel_over_range(0, f, 0, sampledComparisonPoints)
	return !mismatched.Load()
}

func (p *Profile) redCurve() (*icc.Curve, bool) {
	data, ok := p.raw.TagData[icc.TagRedTRC]
	if !ok {
		return nil, false
	}
	curve, err := icc.DecodeCurve(data)
	if err != nil {
		return nil, false
	}
	return curve, true
}
