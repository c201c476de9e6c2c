// Package transform implements the prepared (source, destination) color
// conversion descriptor: matrix derivation and transfer-function
// selection at Prepare time, generic per-pixel kernel dispatch across the
// depth/format matrix, and the parallel driver that shards a pixel range
// across worker tasks.
package transform

import (
	"fmt"

	"github.com/rubo77/colorist/colorimetry"
	"github.com/rubo77/colorist/profile"
	"github.com/rubo77/colorist/referencecmm"
)

// state is the transform's lifecycle position: New -> Prepared ->
// Destroyed. Prepare is idempotent; Run transitions New to Prepared on
// first call if the caller never called Prepare explicitly.
type state int

const (
	stateNew state = iota
	statePrepared
	stateDestroyed
)

// Transform holds a prepared (source, destination) conversion descriptor.
// A Transform is not safe for concurrent Run calls against itself; the
// matrix, curve selectors and cached reference-CMM handle are written
// only during Prepare and read-only during Run.
type Transform struct {
	srcProfile, dstProfile *profile.Profile
	srcFormat, dstFormat   PixelFormat
	srcDepth, dstDepth     int

	useBuiltinMath bool

	state  state
	params *kernelParams
	refCMM *referencecmm.Transform
}

// Create builds a New-state transform from the source and destination
// profile/format/depth triples. A nil profile represents the XYZ
// pass-through space. Built-in math is used by default; call
// SetUseBuiltinMath(false) before the first Prepare or Run to force the
// external reference CMM even for curves the built-in math could
// evaluate natively.
func Create(srcProfile *profile.Profile, srcFormat PixelFormat, srcDepth int, dstProfile *profile.Profile, dstFormat PixelFormat, dstDepth int) *Transform {
	return &Transform{
		srcProfile: srcProfile, srcFormat: srcFormat, srcDepth: srcDepth,
		dstProfile: dstProfile, dstFormat: dstFormat, dstDepth: dstDepth,
		useBuiltinMath: true,
		state:          stateNew,
	}
}

// SetUseBuiltinMath must be called, if at all, before the first Prepare
// or Run; it has no effect afterward.
func (t *Transform) SetUseBuiltinMath(use bool) {
	if t.state == stateNew {
		t.useBuiltinMath = use
	}
}

// Prepare derives the matrix, transfer-function selection and reformat-
// only decision. It is idempotent: calling it again after the first
// successful call is a no-op.
func (t *Transform) Prepare() error {
	if t.state != stateNew {
		return nil
	}

	srcChannels, srcHasAlpha := t.srcFormat.channels()
	dstChannels, dstHasAlpha := t.dstFormat.channels()
	srcKind := kindForDepth(t.srcDepth)
	dstKind := kindForDepth(t.dstDepth)

	p := &kernelParams{
		srcChannels: srcChannels, dstChannels: dstChannels,
		srcHasAlpha: srcHasAlpha, dstHasAlpha: dstHasAlpha,
		srcMax: maxChannel(t.srcDepth, srcKind), dstMax: maxChannel(t.dstDepth, dstKind),
		srcBytes: FormatToPixelBytes(t.srcFormat, t.srcDepth),
		dstBytes: FormatToPixelBytes(t.dstFormat, t.dstDepth),
	}

	reformatOnly := profile.Equivalent(t.srcProfile, t.dstProfile)
	p.reformatOnly = reformatOnly

	needsExternalCMM := !t.useBuiltinMath
	if !reformatOnly {
		matrix, srcEOTF, dstOETF, needsExternal, err := t.buildMathPipeline()
		if err != nil {
			return err
		}
		p.matrix = matrix
		p.srcEOTF = srcEOTF
		p.dstOETF = dstOETF
		needsExternalCMM = needsExternalCMM || needsExternal
	}

	if needsExternalCMM && !reformatOnly {
		rc, err := referencecmm.New(t.srcProfile, t.dstProfile)
		if err != nil {
			return fmt.Errorf("transform: building reference CMM: %w", err)
		}
		t.refCMM = rc
	}

	t.params = p
	t.state = statePrepared
	return nil
}

// buildMathPipeline derives the src->dst matrix and the src EOTF / dst
// OETF closures for the built-in math path. needsExternal reports
// whether either profile's curve is Complex/Unknown, in which case the
// built-in closures are never exercised (Run routes to the external CMM
// instead) but are still returned so Prepare has a single return shape.
func (t *Transform) buildMathPipeline() (matrix [3][3]float64, srcEOTF, dstOETF func(float64) float64, needsExternal bool, err error) {
	_, srcCurve, _, srcMatrix, srcErr := queryOrIdentity(t.srcProfile)
	_, dstCurve, _, dstMatrix, dstErr := queryOrIdentity(t.dstProfile)
	if srcErr != nil || dstErr != nil {
		return matrix, nil, nil, false, errProfileUnqueryable
	}

	dstMatrixInv, invErr := dstMatrix.Inverted()
	if invErr != nil {
		return matrix, nil, nil, false, fmt.Errorf("transform: destination matrix is singular: %w", invErr)
	}
	combined := srcMatrix.Multiply(dstMatrixInv)
	matrix = [3][3]float64(combined)

	if isNativeCurve(srcCurve) && isNativeCurve(dstCurve) {
		srcEOTF = srcCurve.Decode
		dstOETF = dstCurve.Encode
		return matrix, srcEOTF, dstOETF, false, nil
	}
	return matrix, func(v float64) float64 { return v }, func(v float64) float64 { return v }, true, nil
}

func isNativeCurve(c colorimetry.Curve) bool {
	switch c.Kind {
	case colorimetry.CurveGamma, colorimetry.CurvePQ, colorimetry.CurveHLG:
		return true
	default:
		return false
	}
}

func queryOrIdentity(p *profile.Profile) (colorimetry.Primaries, colorimetry.Curve, int, colorimetry.Matrix3, error) {
	if p == nil {
		return colorimetry.Primaries{}, colorimetry.Curve{Kind: colorimetry.CurveGamma, Gamma: 1, EstimatedGamma: 1, MatrixCurveScale: 1}, 0, colorimetry.Identity3, nil
	}
	primaries, curve, luminance, err := p.Query()
	if err != nil {
		return colorimetry.Primaries{}, colorimetry.Curve{}, 0, colorimetry.Matrix3{}, err
	}
	matrix, err := colorimetry.DeriveMatrix(primaries)
	if err != nil {
		return colorimetry.Primaries{}, colorimetry.Curve{}, 0, colorimetry.Matrix3{}, err
	}
	return primaries, curve, luminance, matrix, nil
}

// Run converts pixelCount pixels from src into dst, sharding the work
// across taskCount workers (clamped to pixelCount). On the reference-CMM
// path taskCount is not used; go-parallel picks the sharding. Prepare is
// called automatically if this is the first Run. Run panics if the
// transform has already been Destroyed.
func (t *Transform) Run(taskCount int, src, dst []byte, pixelCount int) error {
	if t.state == stateDestroyed {
		panic("transform: Run called after Destroy")
	}
	if err := t.Prepare(); err != nil {
		return err
	}

	p := t.params
	srcKind := kindForDepth(t.srcDepth)
	dstKind := kindForDepth(t.dstDepth)

	if t.refCMM != nil {
		runExternalCMM(t.refCMM, p, srcKind, dstKind, pixelCount, src, dst)
		return nil
	}

	runSharded(taskCount, pixelCount, p.srcBytes, p.dstBytes, src, dst, func(s slab, srcSlab, dstSlab []byte) {
		runKernelOverSlab(p, srcKind, dstKind, srcSlab, dstSlab, s.count)
	})
	return nil
}

// runKernelOverSlab walks one slab's pixels, each exactly p.srcBytes /
// p.dstBytes apart; runSharded guarantees srcSlab/dstSlab are sliced to
// exactly count pixels' worth of bytes.
func runKernelOverSlab(p *kernelParams, srcKind, dstKind pixelKind, srcSlab, dstSlab []byte, count int) {
	fn := kernelFor(p, srcKind, dstKind)
	for i := 0; i < count; i++ {
		fn(srcSlab[i*p.srcBytes:], dstSlab[i*p.dstBytes:])
	}
}

// Destroy releases the cached reference-CMM handle. Go's garbage
// collector would reclaim it regardless; Destroy exists to make the
// Prepared->Destroyed transition explicit and give callers a definite
// release point.
func (t *Transform) Destroy() {
	t.refCMM = nil
	t.state = stateDestroyed
}
