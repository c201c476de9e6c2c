package transform

import (
	"github.com/kovidgoyal/go-parallel"

	"github.com/rubo77/colorist/referencecmm"
)

// runExternalCMM delegates color conversion for one run to the reference
// CMM, sharding slabs with go-parallel instead of the task package: the
// external-CMM path's partition boundaries aren't load-bearing for
// bit-exact determinism the way the built-in math path's are (each
// pixel's output depends only on its own input regardless of how slabs
// are drawn).
func runExternalCMM(rc *referencecmm.Transform, p *kernelParams, srcKind, dstKind pixelKind, pixelCount int, src, dst []byte) {
	fn := externalKernelFor(rc, p, srcKind, dstKind)

	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			fn(src[i*p.srcBytes:], dst[i*p.dstBytes:])
		}
	}
	_ = parallel.Run_in_parallel_over_range(0, f, 0, pixelCount)
}

func externalKernelFor(rc *referencecmm.Transform, p *kernelParams, srcKind, dstKind pixelKind) pixelFunc {
	switch {
	case srcKind == kindU8 && dstKind == kindU8:
		return externalPixel[uint8, uint8](rc, p)
	case srcKind == kindU8 && dstKind == kindU16:
		return externalPixel[uint8, uint16](rc, p)
	case srcKind == kindU8 && dstKind == kindFloat32:
		return externalPixel[uint8, float32](rc, p)
	case srcKind == kindU16 && dstKind == kindU8:
		return externalPixel[uint16, uint8](rc, p)
	case srcKind == kindU16 && dstKind == kindU16:
		return externalPixel[uint16, uint16](rc, p)
	case srcKind == kindU16 && dstKind == kindFloat32:
		return externalPixel[uint16, float32](rc, p)
	case srcKind == kindFloat32 && dstKind == kindU8:
		return externalPixel[float32, uint8](rc, p)
	case srcKind == kindFloat32 && dstKind == kindU16:
		return externalPixel[float32, uint16](rc, p)
	case srcKind == kindFloat32 && dstKind == kindFloat32:
		return externalPixel[float32, float32](rc, p)
	default:
		panic(errTransformDispatch)
	}
}

func externalPixel[S, D channelValue](rc *referencecmm.Transform, p *kernelParams) pixelFunc {
	return func(src, dst []byte) {
		sw, dw := sampleWidth[S](), sampleWidth[D]()
		sr := decodeChannel(readSample[S](src[0:]), p.srcMax)
		sg := decodeChannel(readSample[S](src[sw:]), p.srcMax)
		sb := decodeChannel(readSample[S](src[2*sw:]), p.srcMax)

		dr, dg, db := rc.Convert(sr, sg, sb)

		writeSample(dst[0:], encodeChannel[D](dr, p.dstMax))
		writeSample(dst[dw:], encodeChannel[D](dg, p.dstMax))
		writeSample(dst[2*dw:], encodeChannel[D](db, p.dstMax))

		writeAlpha[S, D](p, src, dst)
	}
}
