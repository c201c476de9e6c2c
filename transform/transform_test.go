package transform

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubo77/colorist/icc"
	"github.com/rubo77/colorist/profile"
)

func TestIdentitySRGBToSRGB8BitRGBA(t *testing.T) {
	srgb, err := profile.CreateStockSRGB()
	require.NoError(t, err)
	other, err := profile.CreateStockSRGB()
	require.NoError(t, err)

	tr := Create(srgb, FormatRGBA, 8, other, FormatRGBA, 8)
	src := []byte{10, 20, 30, 40, 255, 0, 0, 255}
	dst := make([]byte, len(src))
	require.NoError(t, tr.Run(1, src, dst, 2))
	require.Equal(t, src, dst)
}

func TestFormatToPixelBytesTable(t *testing.T) {
	require.Equal(t, 3, FormatToPixelBytes(FormatRGB, 8))
	require.Equal(t, 6, FormatToPixelBytes(FormatRGB, 10))
	require.Equal(t, 12, FormatToPixelBytes(FormatRGB, 32))
	require.Equal(t, 4, FormatToPixelBytes(FormatRGBA, 8))
	require.Equal(t, 8, FormatToPixelBytes(FormatRGBA, 16))
	require.Equal(t, 16, FormatToPixelBytes(FormatRGBA, 32))
	require.Equal(t, 12, FormatToPixelBytes(FormatXYZ, 32))
}

func TestFormatToPixelBytesRejectsXYZAtIntegerDepths(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for XYZ at 8-bit depth")
		}
	}()
	FormatToPixelBytes(FormatXYZ, 8)
}

func TestDepthRescaleReformatOnly(t *testing.T) {
	tr := Create(nil, FormatRGB, 8, nil, FormatRGB, 10)
	src := []byte{128, 128, 128}
	dst := make([]byte, 6)
	require.NoError(t, tr.Run(1, src, dst, 1))

	// 128 * 1023 / 255 = 513.506, which rounds to 514.
	got := uint16(dst[0])<<8 | uint16(dst[1])
	require.EqualValues(t, 514, got)
}

func TestRGBSourceFabricatesFullOpacity(t *testing.T) {
	tr := Create(nil, FormatRGB, 8, nil, FormatRGBA, 8)
	src := []byte{10, 20, 30}
	dst := make([]byte, 4)
	require.NoError(t, tr.Run(1, src, dst, 1))
	require.EqualValues(t, 255, dst[3])
}

func TestRGBAAlphaPassesThrough(t *testing.T) {
	tr := Create(nil, FormatRGBA, 8, nil, FormatRGBA, 16)
	src := []byte{10, 20, 30, 128}
	dst := make([]byte, 8)
	require.NoError(t, tr.Run(1, src, dst, 1))
	got := uint16(dst[6])<<8 | uint16(dst[7])
	want := uint16(math.Round(128.0 * 65535.0 / 255.0))
	require.Equal(t, want, got)
}

func TestGammaRoundTripThroughLinearDepth32(t *testing.T) {
	srgb, err := profile.CreateStockSRGB()
	require.NoError(t, err)
	linear, err := profile.CreateLinear(srgb)
	require.NoError(t, err)

	forward := Create(srgb, FormatRGB, 32, linear, FormatRGB, 32)
	backward := Create(linear, FormatRGB, 32, srgb, FormatRGB, 32)

	src := encodeFloat32Pixel(0.6, 0.4, 0.2)
	mid := make([]byte, 12)
	require.NoError(t, forward.Run(1, src, mid, 1))
	out := make([]byte, 12)
	require.NoError(t, backward.Run(1, mid, out, 1))

	r, g, b := decodeFloat32Pixel(out)
	require.InDelta(t, 0.6, r, 1e-5)
	require.InDelta(t, 0.4, g, 1e-5)
	require.InDelta(t, 0.2, b, 1e-5)
}

func TestParallelDeterminism(t *testing.T) {
	srgb, err := profile.CreateStockSRGB()
	require.NoError(t, err)
	linear, err := profile.CreateLinear(srgb)
	require.NoError(t, err)

	const pixelCount = 1000003
	src := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		src[i*4] = byte((i*7 + 1) % 256)
		src[i*4+1] = byte((i*13 + 2) % 256)
		src[i*4+2] = byte((i*29 + 3) % 256)
		src[i*4+3] = byte((i*3 + 4) % 256)
	}

	var reference []byte
	for _, taskCount := range []int{1, 3, 7} {
		tr := Create(srgb, FormatRGBA, 8, linear, FormatRGBA, 8)
		dst := make([]byte, pixelCount*4)
		require.NoError(t, tr.Run(taskCount, src, dst, pixelCount))
		if reference == nil {
			reference = dst
			continue
		}
		require.True(t, bytes.Equal(reference, dst), "taskCount=%d produced different output", taskCount)
	}
}

func TestReformatOnlySelectedForEquivalentProfiles(t *testing.T) {
	a, err := profile.CreateStockSRGB()
	require.NoError(t, err)
	b, err := profile.CreateStockSRGB()
	require.NoError(t, err)

	tr := Create(a, FormatRGB, 8, b, FormatRGB, 8)
	require.NoError(t, tr.Prepare())
	require.True(t, tr.params.reformatOnly)
}

func TestDestroyReleasesReferenceCMM(t *testing.T) {
	complexProfile, err := profile.CreateStockSRGB()
	require.NoError(t, err)
	// A non-power-law sampled TRC has no closed-form gamma: Query
	// classifies it Complex, forcing the external reference CMM path.
	table := make([]uint16, 8)
	for i := range table {
		x := float64(i) / float64(len(table)-1)
		table[i] = uint16((x*x*0.5 + x*0.5) * 65535.0)
	}
	complexProfile.SetRawTag(icc.TagRedTRC, icc.EncodeSampledCurve(table))
	srgb, err := profile.CreateStockSRGB()
	require.NoError(t, err)

	tr := Create(complexProfile, FormatRGB, 8, srgb, FormatRGB, 8)
	src := []byte{10, 20, 30}
	dst := make([]byte, 3)
	require.NoError(t, tr.Run(1, src, dst, 1))
	require.NotNil(t, tr.refCMM)
	tr.Destroy()
	require.Nil(t, tr.refCMM)
}

func encodeFloat32Pixel(r, g, b float32) []byte {
	buf := make([]byte, 12)
	writeSample(buf[0:], r)
	writeSample(buf[4:], g)
	writeSample(buf[8:], b)
	return buf
}

func decodeFloat32Pixel(buf []byte) (float64, float64, float64) {
	r := readSample[float32](buf[0:])
	g := readSample[float32](buf[4:])
	b := readSample[float32](buf[8:])
	return float64(r), float64(g), float64(b)
}
