package icc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func buildTestProfile() *Profile {
	return &Profile{
		Version:         Version4_3_0,
		Class:           DisplayDeviceProfile,
		ColorSpace:      SigRGB,
		PCS:             SigXYZ,
		CreationDate:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		RenderingIntent: AbsoluteColorimetric,
		TagData: map[Signature][]byte{
			TagRedColorant:        EncodeXYZ([3]float64{0.4361, 0.2225, 0.0139}),
			TagGreenColorant:      EncodeXYZ([3]float64{0.3851, 0.7169, 0.0971}),
			TagBlueColorant:       EncodeXYZ([3]float64{0.1431, 0.0606, 0.7141}),
			TagMediaWhitePoint:    EncodeXYZ([3]float64{0.9642, 1.0, 0.8249}),
			TagRedTRC:             EncodeGamma(2.4),
			TagGreenTRC:           EncodeGamma(2.4),
			TagBlueTRC:            EncodeGamma(2.4),
			TagProfileDescription: EncodeMLUC("en", "US", "Test Profile"),
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := buildTestProfile()
	data := p.Encode()

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, p.Version, got.Version)
	require.Equal(t, p.Class, got.Class)
	require.Equal(t, p.ColorSpace, got.ColorSpace)
	require.Equal(t, p.PCS, got.PCS)
	require.Equal(t, p.RenderingIntent, got.RenderingIntent)
	require.Equal(t, p.CreationDate, got.CreationDate)
	require.Equal(t, CheckSumValid, got.CheckSum)

	for sig, data := range p.TagData {
		require.Equal(t, data, got.TagData[sig], "tag %v", sig)
	}
}

func TestDecodeRejectsMissingAcsp(t *testing.T) {
	data := make([]byte, 132)
	_, err := Decode(data)
	require.Error(t, err)
}

func TestDecodeRejectsTooShort(t *testing.T) {
	_, err := Decode(make([]byte, 10))
	require.Error(t, err)
}

func TestDecodeDetectsTamperedChecksum(t *testing.T) {
	p := buildTestProfile()
	data := p.Encode()
	data[len(data)-1] ^= 0xFF

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, CheckSumInvalid, got.CheckSum)
}

func TestXYZRoundTrip(t *testing.T) {
	want := [3]float64{0.9642, 1.0, 0.8249}
	data := EncodeXYZ(want)
	got, err := DecodeXYZ(data)
	require.NoError(t, err)
	require.InDelta(t, want[0], got[0], 1e-4)
	require.InDelta(t, want[1], got[1], 1e-4)
	require.InDelta(t, want[2], got[2], 1e-4)
}

func TestMLUCRoundTrip(t *testing.T) {
	data := EncodeMLUC("en", "US", "sRGB IEC61966-2.1")
	got, err := DecodeMLUC(data)
	require.NoError(t, err)
	value, ok := got.Get("en", "US")
	require.True(t, ok)
	require.Equal(t, "sRGB IEC61966-2.1", value)
}

func TestS15Fixed16MatrixRoundTrip(t *testing.T) {
	m := [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	data := EncodeS15Fixed16Matrix(m)
	got, err := DecodeS15Fixed16Matrix(data)
	require.NoError(t, err)
	require.Equal(t, m, got)
}
