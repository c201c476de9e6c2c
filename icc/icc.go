// Package icc reads and writes the raw byte structure of ICC profiles:
// the 128-byte header, the tag table, and the handful of tag types the
// color core needs (curv, para, XYZ, sf32/chad matrices, mluc, text).
//
// It knows nothing about chromaticities, transfer-function classification,
// or pixel transforms — that interpretation lives in the profile package.
// icc only round-trips bytes.
package icc

import "time"

// Profile is the raw decoded form of an ICC byte stream: header fields
// plus a signature-indexed table of tag payloads.
type Profile struct {
	PreferredCMMType   uint32
	Version            Version
	Class              ProfileClass
	ColorSpace         Signature
	PCS                Signature
	CreationDate       time.Time
	PrimaryPlatform    uint32
	Flags              uint32
	DeviceManufacturer uint32
	DeviceModel        uint32
	DeviceAttributes   uint64
	RenderingIntent    RenderingIntent
	Creator            uint32

	// CheckSum reports whether a decoded profile's embedded MD5 profile ID
	// matched the bytes it was read from. Meaningless for a freshly built
	// Profile that has not gone through Decode.
	CheckSum CheckSum

	// TagData maps tag signatures to their raw payload bytes, exactly as
	// they appear after the 12-byte tag table entry.
	TagData map[Signature][]byte
}

// Version is the ICC profile format revision stored in the header.
type Version uint32

// Profile format versions this package has encountered in the wild.
const (
	Version2_1_0   Version = 0x0210_0000
	Version2_4_0   Version = 0x0240_0000
	Version4_0_0   Version = 0x0400_0000
	Version4_3_0   Version = 0x0430_0000
	Version4_4_0   Version = 0x0440_0000
	currentVersion         = Version4_3_0
)

// ProfileClass is the ICC device/profile class stored at header byte 12.
type ProfileClass uint32

// Profile classes this package constructs or recognizes.
const (
	DisplayDeviceProfile ProfileClass = 0x6D6E7472 // "mntr"
	InputDeviceProfile   ProfileClass = 0x73636E72 // "scnr"
	ColorSpaceProfile    ProfileClass = 0x73706163 // "spac"
)

// RenderingIntent is the ICC rendering intent stored at header byte 64.
type RenderingIntent uint32

// Rendering intents. The color core only ever writes and requests
// AbsoluteColorimetric.
const (
	Perceptual           RenderingIntent = 0
	RelativeColorimetric RenderingIntent = 1
	Saturation           RenderingIntent = 2
	AbsoluteColorimetric RenderingIntent = 3
)

// CheckSum reports the result of validating a decoded profile's embedded
// MD5 profile ID.
type CheckSum int

// Possible values of Profile.CheckSum.
const (
	CheckSumMissing CheckSum = iota
	CheckSumValid
	CheckSumInvalid
)

// d50WhitePoint is the PCS illuminant, D50 in CIEXYZ, used to fill header
// bytes 68-79 on Encode.
var d50WhitePoint = [3]float64{0.9642, 1.0, 0.8249}
