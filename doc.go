// Package colorist implements the color conversion core of an
// image-processing pipeline: translating pixel buffers between ICC RGB
// profiles and between 8-bit, wide-integer and float32 channel depths.
//
// The core is organized bottom-up:
//
//   - [github.com/rubo77/colorist/task] fans a callable out over worker
//     goroutines and joins.
//   - [github.com/rubo77/colorist/icc] decodes and encodes the ICC profile
//     byte container.
//   - [github.com/rubo77/colorist/colorimetry] derives RGB->XYZ matrices
//     from chromaticities and evaluates gamma/PQ/HLG transfer functions.
//   - [github.com/rubo77/colorist/profile] wraps an icc.Profile with cached
//     primaries/curve/luminance and synthesizes new profiles.
//   - [github.com/rubo77/colorist/referencecmm] is the fallback colorimetric
//     engine used for tone curves the built-in math can't evaluate directly.
//   - [github.com/rubo77/colorist/transform] prepares a (source,
//     destination) conversion and runs it over a pixel buffer in parallel.
//
// Command-line dispatch, image file codecs, and on-disk ICC tooling are not
// part of this module; they are external collaborators that call through
// the interfaces named above.
package colorist
