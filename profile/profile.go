// Package profile implements the color core's Profile abstraction: an ICC
// byte blob paired with cached, query-able metadata (chromaticities, tone
// curve classification, luminance) and the constructors that synthesize
// profiles from those primitives instead of parsing bytes.
package profile

import (
	"errors"

	"github.com/rubo77/colorist/colorimetry"
	"github.com/rubo77/colorist/icc"
)

// UnspecifiedLuminance is the sentinel Query returns when a profile
// carries no lumi tag.
const UnspecifiedLuminance = 0

var (
	errMissingWhitePoint = errors.New("profile: media white point tag is missing")
	errNoColorants       = errors.New("profile: no rXYZ/gXYZ/bXYZ tags and no usable A2B0 matrix")
)

// Profile pairs a decoded ICC byte blob with a cached human-readable
// description. It owns its underlying icc.Profile exclusively; Clone
// produces an independent copy.
type Profile struct {
	raw         *icc.Profile
	description string
}

// Parse loads an ICC byte stream. If description is non-empty it overrides
// whatever the profile's own desc tag says; otherwise the tag-derived
// description is used, falling back to the literal "Unknown".
func Parse(data []byte, description string) (*Profile, error) {
	raw, err := icc.Decode(data)
	if err != nil {
		return nil, err
	}
	p := &Profile{raw: raw}
	if description != "" {
		p.description = description
	} else if embedded, ok := p.embeddedDescription(); ok {
		p.description = embedded
	} else {
		p.description = "Unknown"
	}
	return p, nil
}

func (p *Profile) embeddedDescription() (string, bool) {
	data, ok := p.raw.TagData[icc.TagProfileDescription]
	if !ok {
		return "", false
	}
	if mlu, err := icc.DecodeMLUC(data); err == nil {
		if v, ok := mlu.Get("en", "US"); ok {
			return v, true
		}
		return mlu.Any(), true
	}
	if s, err := icc.DecodeText(data); err == nil {
		return s, true
	}
	return "", false
}

// Description returns the profile's cached human-readable description.
func (p *Profile) Description() string {
	return p.description
}

// Pack serializes the profile to byte-exact ICC form.
func (p *Profile) Pack() []byte {
	return p.raw.Encode()
}

// Clone packs and re-parses the profile, guaranteeing the result shares no
// mutable state with the original.
func (p *Profile) Clone() (*Profile, error) {
	return Parse(p.Pack(), p.description)
}

// RawTag returns the undecoded bytes of a tag, for collaborators (the
// reference CMM) that need curve/matrix precision Query's summary form
// doesn't carry, such as a Complex curve's full sampled table.
func (p *Profile) RawTag(sig icc.Signature) ([]byte, bool) {
	data, ok := p.raw.TagData[sig]
	return data, ok
}

// SetRawTag writes undecoded tag bytes directly, for callers building a
// curve shape Create has no parametric shorthand for (a multi-segment
// sampled TRC, for instance).
func (p *Profile) SetRawTag(sig icc.Signature, data []byte) {
	p.raw.TagData[sig] = data
}
