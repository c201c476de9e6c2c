package profile

import "github.com/rubo77/colorist/icc"

// GetMLU reads a language/country record from a multi-localized tag (by
// convention "desc" or "cprt"). The tag argument is a 4-character ICC
// signature read in normal byte order, e.g. "desc".
func (p *Profile) GetMLU(tag, language, country string) (string, bool) {
	data, ok := p.raw.TagData[signatureFromString(tag)]
	if !ok {
		return "", false
	}
	mlu, err := icc.DecodeMLUC(data)
	if err != nil {
		if s, err := icc.DecodeText(data); err == nil {
			return s, true
		}
		return "", false
	}
	return mlu.Get(language, country)
}

// SetMLU writes a single-record multi-localized tag.
func (p *Profile) SetMLU(tag, language, country, value string) {
	p.raw.TagData[signatureFromString(tag)] = icc.EncodeMLUC(language, country, value)
}

func signatureFromString(tag string) icc.Signature {
	var b [4]byte
	copy(b[:], tag)
	return icc.Signature(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// SetGamma replaces the red/green/blue TRCs with a single mirrored gamma
// curve rather than writing three independent copies.
func (p *Profile) SetGamma(gamma float64) {
	data := icc.EncodeGamma(gamma)
	p.raw.TagData[icc.TagRedTRC] = data
	p.raw.TagData[icc.TagGreenTRC] = data
	p.raw.TagData[icc.TagBlueTRC] = data
}

// SetLuminance writes the lumi tag's Y component.
func (p *Profile) SetLuminance(luminance int) {
	p.raw.TagData[icc.TagLuminance] = icc.EncodeXYZ([3]float64{0, float64(luminance), 0})
}
