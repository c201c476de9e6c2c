package icc

import (
	"bytes"
	"crypto/md5"
	"sort"
)

// Encode serializes the profile back to its packed ICC byte form. Tags are
// laid out in order of increasing payload length (ties broken by content,
// then by signature) and identical payloads are deduplicated, matching how the reference
// packer lays out stock profiles deterministically.
func (p *Profile) Encode() []byte {
	version := p.Version
	if version == 0 {
		version = currentVersion
	}
	colorSpace := p.ColorSpace
	if colorSpace == 0 {
		colorSpace = SigRGB
	}
	pcs := p.PCS
	if pcs == 0 {
		pcs = SigXYZ
	}
	class := p.Class
	if class == 0 {
		class = DisplayDeviceProfile
	}

	type tagInfo struct {
		sig       Signature
		data      []byte
		start     uint32
		duplicate bool
	}
	var tags []tagInfo
	for sig, data := range p.TagData {
		tags = append(tags, tagInfo{sig: sig, data: data})
	}
	sort.Slice(tags, func(i, j int) bool {
		if len(tags[i].data) != len(tags[j].data) {
			return len(tags[i].data) < len(tags[j].data)
		}
		if c := bytes.Compare(tags[i].data, tags[j].data); c != 0 {
			return c < 0
		}
		return tags[i].sig < tags[j].sig
	})

	pos := 128 + 4 + len(tags)*12
	for i := range tags {
		if i > 0 && bytes.Equal(tags[i].data, tags[i-1].data) {
			tags[i].start = tags[i-1].start
			tags[i].duplicate = true
		} else {
			tags[i].start = uint32(pos)
			pos += (len(tags[i].data) + 3) &^ 3
		}
	}

	buf := make([]byte, pos)
	putUint32(buf, 0, uint32(pos))
	putUint32(buf, 4, p.PreferredCMMType)
	putUint32(buf, 8, uint32(version))
	putUint32(buf, 12, uint32(class))
	putUint32(buf, 16, uint32(colorSpace))
	putUint32(buf, 20, uint32(pcs))
	putDateTime(buf, 24, p.CreationDate)
	putUint32(buf, 36, 0x61637370) // "acsp"
	putUint32(buf, 40, p.PrimaryPlatform)
	putUint32(buf, 48, p.DeviceManufacturer)
	putUint32(buf, 52, p.DeviceModel)
	putUint64(buf, 56, p.DeviceAttributes)
	putS15Fixed16(buf, 68, d50WhitePoint[0])
	putS15Fixed16(buf, 72, d50WhitePoint[1])
	putS15Fixed16(buf, 76, d50WhitePoint[2])
	putUint32(buf, 80, p.Creator)

	putUint32(buf, 128, uint32(len(tags)))
	tagTable := 128 + 4
	for i, tag := range tags {
		putUint32(buf, tagTable+i*12, uint32(tag.sig))
		putUint32(buf, tagTable+i*12+4, tag.start)
		putUint32(buf, tagTable+i*12+8, uint32(len(tag.data)))
		if !tag.duplicate {
			copy(buf[tag.start:], tag.data)
		}
	}

	// The profile ID hash is computed with the flags, rendering intent
	// and profile ID fields still zero; both fields are written in only
	// after the hash is taken.
	if version >= Version4_0_0 {
		h := md5.Sum(buf)
		copy(buf[84:], h[:])
	}

	putUint32(buf, 64, uint32(p.RenderingIntent))
	putUint32(buf, 44, p.Flags)

	return buf
}
