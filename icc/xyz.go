package icc

// DecodeXYZ parses an XYZType tag payload: an 8-byte header followed by
// one s15Fixed16 XYZ triple. ICC allows XYZType tags to carry more than
// one triple (used by some LUT structures); this package only ever needs
// the first.
func DecodeXYZ(data []byte) ([3]float64, error) {
	if len(data) < 20 {
		return [3]float64{}, errInvalidTagData
	}
	if Signature(getUint32(data, 0)) != TypeXYZ {
		return [3]float64{}, errUnexpectedType
	}
	return [3]float64{
		getS15Fixed16(data, 8),
		getS15Fixed16(data, 12),
		getS15Fixed16(data, 16),
	}, nil
}

// EncodeXYZ packs a single XYZ triple as an XYZType tag.
func EncodeXYZ(xyz [3]float64) []byte {
	buf := make([]byte, 20)
	putUint32(buf, 0, uint32(TypeXYZ))
	putS15Fixed16(buf, 8, xyz[0])
	putS15Fixed16(buf, 12, xyz[1])
	putS15Fixed16(buf, 16, xyz[2])
	return buf
}
