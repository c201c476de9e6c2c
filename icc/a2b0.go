package icc

// DecodeA2B0Matrix reads the 3x3 colorant matrix embedded in a lut8/lut16-
// style A2B0 tag: a 32-bit big-endian offset at byte 16 pointing at nine
// consecutive s15Fixed16 values, used as a last-resort primaries source
// when a profile carries no rXYZ/gXYZ/bXYZ tags.
func DecodeA2B0Matrix(data []byte) ([3][3]float64, error) {
	if len(data) < 20 {
		return [3][3]float64{}, errInvalidTagData
	}
	offset := getUint32(data, 16)
	if offset == 0 {
		return [3][3]float64{}, errInvalidTagData
	}
	end := uint64(offset) + 36
	if end > uint64(len(data)) {
		return [3][3]float64{}, errInvalidTagData
	}
	var m [3][3]float64
	for i := range 9 {
		v := getS15Fixed16(data, int(offset)+i*4)
		m[i/3][i%3] = v
	}
	return m, nil
}

// DecodeA2B0MatrixCurveScale reports the implicit scale a^g of the A2B0
// tag's matrix-curve element, when it is a parametric curve of type 1-4.
// The matrix-curve offset lives at byte 20; ok is false when no such
// curve is present or it isn't a recognized parametric type.
func DecodeA2B0MatrixCurveScale(data []byte) (scale float64, ok bool) {
	if len(data) < 24 {
		return 0, false
	}
	offset := getUint32(data, 20)
	if offset == 0 || uint64(offset)+12 > uint64(len(data)) {
		return 0, false
	}
	if Signature(getUint32(data, int(offset))) != TypeParametricCurve {
		return 0, false
	}
	funcType := int(getUint16(data, int(offset)+8))
	if funcType < 1 || funcType > 4 {
		return 0, false
	}
	if uint64(offset)+20 > uint64(len(data)) {
		return 0, false
	}
	g := getS15Fixed16(data, int(offset)+12)
	a := getS15Fixed16(data, int(offset)+16)
	return powSafe(a, g), true
}
