package icc

// DecodeS15Fixed16Matrix parses an sf32-typed tag payload holding a 3x3
// matrix of s15Fixed16 numbers, row-major, as used by the chad tag.
func DecodeS15Fixed16Matrix(data []byte) ([3][3]float64, error) {
	if len(data) < 8+9*4 {
		return [3][3]float64{}, errInvalidTagData
	}
	if Signature(getUint32(data, 0)) != TypeS15Fixed16Array {
		return [3][3]float64{}, errUnexpectedType
	}
	var m [3][3]float64
	for row := range 3 {
		for col := range 3 {
			m[row][col] = getS15Fixed16(data, 8+(row*3+col)*4)
		}
	}
	return m, nil
}

// EncodeS15Fixed16Matrix packs a 3x3 matrix as an sf32-typed tag.
func EncodeS15Fixed16Matrix(m [3][3]float64) []byte {
	buf := make([]byte, 8+9*4)
	putUint32(buf, 0, uint32(TypeS15Fixed16Array))
	for row := range 3 {
		for col := range 3 {
			putS15Fixed16(buf, 8+(row*3+col)*4, m[row][col])
		}
	}
	return buf
}
