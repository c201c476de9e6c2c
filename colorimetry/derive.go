package colorimetry

// DeriveMatrix builds the 3x3 RGB->XYZ matrix from a set of primaries,
// following the Hoffmann formulation: the primaries and white point are
// lifted to their xyY projective triples (x, y, 1-x-y), the white point is
// expressed in the basis of the three colorant columns, and that
// decomposition becomes a diagonal scale applied to the colorant matrix.
//
// The result multiplies a row vector on the right (XYZ = RGB * M), so the
// transpose the original per-pixel-math formulation needs is folded into
// this derivation instead of happening on every pixel.
func DeriveMatrix(p Primaries) (Matrix3, error) {
	if err := p.Validate(); err != nil {
		return Matrix3{}, err
	}

	zr := 1 - p.RedX - p.RedY
	zg := 1 - p.GreenX - p.GreenY
	zb := 1 - p.BlueX - p.BlueY
	zw := 1 - p.WhiteX - p.WhiteY

	// Columns of colorants are red, green, blue in xyY-projective space.
	colorants := Matrix3{
		{p.RedX, p.GreenX, p.BlueX},
		{p.RedY, p.GreenY, p.BlueY},
		{zr, zg, zb},
	}
	white := [3]float64{p.WhiteX, p.WhiteY, zw}

	colorantsInv, err := colorants.Inverted()
	if err != nil {
		return Matrix3{}, err
	}
	scale := mulMatVec(colorantsInv, white)

	var scaled Matrix3
	for row := range 3 {
		for col := range 3 {
			scaled[row][col] = colorants[row][col] * scale[col] / p.WhiteY
		}
	}
	return transpose(scaled), nil
}

func mulMatVec(m Matrix3, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func transpose(m Matrix3) Matrix3 {
	var out Matrix3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m[j][i]
		}
	}
	return out
}
