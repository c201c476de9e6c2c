package icc

import (
	"math"
	"sort"
)

func powSafe(x, exp float64) float64 {
	return math.Pow(x, exp)
}

// Curve is the decoded form of an ICC curveType or parametricCurveType
// tag. Precedence when evaluating: Table > Params > Gamma, matching the
// ICC curveType family this package decodes from (n=0 identity, n=1
// gamma, n>1 sampled) alongside the five parametricCurveType functions.
type Curve struct {
	// Gamma is the exponent for a bare gamma curve (y = x^Gamma). Set to
	// 1.0 for an identity curve. Ignored once Params or Table is set.
	Gamma float64

	// FuncType selects one of the five ICC parametric curve functions
	// (0-4) and Params supplies its coefficients [g, a, b, c, d, e, f],
	// truncated to the count FuncType needs.
	FuncType int
	Params   []float64

	// Table holds a sampled curve: n evenly spaced samples across [0,1]
	// with linear interpolation between them.
	Table []uint16

	// inverseTable caches Invert's binary-search LUT for a sampled curve,
	// built lazily on first use.
	inverseTable []float64
}

// DecodeCurve decodes a curv or para tag payload.
func DecodeCurve(data []byte) (*Curve, error) {
	if len(data) < 8 {
		return nil, errInvalidTagData
	}
	switch Signature(getUint32(data, 0)) {
	case TypeCurve:
		return decodeCurveType(data)
	case TypeParametricCurve:
		return decodeParametricCurve(data)
	default:
		return nil, errUnexpectedType
	}
}

func decodeCurveType(data []byte) (*Curve, error) {
	if len(data) < 12 {
		return nil, errInvalidTagData
	}
	n := getUint32(data, 8)
	if n == 0 {
		return &Curve{Gamma: 1.0}, nil
	}
	if n == 1 {
		if len(data) < 14 {
			return nil, errInvalidTagData
		}
		return &Curve{Gamma: getU8Fixed8(data, 12)}, nil
	}
	if uint64(len(data)) < 12+2*uint64(n) {
		return nil, errInvalidTagData
	}
	table := make([]uint16, n)
	for i := range table {
		table[i] = getUint16(data, 12+i*2)
	}
	return &Curve{Table: table}, nil
}

func decodeParametricCurve(data []byte) (*Curve, error) {
	if len(data) < 12 {
		return nil, errInvalidTagData
	}
	funcType := int(getUint16(data, 8))
	numParams, ok := parametricParamCount(funcType)
	if !ok {
		return nil, errInvalidTagData
	}
	if len(data) < 12+numParams*4 {
		return nil, errInvalidTagData
	}
	params := make([]float64, numParams)
	for i := range params {
		params[i] = getS15Fixed16(data, 12+i*4)
	}
	return &Curve{FuncType: funcType, Params: params}, nil
}

func parametricParamCount(funcType int) (int, bool) {
	switch funcType {
	case 0:
		return 1, true
	case 1:
		return 3, true
	case 2:
		return 4, true
	case 3:
		return 5, true
	case 4:
		return 7, true
	default:
		return 0, false
	}
}

// EncodeGamma packs a bare gamma curve as a curveType tag with n=1.
func EncodeGamma(gamma float64) []byte {
	buf := make([]byte, 14)
	putUint32(buf, 0, uint32(TypeCurve))
	putUint32(buf, 8, 1)
	putU8Fixed8(buf, 12, gamma)
	return buf
}

// EncodeSampledCurve packs a curveType tag holding n evenly spaced
// samples, the sampled-curve form of a curv tag (n>1).
func EncodeSampledCurve(table []uint16) []byte {
	buf := make([]byte, 12+2*len(table))
	putUint32(buf, 0, uint32(TypeCurve))
	putUint32(buf, 8, uint32(len(table)))
	for i, v := range table {
		putUint16(buf, 12+i*2, v)
	}
	return buf
}

// EncodeParametric packs a parametricCurveType tag of the given function
// type and coefficients.
func EncodeParametric(funcType int, params []float64) []byte {
	buf := make([]byte, 12+len(params)*4)
	putUint32(buf, 0, uint32(TypeParametricCurve))
	putUint16(buf, 8, uint16(funcType))
	for i, v := range params {
		putS15Fixed16(buf, 12+i*4, v)
	}
	return buf
}

// IsPureGamma reports whether the curve is representable as a single
// power-law exponent: either a bare curveType gamma, or a parametric
// curve of function type 0 (y = x^g).
func (c *Curve) IsPureGamma() (gamma float64, ok bool) {
	if c.Params == nil && c.Table == nil && c.Gamma != 0 {
		return c.Gamma, true
	}
	if c.FuncType == 0 && len(c.Params) == 1 {
		return c.Params[0], true
	}
	return 0, false
}

// Evaluate computes y for an input x in [0,1], clamped to [0,1].
func (c *Curve) Evaluate(x float64) float64 {
	x = clamp01(x)
	var y float64
	switch {
	case c.Table != nil:
		y = c.evaluateSampled(x)
	case c.Params != nil:
		y = c.evaluateParametric(x)
	case c.Gamma != 0:
		if x <= 0 {
			y = 0
		} else {
			y = powSafe(x, c.Gamma)
		}
	default:
		y = x
	}
	return clamp01(y)
}

func (c *Curve) evaluateSampled(x float64) float64 {
	n := len(c.Table)
	if n == 0 {
		return x
	}
	if n == 1 {
		return float64(c.Table[0]) / 65535.0
	}
	pos := x * float64(n-1)
	idx := int(pos)
	if idx < 0 {
		return float64(c.Table[0]) / 65535.0
	}
	if idx >= n-1 {
		return float64(c.Table[n-1]) / 65535.0
	}
	frac := pos - float64(idx)
	v0 := float64(c.Table[idx]) / 65535.0
	v1 := float64(c.Table[idx+1]) / 65535.0
	return v0 + frac*(v1-v0)
}

func (c *Curve) evaluateParametric(x float64) float64 {
	g := c.Params[0]
	switch c.FuncType {
	case 0:
		if x <= 0 {
			return 0
		}
		return powSafe(x, g)
	case 1:
		a, b := c.Params[1], c.Params[2]
		if a == 0 {
			return 0
		}
		if x >= -b/a {
			if v := a*x + b; v > 0 {
				return powSafe(v, g)
			}
			return 0
		}
		return 0
	case 2:
		a, b, cc := c.Params[1], c.Params[2], c.Params[3]
		if a == 0 {
			return cc
		}
		if x >= -b/a {
			if v := a*x + b; v > 0 {
				return powSafe(v, g) + cc
			}
			return cc
		}
		return cc
	case 3:
		a, b, cc, d := c.Params[1], c.Params[2], c.Params[3], c.Params[4]
		if x >= d {
			if v := a*x + b; v > 0 {
				return powSafe(v, g)
			}
			return 0
		}
		return cc * x
	case 4:
		a, b, cc, d, e, f := c.Params[1], c.Params[2], c.Params[3], c.Params[4], c.Params[5], c.Params[6]
		if x >= d {
			if v := a*x + b; v > 0 {
				return powSafe(v, g) + e
			}
			return e
		}
		return cc*x + f
	}
	return x
}

// Invert computes the input x that Evaluate would map to the given output
// y, clamped to [0,1]. Used by the reference CMM's PCS-to-device direction.
func (c *Curve) Invert(y float64) float64 {
	y = clamp01(y)
	switch {
	case c.Table != nil:
		return c.invertSampled(y)
	case c.Params != nil:
		return c.invertParametric(y)
	case c.Gamma != 0:
		if y <= 0 {
			return 0
		}
		return powSafe(y, 1.0/c.Gamma)
	default:
		return y
	}
}

func (c *Curve) invertParametric(y float64) float64 {
	g := c.Params[0]
	if g == 0 {
		return 0
	}
	invG := 1.0 / g
	switch c.FuncType {
	case 0:
		if y <= 0 {
			return 0
		}
		return powSafe(y, invG)
	case 1:
		a, b := c.Params[1], c.Params[2]
		if a == 0 {
			return 0
		}
		if y <= 0 {
			return -b / a
		}
		return (powSafe(y, invG) - b) / a
	case 2:
		a, b, cc := c.Params[1], c.Params[2], c.Params[3]
		if a == 0 {
			return 0
		}
		yc := y - cc
		if yc <= 0 {
			return -b / a
		}
		return (powSafe(yc, invG) - b) / a
	case 3:
		a, b, cc, d := c.Params[1], c.Params[2], c.Params[3], c.Params[4]
		yThreshold := cc * d
		if y < yThreshold {
			if cc == 0 {
				return 0
			}
			return y / cc
		}
		if a == 0 || y <= 0 {
			return d
		}
		return (powSafe(y, invG) - b) / a
	case 4:
		a, b, cc, d, e, f := c.Params[1], c.Params[2], c.Params[3], c.Params[4], c.Params[5], c.Params[6]
		yThreshold := cc*d + f
		if y < yThreshold {
			if cc == 0 {
				return 0
			}
			return (y - f) / cc
		}
		ye := y - e
		if a == 0 || ye <= 0 {
			return d
		}
		return (powSafe(ye, invG) - b) / a
	}
	return y
}

func (c *Curve) invertSampled(y float64) float64 {
	if c.inverseTable == nil {
		c.buildInverseTable()
	}
	n := len(c.inverseTable)
	if n == 0 {
		return y
	}
	pos := y * float64(n-1)
	idx := int(pos)
	if idx < 0 {
		return c.inverseTable[0]
	}
	if idx >= n-1 {
		return c.inverseTable[n-1]
	}
	frac := pos - float64(idx)
	return c.inverseTable[idx] + frac*(c.inverseTable[idx+1]-c.inverseTable[idx])
}

// buildInverseTable inverts the sampled curve via binary search over the
// forward table, producing a curveType inverse LUT of its own.
func (c *Curve) buildInverseTable() {
	const invSize = 4096
	c.inverseTable = make([]float64, invSize)

	n := len(c.Table)
	if n == 0 {
		for i := range c.inverseTable {
			c.inverseTable[i] = float64(i) / float64(invSize-1)
		}
		return
	}

	for i := range c.inverseTable {
		target := uint16(float64(i) / float64(invSize-1) * 65535.0)
		idx := sort.Search(n, func(j int) bool {
			return c.Table[j] >= target
		})
		switch {
		case idx == 0:
			c.inverseTable[i] = 0
		case idx >= n:
			c.inverseTable[i] = 1
		default:
			v0 := float64(c.Table[idx-1])
			v1 := float64(c.Table[idx])
			if v1 == v0 {
				c.inverseTable[i] = float64(idx) / float64(n-1)
			} else {
				frac := (float64(target) - v0) / (v1 - v0)
				c.inverseTable[i] = (float64(idx-1) + frac) / float64(n-1)
			}
		}
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
