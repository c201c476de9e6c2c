package icc

import (
	"math"
	"testing"
)

func TestGammaCurveRoundTrip(t *testing.T) {
	data := EncodeGamma(2.2)
	c, err := DecodeCurve(data)
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	gamma, ok := c.IsPureGamma()
	if !ok || math.Abs(gamma-2.2) > 1e-3 {
		t.Fatalf("expected pure gamma ~2.2, got %v ok=%v", gamma, ok)
	}
	if got := c.Evaluate(0.5); math.Abs(got-math.Pow(0.5, 2.2)) > 1e-3 {
		t.Fatalf("Evaluate(0.5) = %g", got)
	}
}

func TestIdentityCurveType(t *testing.T) {
	data := make([]byte, 12)
	putUint32(data, 0, uint32(TypeCurve))
	putUint32(data, 8, 0)
	c, err := DecodeCurve(data)
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	if got := c.Evaluate(0.37); math.Abs(got-0.37) > 1e-9 {
		t.Fatalf("identity curve should pass through, got %g", got)
	}
}

func TestSampledCurveInterpolates(t *testing.T) {
	data := make([]byte, 12+3*2)
	putUint32(data, 0, uint32(TypeCurve))
	putUint32(data, 8, 3)
	putUint16(data, 12, 0)
	putUint16(data, 14, 32768)
	putUint16(data, 16, 65535)
	c, err := DecodeCurve(data)
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	if got := c.Evaluate(0.5); math.Abs(got-32768.0/65535.0) > 1e-6 {
		t.Fatalf("midpoint sample mismatch: %g", got)
	}
	if got := c.Evaluate(0.25); math.Abs(got-16384.0/65535.0) > 1e-3 {
		t.Fatalf("interpolated sample mismatch: %g", got)
	}
}

func TestParametricType1Curve(t *testing.T) {
	data := EncodeParametric(1, []float64{2.4, 1.0, 0.0})
	c, err := DecodeCurve(data)
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	if got := c.Evaluate(0.5); math.Abs(got-math.Pow(0.5, 2.4)) > 1e-3 {
		t.Fatalf("Evaluate(0.5) = %g", got)
	}
}

func TestParametricType1IsNotPureGamma(t *testing.T) {
	data := EncodeParametric(1, []float64{1.8, 1.0, 0.0})
	c, err := DecodeCurve(data)
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	gamma, ok := c.IsPureGamma()
	if ok || gamma != 0 {
		t.Fatalf("a type 1 curve, even with a=1 and b=0, should not be treated as pure gamma by IsPureGamma's strict type-0 check, got gamma=%v ok=%v", gamma, ok)
	}
}

func TestGammaCurveInvertRoundTrip(t *testing.T) {
	c, err := DecodeCurve(EncodeGamma(2.2))
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	x := 0.42
	y := c.Evaluate(x)
	if got := c.Invert(y); math.Abs(got-x) > 1e-6 {
		t.Fatalf("Invert(Evaluate(%g)) = %g", x, got)
	}
}

func TestParametricType4InvertRoundTrip(t *testing.T) {
	c, err := DecodeCurve(EncodeParametric(4, []float64{2.4, 1.0, 0.0, 0.1, 0.0, 0.04, 0.0}))
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	for _, x := range []float64{0.02, 0.2, 0.6, 0.95} {
		y := c.Evaluate(x)
		if got := c.Invert(y); math.Abs(got-x) > 1e-3 {
			t.Fatalf("Invert(Evaluate(%g)) = %g, want ~%g", x, got, x)
		}
	}
}

func TestSampledCurveInvertRoundTrip(t *testing.T) {
	data := make([]byte, 12+3*2)
	putUint32(data, 0, uint32(TypeCurve))
	putUint32(data, 8, 3)
	putUint16(data, 12, 0)
	putUint16(data, 14, 32768)
	putUint16(data, 16, 65535)
	c, err := DecodeCurve(data)
	if err != nil {
		t.Fatalf("DecodeCurve: %v", err)
	}
	if got := c.Invert(32768.0 / 65535.0); math.Abs(got-0.5) > 1e-2 {
		t.Fatalf("Invert(midpoint) = %g", got)
	}
}

func TestDecodeCurveRejectsUnknownType(t *testing.T) {
	data := make([]byte, 12)
	putUint32(data, 0, 0x41424344)
	if _, err := DecodeCurve(data); err != errUnexpectedType {
		t.Fatalf("expected errUnexpectedType, got %v", err)
	}
}
