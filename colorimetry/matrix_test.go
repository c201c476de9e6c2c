package colorimetry

import (
	"math"
	"testing"
)

func TestMatrixInvertedRoundTrip(t *testing.T) {
	m, err := DeriveMatrix(StockBT709)
	if err != nil {
		t.Fatalf("DeriveMatrix: %v", err)
	}
	inv, err := m.Inverted()
	if err != nil {
		t.Fatalf("Inverted: %v", err)
	}
	x, y, z := m.Transform(0.5, 0.25, 0.75)
	r, g, b := inv.Transform(x, y, z)
	if math.Abs(r-0.5) > 1e-9 || math.Abs(g-0.25) > 1e-9 || math.Abs(b-0.75) > 1e-9 {
		t.Fatalf("round trip mismatch: got (%g,%g,%g)", r, g, b)
	}
}

func TestMatrixInvertedSingular(t *testing.T) {
	m := Matrix3{
		{1, 2, 3},
		{2, 4, 6},
		{1, 1, 1},
	}
	if _, err := m.Inverted(); err != errSingularMatrix {
		t.Fatalf("expected errSingularMatrix, got %v", err)
	}
}

func TestMatrixMultiplyByInverseIsIdentity(t *testing.T) {
	m, err := DeriveMatrix(StockBT709)
	if err != nil {
		t.Fatalf("DeriveMatrix: %v", err)
	}
	inv, err := m.Inverted()
	if err != nil {
		t.Fatalf("Inverted: %v", err)
	}
	product := m.Multiply(inv)
	if !approxIdentity(product, 1e-9) {
		t.Fatalf("m * inv(m) should be identity, got %v", product)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity3.IsIdentity() {
		t.Fatal("Identity3 should report IsIdentity")
	}
	other := Identity3
	other[0][1] = 1e-9
	if other.IsIdentity() {
		t.Fatal("a perturbed matrix should not report IsIdentity")
	}
}

func approxIdentity(m Matrix3, tol float64) bool {
	for i := range 3 {
		for j := range 3 {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(m[i][j]-want) > tol {
				return false
			}
		}
	}
	return true
}
