package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

func TestNewGrid(t *testing.T) {
	g, err := New(4)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	wantX := []float64{0.125, 0.375, 0.625, 0.875}
	for i, x := range wantX {
		if math.Abs(g.X[i]-x) > 1e-15 {
			t.Errorf("X[%d] = %v, want %v", i, g.X[i], x)
		}
	}

	wantXb := []float64{0.25, 0.5, 0.75}
	if len(g.Xb) != len(wantXb) {
		t.Fatalf("expected %d boundaries, got %d", len(wantXb), len(g.Xb))
	}
	for i, x := range wantXb {
		if math.Abs(g.Xb[i]-x) > 1e-15 {
			t.Errorf("Xb[%d] = %v, want %v", i, g.Xb[i], x)
		}
	}
}

func TestNewGrid_InvalidResolution(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if _, err := New(n); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("n=%d: expected ErrParameterBounds, got %v", n, err)
		}
	}
}

func TestDiffusion_RowsSumToZero(t *testing.T) {
	for _, n := range []int{2, 3, 10, 100, 800} {
		g, err := New(n)
		if err != nil {
			t.Fatal(err)
		}
		for _, d := range []float64{0.6, 0.02, 5.0} {
			op := g.Diffusion(d)
			scale := math.Abs(op.Diag[0]) + 1
			for i, s := range op.RowSums() {
				if math.Abs(s) > 1e-12*scale {
					t.Fatalf("n=%d D=%v: row %d sums to %g", n, d, i, s)
				}
			}
		}
	}
}

func TestDiffusion_SymmetricTridiagonal(t *testing.T) {
	for _, n := range []int{2, 5, 64} {
		g, _ := New(n)
		op := g.Diffusion(0.6)
		dense := op.Dense()

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := dense.At(i, j)
				if v != op.At(i, j) {
					t.Fatalf("n=%d: Dense and bands disagree at (%d,%d)", n, i, j)
				}
				if v != dense.At(j, i) {
					t.Fatalf("n=%d: not symmetric at (%d,%d)", n, i, j)
				}
				if abs(i-j) > 1 && v != 0 {
					t.Fatalf("n=%d: nonzero entry %g outside the band at (%d,%d)", n, v, i, j)
				}
			}
		}
	}
}

func TestDiffusion_OffDiagonalsFollowBoundaryCoefficient(t *testing.T) {
	g, _ := New(10)
	d := 0.6
	op := g.Diffusion(d)

	for j, xb := range g.Xb {
		want := -d / (g.Dx * g.Dx) * (1 - xb*xb)
		if math.Abs(op.Upper[j]-want) > 1e-12*math.Abs(want) {
			t.Errorf("Upper[%d] = %v, want %v", j, op.Upper[j], want)
		}
	}
	if op.Lower[0] != 0 || op.Upper[g.N-1] != 0 {
		t.Error("unused band corners must be zero")
	}
}

func TestDiffusion_RebuildIsBitIdentical(t *testing.T) {
	g1, _ := New(800)
	g2, _ := New(800)

	a := g1.Diffusion(0.6)
	b := g2.Diffusion(0.6)

	for i := range a.Diag {
		if a.Diag[i] != b.Diag[i] || a.Lower[i] != b.Lower[i] || a.Upper[i] != b.Upper[i] {
			t.Fatalf("rebuild differs at row %d", i)
		}
	}
}

func TestDiffusion_ConservesUniformField(t *testing.T) {
	g, _ := New(50)
	op := g.Diffusion(0.6)

	x := make([]float64, g.N)
	for i := range x {
		x[i] = 3.5
	}
	out := make([]float64, g.N)
	op.MulVec(out, x)
	for i, v := range out {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("uniform field not preserved at %d: %g", i, v)
		}
	}
}

func TestTridiagonal_MulVecMatchesDense(t *testing.T) {
	g, _ := New(7)
	op := g.Diffusion(0.3)
	op.AddDiag([]float64{1, 2, 3, 4, 5, 6, 7})

	x := []float64{0.5, -1, 2, 0, 3, 1, -2}
	got := make([]float64, 7)
	op.MulVec(got, x)

	dense := op.Dense()
	for i := 0; i < 7; i++ {
		want := 0.0
		for j := 0; j < 7; j++ {
			want += dense.At(i, j) * x[j]
		}
		if math.Abs(got[i]-want) > 1e-9 {
			t.Errorf("row %d: got %v, want %v", i, got[i], want)
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
