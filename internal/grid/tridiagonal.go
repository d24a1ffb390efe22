package grid

import "gonum.org/v1/gonum/mat"

// Tridiagonal is an n x n matrix stored as its three bands.
// Lower[i] = A[i][i-1] with Lower[0] unused (zero); Upper[i] = A[i][i+1]
// with Upper[n-1] unused (zero).
type Tridiagonal struct {
	Lower []float64
	Diag  []float64
	Upper []float64
}

func NewTridiagonal(n int) *Tridiagonal {
	return &Tridiagonal{
		Lower: make([]float64, n),
		Diag:  make([]float64, n),
		Upper: make([]float64, n),
	}
}

func (m *Tridiagonal) N() int { return len(m.Diag) }

func (m *Tridiagonal) At(i, j int) float64 {
	switch j - i {
	case 0:
		return m.Diag[i]
	case 1:
		return m.Upper[i]
	case -1:
		return m.Lower[i]
	}
	return 0
}

func (m *Tridiagonal) Clone() *Tridiagonal {
	c := NewTridiagonal(m.N())
	copy(c.Lower, m.Lower)
	copy(c.Diag, m.Diag)
	copy(c.Upper, m.Upper)
	return c
}

// CopyFrom overwrites m with src; both must have the same size.
func (m *Tridiagonal) CopyFrom(src *Tridiagonal) {
	copy(m.Lower, src.Lower)
	copy(m.Diag, src.Diag)
	copy(m.Upper, src.Upper)
}

// AddDiag adds v[i] to the i-th diagonal entry in place.
func (m *Tridiagonal) AddDiag(v []float64) {
	for i := range m.Diag {
		m.Diag[i] += v[i]
	}
}

// MulVec stores A*x in dst.
func (m *Tridiagonal) MulVec(dst, x []float64) {
	n := m.N()
	for i := 0; i < n; i++ {
		v := m.Diag[i] * x[i]
		if i > 0 {
			v += m.Lower[i] * x[i-1]
		}
		if i < n-1 {
			v += m.Upper[i] * x[i+1]
		}
		dst[i] = v
	}
}

func (m *Tridiagonal) RowSums() []float64 {
	n := m.N()
	sums := make([]float64, n)
	for i := 0; i < n; i++ {
		s := m.Diag[i]
		if i > 0 {
			s += m.Lower[i]
		}
		if i < n-1 {
			s += m.Upper[i]
		}
		sums[i] = s
	}
	return sums
}

// Dense expands the bands into a gonum matrix.
func (m *Tridiagonal) Dense() *mat.Dense {
	n := m.N()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, m.Diag[i])
		if i > 0 {
			d.Set(i, i-1, m.Lower[i])
		}
		if i < n-1 {
			d.Set(i, i+1, m.Upper[i])
		}
	}
	return d
}
