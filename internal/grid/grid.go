// Package grid builds the 1-D latitude grid and the conservative diffusion
// operators of the energy balance model.
//
// The coordinate is x = sin(latitude), from the equator (x near 0) to the
// pole (x near 1), split into n equal cells. Equal steps in x are equal
// areas, so unweighted means over the grid are area-weighted means.
package grid

import (
	"fmt"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

type Grid struct {
	N  int
	Dx float64
	// X holds the n cell centres, Xb the n-1 interior cell boundaries.
	X  []float64
	Xb []float64
}

func New(n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: grid resolution must be at least 2, got %d", dynamo.ErrParameterBounds, n)
	}

	dx := 1.0 / float64(n)
	g := &Grid{
		N:  n,
		Dx: dx,
		X:  make([]float64, n),
		Xb: make([]float64, n-1),
	}
	for i := 0; i < n; i++ {
		g.X[i] = dx/2 + float64(i)*dx
	}
	for j := 0; j < n-1; j++ {
		g.Xb[j] = float64(j+1) * dx
	}
	return g, nil
}

// Diffusion returns the operator A for meridional diffusion with
// coefficient d. The flux divergence is -A*T. The boundary transfer
// coefficient is d/dx^2*(1-xb^2), which vanishes at the pole, and no flux
// crosses either end of the domain, so every row of A sums to zero.
func (g *Grid) Diffusion(d float64) *Tridiagonal {
	m := NewTridiagonal(g.N)
	inv := d / (g.Dx * g.Dx)
	for j, xb := range g.Xb {
		lambda := inv * (1 - xb*xb)
		m.Upper[j] = -lambda
		m.Lower[j+1] = -lambda
	}
	for i := 0; i < g.N; i++ {
		m.Diag[i] = -(m.Lower[i] + m.Upper[i])
	}
	return m
}
