package physics

import (
	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/grid"
)

// InitialState returns the warm-start profiles
// T0 = 7.5 + 20(1-2x^2) and Td0 = 2 + 4(1-2x^2).
func InitialState(g *grid.Grid) dynamo.State {
	s := dynamo.NewState(g.N)
	for i, x := range g.X {
		p2 := 1 - 2*x*x
		s.T[i] = 7.5 + 20*p2
		s.Td[i] = 2 + 4*p2
	}
	return s
}

// UniformState sets both layers to t everywhere.
func UniformState(g *grid.Grid, t float64) dynamo.State {
	s := dynamo.NewState(g.N)
	for i := range s.T {
		s.T[i] = t
		s.Td[i] = t
	}
	return s
}
