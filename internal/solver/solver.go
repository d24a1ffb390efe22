package solver

import (
	"fmt"
	"sort"

	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/grid"
)

// System holds the per-step coefficients of the coupled relations.
type System struct {
	Surface *grid.Tridiagonal
	Deep    *grid.Tridiagonal
	Up      []float64
	Down    []float64
	RS      []float64
	RD      []float64
}

func NewSystem(n int) *System {
	return &System{
		Surface: grid.NewTridiagonal(n),
		Deep:    grid.NewTridiagonal(n),
		Up:      make([]float64, n),
		Down:    make([]float64, n),
		RS:      make([]float64, n),
		RD:      make([]float64, n),
	}
}

func (s *System) N() int { return s.Surface.N() }

// Residual returns the largest absolute residual of both relations at (t, td).
func (s *System) Residual(t, td []float64) float64 {
	n := s.N()
	ms := make([]float64, n)
	md := make([]float64, n)
	s.Surface.MulVec(ms, t)
	s.Deep.MulVec(md, td)

	worst := 0.0
	for i := 0; i < n; i++ {
		rs := ms[i] - s.RS[i] - s.Up[i]*td[i]
		rd := md[i] - s.RD[i] - s.Down[i]*t[i]
		if rs < 0 {
			rs = -rs
		}
		if rd < 0 {
			rd = -rd
		}
		worst = max(worst, rs, rd)
	}
	return worst
}

// Solver writes the new surface and deep temperatures into t and td.
type Solver interface {
	Name() string
	Solve(sys *System, t, td []float64) error
}

var registry = map[string]func() Solver{
	"banded": func() Solver { return NewBanded() },
	"dense":  func() Solver { return NewDense() },
}

// DefaultName is the solver used when none is configured.
const DefaultName = "banded"

func New(name string) (Solver, error) {
	if name == "" {
		name = DefaultName
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownSolver, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
