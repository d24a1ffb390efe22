package physics

import (
	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/grid"
	"github.com/san-kum/oceanebm/internal/solver"
)

// assembleChunk keeps the pointwise assembly inline at the default
// resolution; only much finer grids are split across goroutines.
const assembleChunk = 4096

// Assembler builds the per-step coupled system. Everything that does not
// depend on the state is computed once.
type Assembler struct {
	consts Constants
	coeffs Coefficients
	dt     float64

	ls *grid.Tridiagonal
	ld *grid.Tridiagonal
	// absorbed holds a(x)S(x) - A.
	absorbed []float64
}

func NewAssembler(g *grid.Grid, consts Constants, coeffs Coefficients, dt float64) *Assembler {
	a := &Assembler{
		consts:   consts,
		coeffs:   coeffs,
		dt:       dt,
		ls:       g.Diffusion(coeffs.Ds),
		ld:       g.Diffusion(coeffs.Dd),
		absorbed: make([]float64, g.N),
	}
	for i, x := range g.X {
		a.absorbed[i] = consts.CoAlbedo(x)*consts.Insolation(x) - coeffs.A
	}
	return a
}

func (a *Assembler) SurfaceOperator() *grid.Tridiagonal { return a.ls }
func (a *Assembler) DeepOperator() *grid.Tridiagonal    { return a.ld }

// Assemble fills sys for the step leaving state x under forcing f and
// writes the inter-layer flux diagnosed from x into fb.
func (a *Assembler) Assemble(x dynamo.State, f float64, sys *solver.System, fb dynamo.Field) {
	sys.Surface.CopyFrom(a.ls)
	sys.Deep.CopyFrom(a.ld)

	c := a.consts
	cs := c.Cw / a.dt
	cd := c.Cwd / a.dt
	tf := c.Tf

	dynamo.ParallelFor(len(x.T), assembleChunk, func(start, end int) {
		for i := start; i < end; i++ {
			t, td := x.T[i], x.Td[i]
			kv := FluxCoefficient(t, tf, a.coeffs.KvW, a.coeffs.KvI)
			fb[i] = InterLayerFlux(t, td, tf, a.coeffs.KvW, a.coeffs.KvI)

			sys.Up[i] = kv
			sys.Surface.Diag[i] += cs + c.B
			sys.Deep.Diag[i] += cd + kv
			sys.RS[i] = cs*t + a.absorbed[i] + f
			sys.RD[i] = cd * td

			if OpenWater(t, tf) {
				sys.Surface.Diag[i] += kv
				sys.Down[i] = kv
			} else {
				sys.RS[i] -= kv * tf
				sys.RD[i] += kv * tf
				sys.Down[i] = 0
			}
		}
	})
}
