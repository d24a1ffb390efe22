package solver

import (
	"fmt"
	"math"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

// pivotTolerance bounds |pivot| relative to the couplings in its row.
const pivotTolerance = 1e-13

// block is a 2x2 matrix acting on a (surface, deep) pair:
//
//	| ss sd |
//	| ds dd |
type block struct {
	ss, sd, ds, dd float64
}

// Banded solves the coupled system as a block-tridiagonal sweep. Unknowns
// are ordered (T_0, Td_0, T_1, Td_1, ...), so neighbour coupling lives in
// diagonal 2x2 blocks and the layer coupling lives inside the pivot block.
type Banded struct {
	c []block      // forward-sweep multipliers C'_i
	d [][2]float64 // forward-sweep right-hand sides d'_i
}

func NewBanded() *Banded {
	return &Banded{}
}

func (b *Banded) Name() string { return "banded" }

func (b *Banded) ensureScratch(n int) {
	if len(b.c) != n {
		b.c = make([]block, n)
		b.d = make([][2]float64, n)
	}
}

func (b *Banded) Solve(sys *System, t, td []float64) error {
	n := sys.N()
	b.ensureScratch(n)
	ms, md := sys.Surface, sys.Deep

	for i := 0; i < n; i++ {
		p := block{ss: ms.Diag[i], sd: -sys.Up[i], ds: -sys.Down[i], dd: md.Diag[i]}
		rhs := [2]float64{sys.RS[i], sys.RD[i]}

		var ls, ld float64
		if i > 0 {
			// L_i is diag(ms.Lower[i], md.Lower[i]).
			ls, ld = ms.Lower[i], md.Lower[i]
			prev := b.c[i-1]
			p.ss -= ls * prev.ss
			p.sd -= ls * prev.sd
			p.ds -= ld * prev.ds
			p.dd -= ld * prev.dd
			rhs[0] -= ls * b.d[i-1][0]
			rhs[1] -= ld * b.d[i-1][1]
		}

		var us, ud float64
		if i < n-1 {
			us, ud = ms.Upper[i], md.Upper[i]
		}

		deepScale := math.Max(math.Abs(p.ds), math.Max(math.Abs(ud), math.Abs(ld)))
		if err := p.check(deepScale); err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}

		// C'_i = P^-1 * diag(us, ud), one column at a time.
		col0, err := p.solve([2]float64{us, 0})
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		col1, err := p.solve([2]float64{0, ud})
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		b.c[i] = block{ss: col0[0], ds: col0[1], sd: col1[0], dd: col1[1]}

		b.d[i], err = p.solve(rhs)
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
	}

	t[n-1], td[n-1] = b.d[n-1][0], b.d[n-1][1]
	for i := n - 2; i >= 0; i-- {
		c := b.c[i]
		t[i] = b.d[i][0] - c.ss*t[i+1] - c.sd*td[i+1]
		td[i] = b.d[i][1] - c.ds*t[i+1] - c.dd*td[i+1]
	}
	return nil
}

// check rejects a block whose deep pivot is negligible next to deepScale,
// the largest deep-row coupling, or whose surface Schur pivot cancels
// against the surface row.
func (p block) check(deepScale float64) error {
	if !pivotOK(p.dd, deepScale) {
		return dynamo.ErrSingular
	}
	schur := p.ss - p.sd*p.ds/p.dd
	if !pivotOK(schur, math.Max(math.Abs(p.ss), math.Abs(p.sd))) {
		return dynamo.ErrSingular
	}
	return nil
}

// solve returns P^-1 * r by eliminating the deep unknown, solving for the
// surface unknown and back-substituting. p must have passed check.
func (p block) solve(r [2]float64) ([2]float64, error) {
	// Td = (r1 - ds*T) / dd
	schur := p.ss - p.sd*p.ds/p.dd
	if schur == 0 || p.dd == 0 {
		return [2]float64{}, dynamo.ErrSingular
	}
	s := (r[0] - p.sd*r[1]/p.dd) / schur
	d := (r[1] - p.ds*s) / p.dd
	return [2]float64{s, d}, nil
}

func pivotOK(pivot, scale float64) bool {
	if math.IsNaN(pivot) || math.IsInf(pivot, 0) || pivot == 0 {
		return false
	}
	return math.Abs(pivot) > pivotTolerance*scale
}
