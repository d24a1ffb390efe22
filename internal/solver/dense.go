package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

// Dense performs the elimination with full matrices: the deep operator is
// inverted, substituted into the surface relation, and the resulting n x n
// system is LU-solved for T'.
type Dense struct{}

func NewDense() *Dense {
	return &Dense{}
}

func (d *Dense) Name() string { return "dense" }

func (d *Dense) Solve(sys *System, t, td []float64) error {
	n := sys.N()

	var mdInv mat.Dense
	if err := mdInv.Inverse(sys.Deep.Dense()); err != nil {
		return singular("invert deep operator", err)
	}

	// Schur complement Ms - diag(Up) * Md^-1 * diag(Down).
	var g mat.Dense
	g.Mul(&mdInv, mat.NewDiagDense(n, clone(sys.Down)))
	var coupled mat.Dense
	coupled.Mul(mat.NewDiagDense(n, clone(sys.Up)), &g)
	var schur mat.Dense
	schur.Sub(sys.Surface.Dense(), &coupled)

	// Rs + Up∘(Md^-1 Rd)
	var deepRHS mat.VecDense
	deepRHS.MulVec(&mdInv, mat.NewVecDense(n, clone(sys.RD)))
	rhs := mat.NewVecDense(n, clone(sys.RS))
	for i := 0; i < n; i++ {
		rhs.SetVec(i, rhs.AtVec(i)+sys.Up[i]*deepRHS.AtVec(i))
	}

	var surface mat.VecDense
	if err := surface.SolveVec(&schur, rhs); err != nil {
		return singular("solve surface system", err)
	}

	// Td' = Md^-1 (Rd + Down∘T')
	back := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		back.SetVec(i, sys.RD[i]+sys.Down[i]*surface.AtVec(i))
	}
	var deep mat.VecDense
	deep.MulVec(&mdInv, back)

	for i := 0; i < n; i++ {
		t[i] = surface.AtVec(i)
		td[i] = deep.AtVec(i)
	}
	return nil
}

func singular(op string, err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) || errors.Is(err, mat.ErrSingular) {
		return fmt.Errorf("%s: %w (%v)", op, dynamo.ErrSingular, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// NewDiagDense keeps the slice it is given; copy so callers can reuse theirs.
func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
