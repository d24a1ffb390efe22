package dynamo

import (
	"fmt"
	"math"
)

// Field is a scalar quantity sampled at every grid cell centre.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Mean is the unweighted average. On a grid uniform in sin(latitude) this
// is also the area-weighted hemispheric mean.
func (f Field) Mean() float64 {
	if len(f) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f {
		sum += v
	}
	return sum / float64(len(f))
}

// State is the surface (T) and deep ocean (Td) temperature pair.
type State struct {
	T  Field
	Td Field
}

// NewState allocates a zeroed state on n cells.
func NewState(n int) State {
	return State{T: make(Field, n), Td: make(Field, n)}
}

func (s State) Clone() State {
	return State{T: s.T.Clone(), Td: s.Td.Clone()}
}

func (s State) Len() int { return len(s.T) }

func (s State) IsValid() bool {
	return s.T.IsValid() && s.Td.IsValid()
}

// Check verifies the state has n cells in both layers and only finite values.
func (s State) Check(n int) error {
	if len(s.T) != n || len(s.Td) != n {
		return fmt.Errorf("%w: want %d cells, got T=%d Td=%d", ErrInvalidState, n, len(s.T), len(s.Td))
	}
	if !s.IsValid() {
		return ErrInvalidState
	}
	return nil
}

// Observer is notified after every tick with the new state and the
// inter-layer flux diagnosed during that tick.
type Observer interface {
	OnStep(step int, t float64, x State, fb Field)
}

type Metric interface {
	Name() string
	Observe(x State, fb Field, t float64)
	Value() float64
	Reset()
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(step int, t float64, x State, fb Field)

func (f ObserverFunc) OnStep(step int, t float64, x State, fb Field) { f(step, t, x, fb) }
