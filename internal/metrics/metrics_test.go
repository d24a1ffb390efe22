package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

func state(t, td float64, n int) dynamo.State {
	s := dynamo.NewState(n)
	for i := 0; i < n; i++ {
		s.T[i] = t
		s.Td[i] = td
	}
	return s
}

func TestHeatContent(t *testing.T) {
	m := NewHeatContent(10, 100)

	m.Observe(state(1, 2, 4), nil, 0)
	m.Observe(state(3, 2, 4), nil, 1)

	// (10*1 + 100*2 + 10*3 + 100*2) / 2
	if got := m.Value(); math.Abs(got-220) > 1e-12 {
		t.Errorf("heat content = %v, want 220", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero heat content after reset")
	}
}

func TestHeatDrift(t *testing.T) {
	m := NewHeatDrift(10, 100)

	m.Observe(state(1, 1, 3), nil, 0)
	m.Observe(state(1, 1.11, 3), nil, 1)
	m.Observe(state(1, 1.05, 3), nil, 2)

	if got := m.Value(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("drift = %v, want 0.1", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(50)
	if m.Value() != 1 {
		t.Error("empty stability should be 1")
	}

	m.Observe(state(10, 0, 2), nil, 0)
	m.Observe(state(80, 0, 2), nil, 1)

	if got := m.Value(); got != 0.5 {
		t.Errorf("stability = %v, want 0.5", got)
	}
}

func TestMeanSurfaceAndFlux(t *testing.T) {
	ms := NewMeanSurface()
	mf := NewMeanFlux()

	ms.Observe(state(2, 0, 2), dynamo.Field{1, 3}, 0)
	mf.Observe(state(2, 0, 2), dynamo.Field{1, 3}, 0)
	ms.Observe(state(4, 0, 2), dynamo.Field{-1, -1}, 1)
	mf.Observe(state(4, 0, 2), dynamo.Field{-1, -1}, 1)

	if ms.Value() != 3 {
		t.Errorf("mean surface = %v, want 3", ms.Value())
	}
	if mf.Value() != 0.5 {
		t.Errorf("mean flux = %v, want 0.5", mf.Value())
	}
}

func TestIceEdge(t *testing.T) {
	x := []float64{0.25, 0.75}
	m := NewIceEdge(x, -2)
	if m.Value() != 1 {
		t.Error("ice edge should start ice-free")
	}

	m.Observe(dynamo.State{T: dynamo.Field{5, -5}, Td: dynamo.Field{0, 0}}, nil, 0)
	if got := m.Value(); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("ice edge = %v, want 0.6", got)
	}
}

func TestIceArea(t *testing.T) {
	m := NewIceArea(-2)
	if m.Value() != 0 {
		t.Error("ice area should start at zero")
	}

	m.Observe(dynamo.State{T: dynamo.Field{5, -1, -2, -9}, Td: make(dynamo.Field, 4)}, nil, 0)
	if got := m.Value(); got != 0.5 {
		t.Errorf("ice area = %v, want 0.5", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero ice area after reset")
	}
}
