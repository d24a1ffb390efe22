package metrics

import (
	"github.com/san-kum/oceanebm/internal/analysis"
	"github.com/san-kum/oceanebm/internal/dynamo"
)

// MeanSurface is the time-mean global-mean surface temperature.
type MeanSurface struct {
	samples int
	sum     float64
}

func NewMeanSurface() *MeanSurface { return &MeanSurface{} }

func (m *MeanSurface) Name() string { return "mean_surface_t" }

func (m *MeanSurface) Observe(x dynamo.State, fb dynamo.Field, t float64) {
	m.sum += analysis.GlobalMean(x.T)
	m.samples++
}

func (m *MeanSurface) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSurface) Reset() { m.samples, m.sum = 0, 0 }

// MeanFlux is the time-mean global-mean upward inter-layer flux.
type MeanFlux struct {
	samples int
	sum     float64
}

func NewMeanFlux() *MeanFlux { return &MeanFlux{} }

func (m *MeanFlux) Name() string { return "mean_flux" }

func (m *MeanFlux) Observe(x dynamo.State, fb dynamo.Field, t float64) {
	m.sum += analysis.GlobalMean(fb)
	m.samples++
}

func (m *MeanFlux) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanFlux) Reset() { m.samples, m.sum = 0, 0 }

// IceEdge reports the ice edge of the last observed tick.
type IceEdge struct {
	x    []float64
	tf   float64
	edge float64
}

func NewIceEdge(x []float64, tf float64) *IceEdge {
	return &IceEdge{x: x, tf: tf, edge: 1}
}

func (e *IceEdge) Name() string { return "ice_edge" }

func (e *IceEdge) Observe(x dynamo.State, fb dynamo.Field, t float64) {
	e.edge = analysis.IceEdge(e.x, x.T, e.tf)
}

func (e *IceEdge) Value() float64 { return e.edge }

func (e *IceEdge) Reset() { e.edge = 1 }

// IceArea reports the ice-covered fraction of the hemisphere at the last
// observed tick.
type IceArea struct {
	tf   float64
	area float64
}

func NewIceArea(tf float64) *IceArea {
	return &IceArea{tf: tf}
}

func (a *IceArea) Name() string { return "ice_area" }

func (a *IceArea) Observe(x dynamo.State, fb dynamo.Field, t float64) {
	a.area = analysis.IceArea(x.T, a.tf)
}

func (a *IceArea) Value() float64 { return a.area }

func (a *IceArea) Reset() { a.area = 0 }
