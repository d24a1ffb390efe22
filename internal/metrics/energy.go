package metrics

import (
	"math"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

// HeatContent is the time-mean global heat content Cw*T + Cwd*Td relative
// to 0 degC, in W yr m-2.
type HeatContent struct {
	name     string
	cw, cwd  float64
	samples  int
	totalSum float64
}

func NewHeatContent(cw, cwd float64) *HeatContent {
	return &HeatContent{name: "heat_content", cw: cw, cwd: cwd}
}

func (h *HeatContent) Name() string { return h.name }

func (h *HeatContent) Observe(x dynamo.State, fb dynamo.Field, t float64) {
	h.totalSum += columnHeat(x, h.cw, h.cwd)
	h.samples++
}

func (h *HeatContent) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.totalSum / float64(h.samples)
}

func (h *HeatContent) Reset() {
	h.totalSum = 0
	h.samples = 0
}

// HeatDrift is the largest relative change of global heat content from the
// first observed tick.
type HeatDrift struct {
	name     string
	cw, cwd  float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewHeatDrift(cw, cwd float64) *HeatDrift {
	return &HeatDrift{name: "heat_drift", cw: cw, cwd: cwd}
}

func (h *HeatDrift) Name() string { return h.name }

func (h *HeatDrift) Observe(x dynamo.State, fb dynamo.Field, t float64) {
	heat := columnHeat(x, h.cw, h.cwd)
	if h.samples == 0 {
		h.initial = heat
	}
	h.samples++

	if h.initial != 0 {
		drift := math.Abs(heat-h.initial) / math.Abs(h.initial)
		h.maxDrift = math.Max(h.maxDrift, drift)
	}
}

func (h *HeatDrift) Value() float64 {
	return h.maxDrift
}

func (h *HeatDrift) Reset() {
	h.initial = 0
	h.maxDrift = 0
	h.samples = 0
}

func columnHeat(x dynamo.State, cw, cwd float64) float64 {
	return cw*x.T.Mean() + cwd*x.Td.Mean()
}
