package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/forcing"
	"github.com/san-kum/oceanebm/internal/metrics"
	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/solver"
)

// DefaultStabilityLimit bounds |T| in degC for the stability metric.
const DefaultStabilityLimit = 100.0

type Registry struct {
	metrics map[string]func(x []float64, c physics.Constants) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func([]float64, physics.Constants) dynamo.Metric),
	}

	r.metrics["mean_surface_t"] = func([]float64, physics.Constants) dynamo.Metric { return metrics.NewMeanSurface() }
	r.metrics["mean_flux"] = func([]float64, physics.Constants) dynamo.Metric { return metrics.NewMeanFlux() }
	r.metrics["ice_area"] = func(_ []float64, c physics.Constants) dynamo.Metric { return metrics.NewIceArea(c.Tf) }
	r.metrics["ice_edge"] = func(x []float64, c physics.Constants) dynamo.Metric { return metrics.NewIceEdge(x, c.Tf) }
	r.metrics["heat_content"] = func(_ []float64, c physics.Constants) dynamo.Metric { return metrics.NewHeatContent(c.Cw, c.Cwd) }
	r.metrics["heat_drift"] = func(_ []float64, c physics.Constants) dynamo.Metric { return metrics.NewHeatDrift(c.Cw, c.Cwd) }
	r.metrics["stability"] = func([]float64, physics.Constants) dynamo.Metric { return metrics.NewStability(DefaultStabilityLimit) }

	return r
}

func (r *Registry) GetSolver(name string) (solver.Solver, error) {
	return solver.New(name)
}

func (r *Registry) GetMetric(name string, x []float64, c physics.Constants) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(x, c), nil
}

func (r *Registry) ListSolvers() []string { return solver.Names() }

func (r *Registry) ListForcings() []string { return forcing.Kinds() }

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metrics builds the named metrics, or every registered one when names is
// empty.
func (r *Registry) Metrics(names []string, x []float64, c physics.Constants) ([]dynamo.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(x, c), nil
	}
	out := make([]dynamo.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, x, c)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// DefaultMetrics returns one instance of every registered metric.
func (r *Registry) DefaultMetrics(x []float64, c physics.Constants) []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](x, c))
	}
	return out
}
