package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/experiment"
)

// Objective scores a finished run from its metrics; lower is better.
type Objective func(metrics map[string]float64) float64

// Target scores the distance of one metric from a wanted value.
func Target(metric string, want float64) Objective {
	return func(m map[string]float64) float64 {
		v, ok := m[metric]
		if !ok {
			return math.Inf(1)
		}
		return math.Abs(v - want)
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs base at every point of the grid and returns the parameters
// with the lowest score. Runs that fail numerically are skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var lastErr error

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		cfg := base.Clone()
		for name, val := range params {
			if err := cfg.SetParam(name, val); err != nil {
				return err
			}
		}

		exp := experiment.New(cfg, nil)
		if err := exp.Setup(); err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			lastErr = err
			return nil
		}

		if val := objective(result.Metrics); val < best {
			best = val
			bestParams = make(map[string]float64, len(params))
			for k, v := range params {
				bestParams[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, errors.Join(errors.New("grid search: no run succeeded"), lastErr)
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64) error) error {
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}
