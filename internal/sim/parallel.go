package sim

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/san-kum/oceanebm/internal/physics"
)

// Compare runs the same input once per solver name, concurrently. Results
// are returned in the order of names.
func Compare(ctx context.Context, cfg Config, names []string, forcing []float64, coeffs physics.Coefficients, logger *zap.Logger) ([]*Result, error) {
	sims := make([]*Simulator, len(names))
	for i, name := range names {
		c := cfg
		c.Solver = name
		s, err := New(c, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		sims[i] = s
	}

	results := make([]*Result, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i := range sims {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = sims[idx].Run(ctx, forcing, coeffs)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
