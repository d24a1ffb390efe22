// Package dynamo provides the shared primitives of the two-layer energy
// balance model.
//
// The package defines the small set of types every other package speaks:
//
//   - [Field]: a scalar field sampled at the grid's cell centres
//   - [State]: the surface and deep temperature pair advanced each tick
//   - [Observer]: per-tick notification hook used by the engine
//   - [Metric]: a scalar diagnostic accumulated over a run
//
// # Example
//
//	s, _ := sim.New(sim.DefaultConfig())
//	s.AddMetric(metrics.NewMeanSurface())
//	result, _ := s.Run(ctx, forcing, coeffs)
//
// # Thread Safety
//
// A [State] is owned by exactly one engine run. Fields handed to observers
// are only valid for the duration of the callback; clone them to keep them.
package dynamo
