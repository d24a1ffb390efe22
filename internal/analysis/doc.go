// Package analysis reduces model output to climate diagnostics.
//
//   - [GlobalMean]: area-weighted hemispheric mean of a field
//   - [IceEdge]: sin(latitude) of the sea-ice edge
//   - [PowerSpectrum]: spectrum of a scalar time series
//   - [DominantPeriod]: period of the strongest non-zero frequency
//
// # Example
//
//	means := analysis.GlobalMeanSeries(result.T)
//	period := analysis.DominantPeriod(means, 1.0/float64(result.StepsPerYear))
package analysis
