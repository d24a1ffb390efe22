package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns |FFT| of the de-meaned series for the
// non-negative frequencies k/(n*dt), k = 0..n/2.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	centred := make([]float64, len(series))
	copy(centred, series)
	floats.AddConst(-GlobalMean(series), centred)

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in the units of dt, of the strongest
// non-zero frequency, or 0 if the series is flat.
func DominantPeriod(series []float64, dt float64) float64 {
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0
	}
	k := floats.MaxIdx(ps[1:]) + 1
	if ps[k] == 0 {
		return 0
	}
	return float64(len(series)) * dt / float64(k)
}
