package analysis

import "gonum.org/v1/gonum/floats"

// GlobalMean is the area-weighted mean of a field on a grid uniform in
// sin(latitude), which reduces to the plain mean.
func GlobalMean(field []float64) float64 {
	if len(field) == 0 {
		return 0
	}
	return floats.Sum(field) / float64(len(field))
}

func GlobalMeanSeries(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = GlobalMean(row)
	}
	return out
}

// IceEdge returns the x = sin(latitude) where the surface temperature
// first drops to the freezing point tf, scanning from the equator, with
// linear interpolation between cell centres. It returns 1 for an ice-free
// hemisphere and 0 when the equatorial cell is already frozen.
func IceEdge(x, t []float64, tf float64) float64 {
	if len(t) == 0 || t[0] <= tf {
		return 0
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= tf {
			frac := (t[i-1] - tf) / (t[i-1] - t[i])
			return x[i-1] + frac*(x[i]-x[i-1])
		}
	}
	return 1
}

func IceEdgeSeries(x []float64, rows [][]float64, tf float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = IceEdge(x, row, tf)
	}
	return out
}

// IceArea is the fraction of the hemisphere under ice.
func IceArea(t []float64, tf float64) float64 {
	if len(t) == 0 {
		return 0
	}
	frozen := 0
	for _, v := range t {
		if v <= tf {
			frozen++
		}
	}
	return float64(frozen) / float64(len(t))
}
