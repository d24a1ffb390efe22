package physics

// OpenWater reports whether the surface is ice-free.
func OpenWater(t, tf float64) bool {
	return t > tf
}

// FluxCoefficient selects the vertical exchange coefficient for one cell.
func FluxCoefficient(t, tf, kvW, kvI float64) float64 {
	if OpenWater(t, tf) {
		return kvW
	}
	return kvI
}

// InterLayerFlux is the upward heat flux into the surface layer. Under ice
// the surface side is pinned at the freezing point, so only the deep term
// remains.
func InterLayerFlux(t, td, tf, kvW, kvI float64) float64 {
	kv := FluxCoefficient(t, tf, kvW, kvI)
	fb := kv * (td - tf)
	if OpenWater(t, tf) {
		fb -= kv * (t - tf)
	}
	return fb
}
