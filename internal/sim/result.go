package sim

// Result holds every recorded tick of a run. Row i of T, Td and Fb belongs
// to Times[i]; all rows share one backing array per series.
type Result struct {
	X     []float64
	Times []float64
	T     [][]float64
	Td    [][]float64
	// Fb is the upward inter-layer flux diagnosed at the start of each tick.
	Fb [][]float64

	StepsPerYear int
	StepsTaken   int
	Metrics      map[string]float64
}

// Shape returns (ticks, cells).
func (r *Result) Shape() (int, int) {
	return len(r.Times), len(r.X)
}

// Years is the simulated duration covered by the result.
func (r *Result) Years() int {
	if r.StepsPerYear == 0 {
		return 0
	}
	return len(r.Times) / r.StepsPerYear
}

// FinalYear returns a view of the last simulated year of output. The rows
// are shared with r.
func (r *Result) FinalYear() *Result {
	n := min(r.StepsPerYear, len(r.Times))
	from := len(r.Times) - n
	return &Result{
		X:            r.X,
		Times:        r.Times[from:],
		T:            r.T[from:],
		Td:           r.Td[from:],
		Fb:           r.Fb[from:],
		StepsPerYear: r.StepsPerYear,
		StepsTaken:   n,
		Metrics:      r.Metrics,
	}
}

// recorder pre-allocates every output slot and fills them in tick order.
type recorder struct {
	result *Result
	next   int
}

func newRecorder(x []float64, ticks, stepsPerYear int) *recorder {
	n := len(x)
	r := &Result{
		X:            append([]float64(nil), x...),
		Times:        make([]float64, ticks),
		T:            rows(ticks, n),
		Td:           rows(ticks, n),
		Fb:           rows(ticks, n),
		StepsPerYear: stepsPerYear,
		Metrics:      make(map[string]float64),
	}
	return &recorder{result: r}
}

func rows(ticks, n int) [][]float64 {
	slab := make([]float64, ticks*n)
	out := make([][]float64, ticks)
	for i := range out {
		out[i] = slab[i*n : (i+1)*n : (i+1)*n]
	}
	return out
}

func (r *recorder) record(t float64, temp, deep, fb []float64) {
	i := r.next
	r.result.Times[i] = t
	copy(r.result.T[i], temp)
	copy(r.result.Td[i], deep)
	copy(r.result.Fb[i], fb)
	r.next++
	r.result.StepsTaken = r.next
}
