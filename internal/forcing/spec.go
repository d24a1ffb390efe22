package forcing

import (
	"fmt"
	"sort"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

// Spec describes a forcing series in a run file.
type Spec struct {
	Kind  string  `yaml:"kind" json:"kind"`
	Years int     `yaml:"years" json:"years"`
	Value float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Start float64 `yaml:"start,omitempty" json:"start,omitempty"`
	End   float64 `yaml:"end,omitempty" json:"end,omitempty"`
	Onset int     `yaml:"onset,omitempty" json:"onset,omitempty"`
	Path  string  `yaml:"path,omitempty" json:"path,omitempty"`
}

var builders = map[string]func(s Spec) ([]float64, error){
	"constant": func(s Spec) ([]float64, error) { return Constant(s.Years, s.Value), nil },
	"ramp":     func(s Spec) ([]float64, error) { return Ramp(s.Years, s.Start, s.End), nil },
	"step":     func(s Spec) ([]float64, error) { return Step(s.Years, s.Onset, s.Value), nil },
	"file":     func(s Spec) ([]float64, error) { return LoadFile(s.Path) },
}

func Kinds() []string {
	kinds := make([]string, 0, len(builders))
	for k := range builders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Build produces the series. For "file" a non-zero Years must match the
// file's length.
func (s Spec) Build() ([]float64, error) {
	kind := s.Kind
	if kind == "" {
		kind = "constant"
	}
	build, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown forcing kind %q (available: %v)", s.Kind, Kinds())
	}
	if kind != "file" && s.Years <= 0 {
		return nil, dynamo.ErrEmptyForcing
	}

	f, err := build(s)
	if err != nil {
		return nil, err
	}
	if s.Years > 0 && len(f) != s.Years {
		return nil, fmt.Errorf("%w: want %d years, got %d", dynamo.ErrForcingLength, s.Years, len(f))
	}
	return f, nil
}
