package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

const (
	DefaultB   = 2.1   // W m-2 K-1, OLR sensitivity
	DefaultCw  = 9.8   // W yr m-2 K-1, surface layer heat capacity
	DefaultCwd = 106.0 // W yr m-2 K-1, deep layer heat capacity
	DefaultS0  = 420.0 // W m-2
	DefaultS2  = 240.0 // W m-2
	DefaultA0  = 0.7
	DefaultA2  = 0.1
	DefaultTf  = -2.0 // degC, sea water freezing point
)

// Constants are the fixed physical parameters of a run.
type Constants struct {
	B   float64 `yaml:"b" json:"b"`
	Cw  float64 `yaml:"cw" json:"cw"`
	Cwd float64 `yaml:"cwd" json:"cwd"`
	S0  float64 `yaml:"s0" json:"s0"`
	S2  float64 `yaml:"s2" json:"s2"`
	A0  float64 `yaml:"a0" json:"a0"`
	A2  float64 `yaml:"a2" json:"a2"`
	Tf  float64 `yaml:"tf" json:"tf"`
}

func DefaultConstants() Constants {
	return Constants{
		B:   DefaultB,
		Cw:  DefaultCw,
		Cwd: DefaultCwd,
		S0:  DefaultS0,
		S2:  DefaultS2,
		A0:  DefaultA0,
		A2:  DefaultA2,
		Tf:  DefaultTf,
	}
}

func (c Constants) Validate() error {
	for name, v := range c.GetParams() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: constant %s is not finite", dynamo.ErrParameterBounds, name)
		}
	}
	if c.Cw <= 0 || c.Cwd <= 0 {
		return fmt.Errorf("%w: heat capacities must be positive (cw=%g, cwd=%g)", dynamo.ErrParameterBounds, c.Cw, c.Cwd)
	}
	if c.B < 0 {
		return fmt.Errorf("%w: b must be non-negative, got %g", dynamo.ErrParameterBounds, c.B)
	}
	return nil
}

// Insolation is the annual-mean incoming solar flux S(x) = S0 - S2 x^2.
func (c Constants) Insolation(x float64) float64 {
	return c.S0 - c.S2*x*x
}

// CoAlbedo is the absorbed fraction a(x) = a0 - a2 x^2.
func (c Constants) CoAlbedo(x float64) float64 {
	return c.A0 - c.A2*x*x
}

func (c Constants) GetParams() map[string]float64 {
	return map[string]float64{
		"b": c.B, "cw": c.Cw, "cwd": c.Cwd,
		"s0": c.S0, "s2": c.S2, "a0": c.A0, "a2": c.A2, "tf": c.Tf,
	}
}

func (c *Constants) SetParam(name string, value float64) error {
	switch name {
	case "b":
		c.B = value
	case "cw":
		c.Cw = value
	case "cwd":
		c.Cwd = value
	case "s0":
		c.S0 = value
	case "s2":
		c.S2 = value
	case "a0":
		c.A0 = value
	case "a2":
		c.A2 = value
	case "tf":
		c.Tf = value
	default:
		names := make([]string, 0, 8)
		for n := range c.GetParams() {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown constant %q (available: %v)", name, names)
	}
	return nil
}

// Coefficients are the caller-supplied parameters of a run.
type Coefficients struct {
	KvW float64 `yaml:"kv_w" json:"kv_w"` // open-water vertical exchange, W m-2 K-1
	KvI float64 `yaml:"kv_i" json:"kv_i"` // under-ice vertical exchange, W m-2 K-1
	Ds  float64 `yaml:"ds" json:"ds"`     // surface diffusivity, W m-2 K-1
	Dd  float64 `yaml:"dd" json:"dd"`     // deep diffusivity, W m-2 K-1
	A   float64 `yaml:"a" json:"a"`       // OLR at 0 degC, W m-2
}

func (c Coefficients) Validate() error {
	vals := []struct {
		name string
		v    float64
	}{{"kv_w", c.KvW}, {"kv_i", c.KvI}, {"ds", c.Ds}, {"dd", c.Dd}, {"a", c.A}}

	for _, p := range vals {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrParameterBounds, p.name)
		}
		if p.name != "a" && p.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", dynamo.ErrParameterBounds, p.name, p.v)
		}
	}
	return nil
}

func (c Coefficients) GetParams() map[string]float64 {
	return map[string]float64{
		"kv_w": c.KvW, "kv_i": c.KvI, "ds": c.Ds, "dd": c.Dd, "a": c.A,
	}
}

func (c *Coefficients) SetParam(name string, value float64) error {
	switch name {
	case "kv_w":
		c.KvW = value
	case "kv_i":
		c.KvI = value
	case "ds":
		c.Ds = value
	case "dd":
		c.Dd = value
	case "a":
		c.A = value
	default:
		return fmt.Errorf("unknown coefficient %q (available: [a dd ds kv_i kv_w])", name)
	}
	return nil
}
