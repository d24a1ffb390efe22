package forcing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  []float64
		want []float64
	}{
		{"constant", Constant(3, 1.5), []float64{1.5, 1.5, 1.5}},
		{"ramp", Ramp(5, 0, 4), []float64{0, 1, 2, 3, 4}},
		{"single year ramp", Ramp(1, 2, 9), []float64{2}},
		{"step", Step(5, 2, 7.4), []float64{0, 0, 7.4, 7.4, 7.4}},
		{"step from start", Step(2, -3, 1), []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(tt.got), len(tt.want))
			}
			for i := range tt.want {
				if tt.got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	in := `# abrupt 2xCO2
year,forcing
0,0
1,3.7
2, 3.7
`
	f, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f) != 3 || f[1] != 3.7 || f[2] != 3.7 {
		t.Errorf("unexpected series %v", f)
	}

	f, err = Load(strings.NewReader("1\n2\n\n3\n"))
	if err != nil {
		t.Fatalf("load bare values: %v", err)
	}
	if len(f) != 3 {
		t.Errorf("expected 3 values, got %v", f)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(strings.NewReader("# nothing\n")); !errors.Is(err, dynamo.ErrEmptyForcing) {
		t.Errorf("expected ErrEmptyForcing, got %v", err)
	}
	if _, err := Load(strings.NewReader("0,1\n2,1\n")); !errors.Is(err, dynamo.ErrForcingLength) {
		t.Errorf("expected ErrForcingLength for a gap, got %v", err)
	}
	if _, err := Load(strings.NewReader("abc\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestSpecBuild(t *testing.T) {
	f, err := Spec{Kind: "ramp", Years: 3, Start: 0, End: 2}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if f[2] != 2 {
		t.Errorf("unexpected ramp %v", f)
	}

	f, err = Spec{Years: 2, Value: 1}.Build()
	if err != nil || len(f) != 2 {
		t.Errorf("default kind should be constant: %v %v", f, err)
	}

	if _, err := (Spec{Kind: "sine", Years: 2}).Build(); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := (Spec{Kind: "constant"}).Build(); !errors.Is(err, dynamo.ErrEmptyForcing) {
		t.Errorf("expected ErrEmptyForcing, got %v", err)
	}
}

func TestSpecBuild_FileLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forcing.csv")
	if err := os.WriteFile(path, []byte("1\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (Spec{Kind: "file", Path: path}).Build(); err != nil {
		t.Errorf("file without years: %v", err)
	}
	if _, err := (Spec{Kind: "file", Path: path, Years: 5}).Build(); !errors.Is(err, dynamo.ErrForcingLength) {
		t.Errorf("expected ErrForcingLength, got %v", err)
	}
}
