// Package forcing builds annual radiative forcing series, one value per
// simulated year.
package forcing

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/oceanebm/internal/dynamo"
)

// Constant returns years copies of value.
func Constant(years int, value float64) []float64 {
	f := make([]float64, years)
	for i := range f {
		f[i] = value
	}
	return f
}

// Ramp rises linearly from start in the first year to end in the last.
func Ramp(years int, start, end float64) []float64 {
	f := make([]float64, years)
	if years == 1 {
		f[0] = start
		return f
	}
	for i := range f {
		f[i] = start + (end-start)*float64(i)/float64(years-1)
	}
	return f
}

// Step is zero before onset and value from onset on, the abrupt-forcing
// experiment.
func Step(years, onset int, value float64) []float64 {
	f := make([]float64, years)
	for i := max(onset, 0); i < years; i++ {
		f[i] = value
	}
	return f
}

// Load reads a forcing series. Each non-empty, non-comment line holds
// either a value or "year,value"; years must be 0, 1, 2, ... in order.
func Load(r io.Reader) ([]float64, error) {
	var f []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, ",")
		raw := fields[len(fields)-1]
		if len(fields) == 2 {
			year, err := strconv.Atoi(strings.TrimSpace(fields[0]))
			if err != nil {
				if len(f) == 0 {
					continue // header row
				}
				return nil, fmt.Errorf("line %d: bad year %q", line, fields[0])
			}
			if year != len(f) {
				return nil, fmt.Errorf("%w: line %d: expected year %d, got %d", dynamo.ErrForcingLength, line, len(f), year)
			}
		} else if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected value or year,value", line)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		f = append(f, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return nil, dynamo.ErrEmptyForcing
	}
	return f, nil
}

func LoadFile(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}
