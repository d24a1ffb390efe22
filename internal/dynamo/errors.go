package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrEmptyForcing indicates a forcing series with no years in it.
	ErrEmptyForcing = errors.New("dynamo: forcing series is empty")

	// ErrForcingLength indicates a forcing series whose length does not match the requested duration.
	ErrForcingLength = errors.New("dynamo: forcing length does not match duration")

	// ErrInvalidForcing indicates a forcing series holding NaN or Inf.
	ErrInvalidForcing = errors.New("dynamo: forcing contains non-finite values")

	// ErrInvalidState indicates a state with wrong dimensions or NaN/Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN, Inf or wrong size)")

	// ErrUnstable indicates the temperature fields diverged.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrSingular indicates the elimination matrix could not be inverted.
	ErrSingular = errors.New("dynamo: singular elimination matrix")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownSolver indicates a solver name with no registered implementation.
	ErrUnknownSolver = errors.New("dynamo: unknown solver")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
