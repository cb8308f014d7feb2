package acoustics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RMahshie/roommodes/pkg/models"
)

var (
	// ErrInvalidConfiguration matches every *ConfigurationError
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoInteriorNode means a mode has no pressure node strictly inside the room
	ErrNoInteriorNode = errors.New("no interior node")

	// ErrInvalidFrequency means a modal frequency is zero, negative or not finite
	ErrInvalidFrequency = errors.New("invalid modal frequency")
)

// Violation describes one input that failed validation
type Violation struct {
	Field   string
	Value   float64
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s=%g: %s", v.Field, v.Value, v.Message)
}

// ConfigurationError lists every input that failed validation. No part of
// the analysis runs when one is returned.
type ConfigurationError struct {
	Violations []Violation
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, strings.Join(parts, "; "))
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// DomainComputationError marks a single mode on a single axis that could
// not be evaluated.
type DomainComputationError struct {
	Axis        models.Axis
	Harmonic    int
	FrequencyHz float64
	Err         error
}

func (e *DomainComputationError) Error() string {
	if e.Harmonic == 0 {
		return fmt.Sprintf("axis %s mode at %g Hz: %v", e.Axis, e.FrequencyHz, e.Err)
	}
	return fmt.Sprintf("axis %s harmonic %d (%.2f Hz): %v", e.Axis, e.Harmonic, e.FrequencyHz, e.Err)
}

func (e *DomainComputationError) Unwrap() error {
	return e.Err
}
