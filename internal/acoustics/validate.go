package acoustics

import (
	"math"

	"github.com/RMahshie/roommodes/pkg/models"
)

type checker struct {
	violations []Violation
}

func (c *checker) add(field string, value float64, msg string) {
	c.violations = append(c.violations, Violation{Field: field, Value: value, Message: msg})
}

func (c *checker) finite(field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		c.add(field, value, "must be a finite number")
		return false
	}
	return true
}

func (c *checker) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &ConfigurationError{Violations: c.violations}
}

func (c *checker) room(room models.RoomGeometry) {
	for _, axis := range models.Axes {
		field := "room." + dimensionName(axis)
		v := room.Dimension(axis)
		if c.finite(field, v) && v <= 0 {
			c.add(field, v, "must be greater than zero")
		}
	}
}

func (c *checker) speaker(room models.RoomGeometry, speaker models.SpeakerPosition) {
	for _, axis := range models.Axes {
		field := "speaker." + string(axis)
		v := speaker.Coordinate(axis)
		if !c.finite(field, v) {
			continue
		}
		if v < 0 {
			c.add(field, v, "must not be negative")
			continue
		}
		if d := room.Dimension(axis); d > 0 && v > d {
			c.add(field, v, "must lie inside the room")
		}
	}
}

func (c *checker) ambient(ambient models.AmbientConditions) {
	if c.finite("ambient.temperature_c", ambient.TemperatureC) && ambient.TemperatureC <= AbsoluteZeroC {
		c.add("ambient.temperature_c", ambient.TemperatureC, "must be above absolute zero")
	}
	rh := ambient.RelativeHumidity
	if c.finite("ambient.relative_humidity", rh) && !(rh > 0 && rh < 1) {
		c.add("ambient.relative_humidity", rh, "must satisfy 0 < rh < 1")
	}
}

func (c *checker) parameters(params models.AnalysisParameters) {
	if params.Harmonics < 1 {
		c.add("parameters.harmonics", float64(params.Harmonics), "must be at least 1")
	}
	if c.finite("parameters.cutoff_hz", params.CutoffHz) && params.CutoffHz <= 0 {
		c.add("parameters.cutoff_hz", params.CutoffHz, "must be greater than zero")
	}
}

// ValidateAmbient checks the inputs of SpeedOfSound
func ValidateAmbient(ambient models.AmbientConditions) error {
	var c checker
	c.ambient(ambient)
	return c.err()
}

// Validate checks every input of an analysis run and returns a
// *ConfigurationError naming all violations, or nil.
func Validate(room models.RoomGeometry, speaker models.SpeakerPosition, ambient models.AmbientConditions, params models.AnalysisParameters) error {
	var c checker
	c.room(room)
	c.speaker(room, speaker)
	c.ambient(ambient)
	c.parameters(params)
	return c.err()
}

func dimensionName(axis models.Axis) string {
	switch axis {
	case models.AxisX:
		return "length"
	case models.AxisY:
		return "width"
	default:
		return "height"
	}
}
