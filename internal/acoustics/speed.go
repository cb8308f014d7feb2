package acoustics

import "math"

const (
	// SpeedOfSoundAtZero is the speed of sound in dry air at 0 C, in m/s
	SpeedOfSoundAtZero = 331.3

	// AbsoluteZeroC is absolute zero in degrees Celsius
	AbsoluteZeroC = -273.15

	humidityCoefficient = 0.0124
)

// SpeedOfSound estimates the speed of sound in m/s for the given air
// temperature in Celsius and relative humidity as a fraction. Inputs are
// not checked; run ValidateAmbient first.
func SpeedOfSound(temperatureC, relativeHumidity float64) float64 {
	return SpeedOfSoundAtZero *
		math.Sqrt(1+temperatureC/-AbsoluteZeroC) *
		(1 + humidityCoefficient*relativeHumidity)
}
