package acoustics

import (
	"errors"

	"github.com/RMahshie/roommodes/pkg/models"
)

// MaxModeOrder bounds the (p, q, r) enumeration of RoomModes
const MaxModeOrder = 32

// Run validates the input and performs a full analysis. It returns a
// *ConfigurationError and no report when the input is invalid. Otherwise
// the report is complete or carries per-axis error markers for modes that
// could not be evaluated. Run leaves the report ID and timestamp unset.
func Run(in models.AnalysisInput) (*models.AnalysisReport, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	speed := SpeedOfSound(in.Ambient.TemperatureC, in.Ambient.RelativeHumidity)
	n, cutoff := in.Parameters.Harmonics, in.Parameters.CutoffHz

	modes := make(map[models.Axis][]float64, len(models.Axes))
	for _, axis := range models.Axes {
		modes[axis] = AxialModes(in.Room.Dimension(axis), n, speed, cutoff)
	}

	// Per-mode failures are already recorded on the axis reports.
	axes, _ := Analyze(in.Room, modes, in.Speaker, speed)

	report := &models.AnalysisReport{
		Room:          in.Room,
		Speaker:       in.Speaker,
		Ambient:       in.Ambient,
		Parameters:    in.Parameters,
		SpeedOfSound:  speed,
		Axes:          axes,
		CombinedModes: TakeCombined(CombinedModes(in.Room, speed), n, cutoff),
	}

	if in.IncludeRoomModes {
		order := in.MaxOrder
		if order == 0 {
			order = min(n, MaxModeOrder)
		}
		report.RoomModes = RoomModes(in.Room, speed, order, cutoff)
	}

	return report, nil
}

// validateInput runs Validate and adds the mode table bound to whatever it
// reports.
func validateInput(in models.AnalysisInput) error {
	err := Validate(in.Room, in.Speaker, in.Ambient, in.Parameters)
	if in.MaxOrder >= 0 && in.MaxOrder <= MaxModeOrder {
		return err
	}

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		cfgErr = &ConfigurationError{}
	}
	cfgErr.Violations = append(cfgErr.Violations, Violation{
		Field:   "max_order",
		Value:   float64(in.MaxOrder),
		Message: "must be between 0 and 32",
	})
	return cfgErr
}
