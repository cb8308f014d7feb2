package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RMahshie/roommodes/internal/acoustics"
)

var speedFlags = map[string]string{
	"temp": "temp",
	"rh":   "rh",
}

func speedCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "speed",
		Short: "Estimate the speed of sound in air",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := loadConfig(cmd.Flags(), opts, speedFlags)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			if err := acoustics.ValidateAmbient(cfg.Ambient); err != nil {
				logViolations(err)
				return err
			}

			speed := acoustics.SpeedOfSound(cfg.Ambient.TemperatureC, cfg.Ambient.RelativeHumidity)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f m/s\n", speed)
			return err
		},
	}

	c.Flags().Float64("temp", 20, "air temperature in degrees Celsius")
	c.Flags().Float64("rh", 0.5, "relative humidity as a fraction, 0 < rh < 1")
	return c
}
