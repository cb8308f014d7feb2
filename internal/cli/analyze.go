package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RMahshie/roommodes/internal/report"
	"github.com/RMahshie/roommodes/pkg/models"
)

var analyzeFlags = map[string]string{
	"length":    "dimensions.length",
	"width":     "dimensions.width",
	"height":    "dimensions.height",
	"xpos":      "xpos",
	"ypos":      "ypos",
	"zpos":      "zpos",
	"temp":      "temp",
	"rh":        "rh",
	"harmonics": "n",
	"lowpass":   "lowpass",
	"all-modes": "all_modes",
	"max-order": "max_order",
	"output":    "output",
	"format":    "format",
	"plot":      "plot",
}

func analyzeCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "analyze",
		Short: "Compute room modes and speaker-to-node distances",
		Example: `  roommodes analyze --length 8.4 --width 6.1 --height 2.5 --xpos 1.2 --ypos 1.5 --zpos 1.1
  roommodes analyze --config studio.toml --format json -o report.json --plot report.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := loadConfig(cmd.Flags(), opts, analyzeFlags)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			format := cfg.Output.Format
			if format != report.FormatText && format != report.FormatJSON {
				return fmt.Errorf("unsupported output format %q", format)
			}

			ctx := cmd.Context()
			svc, closeSvc, err := newProcessingService(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeSvc() }()

			rep, err := svc.RunAnalysis(ctx, cfg.Input())
			if err != nil {
				logViolations(err)
				return err
			}

			if cfg.Output.Path == "" {
				if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			} else {
				f, err := os.Create(cfg.Output.Path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				if err := writeAndClose(f, rep, format); err != nil {
					return err
				}
			}

			if cfg.Output.PlotPath != "" {
				if err := report.Plot(rep, cfg.Output.PlotPath); err != nil {
					return err
				}
				log.Info().Str("path", cfg.Output.PlotPath).Msg("Plot saved")
			}
			return nil
		},
	}

	f := c.Flags()
	f.Float64("length", 0, "room length in meters (x axis)")
	f.Float64("width", 0, "room width in meters (y axis)")
	f.Float64("height", 0, "room height in meters (z axis)")
	f.Float64("xpos", 0, "speaker distance from the x=0 wall in meters")
	f.Float64("ypos", 0, "speaker distance from the y=0 wall in meters")
	f.Float64("zpos", 0, "speaker distance from the floor in meters")
	f.Float64("temp", 20, "air temperature in degrees Celsius")
	f.Float64("rh", 0.5, "relative humidity as a fraction, 0 < rh < 1")
	f.IntP("harmonics", "n", 4, "maximum number of harmonics per axis")
	f.Float64("lowpass", 250, "frequency cutoff in Hz")
	f.Bool("all-modes", false, "also list tangential and oblique modes")
	f.Int("max-order", 0, "highest mode index for --all-modes (default: harmonics)")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.String("format", "text", "output format: text|json")
	f.String("plot", "", "save a distance chart to this image file (.png, .svg, .pdf)")

	return c
}

// writeAndClose renders rep into wc and closes it. A failed close means
// the report may be incomplete on disk.
func writeAndClose(wc io.WriteCloser, rep *models.AnalysisReport, format string) error {
	if err := report.Write(wc, rep, format); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}
