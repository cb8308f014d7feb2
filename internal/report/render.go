// Package report renders analysis reports for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/RMahshie/roommodes/pkg/models"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders report to w in the given format
func Write(w io.Writer, report *models.AnalysisReport, format string) error {
	switch format {
	case FormatText, "":
		return writeText(w, report)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeText(w io.Writer, r *models.AnalysisReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if r.ID != "" {
		fmt.Fprintf(tw, "Report %s\n", r.ID)
	}
	fmt.Fprintf(tw, "Speed of sound: %.2f m/s (%.1f C, RH %.2f)\n",
		r.SpeedOfSound, r.Ambient.TemperatureC, r.Ambient.RelativeHumidity)
	fmt.Fprintf(tw, "Room: %.2f x %.2f x %.2f m, speaker at (%.2f, %.2f, %.2f) m\n",
		r.Room.Length, r.Room.Width, r.Room.Height, r.Speaker.X, r.Speaker.Y, r.Speaker.Z)
	fmt.Fprintf(tw, "Harmonics: %d, cutoff %.1f Hz\n", r.Parameters.Harmonics, r.Parameters.CutoffHz)

	for _, axis := range models.Axes {
		a, ok := r.Axes[axis]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "\nAxis %s (dimension %.2f m, speaker %.2f m)\n", a.Axis, a.DimensionM, a.SpeakerM)
		if len(a.Entries) == 0 {
			fmt.Fprintln(tw, "  no axial modes below the cutoff")
			continue
		}
		fmt.Fprintln(tw, "  HARMONIC\tFREQUENCY (Hz)\tWAVELENGTH (m)\tNODES\tNEAREST NODE (m)\tDISTANCE (m)")
		for _, e := range a.Entries {
			nearest, distance := "-", e.Error
			if e.HasNode() {
				nearest = fmt.Sprintf("%.3f", *e.NearestNodeM)
				distance = fmt.Sprintf("%.3f", *e.Distance)
			}
			fmt.Fprintf(tw, "  %d\t%.2f\t%.3f\t%d\t%s\t%s\n",
				e.Harmonic, e.FrequencyHz, e.WavelengthM, e.NodeCount, nearest, distance)
		}
	}

	if len(r.CombinedModes) > 0 {
		fmt.Fprintln(tw, "\nCombined modes (equal index on all axes)")
		for i, f := range r.CombinedModes {
			fmt.Fprintf(tw, "  %d\t%.2f Hz\n", i+1, f)
		}
	}

	if len(r.RoomModes) > 0 {
		fmt.Fprintln(tw, "\nRoom modes")
		fmt.Fprintln(tw, "  (p,q,r)\tKIND\tFREQUENCY (Hz)")
		for _, m := range r.RoomModes {
			fmt.Fprintf(tw, "  (%d,%d,%d)\t%s\t%.2f\n", m.P, m.Q, m.R, m.Kind, m.FrequencyHz)
		}
	}

	return tw.Flush()
}
