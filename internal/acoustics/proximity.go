package acoustics

import (
	"errors"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/RMahshie/roommodes/pkg/models"
)

// wallTolerance is the relative distance from the far wall inside which a
// node is treated as lying on the wall.
const wallTolerance = 1e-9

// NodePositions returns the pressure node positions k*wavelength/2,
// k = 1, 2, ..., that lie strictly inside a room of the given dimension.
func NodePositions(dimension, wavelength float64) []float64 {
	half := wavelength / 2
	if !(half > 0) || math.IsInf(half, 0) {
		return nil
	}

	limit := dimension * (1 - wallTolerance)
	var nodes []float64
	for k := 1; float64(k)*half < limit; k++ {
		nodes = append(nodes, float64(k)*half)
	}
	return nodes
}

// AnalyzeAxis computes, for every mode in order, the distance from the
// speaker coordinate to the nearest pressure node inside the room. The
// report always holds one entry per mode. Modes that cannot be evaluated
// get an entry without a distance, and the returned error joins one
// *DomainComputationError per such mode.
func AnalyzeAxis(axis models.Axis, dimension float64, modes []float64, speaker, speed float64) (models.AxisReport, error) {
	report := models.AxisReport{
		Axis:       axis,
		DimensionM: dimension,
		SpeakerM:   speaker,
		Modes:      modes,
		Entries:    make([]models.ProximityEntry, 0, len(modes)),
	}

	var errs []error
	for _, f := range modes {
		entry := models.ProximityEntry{
			Harmonic:    HarmonicNumber(f, dimension, speed),
			FrequencyHz: f,
		}

		cause := evaluate(&entry, dimension, speaker, speed)
		if cause != nil {
			err := &DomainComputationError{
				Axis:        axis,
				Harmonic:    entry.Harmonic,
				FrequencyHz: f,
				Err:         cause,
			}
			entry.Error = cause.Error()
			report.Errors = append(report.Errors, err.Error())
			errs = append(errs, err)
		}
		report.Entries = append(report.Entries, entry)
	}

	return report, errors.Join(errs...)
}

// HarmonicNumber returns the n for which f = n*speed/(2*dimension), rounded
// to the nearest integer, or 0 when f is not a positive finite frequency.
func HarmonicNumber(f, dimension, speed float64) int {
	n := math.Round(f * 2 * dimension / speed)
	if !(n >= 1) || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

func evaluate(entry *models.ProximityEntry, dimension, speaker, speed float64) error {
	f := entry.FrequencyHz
	if !(f > 0) || math.IsInf(f, 0) {
		return ErrInvalidFrequency
	}

	wavelength := speed / f
	if !(wavelength > 0) || math.IsInf(wavelength, 0) {
		return ErrInvalidFrequency
	}
	entry.WavelengthM = wavelength

	nodes := NodePositions(dimension, wavelength)
	entry.NodeCount = len(nodes)
	if len(nodes) == 0 {
		return ErrNoInteriorNode
	}

	distances := make([]float64, len(nodes))
	for k, node := range nodes {
		distances[k] = math.Abs(speaker - node)
	}
	idx := floats.MinIdx(distances)

	nearest, distance := nodes[idx], distances[idx]
	entry.NearestNodeM = &nearest
	entry.Distance = &distance
	return nil
}

// Analyze runs AnalyzeAxis for x against the length, y against the width
// and z against the height, each with its own mode set. Axes are evaluated
// concurrently and a failure on one never stops the others.
func Analyze(room models.RoomGeometry, modes map[models.Axis][]float64, speaker models.SpeakerPosition, speed float64) (map[models.Axis]models.AxisReport, error) {
	reports := make([]models.AxisReport, len(models.Axes))
	errs := make([]error, len(models.Axes))

	var g errgroup.Group
	for i, axis := range models.Axes {
		g.Go(func() error {
			reports[i], errs[i] = AnalyzeAxis(axis, room.Dimension(axis), modes[axis], speaker.Coordinate(axis), speed)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[models.Axis]models.AxisReport, len(models.Axes))
	for i, axis := range models.Axes {
		out[axis] = reports[i]
	}
	return out, errors.Join(errs...)
}
