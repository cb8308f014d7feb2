package acoustics

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/RMahshie/roommodes/pkg/models"
)

// AxialModes returns the axial mode frequencies along one dimension for
// harmonics 1..harmonics, stopping at the first one that meets or exceeds
// cutoff. The result is strictly increasing and may be empty.
func AxialModes(dimension float64, harmonics int, speed, cutoff float64) []float64 {
	// The cutoff usually ends the loop long before harmonics does, so the
	// harmonic count is no capacity hint.
	modes := []float64{}
	for i := 1; i <= harmonics; i++ {
		f := speed / 2 * float64(i) / dimension
		// NaN fails the comparison too
		if !(f < cutoff) {
			break
		}
		modes = append(modes, f)
	}
	return modes
}

// CombinedMode returns the frequency of the mode with the same harmonic
// index i along all three dimensions.
func CombinedMode(room models.RoomGeometry, i int, speed float64) float64 {
	n := float64(i)
	return speed / 2 * math.Sqrt(
		math.Pow(n/room.Length, 2)+
			math.Pow(n/room.Width, 2)+
			math.Pow(n/room.Height, 2))
}

// CombinedModes yields (i, CombinedMode(room, i, speed)) for i = 1, 2, ...
// without end. Callers must stop ranging; TakeCombined does it for them.
func CombinedModes(room models.RoomGeometry, speed float64) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := 1; ; i++ {
			if !yield(i, CombinedMode(room, i, speed)) {
				return
			}
		}
	}
}

// TakeCombined collects at most maxHarmonic frequencies from seq, stopping
// early at the first one that meets or exceeds cutoff.
func TakeCombined(seq iter.Seq2[int, float64], maxHarmonic int, cutoff float64) []float64 {
	var out []float64
	if maxHarmonic < 1 {
		return out
	}
	for i, f := range seq {
		if !(f < cutoff) {
			break
		}
		out = append(out, f)
		if i >= maxHarmonic {
			break
		}
	}
	return out
}

// ModeFrequency returns the frequency of the (p, q, r) mode of the room,
// where each index counts half wavelengths along length, width and height.
func ModeFrequency(room models.RoomGeometry, p, q, r int, speed float64) float64 {
	return speed / 2 * math.Sqrt(
		math.Pow(float64(p)/room.Length, 2)+
			math.Pow(float64(q)/room.Width, 2)+
			math.Pow(float64(r)/room.Height, 2))
}

// Classify names a (p, q, r) mode by the number of non-zero indices
func Classify(p, q, r int) models.ModeKind {
	nonZero := 0
	for _, n := range []int{p, q, r} {
		if n != 0 {
			nonZero++
		}
	}
	switch nonZero {
	case 1:
		return models.ModeAxial
	case 2:
		return models.ModeTangential
	default:
		return models.ModeOblique
	}
}

// RoomModes enumerates every axial, tangential and oblique mode with all
// indices at most maxOrder and a frequency below cutoff, sorted by
// frequency.
func RoomModes(room models.RoomGeometry, speed float64, maxOrder int, cutoff float64) []models.RoomMode {
	var modes []models.RoomMode
	for p := 0; p <= maxOrder; p++ {
		for q := 0; q <= maxOrder; q++ {
			for r := 0; r <= maxOrder; r++ {
				if p == 0 && q == 0 && r == 0 {
					continue
				}
				f := ModeFrequency(room, p, q, r, speed)
				if !(f < cutoff) {
					continue
				}
				modes = append(modes, models.RoomMode{
					P:           p,
					Q:           q,
					R:           r,
					Kind:        Classify(p, q, r),
					FrequencyHz: f,
				})
			}
		}
	}

	slices.SortFunc(modes, func(a, b models.RoomMode) int {
		return cmp.Or(
			cmp.Compare(a.FrequencyHz, b.FrequencyHz),
			cmp.Compare(a.P, b.P),
			cmp.Compare(a.Q, b.Q),
			cmp.Compare(a.R, b.R),
		)
	})
	return modes
}
