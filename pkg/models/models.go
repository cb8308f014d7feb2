package models

import (
	"time"
)

// Axis identifies one of the three principal axes of the room
type Axis string

const (
	AxisX Axis = "x" // along the room length
	AxisY Axis = "y" // along the room width
	AxisZ Axis = "z" // along the room height
)

// Axes lists the principal axes in report order
var Axes = []Axis{AxisX, AxisY, AxisZ}

// RoomGeometry holds the interior dimensions of a rectangular room in meters
type RoomGeometry struct {
	Length float64 `json:"length" exclusiveMinimum:"0" doc:"Room length in meters (x axis)"`
	Width  float64 `json:"width" exclusiveMinimum:"0" doc:"Room width in meters (y axis)"`
	Height float64 `json:"height" exclusiveMinimum:"0" doc:"Room height in meters (z axis)"`
}

// Dimension returns the room dimension measured along the given axis
func (r RoomGeometry) Dimension(axis Axis) float64 {
	switch axis {
	case AxisX:
		return r.Length
	case AxisY:
		return r.Width
	case AxisZ:
		return r.Height
	}
	return 0
}

// SpeakerPosition is the speaker offset from the origin corner along each axis
type SpeakerPosition struct {
	X float64 `json:"x" minimum:"0" doc:"Offset along the room length in meters"`
	Y float64 `json:"y" minimum:"0" doc:"Offset along the room width in meters"`
	Z float64 `json:"z" minimum:"0" doc:"Offset along the room height in meters"`
}

// Coordinate returns the speaker coordinate on the given axis
func (s SpeakerPosition) Coordinate(axis Axis) float64 {
	switch axis {
	case AxisX:
		return s.X
	case AxisY:
		return s.Y
	case AxisZ:
		return s.Z
	}
	return 0
}

// AmbientConditions describes the air the sound travels through
type AmbientConditions struct {
	TemperatureC     float64 `json:"temperature_c" doc:"Air temperature in degrees Celsius"`
	RelativeHumidity float64 `json:"relative_humidity" exclusiveMinimum:"0" exclusiveMaximum:"1" doc:"Relative humidity as a fraction"`
}

// AnalysisParameters bounds the modes considered per axis
type AnalysisParameters struct {
	Harmonics int     `json:"harmonics" minimum:"1" doc:"Number of harmonics to evaluate per axis"`
	CutoffHz  float64 `json:"cutoff_hz" exclusiveMinimum:"0" doc:"Modes at or above this frequency are excluded"`
}

// ProximityEntry pairs one modal frequency with the speaker's distance to
// the nearest pressure node of that mode. Distance is nil when the mode has
// no node inside the room; Error then says why.
type ProximityEntry struct {
	Harmonic     int      `json:"harmonic" doc:"Harmonic number n of the axial mode, 0 when the frequency is invalid"`
	FrequencyHz  float64  `json:"frequency_hz" doc:"Modal frequency in Hz"`
	WavelengthM  float64  `json:"wavelength_m" doc:"Wavelength in meters"`
	NodeCount    int      `json:"node_count" doc:"Number of pressure nodes strictly inside the room"`
	NearestNodeM *float64 `json:"nearest_node_m" doc:"Position of the node closest to the speaker"`
	Distance     *float64 `json:"distance_m" doc:"Distance from the speaker to the nearest node, null when there is none"`
	Error        string   `json:"error,omitempty" doc:"Reason no distance could be computed"`
}

// HasNode reports whether a distance was computed for this entry
func (e ProximityEntry) HasNode() bool {
	return e.Distance != nil
}

// AxisReport is the proximity result for one axis
type AxisReport struct {
	Axis       Axis             `json:"axis" enum:"x,y,z" doc:"Axis identifier"`
	DimensionM float64          `json:"dimension_m" doc:"Room dimension along this axis"`
	SpeakerM   float64          `json:"speaker_m" doc:"Speaker coordinate along this axis"`
	Modes      []float64        `json:"modes_hz" doc:"Axial modal frequencies below the cutoff"`
	Entries    []ProximityEntry `json:"entries" doc:"One entry per mode, in mode order"`
	Errors     []string         `json:"errors,omitempty" doc:"Per-mode computation errors"`
}

// Failed reports whether any mode on this axis could not be evaluated
func (a AxisReport) Failed() bool {
	return len(a.Errors) > 0
}

// ModeKind classifies a room mode by how many axes it involves
type ModeKind string

const (
	ModeAxial      ModeKind = "axial"
	ModeTangential ModeKind = "tangential"
	ModeOblique    ModeKind = "oblique"
)

// RoomMode is a single (p, q, r) resonance of the room
type RoomMode struct {
	P           int      `json:"p" doc:"Half-wavelength count along the length"`
	Q           int      `json:"q" doc:"Half-wavelength count along the width"`
	R           int      `json:"r" doc:"Half-wavelength count along the height"`
	Kind        ModeKind `json:"kind" enum:"axial,tangential,oblique" doc:"Mode classification"`
	FrequencyHz float64  `json:"frequency_hz" doc:"Modal frequency in Hz"`
}

// AnalysisReport is the complete result of one analysis run
type AnalysisReport struct {
	ID            string              `json:"id" doc:"Report unique identifier"`
	Room          RoomGeometry        `json:"room" doc:"Room dimensions"`
	Speaker       SpeakerPosition     `json:"speaker" doc:"Speaker position"`
	Ambient       AmbientConditions   `json:"ambient" doc:"Ambient conditions"`
	Parameters    AnalysisParameters  `json:"parameters" doc:"Analysis bounds"`
	SpeedOfSound  float64             `json:"speed_of_sound" doc:"Speed of sound in m/s"`
	Axes          map[Axis]AxisReport `json:"axes" doc:"Proximity results keyed by axis"`
	CombinedModes []float64           `json:"combined_modes_hz,omitempty" doc:"Equal-index combined modes below the cutoff"`
	RoomModes     []RoomMode          `json:"room_modes,omitempty" doc:"Axial, tangential and oblique modes below the cutoff"`
	ArchiveKey    *string             `json:"archive_key,omitempty" doc:"Object storage key of the archived report"`
	ArchiveURL    *string             `json:"archive_url,omitempty" doc:"Presigned download URL of the archived report, set when it is served"`
	CreatedAt     time.Time           `json:"created_at" doc:"Report creation timestamp"`
}

// Partial reports whether at least one axis carries an error marker
func (r *AnalysisReport) Partial() bool {
	for _, a := range r.Axes {
		if a.Failed() {
			return true
		}
	}
	return false
}
