package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// AnalysisInput carries everything one analysis run needs
type AnalysisInput struct {
	Room       RoomGeometry       `json:"room" required:"true" doc:"Room dimensions"`
	Speaker    SpeakerPosition    `json:"speaker" required:"true" doc:"Speaker position"`
	Ambient    AmbientConditions  `json:"ambient" required:"true" doc:"Ambient conditions"`
	Parameters AnalysisParameters `json:"parameters" required:"true" doc:"Harmonic count and cutoff"`

	// Optional mode tables
	IncludeRoomModes bool `json:"include_room_modes,omitempty" doc:"Also list axial, tangential and oblique modes"`
	MaxOrder         int  `json:"max_order,omitempty" minimum:"0" maximum:"32" doc:"Highest (p,q,r) index for the mode table, defaults to the harmonic count"`
}

// CreateAnalysisRequest represents a request to run a new analysis
type CreateAnalysisRequest struct {
	Body AnalysisInput
}

// CreateAnalysisResponse returns the freshly computed report
type CreateAnalysisResponse struct {
	Body *AnalysisReport
}

// GetAnalysisRequest represents a request to fetch a stored report
type GetAnalysisRequest struct {
	ID string `path:"id" doc:"Report ID"`
}

// GetAnalysisResponse returns a stored report
type GetAnalysisResponse struct {
	Body *AnalysisReport
}

// ListAnalysesRequest represents a request for recent reports
type ListAnalysesRequest struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of reports to return"`
}

// ListAnalysesResponseBody is the body of the list response
type ListAnalysesResponseBody struct {
	Reports []*AnalysisReport `json:"reports" doc:"Stored reports, newest first"`
}

// ListAnalysesResponse returns recent reports
type ListAnalysesResponse struct {
	Body ListAnalysesResponseBody
}

// DeleteAnalysisRequest represents a request to delete a stored report
type DeleteAnalysisRequest struct {
	ID string `path:"id" doc:"Report ID"`
}

// SpeedOfSoundRequest represents a speed of sound query
type SpeedOfSoundRequest struct {
	TemperatureC     float64 `query:"temperature_c" default:"20" doc:"Air temperature in degrees Celsius"`
	RelativeHumidity float64 `query:"relative_humidity" default:"0.5" doc:"Relative humidity as a fraction"`
}

// SpeedOfSoundResponseBody is the body of the speed of sound response
type SpeedOfSoundResponseBody struct {
	TemperatureC     float64 `json:"temperature_c" doc:"Air temperature in degrees Celsius"`
	RelativeHumidity float64 `json:"relative_humidity" doc:"Relative humidity as a fraction"`
	SpeedOfSound     float64 `json:"speed_of_sound" doc:"Speed of sound in m/s"`
}

// SpeedOfSoundResponse represents the speed of sound response
type SpeedOfSoundResponse struct {
	Body SpeedOfSoundResponseBody
}
