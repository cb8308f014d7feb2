package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/roommodes/internal/api/handlers"
	"github.com/RMahshie/roommodes/internal/processing"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, processingSvc processing.ProcessingService) {
	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(processingSvc)

	// Register analysis routes
	huma.Register(api, huma.Operation{
		OperationID: "createAnalysis",
		Method:      http.MethodPost,
		Path:        "/api/analyses",
		Summary:     "Run a new analysis",
		Description: "Computes room modes and speaker-to-node proximity per axis, stores and returns the report",
		Tags:        []string{"Analysis"},
	}, analysisHandler.CreateAnalysis)

	huma.Register(api, huma.Operation{
		OperationID: "getAnalysis",
		Method:      http.MethodGet,
		Path:        "/api/analyses/{id}",
		Summary:     "Get analysis report",
		Description: "Returns a previously computed report",
		Tags:        []string{"Analysis"},
	}, analysisHandler.GetAnalysis)

	huma.Register(api, huma.Operation{
		OperationID: "listAnalyses",
		Method:      http.MethodGet,
		Path:        "/api/analyses",
		Summary:     "List analysis reports",
		Description: "Returns the most recent reports, newest first",
		Tags:        []string{"Analysis"},
	}, analysisHandler.ListAnalyses)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteAnalysis",
		Method:        http.MethodDelete,
		Path:          "/api/analyses/{id}",
		Summary:       "Delete analysis report",
		Description:   "Removes a stored report and its archived copy",
		Tags:          []string{"Analysis"},
		DefaultStatus: http.StatusNoContent,
	}, analysisHandler.DeleteAnalysis)

	huma.Register(api, huma.Operation{
		OperationID: "speedOfSound",
		Method:      http.MethodGet,
		Path:        "/api/speed-of-sound",
		Summary:     "Speed of sound",
		Description: "Estimates the speed of sound from temperature and relative humidity",
		Tags:        []string{"Acoustics"},
	}, analysisHandler.SpeedOfSound)
}
