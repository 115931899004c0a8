package dto

type TourRequest struct {
	Name                 string `json:"name"`
	Comment              string `json:"comment"`
	SolverTimeoutSeconds int    `json:"solver_timeout_seconds"`
	// Export also writes the GeoJSON files to the configured results directory.
	Export bool `json:"export"`
}

type TourStopResponse struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type TourResponse struct {
	RunID              string             `json:"run_id"`
	Instance           string             `json:"instance"`
	PointCount         int                `json:"point_count"`
	TotalDistanceMiles float64            `json:"total_distance_miles"`
	Stops              []TourStopResponse `json:"stops"`
}

// TourGeoJSONResponse carries the point features and the closed polyline.
type TourGeoJSONResponse struct {
	RunID  string `json:"run_id"`
	Points any    `json:"points"`
	Line   any    `json:"line"`
}
