package dto

type PointResponse struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type ListPointsResponse struct {
	Points []PointResponse `json:"points"`
}

type DistanceSummary struct {
	Min  float64 `json:"min_miles"`
	Max  float64 `json:"max_miles"`
	Mean float64 `json:"mean_miles"`
}

type PointStatsResponse struct {
	Count    int             `json:"count"`
	Nearest  DistanceSummary `json:"nearest"`
	Farthest DistanceSummary `json:"farthest"`
}
