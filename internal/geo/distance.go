// Package geo computes great-circle distances on an idealized spherical Earth.
//
// Distances are straight-line surface distances, not driving distances.
package geo

import (
	"math"

	"tour-route-service/internal/domain"
)

const (
	// Earth radius in kilometers used by the TSPLIB GEOM weight type.
	DefaultRadiusKm = 6378.388
	KmPerMile       = 1.60934

	degToRad = math.Pi / 180.0
)

// Distance returns the great-circle distance between two lat/lon pairs given in
// degrees, on a sphere of radiusKm. The result is in kilometers, or in miles
// when unitMiles is set.
//
// The law-of-cosines value is clamped into [-1, 1] so antipodal points never
// reach acos with a value just outside its domain.
func Distance(lat1, lon1, lat2, lon2, radiusKm float64, unitMiles bool) float64 {
	// phi = 90 - lat (co-latitude), theta = longitude
	phi1 := (90.0 - lat1) * degToRad
	phi2 := (90.0 - lat2) * degToRad
	theta1 := lon1 * degToRad
	theta2 := lon2 * degToRad

	// cos(phi1)cos(phi2) + sin(phi1)sin(phi2)cos(dtheta), rearranged so that
	// identical points evaluate to exactly 1.
	cos := math.Cos(phi1-phi2) - math.Sin(phi1)*math.Sin(phi2)*(1-math.Cos(theta1-theta2))
	cos = math.Max(-1, math.Min(1, cos))

	length := math.Acos(cos) * radiusKm
	if unitMiles {
		length /= KmPerMile
	}
	return length
}

// Kilometers is Distance on the default sphere.
func Kilometers(a, b domain.Coordinates) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon, DefaultRadiusKm, false)
}

// Miles is Distance on the default sphere, converted to miles.
func Miles(a, b domain.Coordinates) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon, DefaultRadiusKm, true)
}
