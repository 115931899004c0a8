package domain

import "fmt"

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// LonLat returns the coordinates in GeoJSON [lon, lat] order.
func (c Coordinates) LonLat() [2]float64 { return [2]float64{c.Lon, c.Lat} }

// Valid reports whether latitude is in [-90, 90] and longitude in [-180, 180].
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}
