package domain

// A named location. Names are unique within a PointSet.
type Point struct {
	Name string
	Lat  float64
	Lon  float64
}

func (p Point) Coordinates() Coordinates { return Coordinates{Lat: p.Lat, Lon: p.Lon} }
