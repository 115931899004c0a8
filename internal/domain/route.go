package domain

// Represents a validated closed tour over a PointSet.
// Stops and Indices have the same shape: the first stop is repeated at the end,
// so len(Stops) == PointSet.Len()+1. It is immutable planning data and
// contains no side effects.
type Route struct {
	Stops              []string
	Indices            []int
	TotalDistanceMiles float64
}

// Legs returns the number of consecutive stop pairs.
func (r *Route) Legs() int {
	if len(r.Stops) < 2 {
		return 0
	}
	return len(r.Stops) - 1
}
