package matrix

import "math"

// NearestDistances returns, per index, the smallest strictly positive distance
// to any other point. Points with no positive neighbor (n==1, or co-located
// duplicates only) get 0.
func (m *DistanceMatrix) NearestDistances() []float64 {
	return m.rowExtremes(func(best, d float64) bool { return d < best }, math.Inf(1))
}

// FarthestDistances returns, per index, the largest distance to any other point.
func (m *DistanceMatrix) FarthestDistances() []float64 {
	return m.rowExtremes(func(best, d float64) bool { return d > best }, math.Inf(-1))
}

func (m *DistanceMatrix) rowExtremes(better func(best, d float64) bool, init float64) []float64 {
	out := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		best := init
		for j := 0; j < m.n; j++ {
			d := m.cells[i*m.n+j]
			if d > 0 && better(best, d) {
				best = d
			}
		}
		if math.IsInf(best, 0) {
			best = 0
		}
		out[i] = best
	}
	return out
}

// Summary describes a distribution of per-point distances.
type Summary struct {
	Min  float64
	Max  float64
	Mean float64
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Min: values[0], Max: values[0]}
	total := 0.0
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		total += v
	}
	s.Mean = total / float64(len(values))
	return s
}
