package cache

import (
	"encoding/binary"
	"fmt"
	"math"
)

// encodeTriangle packs matrix values as little-endian float64s.
func encodeTriangle(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeTriangle(n int, payload []byte) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("decode matrix entry: negative size %d", n)
	}
	want := n * (n - 1) / 2
	if len(payload) != 8*want {
		return nil, fmt.Errorf("decode matrix entry: n=%d wants %d bytes, got %d", n, 8*want, len(payload))
	}
	out := make([]float64, want)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
	}
	return out, nil
}

func checkEntry(key string, n int, values []float64) error {
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	if n < 0 || len(values) != n*(n-1)/2 {
		return fmt.Errorf("n=%d does not match %d values", n, len(values))
	}
	return nil
}
