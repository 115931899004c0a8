package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// PointSet is an ordered, name-indexed collection of points.
//
// Each point's index is its insertion position, starting at 0. Index assignment
// is positional and reproducible: the same input order always yields the same
// indices, which the solver interchange format relies on. Once frozen the set
// is read-only and safe for concurrent readers.
type PointSet struct {
	points []Point
	index  map[string]int
	frozen bool
}

func NewPointSet() *PointSet {
	return &PointSet{index: make(map[string]int)}
}

// PointSetFromPoints builds a frozen set in input order.
func PointSetFromPoints(points []Point) (*PointSet, error) {
	ps := NewPointSet()
	for _, p := range points {
		if err := ps.Add(p.Name, p.Lat, p.Lon); err != nil {
			return nil, err
		}
	}
	ps.Freeze()
	return ps, nil
}

// Add appends a point and assigns it the next index.
func (s *PointSet) Add(name string, lat, lon float64) error {
	if s.frozen {
		return fmt.Errorf("add point %q: %w", name, ErrFrozen)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("add point: name must be non-empty: %w", ErrInvalidPoint)
	}
	if !(Coordinates{Lat: lat, Lon: lon}).Valid() {
		return fmt.Errorf("add point %q: lat=%v lon=%v out of range: %w", name, lat, lon, ErrInvalidPoint)
	}
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("add point %q: %w", name, ErrDuplicateName)
	}

	s.index[name] = len(s.points)
	s.points = append(s.points, Point{Name: name, Lat: lat, Lon: lon})
	return nil
}

// Freeze locks index assignment. It is idempotent.
func (s *PointSet) Freeze() { s.frozen = true }

func (s *PointSet) Frozen() bool { return s.frozen }

func (s *PointSet) Len() int { return len(s.points) }

func (s *PointSet) IndexOf(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("index of %q: %w", name, ErrNotFound)
	}
	return i, nil
}

func (s *PointSet) NameAt(i int) (string, error) {
	p, err := s.At(i)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func (s *PointSet) At(i int) (Point, error) {
	if i < 0 || i >= len(s.points) {
		return Point{}, fmt.Errorf("point at %d (size %d): %w", i, len(s.points), ErrIndexOutOfRange)
	}
	return s.points[i], nil
}

// Points returns a copy of the points in index order.
func (s *PointSet) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Fingerprint identifies the ordered point set and the sphere radius a matrix was
// computed with. Any change in order, name, coordinate or radius changes it.
func (s *PointSet) Fingerprint(radiusKm float64) string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatFloat(radiusKm, 'g', -1, 64)))
	h.Write([]byte{'\n'})
	for _, p := range s.points {
		h.Write([]byte(p.Name))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(p.Lat, 'g', -1, 64)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(p.Lon, 'g', -1, 64)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
