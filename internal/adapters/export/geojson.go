package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	PointsFile = "tsp_point.json"
	LineFile   = "tsp_line.json"
)

// RouteFeatures returns one Point feature per stop, including the closing
// return to the start, with the stop name under "Name".
func RouteFeatures(route *domain.Route, points *domain.PointSet) (*geojson.FeatureCollection, error) {
	stops, err := routePoints(route, points)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, p := range stops {
		f := geojson.NewFeature(orb.Point(p.Coordinates().LonLat()))
		f.Properties["Name"] = p.Name
		fc.Append(f)
	}
	return fc, nil
}

// RouteLine returns the closed route as a bare LineString geometry.
func RouteLine(route *domain.Route, points *domain.PointSet) (*geojson.Geometry, error) {
	stops, err := routePoints(route, points)
	if err != nil {
		return nil, err
	}

	line := make(orb.LineString, 0, len(stops))
	for _, p := range stops {
		line = append(line, orb.Point(p.Coordinates().LonLat()))
	}
	return geojson.NewGeometry(line), nil
}

func routePoints(route *domain.Route, points *domain.PointSet) ([]domain.Point, error) {
	if route == nil || points == nil {
		return nil, errors.New("geojson: route and points must be non-nil")
	}
	stops := make([]domain.Point, 0, len(route.Indices))
	for _, idx := range route.Indices {
		p, err := points.At(idx)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		stops = append(stops, p)
	}
	return stops, nil
}

// GeoJSON writes the route stops and polyline into Dir.
type GeoJSON struct {
	Dir string
}

func NewGeoJSON(dir string) *GeoJSON {
	return &GeoJSON{Dir: dir}
}

func (g *GeoJSON) Export(ctx context.Context, route *domain.Route, points *domain.PointSet) error {
	fc, err := RouteFeatures(route, points)
	if err != nil {
		return err
	}
	line, err := RouteLine(route, points)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("geojson: create %q: %w", g.Dir, err)
	}
	if err := writeJSON(filepath.Join(g.Dir, PointsFile), fc); err != nil {
		return err
	}
	return writeJSON(filepath.Join(g.Dir, LineFile), line)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("geojson: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("geojson: write %s: %w", path, err)
	}
	return nil
}
