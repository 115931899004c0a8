package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"tour-route-service/internal/domain"
)

// CSVSource reads points from a name,lat,lon file. A header row is detected and skipped.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (c *CSVSource) ListPoints(ctx context.Context) ([]domain.Point, error) {
	if strings.TrimSpace(c.Path) == "" {
		return nil, errors.New("csv source: path must not be empty")
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("csv source: open %q: %w", c.Path, err)
	}
	defer f.Close()

	points, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv source %q: %w", c.Path, err)
	}
	return points, nil
}

// ReadCSV parses name,lat,lon records in file order.
func ReadCSV(r io.Reader) ([]domain.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var points []domain.Point
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if line == 1 && isHeader(rec) {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("read csv: record %d: lat %q: %w", line, rec[1], err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("read csv: record %d: lon %q: %w", line, rec[2], err)
		}

		points = append(points, domain.Point{Name: strings.TrimSpace(rec[0]), Lat: lat, Lon: lon})
	}

	return points, nil
}

func isHeader(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[0]), "name") &&
		strings.EqualFold(strings.TrimSpace(rec[1]), "lat")
}
