package tsplib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tour-route-service/internal/domain"
)

var ErrMalformedInstance = errors.New("malformed tsp instance")

// Instance is a parsed instance file. Points are named by their node index.
type Instance struct {
	Name           string
	Comment        string
	Type           string
	EdgeWeightType string
	Dimension      int
	Points         []domain.Point
}

// DecodeInstance parses an instance written by Encode. Node indices must run
// 0..DIMENSION-1 in order.
func DecodeInstance(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	inst := &Instance{Dimension: -1}

	lineNo := 0
	inNodes := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}

		if !inNodes {
			if strings.HasPrefix(line, "NODE_COORD_SECTION") {
				if inst.Dimension < 0 {
					return nil, fmt.Errorf("decode instance: line %d: node section before DIMENSION: %w", lineNo, ErrMalformedInstance)
				}
				inNodes = true
				continue
			}
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				return nil, fmt.Errorf("decode instance: line %d: expected KEY : VALUE, got %q: %w", lineNo, line, ErrMalformedInstance)
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			switch key {
			case "NAME":
				inst.Name = value
			case "COMMENT":
				inst.Comment = value
			case "TYPE":
				inst.Type = value
			case "EDGE_WEIGHT_TYPE":
				inst.EdgeWeightType = value
			case "DIMENSION":
				dim, err := strconv.Atoi(value)
				if err != nil || dim < 0 {
					return nil, fmt.Errorf("decode instance: line %d: bad DIMENSION %q: %w", lineNo, value, ErrMalformedInstance)
				}
				inst.Dimension = dim
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("decode instance: line %d: expected 3 fields, got %d: %w", lineNo, len(fields), ErrMalformedInstance)
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil || idx != len(inst.Points) {
			return nil, fmt.Errorf("decode instance: line %d: node index %q out of sequence: %w", lineNo, fields[0], ErrMalformedInstance)
		}
		lat, errLat := strconv.ParseFloat(fields[1], 64)
		lon, errLon := strconv.ParseFloat(fields[2], 64)
		if errLat != nil || errLon != nil {
			return nil, fmt.Errorf("decode instance: line %d: bad coordinates: %w", lineNo, ErrMalformedInstance)
		}
		inst.Points = append(inst.Points, domain.Point{Name: fields[0], Lat: lat, Lon: lon})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decode instance: read: %w", err)
	}

	if !inNodes {
		return nil, fmt.Errorf("decode instance: missing NODE_COORD_SECTION: %w", ErrMalformedInstance)
	}
	if len(inst.Points) != inst.Dimension {
		return nil, fmt.Errorf(
			"decode instance: DIMENSION %d but %d nodes: %w",
			inst.Dimension, len(inst.Points), ErrMalformedInstance,
		)
	}

	return inst, nil
}
