// Package tsplib reads and writes the interchange files exchanged with an
// external tour solver.
//
// The instance file is TSPLIB with a GEOM edge weight type and a node section of
// "<index> <lat> <lon>" lines, indexed from 0 in PointSet order. The solution
// file is a whitespace-separated list of integers: the dimension followed by
// that many 0-based indices in visiting order.
package tsplib

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tour-route-service/internal/domain"
)

const (
	DefaultName    = "NP TSP"
	DefaultComment = "National Park TSP"

	problemType    = "TSP"
	edgeWeightType = "GEOM"
	coordPrecision = 6
)

type Options struct {
	Name    string
	Comment string
}

// Encode renders ps as a TSPLIB instance.
func Encode(ps *domain.PointSet, opts Options) []byte {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = DefaultName
	}
	comment := strings.TrimSpace(opts.Comment)
	if comment == "" {
		comment = DefaultComment
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "NAME : %s\n", name)
	fmt.Fprintf(&buf, "COMMENT : %s\n", comment)
	fmt.Fprintf(&buf, "TYPE : %s\n", problemType)
	fmt.Fprintf(&buf, "DIMENSION : %d\n", ps.Len())
	fmt.Fprintf(&buf, "EDGE_WEIGHT_TYPE : %s\n", edgeWeightType)
	buf.WriteString("NODE_COORD_SECTION\n")

	for i, p := range ps.Points() {
		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatFloat(p.Lat, 'f', coordPrecision, 64))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatFloat(p.Lon, 'f', coordPrecision, 64))
		buf.WriteByte('\n')
	}
	buf.WriteString("EOF\n")

	return buf.Bytes()
}

// Decode parses solver output into the visiting order it declares.
//
// The first token is the dimension and must equal the number of tokens that
// follow. Every token must be an integer. Range and permutation checks belong
// to the route builder.
func Decode(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	var tokens []int
	for sc.Scan() {
		tok := sc.Text()
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("decode solution: token %d %q is not an integer: %w", len(tokens)+1, tok, domain.ErrMalformedSolution)
		}
		tokens = append(tokens, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decode solution: read: %v: %w", err, domain.ErrMalformedSolution)
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("decode solution: empty input: %w", domain.ErrMalformedSolution)
	}

	dim := tokens[0]
	body := tokens[1:]
	if dim < 0 {
		return nil, fmt.Errorf("decode solution: negative dimension %d: %w", dim, domain.ErrMalformedSolution)
	}
	if dim != len(body) {
		return nil, fmt.Errorf(
			"decode solution: declared dimension %d but found %d indices: %w",
			dim, len(body), domain.ErrMalformedSolution,
		)
	}

	return body, nil
}

// EncodeSolution writes tour in the solver output format, ten indices per line.
func EncodeSolution(tour []int) []byte {
	var buf bytes.Buffer
	buf.WriteString(strconv.Itoa(len(tour)))
	buf.WriteByte('\n')
	for i, v := range tour {
		if i > 0 {
			if i%10 == 0 {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteString(strconv.Itoa(v))
	}
	if len(tour) > 0 {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
