package stl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meshcad-xyz/go-meshcad/geom"
)

// Facet is one triangle read back from an ASCII STL stream.
type Facet struct {
	Normal geom.Vec3
	Verts  [3]geom.Vec3
}

// Read parses an ASCII STL stream, returning the solid name and its
// facets. It accepts the structure Write emits; it is intended for
// round-trip verification and tooling, not as a general STL importer.
func Read(r io.Reader) (string, []Facet, error) {
	scanner := bufio.NewScanner(r)

	var name string
	var facets []Facet
	var cur *Facet
	vert := 0
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = fields[1]
			}
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return "", nil, fmt.Errorf("stl: line %d: malformed facet line", line)
			}
			n, err := parseVec(fields[2:5])
			if err != nil {
				return "", nil, fmt.Errorf("stl: line %d: %w", line, err)
			}
			cur = &Facet{Normal: n}
			vert = 0
		case "vertex":
			if cur == nil {
				return "", nil, fmt.Errorf("stl: line %d: vertex outside facet", line)
			}
			if len(fields) != 4 {
				return "", nil, fmt.Errorf("stl: line %d: malformed vertex line", line)
			}
			v, err := parseVec(fields[1:4])
			if err != nil {
				return "", nil, fmt.Errorf("stl: line %d: %w", line, err)
			}
			if vert >= 3 {
				return "", nil, fmt.Errorf("stl: line %d: more than 3 vertices in facet", line)
			}
			cur.Verts[vert] = v
			vert++
		case "endfacet":
			if cur == nil || vert != 3 {
				return "", nil, fmt.Errorf("stl: line %d: facet with %d vertices", line, vert)
			}
			facets = append(facets, *cur)
			cur = nil
		case "outer", "endloop", "endsolid":
			// structural keywords, nothing to capture
		default:
			return "", nil, fmt.Errorf("stl: line %d: unexpected token %q", line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, err
	}
	if cur != nil {
		return "", nil, fmt.Errorf("stl: unterminated facet")
	}
	return name, facets, nil
}

func parseVec(fields []string) (geom.Vec3, error) {
	var out [3]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("invalid float %q", f)
		}
		out[i] = n
	}
	return geom.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
