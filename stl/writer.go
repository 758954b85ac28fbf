// Package stl serializes evaluated scenes to the ASCII STL
// interchange format and reads the format back for verification.
package stl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/meshcad-xyz/go-meshcad/geom"
	"github.com/meshcad-xyz/go-meshcad/scene"
)

// ErrEmptyMesh is returned when export is requested for a scene with
// no triangles. Export never fabricates geometry.
var ErrEmptyMesh = errors.New("stl: no mesh to export")

// DefaultSolidName is used when the caller provides no solid name.
const DefaultSolidName = "meshcad"

// Write serializes the scene to w as ASCII STL. Every triangle is
// emitted in its node's world frame. Floats use the shortest exact
// decimal form so identical geometry serializes byte-for-byte
// identically.
func Write(w io.Writer, s *scene.Scene, name string) error {
	if s == nil || s.TriangleCount() == 0 {
		return ErrEmptyMesh
	}
	if name == "" {
		name = DefaultSolidName
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("solid " + name + "\n"); err != nil {
		return err
	}

	for _, node := range s.Nodes {
		wm := node.WorldMesh()
		for i, tri := range wm.Triangles {
			n := wm.FaceNormal(i)
			bw.WriteString("  facet normal " + formatVec(n) + "\n")
			bw.WriteString("    outer loop\n")
			for _, vi := range tri {
				bw.WriteString("      vertex " + formatVec(wm.Vertices[vi]) + "\n")
			}
			bw.WriteString("    endloop\n")
			bw.WriteString("  endfacet\n")
		}
	}

	if _, err := bw.WriteString("endsolid " + name + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// Marshal serializes the scene to an ASCII STL byte slice.
func Marshal(s *scene.Scene, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s, name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the scene to a file.
func WriteFile(filename string, s *scene.Scene, name string) error {
	data, err := Marshal(s, name)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func formatVec(v geom.Vec3) string {
	return formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
