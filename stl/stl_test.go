package stl

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/meshcad-xyz/go-meshcad/eval"
	"github.com/meshcad-xyz/go-meshcad/scad"
	"github.com/meshcad-xyz/go-meshcad/scene"
)

func buildScene(t *testing.T, src string) *scene.Scene {
	t.Helper()
	s, err := eval.Evaluate(scad.Parse(src))
	if err != nil {
		t.Fatalf("evaluate %q: %v", src, err)
	}
	return s
}

func TestWrite_Structure(t *testing.T) {
	s := buildScene(t, `cube([1, 1, 1]);`)

	data, err := Marshal(s, "part")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "solid part\n") {
		t.Errorf("missing solid header: %q", text[:20])
	}
	if !strings.HasSuffix(text, "endsolid part\n") {
		t.Errorf("missing endsolid trailer")
	}
	if got := strings.Count(text, "facet normal "); got != 12 {
		t.Errorf("expected 12 facets for a cube, got %d", got)
	}
	if got := strings.Count(text, "vertex "); got != 36 {
		t.Errorf("expected 36 vertex lines, got %d", got)
	}
	if got := strings.Count(text, "outer loop"); got != 12 {
		t.Errorf("expected 12 outer loop lines, got %d", got)
	}
}

func TestWrite_DefaultName(t *testing.T) {
	s := buildScene(t, `cube(1);`)
	data, err := Marshal(s, "")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "solid "+DefaultSolidName+"\n") {
		t.Errorf("expected default solid name")
	}
}

func TestWrite_EmptySceneFails(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "x"); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("nil scene: expected ErrEmptyMesh, got %v", err)
	}
	if err := Write(&bytes.Buffer{}, scene.New(), "x"); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("empty scene: expected ErrEmptyMesh, got %v", err)
	}
}

func TestWrite_WorldCoordinates(t *testing.T) {
	s := buildScene(t, `translate([100, 0, 0]) cube([1, 1, 1]);`)

	_, facets, err := readBack(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range facets {
		for _, v := range f.Verts {
			if v.X < 100-1e-9 {
				t.Fatalf("vertex %+v emitted in local space, expected world frame", v)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s := buildScene(t, `
union() {
	translate([5, 0, 0]) sphere(r=2);
	cylinder(h=4, r1=1, r2=2);
}`)

	name, facets, err := readBack(s)
	if err != nil {
		t.Fatal(err)
	}
	if name != "model" {
		t.Errorf("expected solid name 'model', got %q", name)
	}
	if len(facets) != s.TriangleCount() {
		t.Fatalf("expected %d facets, got %d", s.TriangleCount(), len(facets))
	}

	// Re-reading must recover each triangle's vertices within
	// floating-point tolerance against the world-space meshes.
	i := 0
	for _, node := range s.Nodes {
		wm := node.WorldMesh()
		for ti, tri := range wm.Triangles {
			for vi := 0; vi < 3; vi++ {
				want := wm.Vertices[tri[vi]]
				got := facets[i].Verts[vi]
				if got.Sub(want).Length() > 1e-9 {
					t.Fatalf("triangle %d vertex %d: got %+v, want %+v", ti, vi, got, want)
				}
			}
			i++
		}
	}
}

func TestWrite_Reproducible(t *testing.T) {
	src := `r = 3; translate([1, 2, 3]) sphere(r=r);`

	a, err := Marshal(buildScene(t, src), "model")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(buildScene(t, src), "model")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("identical geometry must serialize byte-for-byte identically")
	}
}

func TestWrite_DerivedNormalsAreUnit(t *testing.T) {
	// Spheres carry no per-face normals, so the writer derives them
	// from the winding.
	s := buildScene(t, `sphere(r=2);`)

	_, facets, err := readBack(s)
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range facets {
		if math.Abs(f.Normal.Length()-1) > 1e-6 {
			t.Errorf("facet %d: normal %+v is not unit length", i, f.Normal)
		}
	}
}

func TestRead_RejectsGarbage(t *testing.T) {
	_, _, err := Read(strings.NewReader("solid x\nnonsense line\n"))
	if err == nil {
		t.Errorf("expected error for unexpected token")
	}
}

func TestRead_RejectsShortFacet(t *testing.T) {
	input := `solid x
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
    endloop
  endfacet
endsolid x
`
	_, _, err := Read(strings.NewReader(input))
	if err == nil {
		t.Errorf("expected error for facet with 2 vertices")
	}
}

func readBack(s *scene.Scene) (string, []Facet, error) {
	data, err := Marshal(s, "model")
	if err != nil {
		return "", nil, err
	}
	return Read(bytes.NewReader(data))
}
