// Package scene holds the evaluated model: an ordered set of mesh
// nodes with world transforms, replaced wholesale on every evaluation.
package scene

import (
	"github.com/google/uuid"

	"github.com/meshcad-xyz/go-meshcad/geom"
	"github.com/meshcad-xyz/go-meshcad/mesh"
	"github.com/meshcad-xyz/go-meshcad/scad"
)

// Materials are display tags only; they never affect geometry.
const (
	MaterialDefault    = "default"
	MaterialDifference = "difference"
)

// Node is one evaluated mesh with its accumulated world transform.
// The owning Scene holds the only reference to the node and its mesh.
type Node struct {
	ID        string
	Name      string
	Mesh      *mesh.Mesh
	Transform geom.Mat4
	Material  string
}

// NewNode creates a node with a fresh ID, an identity transform, and
// the default material.
func NewNode(name string, m *mesh.Mesh) *Node {
	return &Node{
		ID:        uuid.New().String(),
		Name:      name,
		Mesh:      m,
		Transform: geom.Identity(),
		Material:  MaterialDefault,
	}
}

// WorldMesh returns a copy of the node's mesh with the world transform
// applied. The node's own mesh is left in local coordinates.
func (n *Node) WorldMesh() *mesh.Mesh {
	m := n.Mesh.Clone()
	m.Transform(n.Transform)
	return m
}

// Scene is the fully evaluated model: an ordered sequence of top-level
// nodes plus the diagnostics accumulated while producing them. A scene
// is immutable once returned; re-evaluation builds a replacement
// rather than mutating in place.
type Scene struct {
	ID          string
	Nodes       []*Node
	Diagnostics []scad.Diagnostic
}

// New creates an empty scene with a fresh ID.
func New() *Scene {
	return &Scene{ID: uuid.New().String()}
}

// TriangleCount returns the total triangle count across all nodes.
func (s *Scene) TriangleCount() int {
	total := 0
	for _, n := range s.Nodes {
		total += n.Mesh.TriangleCount()
	}
	return total
}

// Bounds returns the world-space bounding box across all nodes.
func (s *Scene) Bounds() (min, max geom.Vec3) {
	first := true
	for _, n := range s.Nodes {
		wm := n.WorldMesh()
		if len(wm.Vertices) == 0 {
			continue
		}
		nmin, nmax := wm.Bounds()
		if first {
			min, max = nmin, nmax
			first = false
			continue
		}
		min = min.Min(nmin)
		max = max.Max(nmax)
	}
	return min, max
}
