// Package eval walks a parsed program and produces the scene graph,
// resolving variables, instantiating primitives, composing transforms,
// and applying the boolean composition policy.
package eval

import (
	"errors"
	"fmt"

	"github.com/meshcad-xyz/go-meshcad/geom"
	"github.com/meshcad-xyz/go-meshcad/mesh"
	"github.com/meshcad-xyz/go-meshcad/scad"
	"github.com/meshcad-xyz/go-meshcad/scene"
)

type evaluator struct {
	vars  map[string]float64
	diags []scad.Diagnostic
}

// Evaluate produces a scene from the program. The variable table is
// built once before any geometry is evaluated. Recoverable conditions
// (unresolved variables, bad argument shapes) skip the offending
// statement and accumulate as diagnostics on the scene; an evaluation
// yielding no geometry at all returns a *NoGeometryError.
func Evaluate(prog *scad.Program) (*scene.Scene, error) {
	ev := &evaluator{vars: scad.Variables(prog)}
	ev.diags = append(ev.diags, prog.Diagnostics...)

	var nodes []*scene.Node
	for _, st := range prog.Statements {
		if _, ok := st.(*scad.Assignment); ok {
			continue
		}
		nodes = append(nodes, ev.evalNode(st, geom.Identity())...)
	}

	if len(nodes) == 0 {
		return nil, &NoGeometryError{Diagnostics: ev.diags}
	}

	s := scene.New()
	s.Nodes = nodes
	s.Diagnostics = ev.diags
	return s, nil
}

// evalNode evaluates one statement under the accumulated outer
// transform. Transforms compose outer-to-inner: the wrapper's matrix
// multiplies on the right so the outer transform applies last.
func (ev *evaluator) evalNode(n scad.Node, world geom.Mat4) []*scene.Node {
	switch n := n.(type) {
	case *scad.PrimitiveCall:
		m, err := ev.buildMesh(n)
		if err != nil {
			ev.skip(n.Pos(), err)
			return nil
		}
		node := scene.NewNode(n.Kind.String(), m)
		node.Transform = world
		return []*scene.Node{node}

	case *scad.TransformWrapper:
		local, err := ev.transformMatrix(n)
		if err != nil {
			ev.skip(n.Pos(), err)
			return nil
		}
		return ev.evalNode(n.Child, world.Mul(local))

	case *scad.BooleanGroup:
		return ev.evalGroup(n, world)

	case *scad.Assignment:
		// Nested assignments carry no geometry.
		return nil
	}
	return nil
}

// evalGroup applies the boolean composition approximation policy.
// Union returns all children as flat siblings; no boolean merge is
// computed. Difference evaluates every child but returns only the
// first child's nodes, retagged so callers can see the result is a
// difference approximation rather than a subtracted volume. True CSG
// is out of scope; a CSG kernel would slot in behind this function.
func (ev *evaluator) evalGroup(g *scad.BooleanGroup, world geom.Mat4) []*scene.Node {
	switch g.Op {
	case scad.OpUnion:
		var out []*scene.Node
		for _, c := range g.Children {
			out = append(out, ev.evalNode(c, world)...)
		}
		return out

	case scad.OpDifference:
		var base []*scene.Node
		for i, c := range g.Children {
			evaluated := ev.evalNode(c, world)
			if i == 0 {
				base = evaluated
			}
		}
		for _, n := range base {
			n.Material = scene.MaterialDifference
		}
		return base
	}
	return nil
}

// scalar resolves a value to a number, consulting the variable table
// for references.
func (ev *evaluator) scalar(v scad.Value) (float64, error) {
	switch v.Kind {
	case scad.ValueNumber:
		return v.Num, nil
	case scad.ValueRef:
		n, ok := ev.vars[v.Ref]
		if !ok {
			return 0, fmt.Errorf("%w: %q", errUnresolved, v.Ref)
		}
		return n, nil
	case scad.ValueVector:
		return 0, fmt.Errorf("expected scalar, got vector")
	}
	return 0, fmt.Errorf("invalid value")
}

func (ev *evaluator) transformMatrix(t *scad.TransformWrapper) (geom.Mat4, error) {
	var xyz [3]float64
	for i, a := range t.Args {
		n, err := ev.scalar(a)
		if err != nil {
			return geom.Mat4{}, fmt.Errorf("%v: %w", t.Kind, err)
		}
		xyz[i] = n
	}
	vec := geom.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}

	switch t.Kind {
	case scad.TransformTranslate:
		return geom.Translation(vec), nil
	case scad.TransformRotate:
		return geom.Rotation(vec), nil
	}
	return geom.Identity(), fmt.Errorf("unknown transform %v", t.Kind)
}

func (ev *evaluator) buildMesh(call *scad.PrimitiveCall) (*mesh.Mesh, error) {
	switch call.Kind {
	case scad.PrimCube:
		return ev.buildCube(call)
	case scad.PrimSphere:
		return ev.buildSphere(call)
	case scad.PrimCylinder:
		return ev.buildCylinder(call)
	}
	return nil, fmt.Errorf("unknown primitive %v", call.Kind)
}

func (ev *evaluator) buildCube(call *scad.PrimitiveCall) (*mesh.Mesh, error) {
	size, ok := call.Args["size"]
	if !ok {
		return nil, fmt.Errorf("cube: missing size")
	}

	var x, y, z float64
	if size.Kind == scad.ValueVector {
		if len(size.Vec) != 3 {
			return nil, fmt.Errorf("cube: size vector must have 3 elements, got %d", len(size.Vec))
		}
		var err error
		if x, err = ev.scalar(size.Vec[0]); err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
		if y, err = ev.scalar(size.Vec[1]); err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
		if z, err = ev.scalar(size.Vec[2]); err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
	} else {
		s, err := ev.scalar(size)
		if err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
		x, y, z = s, s, s
	}

	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("cube: dimensions must be positive, got [%g %g %g]", x, y, z)
	}
	return mesh.Cube(x, y, z), nil
}

func (ev *evaluator) buildSphere(call *scad.PrimitiveCall) (*mesh.Mesh, error) {
	rv, ok := call.Args["r"]
	if !ok {
		return nil, fmt.Errorf("sphere: missing r")
	}
	r, err := ev.scalar(rv)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	if r <= 0 {
		return nil, fmt.Errorf("sphere: radius must be positive, got %g", r)
	}
	return mesh.Sphere(r), nil
}

// buildCylinder resolves h plus either r (shorthand for r1=r2=r) or
// r1/r2. A single radius end fills in for a missing one.
func (ev *evaluator) buildCylinder(call *scad.PrimitiveCall) (*mesh.Mesh, error) {
	hv, ok := call.Args["h"]
	if !ok {
		return nil, fmt.Errorf("cylinder: missing h")
	}
	h, err := ev.scalar(hv)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}

	radius := func(name string) (float64, bool, error) {
		v, ok := call.Args[name]
		if !ok {
			return 0, false, nil
		}
		n, err := ev.scalar(v)
		if err != nil {
			return 0, false, fmt.Errorf("cylinder: %w", err)
		}
		return n, true, nil
	}

	r, haveR, err := radius("r")
	if err != nil {
		return nil, err
	}
	r1, haveR1, err := radius("r1")
	if err != nil {
		return nil, err
	}
	r2, haveR2, err := radius("r2")
	if err != nil {
		return nil, err
	}

	if haveR {
		if !haveR1 {
			r1 = r
		}
		if !haveR2 {
			r2 = r
		}
	} else {
		switch {
		case haveR1 && !haveR2:
			r2 = r1
		case haveR2 && !haveR1:
			r1 = r2
		case !haveR1 && !haveR2:
			return nil, fmt.Errorf("cylinder: missing radius")
		}
	}

	if h <= 0 {
		return nil, fmt.Errorf("cylinder: height must be positive, got %g", h)
	}
	if r1 < 0 || r2 < 0 || (r1 == 0 && r2 == 0) {
		return nil, fmt.Errorf("cylinder: invalid radii r1=%g r2=%g", r1, r2)
	}
	return mesh.Cylinder(h, r1, r2), nil
}

// skip records a recoverable evaluation failure for one statement.
func (ev *evaluator) skip(pos int, err error) {
	kind := scad.DiagUnmatchedStatement
	if errors.Is(err, errUnresolved) {
		kind = scad.DiagUnresolvedVariable
	}
	ev.diags = append(ev.diags, scad.Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Message: err.Error(),
	})
}
