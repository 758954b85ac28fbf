package scad

// PrimitiveKind identifies a solid primitive.
type PrimitiveKind int

const (
	PrimCube PrimitiveKind = iota
	PrimSphere
	PrimCylinder
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimCube:
		return "cube"
	case PrimSphere:
		return "sphere"
	case PrimCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// TransformKind identifies an affine transform wrapper.
type TransformKind int

const (
	TransformTranslate TransformKind = iota
	TransformRotate
)

func (k TransformKind) String() string {
	switch k {
	case TransformTranslate:
		return "translate"
	case TransformRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// BooleanOp identifies a boolean composition operator.
type BooleanOp int

const (
	OpUnion BooleanOp = iota
	OpDifference
)

func (op BooleanOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// ValueKind discriminates argument values.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueRef
	ValueVector
)

// Value is an argument value: a literal number, a variable reference,
// or a vector of values.
type Value struct {
	Kind ValueKind
	Num  float64
	Ref  string
	Vec  []Value
}

// Number returns a literal numeric value.
func Number(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// Ref returns a variable reference value.
func Ref(name string) Value {
	return Value{Kind: ValueRef, Ref: name}
}

// Vector returns a vector value.
func Vector(elems ...Value) Value {
	return Value{Kind: ValueVector, Vec: elems}
}

// Node is a parsed statement. Trees are acyclic: the parser never
// re-enters a node.
type Node interface {
	Pos() int
	node()
}

// Assignment is a top-level numeric variable binding: name = number;
type Assignment struct {
	Name  string
	Value float64
	At    int
}

// PrimitiveCall is a solid primitive invocation with its arguments
// keyed by canonical parameter name.
type PrimitiveCall struct {
	Kind PrimitiveKind
	Args map[string]Value
	At   int
}

// TransformWrapper applies an affine transform to exactly one child
// statement.
type TransformWrapper struct {
	Kind  TransformKind
	Args  [3]Value
	Child Node
	At    int
}

// BooleanGroup composes an ordered, non-empty sequence of children.
// For difference the first child is the base and the rest are the
// subtracted operands.
type BooleanGroup struct {
	Op       BooleanOp
	Children []Node
	At       int
}

func (a *Assignment) Pos() int       { return a.At }
func (p *PrimitiveCall) Pos() int    { return p.At }
func (t *TransformWrapper) Pos() int { return t.At }
func (b *BooleanGroup) Pos() int     { return b.At }

func (*Assignment) node()       {}
func (*PrimitiveCall) node()    {}
func (*TransformWrapper) node() {}
func (*BooleanGroup) node()     {}

// Program is an ordered sequence of top-level statements plus the
// diagnostics accumulated while producing them. A program renders as
// the implicit union of its top-level statements.
type Program struct {
	Statements  []Node
	Diagnostics []Diagnostic
}

// Variables resolves the top-level numeric assignments into a symbol
// table with a single linear scan. Later assignments to the same name
// win. The table is built before any geometry is evaluated and is not
// mutated afterwards.
func Variables(prog *Program) map[string]float64 {
	vars := make(map[string]float64)
	for _, st := range prog.Statements {
		if a, ok := st.(*Assignment); ok {
			vars[a.Name] = a.Value
		}
	}
	return vars
}
