package scad

import (
	"fmt"
	"strconv"
)

// positionalParams maps each primitive to the canonical parameter names
// its positional arguments bind to, in order.
var positionalParams = map[PrimitiveKind][]string{
	PrimCube:     {"size"},
	PrimSphere:   {"r"},
	PrimCylinder: {"h", "r1", "r2"},
}

// Parser consumes a token stream and produces a Program. Parsing is
// best-effort: a statement that matches no grammar rule is dropped with
// a diagnostic instead of aborting, so one malformed statement does not
// blank the rest of the model.
type Parser struct {
	tokens []Token
	pos    int
	diags  []Diagnostic
}

// Parse lexes and parses the input into a Program. Lex warnings and
// dropped statements are reported through Program.Diagnostics.
func Parse(input string) *Program {
	tokens, warns := Tokenize(input)
	p := &Parser{tokens: tokens, diags: warns}

	prog := &Program{}
	for p.cur().Type != TokenEOF {
		if p.cur().Type == TokenRBrace {
			p.report(p.cur().Pos, "unmatched '}'")
			p.next()
			continue
		}
		if st := p.parseStatement(); st != nil {
			prog.Statements = append(prog.Statements, st)
		}
	}
	prog.Diagnostics = p.diags
	return prog
}

func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) report(pos int, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{
		Kind:    DiagUnmatchedStatement,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// drop records an unmatched-statement diagnostic and resynchronizes at
// the next statement boundary.
func (p *Parser) drop(at Token, format string, args ...any) Node {
	p.report(at.Pos, format, args...)
	p.sync()
	return nil
}

// sync skips ahead to just past the next top-level ';', past the close
// of a brace block the bad statement opened, or up to (not past) a '}'
// closing an enclosing block.
func (p *Parser) sync() {
	depth := 0
	for p.cur().Type != TokenEOF {
		switch p.cur().Type {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket:
			if depth > 0 {
				depth--
			}
		case TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				return
			}
		case TokenSemicolon:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// parseStatement parses one statement. It returns nil for dropped or
// empty statements; diagnostics are recorded separately. A '}' is never
// consumed here so enclosing blocks can detect their close.
func (p *Parser) parseStatement() Node {
	tok := p.cur()
	switch tok.Type {
	case TokenSemicolon:
		p.next()
		return nil
	case TokenRBrace:
		return nil
	case TokenIdent:
		switch tok.Literal {
		case "cube":
			return p.parsePrimitive(PrimCube)
		case "sphere":
			return p.parsePrimitive(PrimSphere)
		case "cylinder":
			return p.parsePrimitive(PrimCylinder)
		case "translate":
			return p.parseTransform(TransformTranslate)
		case "rotate":
			return p.parseTransform(TransformRotate)
		case "union":
			return p.parseGroup(OpUnion)
		case "difference":
			return p.parseGroup(OpDifference)
		default:
			if p.peek().Type == TokenAssign {
				return p.parseAssignment()
			}
			return p.drop(tok, "no grammar rule matches %q", tok.Literal)
		}
	default:
		return p.drop(tok, "statement cannot start with %v", tok.Type)
	}
}

// parseAssignment parses IDENT '=' NUMBER ';'.
func (p *Parser) parseAssignment() Node {
	start := p.cur()
	name := start.Literal
	p.next() // ident
	p.next() // =

	if p.cur().Type != TokenNumber {
		return p.drop(start, "expected number after %q =, got %v", name, p.cur().Type)
	}
	val, err := strconv.ParseFloat(p.cur().Literal, 64)
	if err != nil {
		return p.drop(start, "invalid number %q", p.cur().Literal)
	}
	p.next()

	if p.cur().Type != TokenSemicolon {
		return p.drop(start, "missing ';' after assignment to %q", name)
	}
	p.next()

	return &Assignment{Name: name, Value: val, At: start.Pos}
}

// parsePrimitive parses KIND '(' arglist ')' ';'.
func (p *Parser) parsePrimitive(kind PrimitiveKind) Node {
	start := p.cur()
	p.next() // primitive name

	if p.cur().Type != TokenLParen {
		return p.drop(start, "expected '(' after %v", kind)
	}
	p.next()

	args, err := p.parseArgs(kind)
	if err != nil {
		return p.drop(start, "%v: %v", kind, err)
	}

	if p.cur().Type != TokenRParen {
		return p.drop(start, "%v: expected ')', got %v", kind, p.cur().Type)
	}
	p.next()

	if p.cur().Type != TokenSemicolon {
		return p.drop(start, "%v: missing ';'", kind)
	}
	p.next()

	return &PrimitiveCall{Kind: kind, Args: args, At: start.Pos}
}

// parseArgs parses a call argument list up to the closing paren.
// Positional arguments bind to the primitive's canonical parameter
// names in order; named arguments take precedence on conflict.
func (p *Parser) parseArgs(kind PrimitiveKind) (map[string]Value, error) {
	positional := positionalParams[kind]
	args := make(map[string]Value)
	named := make(map[string]Value)
	idx := 0

	for p.cur().Type != TokenRParen {
		if p.cur().Type == TokenEOF {
			return nil, fmt.Errorf("unterminated argument list")
		}
		if p.cur().Type == TokenIdent && p.peek().Type == TokenAssign {
			name := p.cur().Literal
			p.next()
			p.next()
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			named[name] = v
		} else {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if idx < len(positional) {
				args[positional[idx]] = v
			}
			idx++
		}
		if p.cur().Type == TokenComma {
			p.next()
		}
	}

	for k, v := range named {
		args[k] = v
	}
	return args, nil
}

// parseValue parses a number, variable reference, or bracketed vector.
func (p *Parser) parseValue() (Value, error) {
	switch p.cur().Type {
	case TokenNumber:
		n, err := strconv.ParseFloat(p.cur().Literal, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q", p.cur().Literal)
		}
		p.next()
		return Number(n), nil
	case TokenIdent:
		name := p.cur().Literal
		p.next()
		return Ref(name), nil
	case TokenLBracket:
		return p.parseVectorValue()
	default:
		return Value{}, fmt.Errorf("expected value, got %v", p.cur().Type)
	}
}

func (p *Parser) parseVectorValue() (Value, error) {
	p.next() // [
	var elems []Value
	for p.cur().Type != TokenRBracket {
		if p.cur().Type == TokenEOF {
			return Value{}, fmt.Errorf("unterminated vector")
		}
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
		if p.cur().Type == TokenComma {
			p.next()
		}
	}
	p.next() // ]
	return Vector(elems...), nil
}

// parseTransform parses KIND '(' '[' x ',' y ',' z ']' ')' statement.
func (p *Parser) parseTransform(kind TransformKind) Node {
	start := p.cur()
	p.next() // transform name

	if p.cur().Type != TokenLParen {
		return p.drop(start, "expected '(' after %v", kind)
	}
	p.next()

	vec, err := p.parseValue()
	if err != nil || vec.Kind != ValueVector || len(vec.Vec) != 3 {
		return p.drop(start, "%v expects a [x, y, z] argument", kind)
	}

	if p.cur().Type != TokenRParen {
		return p.drop(start, "%v: expected ')', got %v", kind, p.cur().Type)
	}
	p.next()

	child := p.parseStatement()
	if child == nil {
		p.report(start.Pos, "%v has no child statement", kind)
		return nil
	}
	if _, ok := child.(*Assignment); ok {
		p.report(start.Pos, "%v child must be a call, not an assignment", kind)
		return nil
	}

	return &TransformWrapper{
		Kind:  kind,
		Args:  [3]Value{vec.Vec[0], vec.Vec[1], vec.Vec[2]},
		Child: child,
		At:    start.Pos,
	}
}

// parseGroup parses OP '(' ')' '{' statement* '}'. A missing close
// brace at end-of-input is treated as an implicit close.
func (p *Parser) parseGroup(op BooleanOp) Node {
	start := p.cur()
	p.next() // operator name

	if p.cur().Type != TokenLParen {
		return p.drop(start, "expected '(' after %v", op)
	}
	p.next()

	if p.cur().Type != TokenRParen {
		return p.drop(start, "%v takes no arguments", op)
	}
	p.next()

	if p.cur().Type != TokenLBrace {
		return p.drop(start, "expected '{' after %v()", op)
	}
	p.next()

	var children []Node
	for p.cur().Type != TokenRBrace && p.cur().Type != TokenEOF {
		if st := p.parseStatement(); st != nil {
			children = append(children, st)
		}
	}
	if p.cur().Type == TokenRBrace {
		p.next()
	}

	if len(children) == 0 {
		p.report(start.Pos, "empty %v block", op)
		return nil
	}

	return &BooleanGroup{Op: op, Children: children, At: start.Pos}
}
