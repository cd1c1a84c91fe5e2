// Package formula evaluates user-supplied spread formulas such as "A-B",
// "A-2.5*B" or "2*B-A-C" element-wise over aligned price arrays.
//
// The grammar is deliberately closed: single uppercase-letter variables,
// decimal literals, the four arithmetic operators, unary minus and
// parentheses. The evaluator has no access to anything beyond the arrays
// handed to it, so a formula can never name a function, an identifier or any
// ambient state.
package formula

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrSyntax            = errors.New("formula syntax error")
	ErrUndefinedVariable = errors.New("undefined formula variable")
	ErrLengthMismatch    = errors.New("variable arrays differ in length")
	ErrNoVariables       = errors.New("formula references no variables")
)

// ExtractVariables returns every uppercase ASCII letter appearing in the
// formula text, sorted. Lower-case letters, digits and operators are not
// variables.
func ExtractVariables(formula string) []rune {
	seen := make(map[rune]bool)
	for _, r := range formula {
		if r >= 'A' && r <= 'Z' {
			seen[r] = true
		}
	}
	vars := make([]rune, 0, len(seen))
	for r := range seen {
		vars = append(vars, r)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return vars
}

// Evaluate parses the formula and evaluates it element-wise over the given
// arrays. All variables the formula references must be present in vars and
// all referenced arrays must have equal length; there is no truncation or
// padding.
func Evaluate(vars map[rune][]float64, formulaStr string) ([]float64, error) {
	node, err := parse(formulaStr)
	if err != nil {
		return nil, err
	}

	refs := ExtractVariables(formulaStr)
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoVariables, formulaStr)
	}
	n := -1
	for _, r := range refs {
		arr, ok := vars[r]
		if !ok {
			return nil, fmt.Errorf("%w: %c", ErrUndefinedVariable, r)
		}
		if n == -1 {
			n = len(arr)
		} else if len(arr) != n {
			return nil, fmt.Errorf("%w: %c has %d elements, want %d", ErrLengthMismatch, r, len(arr), n)
		}
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = node.eval(vars, i)
	}
	return out, nil
}

//
// --- AST ---
//

type node interface {
	eval(vars map[rune][]float64, i int) float64
}

type literal float64

func (l literal) eval(map[rune][]float64, int) float64 { return float64(l) }

type variable rune

func (v variable) eval(vars map[rune][]float64, i int) float64 { return vars[rune(v)][i] }

type unary struct{ operand node }

func (u unary) eval(vars map[rune][]float64, i int) float64 { return -u.operand.eval(vars, i) }

type binary struct {
	op          byte
	left, right node
}

func (b binary) eval(vars map[rune][]float64, i int) float64 {
	l := b.left.eval(vars, i)
	r := b.right.eval(vars, i)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	default:
		return l / r
	}
}

//
// --- Recursive-descent parser ---
//

type parser struct {
	input string
	pos   int
}

func parse(input string) (node, error) {
	p := &parser{input: input}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.input[p.pos], p.pos)
	}
	return n, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '+' && c != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binary{op: c, left: left, right: right}
	}
}

// term := factor (('*' | '/') factor)*
func (p *parser) term() (node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = binary{op: c, left: left, right: right}
	}
}

// factor := '-' factor | primary
func (p *parser) factor() (node, error) {
	c, ok := p.peek()
	if ok && c == '-' {
		p.pos++
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return unary{operand: operand}, nil
	}
	return p.primary()
}

// primary := number | variable | '(' expr ')'
func (p *parser) primary() (node, error) {
	c, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	}
	switch {
	case c == '(':
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		c, ok = p.peek()
		if !ok || c != ')' {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		p.pos++
		return inner, nil
	case c >= 'A' && c <= 'Z':
		p.pos++
		return variable(c), nil
	case c >= '0' && c <= '9' || c == '.':
		start := p.pos
		for p.pos < len(p.input) {
			d := p.input[p.pos]
			if (d < '0' || d > '9') && d != '.' {
				break
			}
			p.pos++
		}
		v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, p.input[start:p.pos])
		}
		return literal(v), nil
	default:
		return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, c, p.pos)
	}
}
