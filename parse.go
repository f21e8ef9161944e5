package radicals

import (
	"strconv"
	"strings"
)

// Expr is a parsed expression that can be evaluated with a variable store.
type Expr struct {
	// src is the source text.
	src string
	// tokens is the lexed source.
	tokens []Token
	// n is the root node of the expression.
	n *Node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse tokenizes, validates, and parses an expression. The error is a
// *LexError, SyntaxErrors, or *StructuralError.
func Parse(src string) (*Expr, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	if err := Validate(tokens).Err(); err != nil {
		return nil, err
	}
	n, err := ParseTokens(tokens)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, tokens: tokens, n: n, names: uniq(n.vars(nil))}, nil
}

// ParseTokens builds an AST from a token sequence. Tokens should have passed
// Validate first. ParseTokens does not panic on other input, but it reports
// such input only as a *StructuralError.
func ParseTokens(tokens []Token) (*Node, error) {
	return postfixTree(postfix(tokens))
}

// postfix reorders infix tokens to postfix order, dropping parentheses and
// commas that were matched.
func postfix(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	var stack []Token
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum, TokenVar:
			out = append(out, tok)
		case TokenFunc, TokenOpen:
			stack = append(stack, tok)
		case TokenOp:
			in := opprec(tok)
			// Negation has no left operand, so nothing to its left can be
			// complete yet. It never pops, even on a tie with a negation
			// already on the stack, so negations stack: --3 is -(-3), not a
			// missing operand.
			for tok.Text != UnaryMinus && len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == TokenOpen || opprec(top) < in {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case TokenComma:
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenOpen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case TokenClose:
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenOpen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				// Unmatched. Keep it so that the tree builder can report it.
				out = append(out, tok)
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunc {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		default:
			out = append(out, tok)
		}
	}
	for len(stack) > 0 {
		out = append(out, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return out
}

// postfixTree assembles a tree from postfix tokens.
func postfixTree(tokens []Token) (*Node, error) {
	var stack []*Node
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum:
			v, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				return nil, &StructuralError{Col: tok.Pos, Msg: "invalid number " + strconv.Quote(tok.Text)}
			}
			stack = append(stack, &Node{Kind: NodeNum, Num: v})
		case TokenVar:
			stack = append(stack, &Node{Kind: NodeVar, Name: tok.Text})
		case TokenOp:
			if tok.Text == UnaryMinus {
				if len(stack) < 1 {
					return nil, &StructuralError{Col: tok.Pos, Msg: "missing operand for unary minus"}
				}
				stack[len(stack)-1] = &Node{Kind: NodeNeg, Right: stack[len(stack)-1]}
				continue
			}
			kind := binkinds[tok.Text]
			if kind == NodeNone {
				return nil, &StructuralError{Col: tok.Pos, Msg: "unknown operator " + strconv.Quote(tok.Text)}
			}
			if len(stack) < 2 {
				return nil, &StructuralError{Col: tok.Pos, Msg: "missing operand for " + strconv.Quote(tok.Text)}
			}
			l, r := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = &Node{Kind: kind, Left: l, Right: r}
		case TokenFunc:
			if len(stack) < 1 {
				return nil, &StructuralError{Col: tok.Pos, Msg: "missing operand for function " + tok.Text}
			}
			stack[len(stack)-1] = &Node{Kind: NodeCall, Name: tok.Text, Right: stack[len(stack)-1]}
		case TokenOpen, TokenClose:
			return nil, &StructuralError{Col: tok.Pos, Msg: "unmatched parenthesis"}
		default:
			return nil, &StructuralError{Col: tok.Pos, Msg: "unexpected token " + strconv.Quote(tok.Text)}
		}
	}
	switch len(stack) {
	case 0:
		return nil, &StructuralError{Col: -1, Msg: "empty expression"}
	case 1:
		return stack[0], nil
	default:
		return nil, &StructuralError{Col: -1, Msg: "incomplete expression"}
	}
}

var binkinds = map[string]NodeKind{
	"+": NodeAdd,
	"-": NodeSub,
	"*": NodeMul,
	"/": NodeDiv,
	"^": NodePow,
}

// opprec gets the precedence of an operator or function token. Higher binds
// tighter. Functions bind tightest of all.
func opprec(tok Token) int {
	if tok.Kind == TokenFunc {
		return 5
	}
	switch tok.Text {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	case "^":
		return 3
	case UnaryMinus:
		return 4
	default:
		return 0
	}
}

// uniq sorts names and removes duplicates in place.
func uniq(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	sortstrs(names)
	k := 1
	for _, s := range names[1:] {
		if s != names[k-1] {
			names[k] = s
			k++
		}
	}
	return names[:k]
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Tokens returns the tokens the expression was parsed from.
func (e *Expr) Tokens() []Token {
	return append(([]Token)(nil), e.tokens...)
}

// Root returns the root of the expression's syntax tree. The tree must not be
// modified.
func (e *Expr) Root() *Node {
	return e.n
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}
