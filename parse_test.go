package radicals

import (
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is NodeNone, it is returned.
func (n *Node) diff(m *Node) (*Node, *Node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.Kind == NodeNone || m.Kind == NodeNone {
		return n, m
	}
	if n.Kind != m.Kind {
		return n, m
	}
	switch n.Kind {
	case NodeNum:
		if n.Num != m.Num {
			return n, m
		}
	case NodeVar:
		if n.Name != m.Name {
			return n, m
		}
	case NodeCall:
		if n.Name != m.Name {
			return n, m
		}
		if d, e := n.Right.diff(m.Right); d != nil || e != nil {
			return d, e
		}
	case NodeNeg, NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		if d, e := n.Left.diff(m.Left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.Right.diff(m.Right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		if binkinds[string(r)] == NodeNone {
			t.Errorf("no node kind for %c", r)
		}
		if opprec(Token{Kind: TokenOp, Text: string(r)}) == 0 {
			t.Errorf("no precedence for %c", r)
		}
	}
	if p, q := opprec(Token{Kind: TokenOp, Text: UnaryMinus}), opprec(Token{Kind: TokenOp, Text: "^"}); p <= q {
		t.Errorf("negation has precedence %d, not above ^ at %d", p, q)
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "((((x))))", "x"},
		{"add-left", "x+y+z", "(x+y)+z"},
		{"sub-left", "x-y-z", "(x-y)-z"},
		{"mul-left", "x*y*z", "(x*y)*z"},
		{"div-left", "x/y/z", "(x/y)/z"},
		{"pow-left", "x^y^z", "(x^y)^z"},
		{"mul-add", "x+y*z", "x+(y*z)"},
		{"add-mul", "x*y+z", "(x*y)+z"},
		{"pow-mul", "x*y^z", "x*(y^z)"},
		{"neg-pow", "-x^y", "(-x)^y"},
		{"pow-neg", "x^-y", "x^(-y)"},
		{"mul-neg-pow", "x*-y^z", "x*((-y)^z)"},
		{"neg-neg", "--x", "-(-x)"},
		{"sub-neg", "x--y", "x-(-y)"},
		{"call-pow", "sqrt(x)^y", "(sqrt(x))^y"},
		{"call-arg", "sqrt(x+y)", "sqrt((x+y))"},
		{"call-neg", "-sqrt(x)", "-(sqrt(x))"},
		{"nested-calls", "abs(sin(x))", "abs((sin((x))))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.b, err)
			}
			if x, y := a.n.diff(b.n); x != nil || y != nil {
				t.Errorf("%q and %q parsed differently:\n%v\n%v\nfirst difference at %v and %v", c.a, c.b, a, b, x, y)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	num := func(x float64) *Node { return &Node{Kind: NodeNum, Num: x} }
	v := func(s string) *Node { return &Node{Kind: NodeVar, Name: s} }
	bin := func(k NodeKind, l, r *Node) *Node { return &Node{Kind: k, Left: l, Right: r} }
	cases := []struct {
		name string
		src  string
		n    *Node
	}{
		{"num", "2.5", num(2.5)},
		{"var", "x", v("x")},
		{"precedence", "2 + 3 * 4", bin(NodeAdd, num(2), bin(NodeMul, num(3), num(4)))},
		{"grouping", "(2 + 3) * 4", bin(NodeMul, bin(NodeAdd, num(2), num(3)), num(4))},
		{"pow", "2 ^ 3 ^ 2", bin(NodePow, bin(NodePow, num(2), num(3)), num(2))},
		{"neg-pow", "-2^2", bin(NodePow, &Node{Kind: NodeNeg, Right: num(2)}, num(2))},
		{"double-neg", "--3", &Node{Kind: NodeNeg, Right: &Node{Kind: NodeNeg, Right: num(3)}}},
		{"call", "sqrt(8) + 1", bin(NodeAdd, &Node{Kind: NodeCall, Name: "sqrt", Right: num(8)}, num(1))},
		{"vars", "x*y - z", bin(NodeSub, bin(NodeMul, v("x"), v("y")), v("z"))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if x, y := a.n.diff(c.n); x != nil || y != nil {
				t.Errorf("%q parsed wrong:\nwant %v\ngot  %v\nfirst difference at %v and %v", c.src, c.n, a.n, y, x)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "(1)"},
		{"decimal", "0.50", "(0.5)"},
		{"var", "x", "(x)"},
		{"neg", "-x", "(-[x])"},
		{"add", "x+y", "([x] + [y])"},
		{"precedence", "2+3*4", "([2] + [(3) * (4)])"},
		{"call", "sqrt(2)", "(sqrt[2])"},
		{"call-expr", "sqrt(2)*x", "([sqrt(2)] * [x])"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.String(); got != c.want {
				t.Errorf("%q: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}

func TestExprVars(t *testing.T) {
	cases := []struct {
		src  string
		vars []string
	}{
		{"1", nil},
		{"x", []string{"x"}},
		{"y + x + y", []string{"x", "y"}},
		{"sqrt(b) * a - -c", []string{"a", "b", "c"}},
		{"x * xy", []string{"x", "xy"}},
	}
	for _, c := range cases {
		a, err := Parse(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if got := a.Vars(); !reflect.DeepEqual(got, c.vars) {
			t.Errorf("%q: want vars %q, got %q", c.src, c.vars, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		res  []string
	}{
		{"empty", "", new(StructuralError), []string{`(?i)\bempty expression\b`}},
		{"blank", "   ", new(StructuralError), []string{`(?i)\bempty expression\b`}},
		{"emptyparen", "()", new(StructuralError), []string{`(?i)\bempty expression\b`}},
		{"adjacent", "2 3", new(StructuralError), []string{`(?i)\bincomplete\b`}},
		{"adjacent-paren", "2(3)", new(StructuralError), []string{`(?i)\bincomplete\b`}},
		{"comma", "1, 2", new(StructuralError), []string{`(?i)\bincomplete\b`}},
		{"call-comma", "sqrt(1, 2)", new(StructuralError), []string{`(?i)\bincomplete\b`}},
		{"neg-alone", "-", new(StructuralError), []string{`(?i)\bunary minus\b`}},
		{"neg-trailing", "2*-", new(StructuralError), []string{`(?i)\bmissing operand\b`, `\*`}},
		{"emptycall", "sqrt()", new(StructuralError), []string{`(?i)\bmissing operand\b`, `sqrt`}},
		{"left", "(x", SyntaxErrors(nil), []string{`(?i)\bunclosed\b`}},
		{"right", "x)", SyntaxErrors(nil), []string{`(?i)\bunmatched\b`}},
		{"nonunary", "*x", SyntaxErrors(nil), []string{`(?i)\bplacement\b`, `\*`}},
		{"trailing", "x*", SyntaxErrors(nil), []string{`(?i)\brequires an operand\b`}},
		{"bare-func", "sqrt", SyntaxErrors(nil), []string{`(?i)\bparentheses\b`}},
		{"lexer", "2^sqrt(-$)", new(LexError), []string{`\$`, `\b8\b`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			if _, ok := err.(InputError); !ok {
				t.Errorf("%q: %T is not an InputError", c.src, err)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

// TestParseTokensUnvalidated checks that sequences Validate would reject do
// not panic the parser.
func TestParseTokensUnvalidated(t *testing.T) {
	cases := []string{"+", "1 +", "+ 1", "* *", ")", "(", ")(", "sqrt", "sqrt +", "1 ) + ( 2", "(((", ")))"}
	for _, src := range cases {
		toks, err := Tokenize(src)
		if err != nil {
			t.Fatalf("%q failed to lex: %v", src, err)
		}
		n, err := ParseTokens(toks)
		if err == nil {
			t.Errorf("%q parsed to %v with no error", src, n)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"nums", "1^1.1*11+0.11+.1*2^3"},
		{"calls", "sqrt(abs(sin(x))) + ln(log(y))"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(c.src)
			}
		})
	}
}
