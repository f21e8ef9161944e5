package radicals

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	num := func(s string, p int) Token { return Token{Kind: TokenNum, Text: s, Pos: p} }
	op := func(s string, p int) Token { return Token{Kind: TokenOp, Text: s, Pos: p} }
	id := func(s string, p int) Token { return Token{Kind: TokenVar, Text: s, Pos: p} }
	fn := func(s string, p int) Token { return Token{Kind: TokenFunc, Text: s, Pos: p} }
	open := func(p int) Token { return Token{Kind: TokenOpen, Text: "(", Pos: p} }
	cl := func(p int) Token { return Token{Kind: TokenClose, Text: ")", Pos: p} }
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// spaces
		{"empty", "", nil},
		{"blank", " \t \r\n ", nil},
		// numbers
		{"zero", "0", []Token{num("0", 0)}},
		{"long", "9876543210", []Token{num("9876543210", 0)}},
		{"two", "1 0", []Token{num("1", 0), num("0", 2)}},
		{"decimal", "1.5", []Token{num("1.5", 0)}},
		{"leading-point", ".5", []Token{num(".5", 0)}},
		{"trailing-point", "5.", []Token{num("5.", 0)}},
		{"two-points", "1.1.1", []Token{num("1.1", 0), num(".1", 3)}},
		// identifiers
		{"var", "x", []Token{id("x", 0)}},
		{"var-digits", "x1_y", []Token{id("x1_y", 0)}},
		{"num-var", "2x", []Token{num("2", 0), id("x", 1)}},
		{"func", "sqrt(2)", []Token{fn("sqrt", 0), open(4), num("2", 5), cl(6)}},
		{"func-prefix", "sqrtx", []Token{id("sqrtx", 0)}},
		{"all-funcs", "abs sin cos tan log ln", []Token{fn("abs", 0), fn("sin", 4), fn("cos", 8), fn("tan", 12), fn("log", 16), fn("ln", 20)}},
		// operators
		{"add", "1+2", []Token{num("1", 0), op("+", 1), num("2", 2)}},
		{"all-ops", "1+2-3*4/5^6", []Token{num("1", 0), op("+", 1), num("2", 2), op("-", 3), num("3", 4), op("*", 5), num("4", 6), op("/", 7), num("5", 8), op("^", 9), num("6", 10)}},
		{"neg-first", "-1", []Token{op(UnaryMinus, 0), num("1", 1)}},
		{"neg-after-op", "2*-x", []Token{num("2", 0), op("*", 1), op(UnaryMinus, 2), id("x", 3)}},
		{"neg-after-open", "(-1)", []Token{open(0), op(UnaryMinus, 1), num("1", 2), cl(3)}},
		{"sub-after-close", "(1)-1", []Token{open(0), num("1", 1), cl(2), op("-", 3), num("1", 4)}},
		{"double-neg", "--3", []Token{op(UnaryMinus, 0), op(UnaryMinus, 1), num("3", 2)}},
		{"sub-neg", "a--b", []Token{id("a", 0), op("-", 1), op(UnaryMinus, 2), id("b", 3)}},
		{"comma", "1,2", []Token{num("1", 0), {Kind: TokenComma, Text: ",", Pos: 1}, num("2", 2)}},
		{"positions", " x  +  y", []Token{id("x", 1), op("+", 4), id("y", 7)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", c.src, err)
			}
			if !reflect.DeepEqual(got, c.tokens) {
				t.Errorf("%q:\nwant %v\ngot  %v", c.src, c.tokens, got)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		text string
		pos  int
	}{
		{"dollar", "$", "$", 0},
		{"after-var", "a$", "$", 1},
		{"after-num", "12 # 3", "#", 3},
		{"bare-point", ".", ".", 0},
		{"point-op", "1 + .", ".", 4},
		{"bracket", "[1]", "[", 0},
		{"equals", "x = 1", "=", 2},
		{"non-ascii", "é + 1", "é", 0},
		{"non-ascii-ident", "x2π", "π", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Tokenize(c.src)
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("%q: want *LexError, got %#v", c.src, err)
			}
			if lerr.Text != c.text {
				t.Errorf("%q: wrong character: want %q, got %q", c.src, c.text, lerr.Text)
			}
			if lerr.Pos() != c.pos {
				t.Errorf("%q: wrong position: want %d, got %d", c.src, c.pos, lerr.Pos())
			}
		})
	}
}
