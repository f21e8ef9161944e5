package radicals

import (
	"math"
	"strconv"
	"strings"
)

// maxExact is the largest integer below which every integer is exactly
// representable as a float64.
const maxExact = 1 << 53

// Form is a single simplified radical c√r. A radicand of 1 means the form is
// the plain number c.
type Form struct {
	Coefficient float64
	Radicand    int64
}

// Float64 returns the value of the form.
func (f Form) Float64() float64 {
	if f.Radicand == 1 {
		return f.Coefficient
	}
	return f.Coefficient * math.Sqrt(float64(f.Radicand))
}

func (f Form) String() string {
	if f.Radicand == 1 {
		return formatNum(f.Coefficient)
	}
	r := strconv.FormatInt(f.Radicand, 10)
	switch f.Coefficient {
	case 1:
		return "√" + r
	case -1:
		return "-√" + r
	default:
		return formatNum(f.Coefficient) + "√" + r
	}
}

// Simplify writes √|n| in the form c√r with r square-free, carrying the sign
// of n on c. Zero gives 0√1. If n is not an integer, or is too large to be
// one exactly, then no square factor can be extracted and the result is
// sign(n)·√|n| with radicand 1.
func Simplify(n float64) Form {
	if n == 0 {
		return Form{Coefficient: 0, Radicand: 1}
	}
	a := math.Abs(n)
	if a != math.Trunc(a) || a > maxExact {
		return Form{Coefficient: math.Copysign(math.Sqrt(a), n), Radicand: 1}
	}
	c, r := squarefree(int64(a))
	return Form{Coefficient: math.Copysign(float64(c), n), Radicand: r}
}

// squarefree factors n > 0 by trial division as c²·r with r square-free.
func squarefree(n int64) (c, r int64) {
	c, r = 1, 1
	k := 0
	for n%2 == 0 {
		n /= 2
		k++
	}
	c <<= k / 2
	if k%2 != 0 {
		r *= 2
	}
	for p := int64(3); p*p <= n; p += 2 {
		k = 0
		for n%p == 0 {
			n /= p
			k++
		}
		for i := 0; i < k/2; i++ {
			c *= p
		}
		if k%2 != 0 {
			r *= p
		}
	}
	if n > 1 {
		// What's left is a prime appearing once.
		r *= n
	}
	return c, r
}

// ConvertToRadical tries to recognize x as c√r by approximating x² as a
// fraction p/q with q ≤ 10000 to within precision, then simplifying √p/√q and
// rationalizing the denominator. If no fraction is close enough, the result
// is x itself with radicand 1. A precision of zero or less means 1e-4.
func ConvertToRadical(x, precision float64) Form {
	if precision <= 0 {
		precision = 1e-4
	}
	plain := Form{Coefficient: x, Radicand: 1}
	sq := x * x
	if x == 0 || math.IsNaN(sq) || sq > maxExact/maxDenominator {
		return plain
	}
	p, q, ok := fraction(sq, precision)
	if !ok || p == 0 {
		return plain
	}
	cn, rn := squarefree(p)
	cd, rd := squarefree(q)
	// √p/√q = cn√rn / (cd√rd) = cn√(rn·rd) / (cd·rd)
	g, r, ok := mulRadicands(rn, rd)
	if !ok {
		return plain
	}
	c := float64(cn*g) / float64(cd*rd)
	return Form{Coefficient: math.Copysign(c, x), Radicand: r}
}

const maxDenominator = 10000

// fraction finds the fraction p/q, q ≤ maxDenominator, nearest to x ≥ 0 within
// precision. Among equally near fractions, the one with the least denominator
// wins.
func fraction(x, precision float64) (p, q int64, ok bool) {
	best := math.Inf(1)
	for d := int64(1); d <= maxDenominator; d++ {
		n := math.Round(x * float64(d))
		e := math.Abs(x - n/float64(d))
		if e < precision && e < best {
			p, q, best, ok = int64(n), d, e, true
			if e == 0 {
				break
			}
		}
	}
	return p, q, ok
}

// mulRadicands multiplies two square-free radicands, giving g√r = √a·√b with
// r square-free. ok is false if r would not be exact.
func mulRadicands(a, b int64) (g, r int64, ok bool) {
	// With a and b square-free, a = g·a' and b = g·b' where a' and b' are
	// coprime and square-free, so √(ab) = g√(a'b') is already simplified.
	g = gcd(a, b)
	a, b = a/g, b/g
	if a > maxExact/b {
		return 0, 0, false
	}
	return g, a * b, true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Term is a single radical term c√r within an Expression.
type Term struct {
	Coefficient float64
	// Radicand is positive and square-free. Terms with radicand 1 are folded
	// into an Expression's constant.
	Radicand int64
}

// Expression is an exact sum of a rational constant and radical terms with
// distinct radicands. The zero value is the number 0. Expressions are values;
// every operation returns a new one.
type Expression struct {
	terms    []Term
	constant float64
}

// NewExpression creates the expression constant + Σ terms. Terms with the same
// radicand are combined, terms whose coefficients sum to zero are dropped,
// and radicands that are not square-free are simplified. The order of the
// remaining terms follows their first appearance.
//
// A term with radicand 0 is zero and is dropped. NewExpression panics if any
// radicand is negative.
func NewExpression(terms []Term, constant float64) Expression {
	norm := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Radicand == 1 {
			constant += t.Coefficient
			continue
		}
		f := Simplify(float64(t.Radicand))
		if f.Radicand < 1 || f.Coefficient < 0 {
			// Only reachable for a non-positive radicand, which has no
			// real square root.
			panic("radicals: invalid radicand " + strconv.FormatInt(t.Radicand, 10))
		}
		norm = append(norm, Term{Coefficient: t.Coefficient * f.Coefficient, Radicand: f.Radicand})
	}
	return merge(norm, constant)
}

// Constant creates an expression with no radical terms.
func Constant(x float64) Expression {
	return Expression{constant: x}
}

// merge combines like terms of already simplified terms.
func merge(terms []Term, constant float64) Expression {
	out := make([]Term, 0, len(terms))
	idx := make(map[int64]int, len(terms))
	for _, t := range terms {
		if t.Radicand == 1 {
			constant += t.Coefficient
			continue
		}
		if k, ok := idx[t.Radicand]; ok {
			out[k].Coefficient += t.Coefficient
			continue
		}
		idx[t.Radicand] = len(out)
		out = append(out, t)
	}
	k := 0
	for _, t := range out {
		if t.Coefficient != 0 {
			out[k] = t
			k++
		}
	}
	if constant == 0 {
		// No negative zero.
		constant = 0
	}
	return Expression{terms: out[:k:k], constant: constant}
}

// Terms returns a copy of the radical terms of e.
func (e Expression) Terms() []Term {
	return append(([]Term)(nil), e.terms...)
}

// Constant returns the rational part of e.
func (e Expression) Constant() float64 {
	return e.constant
}

// IsRational reports whether e has no radical terms.
func (e Expression) IsRational() bool {
	return len(e.terms) == 0
}

// Float64 returns the value of e.
func (e Expression) Float64() float64 {
	v := e.constant
	for _, t := range e.terms {
		v += t.Coefficient * math.Sqrt(float64(t.Radicand))
	}
	return v
}

// finite reports whether every coefficient of e is a finite number.
func (e Expression) finite() bool {
	if math.IsInf(e.constant, 0) || math.IsNaN(e.constant) {
		return false
	}
	for _, t := range e.terms {
		if math.IsInf(t.Coefficient, 0) || math.IsNaN(t.Coefficient) {
			return false
		}
	}
	return true
}

// String renders e with the constant first, e.g. "1 + 2√3 - √5".
func (e Expression) String() string {
	var b strings.Builder
	if e.constant != 0 {
		b.WriteString(formatNum(e.constant))
	}
	for _, t := range e.terms {
		s := Form(t).String()
		switch {
		case b.Len() == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// Add returns a + b.
func Add(a, b Expression) Expression {
	terms := make([]Term, 0, len(a.terms)+len(b.terms))
	terms = append(terms, a.terms...)
	terms = append(terms, b.terms...)
	return merge(terms, a.constant+b.constant)
}

// Neg returns -a.
func Neg(a Expression) Expression {
	return Scale(a, -1)
}

// Scale returns k·a.
func Scale(a Expression, k float64) Expression {
	terms := make([]Term, len(a.terms))
	for i, t := range a.terms {
		terms[i] = Term{Coefficient: t.Coefficient * k, Radicand: t.Radicand}
	}
	return merge(terms, a.constant*k)
}

// Quo returns a/k, dividing each coefficient. k must not be zero.
func Quo(a Expression, k float64) Expression {
	terms := make([]Term, len(a.terms))
	for i, t := range a.terms {
		terms[i] = Term{Coefficient: t.Coefficient / k, Radicand: t.Radicand}
	}
	return merge(terms, a.constant/k)
}

// maxTerms is the most term products Mul will form.
const maxTerms = 1 << 10

// Mul returns a·b, distributing every pair of terms. ok is false if the
// product cannot be represented exactly, because a radicand grows beyond the
// exact integer range or a coefficient overflows, or if it would have more
// than maxTerms term products.
func Mul(a, b Expression) (r Expression, ok bool) {
	if len(a.terms)*len(b.terms) > maxTerms {
		return Expression{}, false
	}
	terms := make([]Term, 0, len(a.terms)*len(b.terms)+len(a.terms)+len(b.terms))
	for _, s := range a.terms {
		for _, t := range b.terms {
			g, rad, ok := mulRadicands(s.Radicand, t.Radicand)
			if !ok {
				return Expression{}, false
			}
			terms = append(terms, Term{Coefficient: s.Coefficient * t.Coefficient * float64(g), Radicand: rad})
		}
	}
	if b.constant != 0 {
		for _, s := range a.terms {
			terms = append(terms, Term{Coefficient: s.Coefficient * b.constant, Radicand: s.Radicand})
		}
	}
	if a.constant != 0 {
		for _, t := range b.terms {
			terms = append(terms, Term{Coefficient: t.Coefficient * a.constant, Radicand: t.Radicand})
		}
	}
	r = merge(terms, a.constant*b.constant)
	return r, r.finite()
}

// Pow returns a^n for n ≥ 0 by repeated squaring. ok is false if n is
// negative or any intermediate product is not exact.
func Pow(a Expression, n int) (r Expression, ok bool) {
	if n < 0 {
		return Expression{}, false
	}
	r = Constant(1)
	for n > 0 {
		if n&1 != 0 {
			if r, ok = Mul(r, a); !ok {
				return Expression{}, false
			}
		}
		n >>= 1
		if n > 0 {
			if a, ok = Mul(a, a); !ok {
				return Expression{}, false
			}
		}
	}
	return r, true
}

// formatNum formats a number the way results are displayed: shortest exact
// decimal, no exponent.
func formatNum(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
