package radicals

import (
	"context"
	"log/slog"
	"math"
)

// Engine evaluates expressions. An Engine holds no state between evaluations
// and is safe for concurrent use.
type Engine struct {
	log    *slog.Logger
	approx bool
	prec   float64
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := new(Engine)
	for _, opt := range opts {
		opt.engineOption(e)
	}
	return e
}

func (e *Engine) logger() *slog.Logger {
	if e.log == nil {
		return slog.Default()
	}
	return e.log
}

// Result is the outcome of an evaluation. Exactly one of the success and
// failure fields is meaningful, as selected by Success.
type Result struct {
	// Success is whether the evaluation completed.
	Success bool
	// Value is the numeric result.
	Value float64
	// Decimal is the numeric result as displayed, always equal to Value.
	Decimal float64
	// Radical is the exact radical form of the result, if one could be
	// established.
	Radical *Expression
	// Approx is a radical recognized from Value when the exact form is absent
	// or has no radical terms and the engine was created with
	// WithApproxPrecision.
	Approx *Form
	// Err is the reason the evaluation failed.
	Err error
}

// Message returns the error message of a failed evaluation, or the empty
// string for a successful one.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func failure(err error) Result {
	return Result{Err: err}
}

var std = NewEngine()

// Evaluate parses and evaluates an expression using the default engine.
func Evaluate(src string, vars Store) Result {
	return std.Evaluate(src, vars)
}

// Evaluate parses and evaluates an expression. Every failure, whether in
// lexing, validation, parsing, variable lookup, or computation, is reported
// through the result.
func (e *Engine) Evaluate(src string, vars Store) Result {
	x, err := Parse(src)
	if err != nil {
		e.logger().Debug("parse failed", slog.String("expr", src), slog.Any("err", err))
		return failure(err)
	}
	return e.Eval(x, vars)
}

// Eval evaluates a parsed expression. The values of the variables x uses are
// read from vars once before evaluation begins. vars may be nil if x uses no
// variables.
func (e *Engine) Eval(x *Expr, vars Store) Result {
	log := e.logger()
	vals := make(map[string]float64, len(x.names))
	var missing []string
	for _, name := range x.names {
		var v float64
		ok := false
		if vars != nil {
			v, ok = vars.Lookup(name)
		}
		if !ok {
			missing = append(missing, name)
			continue
		}
		vals[name] = v
	}
	if len(missing) != 0 {
		err := &UndefinedVariableError{Names: missing}
		log.Debug("undefined variables", slog.String("expr", x.src), slog.Any("names", missing))
		return failure(err)
	}
	v, r, err := eval(x.n, vals)
	if err != nil {
		log.Debug("evaluation failed", slog.String("expr", x.src), slog.Any("err", err))
		return failure(err)
	}
	res := Result{Success: true, Value: v, Decimal: v, Radical: r}
	if e.approx && (r == nil || r.IsRational()) {
		if f := ConvertToRadical(v, e.prec); f.Radicand != 1 {
			res.Approx = &f
		}
	}
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("evaluated", slog.String("expr", x.src), slog.Float64("value", v), slog.Any("radical", r))
	}
	return res
}

// maxPow is the largest exponent for which exact powers are attempted.
const maxPow = 1 << 16

// eval computes the value of n and, where it can be established, its exact
// radical form. A nil *Expression means the value is not known exactly.
func eval(n *Node, vals map[string]float64) (float64, *Expression, error) {
	if n == nil {
		return 0, nil, &StructuralError{Col: -1, Msg: "missing node"}
	}
	switch n.Kind {
	case NodeNum:
		if n.Num == math.Trunc(n.Num) && math.Abs(n.Num) <= maxExact {
			r := Constant(n.Num)
			return n.Num, &r, nil
		}
		return n.Num, nil, nil

	case NodeVar:
		v, ok := vals[n.Name]
		if !ok {
			return 0, nil, &UndefinedVariableError{Names: []string{n.Name}}
		}
		return v, nil, nil

	case NodeNeg:
		v, r, err := eval(n.Right, vals)
		if err != nil {
			return 0, nil, err
		}
		if r != nil {
			*r = Neg(*r)
		}
		return -v, r, nil

	case NodeCall:
		x, _, err := eval(n.Right, vals)
		if err != nil {
			return 0, nil, err
		}
		f := builtins[n.Name]
		if f == nil {
			return 0, nil, &StructuralError{Col: -1, Msg: "unknown function " + n.Name}
		}
		v, err := f(x)
		if err != nil {
			return 0, nil, err
		}
		if n.Name == "sqrt" && x == math.Trunc(x) && x <= maxExact {
			s := Simplify(x)
			r := NewExpression([]Term{{Coefficient: s.Coefficient, Radicand: s.Radicand}}, 0)
			return v, &r, nil
		}
		return v, nil, nil

	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		lv, lr, err := eval(n.Left, vals)
		if err != nil {
			return 0, nil, err
		}
		rv, rr, err := eval(n.Right, vals)
		if err != nil {
			return 0, nil, err
		}
		return binary(n.Kind, lv, lr, rv, rr)

	default:
		return 0, nil, &StructuralError{Col: -1, Msg: "invalid node " + n.Kind.String()}
	}
}

// binary applies a binary operator to evaluated operands.
func binary(op NodeKind, lv float64, lr *Expression, rv float64, rr *Expression) (float64, *Expression, error) {
	switch op {
	case NodeAdd:
		return lv + rv, sum(lv, lr, rv, rr), nil

	case NodeSub:
		if rr != nil {
			*rr = Neg(*rr)
		}
		return lv - rv, sum(lv, lr, -rv, rr), nil

	case NodeMul:
		v := lv * rv
		switch {
		case lr != nil && rr != nil:
			if p, ok := Mul(*lr, *rr); ok {
				return v, &p, nil
			}
			return v, nil, nil
		case lr != nil:
			p := Scale(*lr, rv)
			return v, &p, nil
		case rr != nil:
			p := Scale(*rr, lv)
			return v, &p, nil
		}
		return v, nil, nil

	case NodeDiv:
		if rv == 0 {
			return 0, nil, &DomainError{X: lv, Func: "/", Err: ErrDivisionByZero}
		}
		v := lv / rv
		// Division by a plain decimal distributes over the terms. A divisor
		// with an exact form of its own, even an integer, drops to decimal.
		if lr != nil && rr == nil {
			q := Quo(*lr, rv)
			return v, &q, nil
		}
		return v, nil, nil

	case NodePow:
		v := math.Pow(lv, rv)
		if math.IsNaN(v) && !math.IsNaN(lv) && !math.IsNaN(rv) {
			return 0, nil, &DomainError{X: lv, Func: "^", Err: ErrDomain}
		}
		if lr != nil && rv >= 0 && rv == math.Trunc(rv) && rv <= maxPow {
			if p, ok := Pow(*lr, int(rv)); ok {
				return v, &p, nil
			}
		}
		return v, nil, nil

	default:
		panic("radicals: not a binary operator: " + op.String())
	}
}

// sum adds two operands, folding a plain decimal into the constant of the
// other operand's radical form.
func sum(lv float64, lr *Expression, rv float64, rr *Expression) *Expression {
	var s Expression
	switch {
	case lr != nil && rr != nil:
		s = Add(*lr, *rr)
	case lr != nil:
		s = Add(*lr, Constant(rv))
	case rr != nil:
		s = Add(Constant(lv), *rr)
	default:
		return nil
	}
	return &s
}
