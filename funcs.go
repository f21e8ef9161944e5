package radicals

import (
	"math"
)

// Func is a real function of one real variable. If x is outside the
// function's domain, it returns a *DomainError.
type Func func(x float64) (float64, error)

var builtins = map[string]Func{
	"sqrt": Monadic("sqrt", math.Sqrt, func(x float64) error {
		if x < 0 {
			return ErrNegativeRadicand
		}
		return nil
	}),
	"abs": Monadic("abs", math.Abs, nil),
	"sin": Monadic("sin", math.Sin, nil),
	"cos": Monadic("cos", math.Cos, nil),
	"tan": Monadic("tan", math.Tan, nil),
	"log": Monadic("log", math.Log10, positive),
	"ln":  Monadic("ln", math.Log, positive),
}

func positive(x float64) error {
	if x <= 0 {
		return ErrNonPositiveLogarithm
	}
	return nil
}

// Monadic wraps a function of one variable into a Func. If domain is not nil,
// it is called before f and any error it returns is reported as a
// *DomainError of the named function.
func Monadic(name string, f func(float64) float64, domain func(float64) error) Func {
	return func(x float64) (float64, error) {
		if domain != nil {
			if err := domain(x); err != nil {
				return 0, &DomainError{X: x, Func: name, Err: err}
			}
		}
		return f(x), nil
	}
}

// IsFunc returns whether name is the name of a built-in function. Identifiers
// that name functions are lexed as function tokens and are never variables.
func IsFunc(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Funcs returns the sorted names of the built-in functions.
func Funcs() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Call applies the named built-in function to x. It panics if there is no
// such function.
func Call(name string, x float64) (float64, error) {
	f := builtins[name]
	if f == nil {
		panic("radicals: no function " + name)
	}
	return f(x)
}
