package radicals

import (
	"errors"
	"strconv"
	"strings"
)

// LexError indicates a character that cannot begin any token. It implements
// InputError.
type LexError struct {
	// Text is the offending character, or the bare decimal point that was
	// not followed by a digit.
	Text string
	// Col is the 0-based rune offset of the offending character.
	Col int
}

func (err *LexError) Error() string {
	return "unknown character " + strconv.Quote(err.Text) + " at position " + strconv.Itoa(err.Col)
}

func (err *LexError) Pos() int {
	return err.Col
}

// SyntaxError is a single structural problem found by Validate. It
// implements InputError.
type SyntaxError struct {
	// Col is the position of the token at fault.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// SyntaxErrors is every problem Validate found in a token sequence, in the
// order they were found. An empty SyntaxErrors means the tokens are valid.
type SyntaxErrors []*SyntaxError

func (errs SyntaxErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no syntax errors"
	case 1:
		return errs[0].Error()
	}
	var b strings.Builder
	b.WriteString(errs[0].Error())
	for _, err := range errs[1:] {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Pos returns the position of the first error, or -1 if there are none.
func (errs SyntaxErrors) Pos() int {
	if len(errs) == 0 {
		return -1
	}
	return errs[0].Col
}

// Err returns errs as an error, or nil if it is empty.
func (errs SyntaxErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// StructuralError indicates a token sequence that the parser could not reduce
// to a single expression. Validated input should never produce one. It
// implements InputError.
type StructuralError struct {
	// Col is the position of the token where reduction failed, or -1 if the
	// failure was at the end of input.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *StructuralError) Error() string {
	if err.Col < 0 {
		return "invalid expression: " + err.Msg
	}
	return errpos(err.Col, "invalid expression: "+err.Msg)
}

func (err *StructuralError) Pos() int {
	return err.Col
}

// UndefinedVariableError names every variable that an expression uses but
// the variable store does not define.
type UndefinedVariableError struct {
	// Names is the sorted list of missing names.
	Names []string
}

func (err *UndefinedVariableError) Error() string {
	return "Undefined variable(s): " + strings.Join(err.Names, ", ")
}

var (
	// ErrDomain is the root of all domain errors.
	ErrDomain = errors.New("argument outside domain")
	// ErrDivisionByZero is a division whose divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeRadicand is a square root of a negative number.
	ErrNegativeRadicand = errors.New("square root of negative number")
	// ErrNonPositiveLogarithm is a logarithm of zero or a negative number.
	ErrNonPositiveLogarithm = errors.New("logarithm of non-positive number")
)

// DomainError is an error returned when an operator or function is applied to
// an argument outside its domain. It unwraps to one of the Err sentinels.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the function name or operator.
	Func string
	// Err is the kind of domain violation.
	Err error
}

func (err *DomainError) Error() string {
	x := strconv.FormatFloat(err.X, 'g', -1, 64)
	switch err.Err {
	case ErrDivisionByZero:
		return err.Err.Error()
	case ErrDomain, nil:
		return x + " outside domain of " + err.Func
	default:
		return err.Err.Error() + ": " + err.Func + "(" + x + ")"
	}
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// Is reports every domain error as ErrDomain in addition to its own kind.
func (err *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based rune offset of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = SyntaxErrors(nil)
	_ InputError = (*StructuralError)(nil)
)
