// Package varstore provides variable stores for radicals expressions.
//
// Every store here binds the constants pi, PI, and e, which cannot be
// redefined or deleted, and has a slot for the last answer, bound as "ans"
// once set. Memory keeps variables for the life of the process; SQLite keeps
// them in a database file.
package varstore

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/radicals"
)

// Answer is the name the last answer is bound to.
const Answer = "ans"

var (
	// ErrInvalidName is a variable name that is not a letter followed by
	// letters, digits, and underscores, or that names a function.
	ErrInvalidName = errors.New("invalid variable name")
	// ErrConstant is an attempt to redefine or delete a constant.
	ErrConstant = errors.New("cannot modify constant")
	// ErrReserved is an attempt to define or delete the answer slot directly.
	ErrReserved = errors.New("reserved name")
	// ErrInvalidValue is an infinite or NaN value.
	ErrInvalidValue = errors.New("value must be finite")
)

// Store is a variable store that can be modified.
type Store interface {
	radicals.Store
	// Define binds name to value.
	Define(name string, value float64) error
	// Delete unbinds name. Deleting an unbound name is not an error.
	Delete(name string) error
	// Clear unbinds every variable except the constants and the answer.
	Clear() error
	// SetAnswer sets the value of the answer slot.
	SetAnswer(value float64) error
}

// constants are computed at 128 bits and rounded once to float64, which
// gives exactly math.Pi and math.E. Evaluation itself is float64 only.
var constants = func() map[string]float64 {
	const prec = 128
	pi, _ := bigfloat.Pi(new(big.Float).SetPrec(prec)).Float64()
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	e, _ := bigfloat.Exp(new(big.Float).SetPrec(prec), one).Float64()
	return map[string]float64{
		"pi": pi,
		"PI": pi,
		"e":  e,
	}
}()

// Constants returns the constants bound in every store.
func Constants() map[string]float64 {
	m := make(map[string]float64, len(constants))
	for k, v := range constants {
		m[k] = v
	}
	return m
}

// IsConstant returns whether name is a constant.
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// ValidName returns whether name can be a variable: an ASCII letter followed
// by ASCII letters, digits, and underscores, not the name of a function.
func ValidName(name string) bool {
	if name == "" || radicals.IsFunc(name) {
		return false
	}
	for i, r := range name {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// checkDefine validates a definition common to all stores.
func checkDefine(name string, value float64) error {
	if err := checkName(name); err != nil {
		return err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, name, value)
	}
	return nil
}

// checkName validates a name to modify.
func checkName(name string) error {
	switch {
	case IsConstant(name):
		return fmt.Errorf("%w: %s", ErrConstant, name)
	case name == Answer:
		return fmt.Errorf("%w: %s", ErrReserved, name)
	case !ValidName(name):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// All returns every binding in s.
func All(s radicals.Store) map[string]float64 {
	names := s.Names()
	m := make(map[string]float64, len(names))
	for _, name := range names {
		if v, ok := s.Lookup(name); ok {
			m[name] = v
		}
	}
	return m
}

func sorted(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
