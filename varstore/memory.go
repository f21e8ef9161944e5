package varstore

import (
	"fmt"
	"math"
	"sync"
)

// Memory is an in-memory variable store. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	vars   map[string]float64
	ans    float64
	hasAns bool
}

// NewMemory creates a store holding only the constants.
func NewMemory() *Memory {
	return &Memory{vars: make(map[string]float64)}
}

// Define binds name to value, replacing any previous binding.
func (m *Memory) Define(name string, value float64) error {
	if err := checkDefine(name, value); err != nil {
		return err
	}
	m.mu.Lock()
	m.vars[name] = value
	m.mu.Unlock()
	return nil
}

// Delete unbinds name.
func (m *Memory) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.vars, name)
	m.mu.Unlock()
	return nil
}

// Clear unbinds all variables. The constants and the answer remain.
func (m *Memory) Clear() error {
	m.mu.Lock()
	clear(m.vars)
	m.mu.Unlock()
	return nil
}

// Lookup returns the value bound to name.
func (m *Memory) Lookup(name string) (float64, bool) {
	if v, ok := constants[name]; ok {
		return v, true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if name == Answer {
		return m.ans, m.hasAns
	}
	v, ok := m.vars[name]
	return v, ok
}

// Names returns every bound name in sorted order, including the constants
// and the answer once it is set.
func (m *Memory) Names() []string {
	m.mu.RLock()
	all := make(map[string]float64, len(m.vars)+len(constants)+1)
	for k, v := range m.vars {
		all[k] = v
	}
	if m.hasAns {
		all[Answer] = m.ans
	}
	m.mu.RUnlock()
	for k, v := range constants {
		all[k] = v
	}
	return sorted(all)
}

// SetAnswer sets the answer slot.
func (m *Memory) SetAnswer(value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, Answer, value)
	}
	m.mu.Lock()
	m.ans, m.hasAns = value, true
	m.mu.Unlock()
	return nil
}

var _ Store = (*Memory)(nil)
