package radicals

// Store is a source of variable values. An evaluation reads each variable it
// needs from the store once, before it begins computing, so a Store used
// concurrently with evaluations only needs to synchronize its own methods.
type Store interface {
	// Lookup returns the value bound to name and whether it is bound.
	Lookup(name string) (float64, bool)
	// Names returns every bound name.
	Names() []string
}

// Vars is a Store backed by a map. A nil Vars has no variables.
type Vars map[string]float64

// Lookup returns the value of the variable.
func (v Vars) Lookup(name string) (float64, bool) {
	x, ok := v[name]
	return x, ok
}

// Names returns the sorted variable names.
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

var _ Store = Vars(nil)
