package varstore

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"
)

func TestValidName(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"x", true},
		{"X", true},
		{"x1", true},
		{"rate_2", true},
		{"", false},
		{"1x", false},
		{"_x", false},
		{"x-y", false},
		{"x y", false},
		{"π", false},
		{"sqrt", false},
		{"ln", false},
		{"sqrt2", true},
	}
	for _, c := range cases {
		if got := ValidName(c.name); got != c.ok {
			t.Errorf("ValidName(%q): want %v, got %v", c.name, c.ok, got)
		}
	}
}

func TestConstants(t *testing.T) {
	c := Constants()
	if c["pi"] != math.Pi || c["PI"] != math.Pi {
		t.Errorf("wrong pi: %v, %v", c["pi"], c["PI"])
	}
	if c["e"] != math.E {
		t.Errorf("wrong e: %v", c["e"])
	}
	c["pi"] = 3
	if Constants()["pi"] != math.Pi {
		t.Errorf("modifying returned constants changed them")
	}
}

// stores runs a test against each store implementation.
func stores(t *testing.T, f func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		f(t, NewMemory())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := Open(filepath.Join(t.TempDir(), "vars.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		f(t, s)
	})
}

func TestStoreDefine(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		if err := s.Define("x", 5); err != nil {
			t.Fatal(err)
		}
		if v, ok := s.Lookup("x"); !ok || v != 5 {
			t.Errorf("x: want 5, got %v, %v", v, ok)
		}
		if err := s.Define("x", -2.5); err != nil {
			t.Fatal(err)
		}
		if v, ok := s.Lookup("x"); !ok || v != -2.5 {
			t.Errorf("x after redefinition: want -2.5, got %v, %v", v, ok)
		}
		if _, ok := s.Lookup("y"); ok {
			t.Errorf("y is bound")
		}
		errs := []struct {
			name  string
			value float64
			err   error
		}{
			{"pi", 3, ErrConstant},
			{"PI", 3, ErrConstant},
			{"e", 3, ErrConstant},
			{"ans", 3, ErrReserved},
			{"1x", 3, ErrInvalidName},
			{"sqrt", 3, ErrInvalidName},
			{"z", math.Inf(1), ErrInvalidValue},
			{"z", math.NaN(), ErrInvalidValue},
		}
		for _, c := range errs {
			if err := s.Define(c.name, c.value); !errors.Is(err, c.err) {
				t.Errorf("Define(%q, %v): want %v, got %v", c.name, c.value, c.err, err)
			}
		}
		if v, _ := s.Lookup("pi"); v != math.Pi {
			t.Errorf("pi changed to %v", v)
		}
	})
}

func TestStoreDelete(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		s.Define("x", 1)
		s.Define("y", 2)
		if err := s.Delete("x"); err != nil {
			t.Fatal(err)
		}
		if _, ok := s.Lookup("x"); ok {
			t.Errorf("x still bound")
		}
		if err := s.Delete("x"); err != nil {
			t.Errorf("deleting unbound name: %v", err)
		}
		if err := s.Delete("pi"); !errors.Is(err, ErrConstant) {
			t.Errorf("deleting pi: want ErrConstant, got %v", err)
		}
		if err := s.Delete(Answer); !errors.Is(err, ErrReserved) {
			t.Errorf("deleting ans: want ErrReserved, got %v", err)
		}
		if _, ok := s.Lookup("pi"); !ok {
			t.Errorf("pi deleted")
		}
	})
}

func TestStoreClear(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		s.Define("x", 1)
		s.Define("y", 2)
		s.SetAnswer(7)
		if err := s.Clear(); err != nil {
			t.Fatal(err)
		}
		want := []string{"PI", "ans", "e", "pi"}
		if got := s.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("after clear: want %q, got %q", want, got)
		}
		if v, ok := s.Lookup(Answer); !ok || v != 7 {
			t.Errorf("answer after clear: want 7, got %v, %v", v, ok)
		}
	})
}

func TestStoreNames(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		want := []string{"PI", "e", "pi"}
		if got := s.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("empty store: want %q, got %q", want, got)
		}
		s.Define("z", 1)
		s.Define("a", 2)
		want = []string{"PI", "a", "e", "pi", "z"}
		if got := s.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("want %q, got %q", want, got)
		}
		all := All(s)
		if all["a"] != 2 || all["z"] != 1 || all["pi"] != math.Pi || len(all) != 5 {
			t.Errorf("wrong bindings %v", all)
		}
	})
}

func TestStoreAnswer(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		if _, ok := s.Lookup(Answer); ok {
			t.Errorf("answer bound before it was set")
		}
		if err := s.SetAnswer(math.Inf(-1)); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("infinite answer: want ErrInvalidValue, got %v", err)
		}
		if err := s.SetAnswer(3); err != nil {
			t.Fatal(err)
		}
		if err := s.SetAnswer(4); err != nil {
			t.Fatal(err)
		}
		if v, ok := s.Lookup(Answer); !ok || v != 4 {
			t.Errorf("want answer 4, got %v, %v", v, ok)
		}
	})
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Define("rate", 0.25); err != nil {
		t.Fatal(err)
	}
	s.Close()
	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if v, ok := s.Lookup("rate"); !ok || v != 0.25 {
		t.Errorf("rate after reopening: want 0.25, got %v, %v", v, ok)
	}
}
