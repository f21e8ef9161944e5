// Package config loads settings for the radicalc command from the
// environment and from variable files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/radicals/varstore"
)

// Config holds the settings the command reads from its environment.
// Flags given on the command line take precedence over each field.
type Config struct {
	// DB is the path of the SQLite variable database. Empty means variables
	// are held in memory only.
	DB string
	// VarsFile is a YAML file of variables loaded at startup.
	VarsFile string
	// Addr is the listen address of the HTTP server.
	Addr string
	// LogLevel is the minimum level of log records.
	LogLevel slog.Level
	// Approx is the precision used to recognize inexact results as
	// radicals. Zero disables recognition.
	Approx float64
}

// DefaultApprox is the recognition precision used when approximation is
// requested without a precision.
const DefaultApprox = 1e-9

// FromEnv reads a Config from RADICALC_* environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DB:       os.Getenv("RADICALC_DB"),
		VarsFile: os.Getenv("RADICALC_VARS"),
		Addr:     envOrDefault("RADICALC_ADDR", ":8080"),
	}
	lvl, err := ParseLevel(envOrDefault("RADICALC_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = lvl
	if s := os.Getenv("RADICALC_APPROX"); s != "" {
		p, err := strconv.ParseFloat(s, 64)
		if err != nil || p < 0 {
			return Config{}, fmt.Errorf("invalid RADICALC_APPROX %q", s)
		}
		cfg.Approx = p
	}
	return cfg, nil
}

// ParseLevel parses a log level name: debug, info, warn, or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// Open opens the variable store the config names: the SQLite database at DB,
// or a fresh in-memory store if DB is empty. If VarsFile is set, its
// variables are defined in the store. The returned function releases the
// store.
func (cfg Config) Open() (varstore.Store, func() error, error) {
	var (
		s       varstore.Store
		release = func() error { return nil }
	)
	if cfg.DB != "" {
		db, err := varstore.Open(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		s, release = db, db.Close
	} else {
		s = varstore.NewMemory()
	}
	if cfg.VarsFile != "" {
		if _, err := LoadVariables(cfg.VarsFile, s); err != nil {
			release()
			return nil, nil, err
		}
	}
	return s, release, nil
}

// VarsFile is the format of a variables file:
//
//	variables:
//	  rate: 0.25
//	  side: 3
type VarsFile struct {
	Variables map[string]float64 `yaml:"variables"`
}

// LoadVariables reads the variables file at path and defines each of its
// variables in s. It returns the names defined, in sorted order. Loading
// stops at the first variable s rejects.
func LoadVariables(path string, s varstore.Store) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read variables: %w", err)
	}
	return DecodeVariables(src, s)
}

// DecodeVariables is like LoadVariables but reads the file contents from src.
func DecodeVariables(src []byte, s varstore.Store) ([]string, error) {
	var f VarsFile
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("couldn't parse variables: %w", err)
	}
	names := make([]string, 0, len(f.Variables))
	for name := range f.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		if err := s.Define(name, f.Variables[name]); err != nil {
			return names[:i], err
		}
	}
	return names, nil
}

// EncodeVariables renders the variables bound in s, excluding the constants
// and the answer, in the variables file format.
func EncodeVariables(s varstore.Store) ([]byte, error) {
	f := VarsFile{Variables: make(map[string]float64)}
	for name, v := range varstore.All(s) {
		if varstore.IsConstant(name) || name == varstore.Answer {
			continue
		}
		f.Variables[name] = v
	}
	return yaml.Marshal(&f)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
