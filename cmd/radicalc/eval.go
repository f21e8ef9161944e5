package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/radicals"
	"github.com/zephyrtronium/radicals/varstore"
)

func newEvalCmd(e *env) *cobra.Command {
	var (
		inname, verb string
		given        []string
		echo         bool
	)
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluate each argument as an expression. With no arguments, or with --in,
each non-empty line of the input is an expression. An expression that
begins with +, *, /, or ^ continues from the previous answer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, g := range given {
				if err := e.given(g); err != nil {
					return err
				}
			}
			var ins []io.Reader
			f, err := infile(cmd, inname, len(args) == 0)
			if err != nil {
				return err
			}
			if f != nil {
				defer f.Close()
				ins = append(ins, f)
			}
			for _, arg := range args {
				ins = append(ins, strings.NewReader(arg))
			}
			p := printer{w: cmd.OutOrStdout(), verb: verb, echo: echo}
			failed := 0
			for _, in := range ins {
				sc := bufio.NewScanner(in)
				for sc.Scan() {
					line := strings.TrimSpace(sc.Text())
					if line == "" {
						continue
					}
					if !e.run(&p, line) {
						failed++
					}
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("couldn't read input: %w", err)
				}
			}
			if failed != 0 {
				return fmt.Errorf("%d expression(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	cmd.Flags().StringVar(&verb, "fmt", "%v", "result formatting verb")
	cmd.Flags().StringArrayVar(&given, "given", nil, "name=expression variable definition (any number of times)")
	cmd.Flags().BoolVar(&echo, "echo", false, "print parse trees")
	return cmd
}

func infile(cmd *cobra.Command, inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, fmt.Errorf("couldn't open input: %w", err)
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return nil, nil
}

// given defines a variable from a name=expression pair.
func (e *env) given(s string) error {
	name, src, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf(`variable definitions must be "name=expression", not %q`, s)
	}
	_, err := e.define(strings.TrimSpace(name), strings.TrimSpace(src))
	return err
}

// define evaluates src and binds its value to name.
func (e *env) define(name, src string) (float64, error) {
	r := e.engine.Evaluate(src, e.store)
	if !r.Success {
		return 0, fmt.Errorf("setting %s: %w", name, r.Err)
	}
	if err := e.store.Define(name, r.Value); err != nil {
		return 0, fmt.Errorf("setting %s: %w", name, err)
	}
	return r.Value, nil
}

// run evaluates a line, prints the outcome, and records a successful result
// as the answer. It reports whether evaluation succeeded.
func (e *env) run(p *printer, line string) bool {
	src := varstore.PrependAnswer(line, e.store)
	x, err := radicals.Parse(src)
	if err != nil {
		p.failure(src, err)
		return false
	}
	if p.echo {
		fmt.Fprintf(p.w, "%v : ", x)
	}
	r := e.engine.Eval(x, e.store)
	if !r.Success {
		p.failure(src, r.Err)
		return false
	}
	p.result(r)
	if err := e.store.SetAnswer(r.Value); err != nil {
		e.log.Warn("couldn't set answer", slog.Any("err", err))
	}
	return true
}

type printer struct {
	w    io.Writer
	verb string
	echo bool
}

// result prints the decimal value of r followed by its radical form, if it
// has one that is not just a rational number.
func (p *printer) result(r radicals.Result) {
	fmt.Fprintf(p.w, p.verb, r.Value)
	switch {
	case r.Radical != nil && !r.Radical.IsRational():
		fmt.Fprintf(p.w, " = %v", r.Radical)
	case r.Approx != nil:
		fmt.Fprintf(p.w, " ≈ %v", r.Approx)
	}
	fmt.Fprintln(p.w)
}

// failure prints an error, with a caret under the offending position when
// the error has one.
func (p *printer) failure(src string, err error) {
	var in radicals.InputError
	if errors.As(err, &in) && in.Pos() >= 0 {
		fmt.Fprintf(p.w, "  %s\n  %s^\n", src, strings.Repeat(" ", in.Pos()))
	}
	fmt.Fprintln(p.w, "error:", err)
}
