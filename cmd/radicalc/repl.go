package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/radicals"
	"github.com/zephyrtronium/radicals/internal/config"
	"github.com/zephyrtronium/radicals/varstore"
)

const replHelp = `Enter an expression to evaluate it. An expression beginning with +, *, /,
or ^ continues from the previous answer, which is also available as ans.

  name = expr   define a variable
  :vars         list variables
  :del name     delete a variable
  :clear        delete all variables
  :sub expr     show expr with variable values substituted
  :save file    write variables to a YAML file
  :funcs        list functions
  :help         show this message
  :quit         exit
`

func newReplCmd(e *env) *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.repl(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "> ", "input prompt")
	return cmd
}

// repl reads lines from in until it ends or the user quits.
func (e *env) repl(in io.Reader, out io.Writer, prompt string) error {
	p := printer{w: out, verb: "%v"}
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			quit, err := e.command(out, line[1:])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
			}
			if quit {
				return nil
			}
		default:
			if name, src, ok := assignment(line); ok {
				v, err := e.define(name, src)
				if err != nil {
					fmt.Fprintln(out, "error:", err)
					continue
				}
				fmt.Fprintf(out, "%s = %v\n", name, v)
				continue
			}
			e.run(&p, line)
		}
	}
}

// assignment splits a line of the form name = expr.
func assignment(line string) (name, src string, ok bool) {
	name, src, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if !varstore.ValidName(name) && !varstore.IsConstant(name) && name != varstore.Answer {
		return "", "", false
	}
	return name, strings.TrimSpace(src), true
}

// command runs a colon command. It reports whether the REPL should exit.
func (e *env) command(out io.Writer, line string) (bool, error) {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch verb {
	case "quit", "q", "exit":
		return true, nil
	case "help", "h", "?":
		fmt.Fprint(out, replHelp)
	case "vars":
		listVars(out, e.store)
	case "funcs":
		fmt.Fprintln(out, strings.Join(radicals.Funcs(), " "))
	case "del":
		if arg == "" {
			return false, fmt.Errorf("usage: :del name")
		}
		return false, e.store.Delete(arg)
	case "clear":
		return false, e.store.Clear()
	case "sub":
		if arg == "" {
			return false, fmt.Errorf("usage: :sub expr")
		}
		fmt.Fprintln(out, varstore.Substitute(varstore.PrependAnswer(arg, e.store), e.store))
	case "save":
		if arg == "" {
			return false, fmt.Errorf("usage: :save file")
		}
		b, err := config.EncodeVariables(e.store)
		if err != nil {
			return false, err
		}
		if err := os.WriteFile(arg, b, 0o644); err != nil {
			return false, fmt.Errorf("couldn't save variables: %w", err)
		}
	default:
		return false, fmt.Errorf("unknown command :%s; try :help", verb)
	}
	return false, nil
}
