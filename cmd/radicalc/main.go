// Command radicalc evaluates arithmetic expressions, reporting square roots
// in exact radical form where it can.
package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/radicals"
	"github.com/zephyrtronium/radicals/internal/config"
	"github.com/zephyrtronium/radicals/varstore"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// env is the state shared by every subcommand.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	engine  *radicals.Engine
	store   varstore.Store
	release func() error
}

func newRootCmd() *cobra.Command {
	e := new(env)
	root := &cobra.Command{
		Use:           "radicalc",
		Short:         "Evaluate expressions with exact square roots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.release == nil {
				return nil
			}
			return e.release()
		},
	}
	root.Version = version + " (commit=" + commit + ", built=" + date + ")"
	root.SetVersionTemplate("radicalc version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String("db", "", "SQLite database of variables (env RADICALC_DB; default in memory)")
	pf.String("vars", "", "YAML file of variables to load (env RADICALC_VARS)")
	pf.String("log-level", "", "debug, info, warn, or error (default info, env RADICALC_LOG_LEVEL)")
	pf.Float64("approx", 0, "precision for recognizing inexact results as radicals (env RADICALC_APPROX)")
	pf.Lookup("approx").NoOptDefVal = strconv.FormatFloat(config.DefaultApprox, 'g', -1, 64)

	root.AddCommand(
		newEvalCmd(e),
		newReplCmd(e),
		newServeCmd(e),
		newVarsCmd(e),
	)
	return root
}

// setup reads the configuration and opens the variable store. Flags take
// precedence over the environment.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB, _ = flags.GetString("db")
	}
	if flags.Changed("vars") {
		cfg.VarsFile, _ = flags.GetString("vars")
	}
	if flags.Changed("log-level") {
		s, _ := flags.GetString("log-level")
		if cfg.LogLevel, err = config.ParseLevel(s); err != nil {
			return err
		}
	}
	if flags.Changed("approx") {
		cfg.Approx, _ = flags.GetFloat64("approx")
	}
	e.cfg = cfg

	e.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	opts := []radicals.Option{radicals.WithLogger(e.log)}
	if cfg.Approx > 0 {
		opts = append(opts, radicals.WithApproxPrecision(cfg.Approx))
	}
	e.engine = radicals.NewEngine(opts...)

	e.store, e.release, err = cfg.Open()
	if err != nil {
		return err
	}
	e.log.Debug("opened variables", slog.String("db", cfg.DB), slog.String("vars", cfg.VarsFile))
	return nil
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("radicalc:", err)
		os.Exit(1)
	}
}
