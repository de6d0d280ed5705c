package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlopt/internal/logging"
	"github.com/katalvlaran/lvlopt/matrix"
	"github.com/katalvlaran/lvlopt/modelfile"
	"github.com/katalvlaran/lvlopt/problem"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg       cliConfig
	logger    *slog.Logger
	closer    io.Closer
	newLogger func(logging.Config, io.Writer) (*slog.Logger, io.Closer)
}

func newApp() *app {
	return &app{newLogger: logging.New}
}

func newRootCmd() *cobra.Command { return newApp().rootCmd() }

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "lvlopt",
		Short:             "Inspect and evaluate symbolic optimization models",
		Long:              `lvlopt loads a YAML model file, standardizes its objective and constraints and prints their symbolic derivatives or numeric evaluations.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file (logging, workers)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(a.inspectCmd(), a.evalCmd(), a.linearCmd())
	for _, sub := range root.Commands() {
		sub.RunE = a.closing(sub.RunE)
	}

	return root
}

// closing releases the log file after run, whether it fails or not.
func (a *app) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.closer.Close(); err == nil {
				err = cerr
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger, a.closer = a.newLogger(cfg.Logging, cmd.ErrOrStderr())
	slog.SetDefault(a.logger)

	return nil
}

// assemble loads path and builds its Problem.
func (a *app) assemble(ctx context.Context, path string, extra ...problem.Option) (*modelfile.Model, *problem.Problem, error) {
	m, err := modelfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts := []problem.Option{problem.WithLogger(a.logger)}
	if a.cfg.Workers > 0 {
		opts = append(opts, problem.WithWorkers(a.cfg.Workers))
	}
	opts = append(opts, extra...)
	p, err := problem.Assemble(ctx, m.Problem, m.Index, opts...)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("model assembled",
		slog.String("path", path),
		slog.Int("vars", p.NumVars()),
		slog.Int("constraints", p.NumConstraints()),
	)

	return m, p, nil
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [model.yaml]",
		Short: "Print variables, affine properties and symbolic derivatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, p, err := a.assemble(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "variables:")
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for i, v := range m.Vars {
				fmt.Fprintf(tw, "  %d\t%s\t%s\t[%g, %g]\n", i, v.Name(), v.Type(), p.L[i], p.U[i])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			printComponent(out, "objective", p.Objective())
			for _, c := range p.Constraints() {
				printComponent(out, fmt.Sprintf("%s %s 0", c.Name, c.Sense), c)
			}
			return nil
		},
	}
}

func printComponent(out io.Writer, title string, c problem.Component) {
	std := c.Standard
	kind := "nonlinear"
	if std.Properties.Affine {
		kind = "affine"
	}
	fmt.Fprintf(out, "%s (%s):\n", title, kind)
	fmt.Fprintf(out, "  value: %s\n", std.Value)
	for _, g := range std.Gradient {
		fmt.Fprintf(out, "  d/d%s = %s\n", g.Var.Name(), g.Expr)
	}
	for _, h := range std.Hessian {
		fmt.Fprintf(out, "  H(%s,%s) = %s\n", h.Row.Name(), h.Col.Name(), h.Expr)
	}
}

func (a *app) evalCmd() *cobra.Command {
	var (
		at          map[string]string
		multipliers []float64
		dense       bool
		dropTol     float64
	)
	cmd := &cobra.Command{
		Use:   "eval [model.yaml]",
		Short: "Evaluate the objective, constraints and derivatives at a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []problem.Option
			if cmd.Flags().Changed("drop-tol") {
				if dropTol < 0 || math.IsNaN(dropTol) || math.IsInf(dropTol, 0) {
					return fmt.Errorf("--drop-tol: must be finite and >= 0, got %g", dropTol)
				}
				extra = append(extra, problem.WithDropTolerance(dropTol))
			}
			m, p, err := a.assemble(cmd.Context(), args[0], extra...)
			if err != nil {
				return err
			}
			x, err := parsePoint(m, at)
			if err != nil {
				return err
			}
			if err := p.Evaluate(x); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "phi = %g\n", p.Phi)
			fmt.Fprintf(out, "gphi = %v\n", p.GPhi)
			fmt.Fprintf(out, "f = %v\n", p.F)
			printCoo(out, "J", p.J)
			printCoo(out, "HPhi", p.HPhi)
			for i := range p.H {
				printCoo(out, fmt.Sprintf("H[%d]", i), p.H[i])
			}
			if cmd.Flags().Changed("multipliers") {
				if err := p.CombineH(multipliers); err != nil {
					return err
				}
				printCoo(out, "HComb", p.HComb)
			}
			if !dense {
				return nil
			}
			if err := printDense(out, "J", p.J, false); err != nil {
				return err
			}
			if err := printDense(out, "HPhi", p.HPhi, true); err != nil {
				return err
			}
			if p.HComb != nil {
				return printDense(out, "HComb", p.HComb, true)
			}
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&at, "at", nil, "point as name=value pairs; unset variables are 0")
	cmd.Flags().Float64SliceVar(&multipliers, "multipliers", nil, "constraint multipliers for the combined Hessian")
	cmd.Flags().BoolVar(&dense, "dense", false, "also print J and the full symmetric Hessians as dense matrices")
	cmd.Flags().Float64Var(&dropTol, "drop-tol", 0, "drop combined Hessian entries with magnitude at most this value")

	return cmd
}

func (a *app) linearCmd() *cobra.Command {
	var at map[string]string
	cmd := &cobra.Command{
		Use:   "linear [model.yaml]",
		Short: "Print the linear program of an affine model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, p, err := a.assemble(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			lf, err := p.Linear()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			names := make([]string, len(m.Vars))
			for i, v := range m.Vars {
				names[i] = v.Name()
			}
			fmt.Fprintf(out, "vars = %v\n", names)
			fmt.Fprintf(out, "c = %v\n", lf.C)
			fmt.Fprintf(out, "offset = %g\n", lf.Offset)
			printCoo(out, "A", lf.A)
			fmt.Fprintf(out, "row bounds = %s\n", formatRanges(lf.RowLower, lf.RowUpper))
			fmt.Fprintf(out, "var bounds = %s\n", formatRanges(lf.L, lf.U))
			fmt.Fprintf(out, "integer = %v\n", lf.Integer)
			if !cmd.Flags().Changed("at") {
				return nil
			}

			x, err := parsePoint(m, at)
			if err != nil {
				return err
			}
			obj, err := lf.Value(x)
			if err != nil {
				return err
			}
			act, err := lf.Activity(x)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "objective at point = %g\n", obj)
			fmt.Fprintf(out, "activity = %v\n", act)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&at, "at", nil, "point as name=value pairs; prints the objective and row activities there")

	return cmd
}

// parsePoint turns name=value pairs into a vector aligned with the index.
func parsePoint(m *modelfile.Model, at map[string]string) ([]float64, error) {
	x := make([]float64, m.Index.Len())
	names := make([]string, 0, len(at))
	for name := range at {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, ok := m.Var(name)
		if !ok {
			return nil, fmt.Errorf("--at: %w: %q", modelfile.ErrUnknownVariable, name)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(at[name]), 64)
		if err != nil {
			return nil, fmt.Errorf("--at %s: %w", name, err)
		}
		i, err := m.Index.Index(v)
		if err != nil {
			return nil, err
		}
		x[i] = val
	}

	return x, nil
}

func printCoo(out io.Writer, title string, c *matrix.Coo) {
	fmt.Fprintf(out, "%s (%dx%d, %d entries):\n", title, c.Rows(), c.Cols(), c.Len())
	for _, e := range c.Entries() {
		fmt.Fprintf(out, "  (%d,%d) = %g\n", e.Row, e.Col, e.Value)
	}
}

// printDense materializes c; symmetric mirrors an upper-triangle store.
// Empty shapes have no dense form and are skipped.
func printDense(out io.Writer, title string, c *matrix.Coo, symmetric bool) error {
	if c.Rows() == 0 || c.Cols() == 0 {
		return nil
	}
	var (
		d   *matrix.Dense
		err error
	)
	if symmetric {
		d, err = c.SymmetricDense()
	} else {
		d, err = c.ToDense()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s dense:\n%s", title, d)

	return nil
}

func formatRanges(lo, hi []float64) string {
	parts := make([]string, len(lo))
	for i := range lo {
		parts[i] = fmt.Sprintf("[%s, %s]", formatBound(lo[i]), formatBound(hi[i]))
	}

	return strings.Join(parts, " ")
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
