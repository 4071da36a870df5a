package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/katalvlaran/maxdiv/bench"
	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/exact"
	"github.com/katalvlaran/maxdiv/mdp"
)

var errUsage = errors.New("usage")

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runCommand() cli.Command {
	return cli.Command{
		Name:  "run",
		Usage: "run the solver comparison over the instance directories",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "config, c", Usage: "YAML config applied over the defaults"},
			cli.StringFlag{Name: "base-dir", Usage: "directory holding the category subdirectories"},
			cli.StringFlag{Name: "out, o", Usage: "directory for results and the plot script"},
			cli.IntFlag{Name: "trials", Usage: "runs per solver and instance"},
			cli.Uint64Flag{Name: "seed", Usage: "base seed of every trial stream"},
			cli.IntFlag{Name: "parallel, p", Usage: "concurrent trials per instance"},
			cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus textfile metrics here"},
		},
		Action: func(c *cli.Context) error {
			cfg := bench.DefaultConfig()
			if path := c.String("config"); path != "" {
				var err error
				if cfg, err = bench.LoadConfig(path); err != nil {
					return err
				}
			}
			if c.IsSet("base-dir") {
				cfg.BaseDir = c.String("base-dir")
			}
			if c.IsSet("out") {
				cfg.OutputDir = c.String("out")
			}
			if c.IsSet("trials") {
				cfg.Trials = c.Int("trials")
			}
			if c.IsSet("seed") {
				cfg.Seed = c.Uint64("seed")
			}
			if c.IsSet("parallel") {
				cfg.Parallelism = c.Int("parallel")
			}

			var metrics *bench.Metrics
			opts := []bench.RunnerOption{bench.WithLogger(slog.Default())}
			if c.String("metrics-file") != "" {
				metrics = bench.NewMetrics()
				opts = append(opts, bench.WithMetrics(metrics))
			}
			r, err := bench.NewRunner(cfg, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()
			exp, runErr := r.Run(ctx)
			if exp == nil || len(exp.Instances) == 0 {
				return runErr
			}

			path, err := bench.Save(exp, cfg.OutputDir)
			if err != nil {
				return err
			}
			slog.Info("results saved", "path", path)
			if err := bench.WriteSummary(c.App.Writer, exp, cfg.SolverNames()); err != nil {
				return err
			}
			script, err := bench.WritePlotScript(cfg.OutputDir)
			if err != nil {
				return err
			}
			slog.Info("plot script saved", "path", script, "run", "python "+script+" "+path)
			if metrics != nil {
				if err := metrics.WriteTextfile(c.String("metrics-file")); err != nil {
					return err
				}
			}

			return runErr
		},
	}
}

func solveCommand() cli.Command {
	return cli.Command{
		Name:      "solve",
		Usage:     "solve one instance file and print the solution as JSON",
		ArgsUsage: "<instance>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "algorithm, a", Value: mdp.AlgoGRASP.String(), Usage: "ls-first, ls-best, tabu, grasp, genetic, exhaustive or exact"},
			cli.Uint64Flag{Name: "seed", Usage: "random seed (0 = fixed default)"},
			cli.DurationFlag{Name: "time-limit, t", Usage: "wall-clock budget, 0 = none"},
			cli.IntFlag{Name: "k", Usage: "override the instance's k"},
			cli.Float64Flag{Name: "gap", Value: exact.DefaultGap, Usage: "relative gap for the exact backend"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: solve <instance>", errUsage)
			}
			m, err := distance.Load(c.Args().First())
			if err != nil {
				return err
			}
			if c.IsSet("k") {
				if m, err = m.WithK(c.Int("k")); err != nil {
					return err
				}
			}

			opts := mdp.DefaultOptions()
			if opts.Algorithm, err = mdp.ParseAlgorithm(c.String("algorithm")); err != nil {
				return err
			}
			opts.Seed = c.Uint64("seed")
			opts.TimeLimit = c.Duration("time-limit")
			if opts.Algorithm == mdp.AlgoExact {
				cfg := exact.DefaultConfig()
				cfg.Gap = c.Float64("gap")
				if err := exact.Register(cfg); err != nil {
					return err
				}
			}

			ctx, stop := signalContext()
			defer stop()
			slog.Debug("solving", "instance", m.Name(), "n", m.N(), "k", m.K(), "solver", opts.Algorithm)
			sol, err := mdp.Solve(ctx, m, opts)
			if sol.Selection == nil {
				return err
			}
			if err != nil {
				slog.Warn("run stopped early", "err", err)
			}

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(sol)
		},
	}
}

func generateCommand() cli.Command {
	return cli.Command{
		Name:  "generate",
		Usage: "write a random instance in MDPLIB format",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "kind", Value: "gkd", Usage: "gkd (Euclidean), mdg (uniform reals) or som (integers 0..9)"},
			cli.IntFlag{Name: "n", Value: 100},
			cli.IntFlag{Name: "k", Value: 10},
			cli.Uint64Flag{Name: "seed", Value: 1},
			cli.StringFlag{Name: "out, o", Usage: "output file, stdout when empty"},
		},
		Action: func(c *cli.Context) error {
			n, k := c.Int("n"), c.Int("k")
			rng := mdp.NewRand(c.Uint64("seed"))

			var (
				m   *distance.Model
				err error
			)
			switch strings.ToLower(c.String("kind")) {
			case "gkd":
				m, err = distance.GenerateEuclidean(n, k, 2, rng)
			case "mdg":
				m, err = distance.GenerateUniform(n, k, 0, 10, rng)
			case "som":
				m, err = distance.GenerateInteger(n, k, 0, 9, rng)
			default:
				return fmt.Errorf("%w: unknown kind %q", errUsage, c.String("kind"))
			}
			if err != nil {
				return err
			}

			return writeTo(c.App.Writer, c.String("out"), func(w io.Writer) error { return distance.Write(w, m) })
		},
	}
}

func exportQUBOCommand() cli.Command {
	return cli.Command{
		Name:      "export-qubo",
		Usage:     "write the penalty QUBO of an instance in qbsolv format",
		ArgsUsage: "<instance>",
		Flags: []cli.Flag{
			cli.Float64Flag{Name: "penalty", Value: exact.DefaultPenalty, Usage: "cardinality penalty; 0 picks one above the total distance"},
			cli.StringFlag{Name: "out, o", Usage: "output file, stdout when empty"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: export-qubo <instance>", errUsage)
			}
			m, err := distance.Load(c.Args().First())
			if err != nil {
				return err
			}
			penalty := c.Float64("penalty")
			if penalty == 0 {
				penalty = exact.SafePenalty(m)
			}
			q, err := exact.QUBO(m, penalty)
			if err != nil {
				return err
			}
			slog.Debug("qubo built", "instance", m.Name(), "penalty", penalty)

			return writeTo(c.App.Writer, c.String("out"), q.WriteQBSolv)
		},
	}
}

// writeTo runs write on the named file, or on stdout when path is empty.
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
