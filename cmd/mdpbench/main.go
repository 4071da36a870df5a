// Command mdpbench solves Maximum Diversity Problem instances and runs the
// solver comparison batch.
//
//	mdpbench run --config bench.yaml
//	mdpbench solve --algorithm tabu instance.txt
//	mdpbench generate --kind gkd --n 100 --k 10 --out gkd.txt
//	mdpbench export-qubo --penalty 1000 instance.txt > instance.qubo
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		cli.HandleExitCoder(cli.NewExitError(err, 1))
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "mdpbench"
	app.Usage = "Maximum Diversity Problem solvers and benchmark driver"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
	}
	app.Before = func(c *cli.Context) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.GlobalString("log-level"))); err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	app.Commands = []cli.Command{
		runCommand(),
		solveCommand(),
		generateCommand(),
		exportQUBOCommand(),
	}

	return app
}
