// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"pup/internal/driver"
	"pup/internal/errors"
)

var version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "pupc",
		Usage:   "pup to Rust transpiler for the perro engine",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Value:   ".",
				Usage:   "project root containing pup.yaml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log each step and stream toolchain output",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print stack traces for internal errors",
			},
		},
		Before: func(c *cli.Context) error {
			verbosity := 0
			if c.Bool("verbose") {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if _, ok := err.(cli.ExitCoder); ok {
				cli.HandleExitCoder(err)
				return
			}
			report(c, err)
			os.Exit(1)
		},
		Commands: []*cli.Command{
			buildCommand,
			checkCommand,
			astCommand,
			initCommand,
			remapCommand,
			replCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// project loads pup.yaml from the --dir root and applies flag overrides.
func project(c *cli.Context) (*driver.Driver, error) {
	config, err := driver.LoadConfig(c.String("dir"))
	if err != nil {
		return nil, err
	}
	if c.Bool("verbose") {
		config.Verbose = true
	}
	if c.IsSet("release") {
		config.Release = c.Bool("release")
	}
	if c.IsSet("cargo-bin") {
		config.Cargo = c.String("cargo-bin")
	}
	return driver.New(config), nil
}

// report prints a failure. Script diagnostics are rendered with their
// source; anything else is an internal error, traced on request.
func report(c *cli.Context, err error) {
	var scriptErr *driver.ScriptError
	var compilerErr errors.CompilerError
	switch {
	case stderrors.As(err, &scriptErr):
		fmt.Fprint(os.Stderr, scriptErr.Render())
	case stderrors.As(err, &compilerErr):
		fmt.Fprint(os.Stderr, errors.NewErrorReporter("", "").FormatError(compilerErr))
	case c.Bool("trace"):
		tracerr.PrintSourceColor(err)
	default:
		fmt.Fprintf(os.Stderr, "%s: %s\n", color.RedString("error"), err)
	}
}

// fail reports err and exits non-zero once the command returns.
func fail(c *cli.Context, start time.Time, err error) error {
	report(c, err)
	color.Red("Compilation failed after %s", formatDuration(time.Since(start)))
	return cli.Exit("", 1)
}

func succeeded(what string, start time.Time) {
	color.Green("%s in %s", what, formatDuration(time.Since(start)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
