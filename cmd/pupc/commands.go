package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"pup/internal/driver"
	"pup/internal/errors"
	"pup/internal/parser"
	"pup/repl"
)

var releaseFlag = &cli.BoolFlag{
	Name:  "release",
	Usage: "generate release code, without console output",
}

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "transpile the project's scripts into the generated crate",
	ArgsUsage: "[script.pup...]",
	Flags: []cli.Flag{
		releaseFlag,
		&cli.BoolFlag{
			Name:  "cargo",
			Usage: "run cargo over the crate after transpiling",
		},
		&cli.StringFlag{
			Name:  "cargo-bin",
			Usage: "cargo executable, overriding pup.yaml",
		},
	},
	Action: func(c *cli.Context) error {
		start := time.Now()
		d, err := project(c)
		if err != nil {
			return fail(c, start, err)
		}

		var scripts []*driver.Script
		if files := c.Args().Slice(); len(files) > 0 {
			scripts, err = d.Transpile(files)
		} else {
			scripts, err = d.TranspileProject()
		}
		if err != nil {
			return fail(c, start, err)
		}
		for _, s := range scripts {
			fmt.Fprint(os.Stderr, errors.NewErrorReporter(s.File, s.Source).FormatErrors(s.Warnings))
		}

		if c.Bool("cargo") {
			if err := d.Build(c.Context); err != nil {
				return fail(c, start, err)
			}
		}
		succeeded("Transpiled "+driver.Summary(scripts), start)
		return nil
	},
}

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "analyze scripts and print diagnostics without writing anything",
	ArgsUsage: "[script.pup...]",
	Action: func(c *cli.Context) error {
		start := time.Now()
		d, err := project(c)
		if err != nil {
			return fail(c, start, err)
		}

		files := c.Args().Slice()
		if len(files) == 0 {
			if files, err = driver.Discover(d.Config().ResPath()); err != nil {
				return fail(c, start, err)
			}
		}

		failures := 0
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return fail(c, start, tracerr.Wrap(err))
			}
			source := string(data)
			reporter := errors.NewErrorReporter(file, source)

			_, info, err := d.Analyze(file, source)
			if info != nil {
				fmt.Fprint(os.Stderr, reporter.FormatErrors(info.Warnings))
			}
			if err != nil {
				failures++
				report(c, &driver.ScriptError{File: file, Source: source, Err: err})
			}
		}

		if failures > 0 {
			color.Red("%d of %d script(s) failed after %s", failures, len(files), formatDuration(time.Since(start)))
			return cli.Exit("", 1)
		}
		succeeded(fmt.Sprintf("Checked %d script(s)", len(files)), start)
		return nil
	},
}

var astCommand = &cli.Command{
	Name:      "ast",
	Usage:     "print the syntax tree of a script",
	ArgsUsage: "<script.pup>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "repr",
			Usage: "dump the Go structures, positions included",
		},
	},
	Action: func(c *cli.Context) error {
		start := time.Now()
		file := c.Args().First()
		if file == "" {
			return cli.Exit("no script given", 1)
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return fail(c, start, tracerr.Wrap(err))
		}
		script, err := parser.Parse(file, string(data))
		if err != nil {
			return fail(c, start, &driver.ScriptError{File: file, Source: string(data), Err: err})
		}

		if c.Bool("repr") {
			repr.Println(script, repr.Indent("  "), repr.OmitEmpty(true))
		} else {
			fmt.Println(script.String())
		}
		return nil
	},
}

var initCommand = &cli.Command{
	Name:      "init",
	Usage:     "write pup.yaml in the project root",
	ArgsUsage: "[name]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite an existing pup.yaml",
		},
	},
	Action: func(c *cli.Context) error {
		start := time.Now()
		root, err := filepath.Abs(c.String("dir"))
		if err != nil {
			return fail(c, start, tracerr.Wrap(err))
		}

		path := filepath.Join(root, driver.ConfigFile)
		if _, err := os.Stat(path); err == nil && !c.Bool("force") {
			return cli.Exit(fmt.Sprintf("%s already exists, use --force to overwrite it", path), 1)
		}

		config := driver.DefaultConfig(root)
		if name := c.Args().First(); name != "" {
			config.Name = name
		}
		if err := os.MkdirAll(config.ResPath(), 0o755); err != nil {
			return fail(c, start, tracerr.Wrap(err))
		}
		if err := config.Write(); err != nil {
			return fail(c, start, err)
		}
		succeeded("Wrote "+path, start)
		return nil
	},
}

var remapCommand = &cli.Command{
	Name:      "remap",
	Usage:     "rewrite a toolchain log so that it points at scripts",
	ArgsUsage: "[log file, default stdin]",
	Action: func(c *cli.Context) error {
		start := time.Now()
		d, err := project(c)
		if err != nil {
			return fail(c, start, err)
		}

		var in io.Reader = os.Stdin
		if file := c.Args().First(); file != "" {
			f, err := os.Open(file)
			if err != nil {
				return fail(c, start, tracerr.Wrap(err))
			}
			defer f.Close()
			in = f
		}

		data, err := io.ReadAll(in)
		if err != nil {
			return fail(c, start, tracerr.Wrap(err))
		}
		fmt.Print(d.Remap(string(data)))
		return nil
	},
}

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "read scripts from stdin and print the generated Rust",
	Flags: []cli.Flag{
		releaseFlag,
		&cli.BoolFlag{
			Name:  "ast",
			Usage: "print syntax trees instead of Rust",
		},
	},
	Action: func(c *cli.Context) error {
		repl.Start(os.Stdin, os.Stdout, repl.Options{
			Release: c.Bool("release"),
			AST:     c.Bool("ast"),
		})
		return nil
	},
}
