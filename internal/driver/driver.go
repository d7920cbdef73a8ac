// Package driver turns a project's scripts into the generated Rust crate:
// it finds scripts, compiles them in memory, writes the crate sources and
// source maps, and runs the Rust toolchain over the result.
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"github.com/ztrue/tracerr"

	"pup/internal/ast"
	"pup/internal/codegen"
	"pup/internal/errors"
	"pup/internal/parser"
	"pup/internal/rustname"
	"pup/internal/semantic"
	"pup/internal/sourcemap"
)

var log = commonlog.GetLogger("pup.driver")

type Driver struct {
	config  *Config
	context *semantic.ContextRegistry

	// Stdout and Stderr receive toolchain output.
	Stdout io.Writer
	Stderr io.Writer
}

func New(config *Config) *Driver {
	return &Driver{
		config:  config,
		context: semantic.NewContextRegistry(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (d *Driver) Config() *Config { return d.config }

// Script is one compiled file, held in memory until the whole batch is done.
type Script struct {
	File     string // path on disk
	Path     string // path as the engine names it, res://...
	Source   string
	Output   *codegen.Output
	Warnings []errors.CompilerError
}

// ScriptError is a failure in one script. It keeps the source so the
// diagnostic can be rendered with context.
type ScriptError struct {
	File   string
	Source string
	Err    error
}

func (e *ScriptError) Error() string { return e.Err.Error() }

func (e *ScriptError) Unwrap() error { return e.Err }

// Render formats the error the way the compiler reports diagnostics.
func (e *ScriptError) Render() string {
	if ce, ok := e.Err.(errors.CompilerError); ok {
		return errors.NewErrorReporter(e.File, e.Source).FormatError(ce)
	}
	return e.Error() + "\n"
}

// ScriptIdentifier maps a script path to the name its generated module
// and symbols are built from.
func ScriptIdentifier(path string) (string, error) {
	return rustname.Identifier(path)
}

// Analyze parses and checks one script without generating code.
func (d *Driver) Analyze(path, source string) (*ast.Script, *semantic.Info, error) {
	script, err := parser.Parse(path, source)
	if err != nil {
		return nil, nil, err
	}
	info, errs := semantic.NewAnalyzer(d.context).Analyze(script)
	if len(errs) > 0 {
		return script, info, errs[0]
	}
	return script, info, nil
}

// Compile runs the whole pipeline over one script in memory.
func (d *Driver) Compile(path, source string) (*codegen.Output, *semantic.Info, error) {
	script, info, err := d.Analyze(path, source)
	if err != nil {
		return nil, info, err
	}
	out, err := codegen.Generate(script, info, codegen.Options{Release: d.config.Release})
	if err != nil {
		return nil, info, err
	}
	return out, info, nil
}

// Transpile compiles files in order and writes the crate sources. Every
// file is read before any is compiled, and nothing is written unless all
// of them compile. The first failure is returned.
func (d *Driver) Transpile(files []string) ([]*Script, error) {
	start := time.Now()

	scripts := make([]*Script, len(files))
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, tracerr.Errorf("failed to read %s: %w", file, err)
		}
		scripts[i] = &Script{File: file, Path: d.scriptPath(file), Source: string(data)}
	}

	seen := make(map[string]string, len(scripts))
	for _, s := range scripts {
		began := time.Now()
		out, info, err := d.Compile(s.Path, s.Source)
		if err != nil {
			return nil, &ScriptError{File: s.File, Source: s.Source, Err: err}
		}
		if prev, dup := seen[out.Identifier]; dup {
			return nil, tracerr.Errorf("%s and %s both map to script identifier '%s'", prev, s.File, out.Identifier)
		}
		seen[out.Identifier] = s.File
		s.Output = out
		s.Warnings = info.Warnings
		for _, w := range info.Warnings {
			log.Warning(w.Error())
		}
		log.Debugf("%s -> %s (%s)", s.Path, out.Identifier, time.Since(began))
	}

	if err := d.write(scripts); err != nil {
		return nil, err
	}
	log.Infof("transpiled %d script(s) in %s", len(scripts), time.Since(start))
	return scripts, nil
}

// TranspileProject transpiles every script under the res directory and
// removes generated files of scripts that no longer exist.
func (d *Driver) TranspileProject() ([]*Script, error) {
	files, err := Discover(d.config.ResPath())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warningf("no scripts found in %s", d.config.ResPath())
	}

	scripts, err := d.Transpile(files)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(scripts))
	for i, s := range scripts {
		ids[i] = s.Output.Identifier
	}
	if _, err := d.CleanOrphans(ids); err != nil {
		return nil, err
	}
	return scripts, nil
}

func (d *Driver) write(scripts []*Script) error {
	if err := d.makeDirs(); err != nil {
		return err
	}

	for _, s := range scripts {
		out := s.Output
		if err := writeFile(filepath.Join(d.config.CrateDir(), out.File()), []byte(out.Source)); err != nil {
			return err
		}
		data, err := sourcemap.Marshal(out.Map)
		if err != nil {
			return tracerr.Wrap(err)
		}
		if err := writeFile(d.mapFile(out.Identifier), data); err != nil {
			return err
		}
	}

	// scripts written by earlier runs stay registered
	ids, err := listIDs(d.config.SrcDir(), ".rs")
	if err != nil {
		return err
	}
	return d.writeLib(ids)
}

// CleanOrphans removes generated sources and maps of scripts not in ids
// and rewrites lib.rs to register exactly ids. It returns the removed
// identifiers.
func (d *Driver) CleanOrphans(ids []string) ([]string, error) {
	if err := d.makeDirs(); err != nil {
		return nil, err
	}

	active := make(map[string]bool, len(ids))
	for _, id := range ids {
		active[id] = true
	}

	var removed []string
	for _, dir := range []struct{ path, ext string }{
		{d.config.SrcDir(), ".rs"},
		{d.config.MapDir(), ".yaml"},
	} {
		existing, err := listIDs(dir.path, dir.ext)
		if err != nil {
			return nil, err
		}
		for _, id := range existing {
			if active[id] {
				continue
			}
			if err := os.Remove(filepath.Join(dir.path, id+dir.ext)); err != nil {
				return nil, tracerr.Wrap(err)
			}
			if dir.ext == ".rs" {
				log.Infof("removed orphaned script %s", id)
				removed = append(removed, id)
			}
		}
	}

	return removed, d.writeLib(ids)
}

func (d *Driver) writeLib(ids []string) error {
	return writeFile(filepath.Join(d.config.SrcDir(), "lib.rs"), []byte(codegen.LibRS(ids)))
}

func (d *Driver) makeDirs() error {
	for _, dir := range []string{d.config.SrcDir(), d.config.MapDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return tracerr.Wrap(err)
		}
	}
	return nil
}

func (d *Driver) mapFile(id string) string {
	return filepath.Join(d.config.MapDir(), id+".yaml")
}

// scriptPath names a file under the res directory as res://..., so that
// identifiers do not depend on where the project is checked out. Files
// elsewhere keep their path.
func (d *Driver) scriptPath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	res, err := filepath.Abs(d.config.ResPath())
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(res, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(file)
	}
	return "res://" + filepath.ToSlash(rel)
}

// Summary is a one-line description of a finished batch.
func Summary(scripts []*Script) string {
	warnings := 0
	for _, s := range scripts {
		warnings += len(s.Warnings)
	}
	return fmt.Sprintf("%d script(s), %d warning(s)", len(scripts), warnings)
}
