package driver

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ztrue/tracerr"

	"pup/internal/errors"
	"pup/internal/sourcemap"
)

// Build runs cargo over the generated crate. When it fails, its error
// output is rewritten through the source maps so that locations and names
// refer to the scripts, and returned as an E0900 diagnostic.
func (d *Driver) Build(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, d.config.Cargo, d.cargoArgs()...)
	cmd.Dir = d.config.CrateDir()

	var stderr bytes.Buffer
	cmd.Stdout = d.Stdout
	cmd.Stderr = io.MultiWriter(&stderr, d.verboseStderr())

	log.Infof("running %s %v", d.config.Cargo, cmd.Args[1:])
	start := time.Now()
	err := cmd.Run()
	if err == nil {
		log.Infof("build finished in %s", time.Since(start))
		return nil
	}
	if ctx.Err() != nil {
		return tracerr.Wrap(ctx.Err())
	}
	if _, ok := err.(*exec.ExitError); !ok {
		return tracerr.Errorf("failed to run %s: %w", d.config.Cargo, err)
	}

	return errors.DownstreamBuild(filepath.Base(d.config.Cargo), d.Remap(stderr.String()))
}

func (d *Driver) cargoArgs() []string {
	args := []string{"build", "--manifest-path", filepath.Join(d.config.CrateDir(), "Cargo.toml")}
	if d.config.Release {
		return append(args, "--release")
	}
	return append(args, "--profile", "hotreload")
}

// verboseStderr streams toolchain output only in verbose mode. Otherwise
// it is reported once, remapped, on failure.
func (d *Driver) verboseStderr() io.Writer {
	if d.config.Verbose && d.Stderr != nil {
		return d.Stderr
	}
	return io.Discard
}

// Remap rewrites toolchain output through the project's source maps. The
// best effort is the output itself when no maps can be read.
func (d *Driver) Remap(output string) string {
	set, err := sourcemap.Load(d.config.MapDir())
	if err != nil {
		log.Warningf("source maps unavailable: %s", err)
		return output
	}
	return set.Remap(output)
}
