package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pup/internal/errors"
	"pup/internal/sourcemap"
)

const bobScript = `extends Node
var hp = 10
fn init() {
	print("hp={hp}")
}
`

const enemyScript = `extends Sprite2D
@expose var speed: float = 2.0
fn update() {
	self.transform.position.x += speed
}
`

func project(t *testing.T, files map[string]string) *Config {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return DefaultConfig(root)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLoadConfigDefaults(t *testing.T) {
	root := t.TempDir()
	config, err := LoadConfig(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(root), config.Name)
	assert.Equal(t, "res", config.ResDir)
	assert.Equal(t, "cargo", config.Cargo)
	assert.Equal(t, filepath.Join(root, ".perro", "scripts", "src"), config.SrcDir())
	assert.Equal(t, filepath.Join(root, ".perro", "scripts", "maps"), config.MapDir())
}

func TestLoadConfigFile(t *testing.T) {
	config := project(t, map[string]string{
		ConfigFile: "name: game\nrelease: true\nres_dir: assets\n",
	})

	loaded, err := LoadConfig(config.Root)
	require.NoError(t, err)
	assert.Equal(t, "game", loaded.Name)
	assert.True(t, loaded.Release)
	assert.Equal(t, "assets", loaded.ResDir)
	assert.Equal(t, "cargo", loaded.Cargo, "unset fields keep defaults")
	assert.Equal(t, config.Root, loaded.Root)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"empty cargo":  "cargo: \"\"\n",
		"absolute out": "out_dir: /tmp/out\n",
		"bad yaml":     "name: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			config := project(t, map[string]string{ConfigFile: content})
			_, err := LoadConfig(config.Root)
			assert.Error(t, err)
		})
	}
}

func TestConfigWrite(t *testing.T) {
	config := DefaultConfig(t.TempDir())
	config.Name = "demo"
	config.Verbose = true
	require.NoError(t, config.Write())

	loaded, err := LoadConfig(config.Root)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestDiscover(t *testing.T) {
	config := project(t, map[string]string{
		"res/scripts/b.pup": bobScript,
		"res/a.pup":         bobScript,
		"res/scripts/c.PUP": bobScript,
		"res/readme.txt":    "",
	})

	files, err := Discover(config.ResPath())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(config.ResPath(), "a.pup"),
		filepath.Join(config.ResPath(), "scripts", "b.pup"),
		filepath.Join(config.ResPath(), "scripts", "c.PUP"),
	}, files)

	_, err = Discover(filepath.Join(config.Root, "missing"))
	assert.Error(t, err)
}

func TestScriptIdentifier(t *testing.T) {
	id, err := ScriptIdentifier("res://scripts/bob.pup")
	require.NoError(t, err)
	assert.Equal(t, "scripts_bob_pup", id)
}

func TestScriptPath(t *testing.T) {
	config := project(t, nil)
	d := New(config)

	assert.Equal(t, "res://scripts/bob.pup", d.scriptPath(filepath.Join(config.ResPath(), "scripts", "bob.pup")))
	outside := filepath.Join(config.Root, "other.pup")
	assert.Equal(t, filepath.ToSlash(outside), d.scriptPath(outside))
}

func TestTranspileWritesCrate(t *testing.T) {
	config := project(t, map[string]string{
		"res/scripts/bob.pup": bobScript,
		"res/enemy.pup":       enemyScript,
	})
	d := New(config)

	scripts, err := d.TranspileProject()
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "enemy_pup", scripts[0].Output.Identifier)
	assert.Equal(t, "res://scripts/bob.pup", scripts[1].Path)

	src := readFile(t, filepath.Join(config.SrcDir(), "scripts_bob_pup.rs"))
	assert.Equal(t, scripts[1].Output.Source, src)

	lib := readFile(t, filepath.Join(config.SrcDir(), "lib.rs"))
	assert.Contains(t, lib, "pub mod enemy_pup;\npub mod scripts_bob_pup;\n")
	assert.Contains(t, lib, `"scripts_bob_pup" => scripts_bob_pup_create_script as CreateFn,`)

	m, err := sourcemap.ReadFile(filepath.Join(config.MapDir(), "scripts_bob_pup.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "res://scripts/bob.pup", m.Source)
	assert.Equal(t, "hp", m.Names["__t_hp"])

	entries, err := os.ReadDir(config.SrcDir())
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary files are left behind")
}

func TestTranspileFailsClosed(t *testing.T) {
	config := project(t, map[string]string{
		"res/a.pup": bobScript,
		"res/b.pup": "extends Node\nfn init() {\n\tmissing()\n}\n",
	})
	d := New(config)

	_, err := d.TranspileProject()
	require.Error(t, err)

	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, filepath.Join(config.ResPath(), "b.pup"), se.File)
	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorUndefinedFunction, ce.Code)
	assert.Contains(t, se.Render(), "missing")

	_, err = os.Stat(config.CrateDir())
	assert.True(t, os.IsNotExist(err), "nothing is written when any script fails")
}

func TestTranspileKeepsPreviousOutputOnFailure(t *testing.T) {
	config := project(t, map[string]string{"res/a.pup": bobScript})
	d := New(config)

	_, err := d.TranspileProject()
	require.NoError(t, err)
	path := filepath.Join(config.SrcDir(), "a_pup.rs")
	before := readFile(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(config.ResPath(), "a.pup"), []byte("extends Node\nvar = 1\n"), 0o644))
	_, err = d.TranspileProject()
	require.Error(t, err)
	assert.Equal(t, before, readFile(t, path))
}

func TestTranspileDuplicateIdentifier(t *testing.T) {
	config := project(t, map[string]string{
		"res/a/b.pup": bobScript,
		"res/a_b.pup": bobScript,
	})

	_, err := New(config).TranspileProject()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a_b_pup")
}

func TestTranspileSubsetKeepsRegistrations(t *testing.T) {
	config := project(t, map[string]string{
		"res/a.pup": bobScript,
		"res/b.pup": enemyScript,
	})
	d := New(config)

	_, err := d.TranspileProject()
	require.NoError(t, err)
	_, err = d.Transpile([]string{filepath.Join(config.ResPath(), "a.pup")})
	require.NoError(t, err)

	lib := readFile(t, filepath.Join(config.SrcDir(), "lib.rs"))
	assert.Contains(t, lib, "pub mod a_pup;")
	assert.Contains(t, lib, "pub mod b_pup;")
}

func TestCleanOrphans(t *testing.T) {
	config := project(t, map[string]string{
		"res/a.pup": bobScript,
		"res/b.pup": enemyScript,
	})
	d := New(config)

	_, err := d.TranspileProject()
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(config.ResPath(), "b.pup")))
	_, err = d.TranspileProject()
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(config.SrcDir(), "b_pup.rs"))
	assert.NoFileExists(t, filepath.Join(config.MapDir(), "b_pup.yaml"))
	assert.FileExists(t, filepath.Join(config.SrcDir(), "a_pup.rs"))
	assert.NotContains(t, readFile(t, filepath.Join(config.SrcDir(), "lib.rs")), "b_pup")

	removed, err := d.CleanOrphans(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_pup"}, removed)
	assert.Contains(t, readFile(t, filepath.Join(config.SrcDir(), "lib.rs")), "// __PERRO_REGISTRY__")
}

func TestBuildRemapsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain is a shell script")
	}
	config := project(t, map[string]string{
		"res/scripts/bob.pup": bobScript,
		"cargo.sh":            "#!/bin/sh\necho 'error: cannot find value `__t_hp`' >&2\necho '  --> src/scripts_bob_pup.rs:1:1' >&2\nexit 101\n",
	})
	config.Cargo = filepath.Join(config.Root, "cargo.sh")
	require.NoError(t, os.Chmod(config.Cargo, 0o755))
	d := New(config)

	_, err := d.TranspileProject()
	require.NoError(t, err)

	err = d.Build(context.Background())
	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorDownstreamBuild, ce.Code)
	require.Len(t, ce.Notes, 1)
	assert.Contains(t, ce.Notes[0], "cannot find value `hp`")
	assert.Contains(t, ce.Notes[0], "--> res://scripts/bob.pup:1:")
}

func TestBuildSucceeds(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain is a shell script")
	}
	config := project(t, map[string]string{
		"res/a.pup": bobScript,
		"cargo.sh":  "#!/bin/sh\nexit 0\n",
	})
	config.Cargo = filepath.Join(config.Root, "cargo.sh")
	require.NoError(t, os.Chmod(config.Cargo, 0o755))
	d := New(config)

	_, err := d.TranspileProject()
	require.NoError(t, err)
	assert.NoError(t, d.Build(context.Background()))
}

func TestCargoArgs(t *testing.T) {
	config := DefaultConfig(t.TempDir())
	d := New(config)
	manifest := filepath.Join(config.CrateDir(), "Cargo.toml")

	assert.Equal(t, []string{"build", "--manifest-path", manifest, "--profile", "hotreload"}, d.cargoArgs())
	config.Release = true
	assert.Equal(t, []string{"build", "--manifest-path", manifest, "--release"}, d.cargoArgs())
}

func TestRemapWithoutMaps(t *testing.T) {
	d := New(DefaultConfig(t.TempDir()))
	assert.Equal(t, "error at src/x.rs:3:1", d.Remap("error at src/x.rs:3:1"))
}
