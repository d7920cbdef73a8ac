package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// ConfigFile is the project file looked up in the project root.
const ConfigFile = "pup.yaml"

// Config describes one project. Paths other than Root are relative to Root.
type Config struct {
	Name    string `yaml:"name"`
	ResDir  string `yaml:"res_dir"`
	OutDir  string `yaml:"out_dir"`
	Cargo   string `yaml:"cargo"`
	Release bool   `yaml:"release"`
	Verbose bool   `yaml:"verbose"`

	Root string `yaml:"-"`
}

func DefaultConfig(root string) *Config {
	return &Config{
		Name:   filepath.Base(root),
		ResDir: "res",
		OutDir: filepath.Join(".perro", "scripts"),
		Cargo:  "cargo",
		Root:   root,
	}
}

// LoadConfig reads pup.yaml from root. A missing file yields the defaults;
// fields left out of the file keep their default values.
func LoadConfig(root string) (*Config, error) {
	config := DefaultConfig(root)

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, tracerr.Errorf("%s: %w", ConfigFile, err)
	}
	config.Root = root
	return config, config.validate()
}

func (c *Config) validate() error {
	required := []struct{ name, value string }{
		{"res_dir", c.ResDir},
		{"out_dir", c.OutDir},
		{"cargo", c.Cargo},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s: %s must not be empty", ConfigFile, r.name)
		}
	}
	if filepath.IsAbs(c.OutDir) {
		return fmt.Errorf("%s: out_dir must be relative to the project root", ConfigFile)
	}
	return nil
}

// Write saves the config as pup.yaml in its root.
func (c *Config) Write() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return writeFile(filepath.Join(c.Root, ConfigFile), data)
}

func (c *Config) ResPath() string { return filepath.Join(c.Root, c.ResDir) }

// CrateDir holds the generated crate.
func (c *Config) CrateDir() string { return filepath.Join(c.Root, c.OutDir) }

func (c *Config) SrcDir() string { return filepath.Join(c.CrateDir(), "src") }

func (c *Config) MapDir() string { return filepath.Join(c.CrateDir(), "maps") }
