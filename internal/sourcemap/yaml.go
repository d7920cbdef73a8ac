package sourcemap

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Marshal renders m as YAML. Field names follow the json tags.
func Marshal(m *ScriptMap) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal source map %s: %w", m.Script, err)
	}
	return data, nil
}

func Unmarshal(data []byte) (*ScriptMap, error) {
	var m ScriptMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse source map: %w", err)
	}
	return &m, nil
}

func WriteFile(path string, m *ScriptMap) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadFile(path string) (*ScriptMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
