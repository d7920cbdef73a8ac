package sourcemap

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Set holds the maps of every script in a project, keyed by script
// identifier.
type Set struct {
	maps map[string]*ScriptMap
}

func NewSet(maps ...*ScriptMap) *Set {
	s := &Set{maps: make(map[string]*ScriptMap)}
	for _, m := range maps {
		s.Add(m)
	}
	return s
}

func (s *Set) Add(m *ScriptMap) {
	s.maps[m.Script] = m
}

// Load reads every *.yaml map in dir. A missing directory is an empty set.
func Load(dir string) (*Set, error) {
	s := NewSet()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read source maps: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		m, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		s.Add(m)
	}
	return s, nil
}

func (s *Set) Script(id string) (*ScriptMap, bool) {
	m, ok := s.maps[id]
	return m, ok
}

// Scripts lists the identifiers in the set, sorted.
func (s *Set) Scripts() []string {
	ids := make([]string, 0, len(s.maps))
	for id := range s.maps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Set) Lookup(script string, generated int) (LineEntry, bool) {
	m, ok := s.maps[script]
	if !ok {
		return LineEntry{}, false
	}
	return m.Lookup(generated)
}

// RestoreName looks the name up in every map before falling back to
// stripping the generated prefix. Renames do not depend on the script, so
// the first map that knows the name is as good as any.
func (s *Set) RestoreName(generated string) string {
	for _, id := range s.Scripts() {
		if original, ok := s.maps[id].Names[generated]; ok {
			return original
		}
	}
	return stripGenerated(generated)
}

var (
	// src/<id>.rs:<line>[:<column>], with any leading directories
	locationPattern = regexp.MustCompile(`(?:[\w.\-]*[/\\])*src[/\\](\w+)\.rs:(\d+)(?::(\d+))?`)
	linePattern     = regexp.MustCompile(`\b([Ll]ine)\s*:?\s*(\d+)`)
	identPattern    = regexp.MustCompile(`\b[A-Za-z_]\w*\b`)
)

// Remap rewrites toolchain output into script terms: locations in
// generated files become script locations and renamed identifiers get
// their original names. A bare "line N" is read against the generated
// file named most recently above it. Anything the maps do not cover is
// left as it was.
func (s *Set) Remap(message string) string {
	lines := strings.Split(message, "\n")
	current := ""
	for i, line := range lines {
		line = identPattern.ReplaceAllStringFunc(line, func(word string) string {
			if strings.HasPrefix(word, GeneratedPrefix) {
				return s.RestoreName(word)
			}
			return word
		})

		if loc := locationPattern.FindStringSubmatch(line); loc != nil {
			if _, ok := s.maps[loc[1]]; ok {
				current = loc[1]
			}
		}
		line = locationPattern.ReplaceAllStringFunc(line, func(match string) string {
			sub := locationPattern.FindStringSubmatch(match)
			n, _ := strconv.Atoi(sub[2])
			m, ok := s.maps[sub[1]]
			if !ok {
				return match
			}
			e, ok := m.Lookup(n)
			if !ok {
				return match
			}
			return fmt.Sprintf("%s:%d:%d", m.Source, e.Line, e.Column)
		})

		if current != "" {
			line = linePattern.ReplaceAllStringFunc(line, func(match string) string {
				sub := linePattern.FindStringSubmatch(match)
				n, _ := strconv.Atoi(sub[2])
				e, ok := s.Lookup(current, n)
				if !ok {
					return match
				}
				return fmt.Sprintf("%s %d", sub[1], e.Line)
			})
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
