// Package sourcemap relates lines of generated Rust back to the pup
// source that produced them, so downstream compiler output can be shown
// in script terms.
package sourcemap

import (
	"sort"
	"strings"

	"pup/internal/ast"
)

// GeneratedPrefix marks renamed script identifiers in generated code.
const GeneratedPrefix = "__t_"

// LineEntry maps one generated line to the start of the construct that
// produced it. Generated and Line are 1-based.
type LineEntry struct {
	Generated int `json:"generated"`
	Line      int `json:"line"`
	Column    int `json:"column"`
	Offset    int `json:"offset"`
	Length    int `json:"length"`
}

// ScriptMap is the map of a single generated file.
type ScriptMap struct {
	Script    string            `json:"script"`    // script identifier, e.g. scripts_bob_pup
	Source    string            `json:"source"`    // res:// path of the script
	Language  string            `json:"language"`  // source language
	Generated string            `json:"generated"` // generated file, relative to the crate
	Lines     []LineEntry       `json:"lines"`
	Names     map[string]string `json:"names,omitempty"` // generated -> original
}

// Lookup finds the entry for a generated line. Lines without their own
// entry belong to the closest recorded line above them.
func (m *ScriptMap) Lookup(generated int) (LineEntry, bool) {
	i := sort.Search(len(m.Lines), func(i int) bool {
		return m.Lines[i].Generated > generated
	})
	if i == 0 {
		return LineEntry{}, false
	}
	return m.Lines[i-1], true
}

// Covers reports whether every line in 1..n has its own entry.
func (m *ScriptMap) Covers(n int) bool {
	if len(m.Lines) != n {
		return false
	}
	for i, e := range m.Lines {
		if e.Generated != i+1 {
			return false
		}
	}
	return true
}

// RestoreName maps a generated identifier to the name written in the
// script. Unknown names lose the generated prefix or the _id suffix.
func (m *ScriptMap) RestoreName(generated string) string {
	if m != nil {
		if original, ok := m.Names[generated]; ok {
			return original
		}
	}
	return stripGenerated(generated)
}

func stripGenerated(name string) string {
	if strings.HasPrefix(name, GeneratedPrefix) {
		return strings.TrimPrefix(name, GeneratedPrefix)
	}
	if strings.HasSuffix(name, "_id") && len(name) > len("_id") {
		return strings.TrimSuffix(name, "_id")
	}
	return name
}

// Builder accumulates entries while a file is generated.
type Builder struct {
	m    ScriptMap
	seen map[int]bool
}

func NewBuilder(script, source, generated string) *Builder {
	return &Builder{
		m: ScriptMap{
			Script:    script,
			Source:    source,
			Language:  ast.Language,
			Generated: generated,
			Names:     make(map[string]string),
		},
		seen: make(map[int]bool),
	}
}

// Record maps a generated line to span. The first span recorded for a
// line wins.
func (b *Builder) Record(line int, span ast.SourceSpan) {
	if b.seen[line] {
		return
	}
	b.seen[line] = true
	b.m.Lines = append(b.m.Lines, LineEntry{
		Generated: line,
		Line:      span.Line,
		Column:    span.Column,
		Offset:    span.Offset,
		Length:    span.Length,
	})
}

// Rename records that original is emitted as generated.
func (b *Builder) Rename(generated, original string) {
	if generated != original {
		b.m.Names[generated] = original
	}
}

func (b *Builder) Build() *ScriptMap {
	m := b.m
	m.Lines = append([]LineEntry(nil), b.m.Lines...)
	sort.Slice(m.Lines, func(i, j int) bool {
		return m.Lines[i].Generated < m.Lines[j].Generated
	})
	m.Names = make(map[string]string, len(b.m.Names))
	for k, v := range b.m.Names {
		m.Names[k] = v
	}
	return &m
}
