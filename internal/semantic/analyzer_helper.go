package semantic

import (
	"sort"
	"strings"
	"unicode"

	"pup/internal/stdlib"
)

// lookup resolves a bare name: locals, then parameters, then script
// variables. It does not mark the symbol used.
func (a *Analyzer) lookup(name string) *Symbol {
	return a.symbols.Lookup(name)
}

// callableNames lists what a bare call may name, for suggestions.
func (a *Analyzer) callableNames() []string {
	var names []string
	if a.currentStruct == nil {
		for name := range a.functions {
			names = append(names, name)
		}
		names = append(names, a.context.Nodes.MethodNames(a.info.NodeType)...)
	}
	for name := range a.structDecls {
		names = append(names, name)
	}
	for _, name := range []string{"print", "warn", "error", "info"} {
		if _, ok := stdlib.Global(name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func isCapitalized(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
