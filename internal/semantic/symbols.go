package semantic

import (
	"sort"

	"pup/internal/ast"
	"pup/internal/types"
)

type SymbolKind int

const (
	SymbolScriptVar SymbolKind = iota
	SymbolParameter
	SymbolLocal
	SymbolModule
)

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Node     ast.Node
	Position ast.Position
	Type     types.Type
	Const    bool
	Exposed  bool
	Used     bool
}

type SymbolTable struct {
	symbols map[string]*Symbol
	order   []*Symbol
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

func (st *SymbolTable) Define(name string, kind SymbolKind, node ast.Node, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Kind:     kind,
		Node:     node,
		Position: pos,
	}
	st.symbols[name] = symbol
	st.order = append(st.order, symbol)
	return symbol
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// Declared returns the symbols of this scope in declaration order.
func (st *SymbolTable) Declared() []*Symbol {
	return st.order
}

// Names returns every name visible from this scope, sorted.
func (st *SymbolTable) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for scope := st; scope != nil; scope = scope.parent {
		for name := range scope.symbols {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Insert adds an already built symbol, such as a parameter, to this scope.
func (st *SymbolTable) Insert(symbol *Symbol) {
	st.symbols[symbol.Name] = symbol
	st.order = append(st.order, symbol)
}
