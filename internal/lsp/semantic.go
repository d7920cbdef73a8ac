package lsp

import (
	"sort"

	"pup/internal/ast"
	"pup/internal/semantic"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask over SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	modDeclaration = 1 << iota
	modDefinition
	modReadonly
)

// collectSemanticTokens classifies the names in a script. info may be nil
// when analysis failed; names are then classified by syntax alone.
func collectSemanticTokens(script *ast.Script, info *semantic.Info) []SemanticToken {
	if script == nil {
		return nil
	}
	c := &collector{info: info, callees: make(map[ast.Expr]bool)}

	c.ident(script.Extends, "type", 0)
	ast.Inspect(script, c.visit)

	sort.SliceStable(c.tokens, func(i, j int) bool {
		a, b := c.tokens[i], c.tokens[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.StartChar < b.StartChar
	})
	return c.tokens
}

type collector struct {
	info    *semantic.Info
	callees map[ast.Expr]bool
	tokens  []SemanticToken
}

func (c *collector) visit(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Variable:
		c.attributes(v.Attributes)
		mods := modDeclaration
		if v.Const {
			mods |= modReadonly
		}
		c.ident(v.Name, "variable", mods)
		c.typeRef(v.Type)
	case *ast.StructDef:
		c.attributes(v.Attributes)
		c.ident(v.Name, "type", modDeclaration)
		if v.Base != nil {
			c.ident(*v.Base, "type", 0)
		}
	case *ast.Field:
		c.ident(v.Name, "property", modDeclaration)
		c.typeRef(v.Type)
	case *ast.Function:
		c.attributes(v.Attributes)
		c.ident(v.Name, "function", modDeclaration)
		c.typeRef(v.Return)
	case *ast.Param:
		c.ident(v.Name, "parameter", modDeclaration)
		c.typeRef(v.Type)
	case *ast.VarStmt:
		mods := modDeclaration
		if v.Const {
			mods |= modReadonly
		}
		c.ident(v.Name, "variable", mods)
		c.typeRef(v.Type)
	case *ast.ForStmt:
		c.ident(v.Var, "variable", modDeclaration)
	case *ast.CallExpr:
		c.callees[v.Callee] = true
	case *ast.IdentExpr:
		c.identExpr(v)
	case *ast.MemberExpr:
		kind := "property"
		if c.callees[v] {
			kind = "function"
		}
		c.ident(v.Name, kind, 0)
	case *ast.NodeVarExpr:
		c.ident(v.Name, "property", 0)
	case *ast.NewExpr:
		c.ident(v.Type, "type", 0)
	case *ast.ObjectField:
		c.ident(v.Key, "property", 0)
	case *ast.CastExpr:
		c.typeRef(v.Type)
	case *ast.SelfExpr:
		c.add(v.Pos, v.EndPos, 4, "keyword", 0)
	case *ast.SuperExpr:
		c.add(v.Pos, v.EndPos, 5, "keyword", 0)
	}
	return true
}

func (c *collector) identExpr(id *ast.IdentExpr) {
	if c.callees[id] {
		c.add(id.Pos, id.EndPos, len(id.Name), "function", 0)
		return
	}
	if c.info == nil {
		c.add(id.Pos, id.EndPos, len(id.Name), "variable", 0)
		return
	}

	sym := c.info.Symbols[id]
	if sym == nil {
		// module namespaces and engine types have no symbol
		c.add(id.Pos, id.EndPos, len(id.Name), "namespace", 0)
		return
	}
	kind, mods := "variable", 0
	switch sym.Kind {
	case semantic.SymbolParameter:
		kind = "parameter"
	case semantic.SymbolModule:
		kind = "namespace"
	}
	if sym.Const {
		mods |= modReadonly
	}
	c.add(id.Pos, id.EndPos, len(id.Name), kind, mods)
}

func (c *collector) attributes(attrs []*ast.Attribute) {
	for _, a := range attrs {
		c.add(a.Pos, a.EndPos, len(a.Name)+1, "modifier", 0)
	}
}

func (c *collector) typeRef(t *ast.TypeRef) {
	if t == nil {
		return
	}
	if t.Name != "" {
		c.add(t.Pos, t.Pos, len(t.Name), "type", 0)
	}
	for _, arg := range t.Args {
		c.typeRef(arg)
	}
}

func (c *collector) ident(id ast.Ident, tokenType string, mods int) {
	if id.Value == "" {
		return
	}
	c.add(id.Pos, id.EndPos, len(id.Value), tokenType, mods)
}

// add records a token. The span is used when it is on one line, otherwise
// fallback is the length.
func (c *collector) add(pos, endPos ast.Position, fallback int, tokenType string, mods int) {
	if pos.Line <= 0 {
		return
	}
	length := endPos.Column - pos.Column
	if endPos.Line != pos.Line || length <= 0 {
		length = fallback
	}
	c.tokens = append(c.tokens, SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: mods,
	})
}

// encodeSemanticTokens packs tokens into the relative LSP wire format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
