package ast

// Script represents one pup source file
// Example: "extends Sprite2D\n@expose var speed: float = 2.0\nfn update() { ... }"
type Script struct {
	Pos       Position
	EndPos    Position
	Path      string
	Extends   Ident // node type the script attaches to
	Variables []*Variable
	Structs   []*StructDef
	Functions []*Function
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like variable names, type names, etc.
// Example: "speed", "Sprite2D", "update"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// Attribute represents an annotation placed before a declaration
// Example: "@expose"
type Attribute struct {
	Pos    Position
	EndPos Position
	Name   string
}

// Variable represents a script-level variable declaration
// Example: "@expose var hp: int = 10"
type Variable struct {
	Pos        Position
	EndPos     Position
	Attributes []*Attribute
	Name       Ident
	Type       *TypeRef // nil when inferred from Value
	Value      Expr     // nil when the type default is used
	Const      bool
}

// Exposed reports whether the variable carries @expose.
func (v *Variable) Exposed() bool {
	return hasAttribute(v.Attributes, "expose")
}

// StructDef represents a user struct, optionally extending another struct
// Example: "struct Enemy extends Actor { speed: float, fn hit() { ... } }"
type StructDef struct {
	Pos        Position
	EndPos     Position
	Attributes []*Attribute
	Name       Ident
	Base       *Ident
	Fields     []*Field
	Methods    []*Function
}

// Field represents a struct field
// Example: "speed: float = 1.5"
type Field struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	Type    *TypeRef
	Default Expr
}

// Function represents a script function or struct method
// Example: "fn damage(amount: int) -> bool { ... }"
type Function struct {
	Pos        Position
	EndPos     Position
	Attributes []*Attribute
	Name       Ident
	Params     []*Param
	Return     *TypeRef // nil means no value
	Body       *Block
}

// Param represents one function parameter
// Example: "amount: int"
type Param struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   *TypeRef
}

// TypeRef represents a type annotation as written in source
// Example: "int", "Array<string>", "Map<string, float>", "[int; 4]"
type TypeRef struct {
	Pos    Position
	EndPos Position
	Name   string
	Args   []*TypeRef
	Size   int // element count for fixed arrays, zero otherwise
}

// IsFixedArray reports whether the reference was written as "[T; N]".
func (t *TypeRef) IsFixedArray() bool {
	return t.Size > 0
}

func hasAttribute(attrs []*Attribute, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// FindFunction returns the script-level function with the given name.
func (s *Script) FindFunction(name string) *Function {
	for _, fn := range s.Functions {
		if fn.Name.Value == name {
			return fn
		}
	}
	return nil
}

// FindStruct returns the struct with the given name.
func (s *Script) FindStruct(name string) *StructDef {
	for _, st := range s.Structs {
		if st.Name.Value == name {
			return st
		}
	}
	return nil
}

// FindVariable returns the script variable with the given name.
func (s *Script) FindVariable(name string) *Variable {
	for _, v := range s.Variables {
		if v.Name.Value == name {
			return v
		}
	}
	return nil
}
