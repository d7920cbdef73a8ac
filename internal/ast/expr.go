package ast

type Expr interface {
	Node
	isExpr()
}

func (*LiteralExpr) isExpr()   {}
func (*IdentExpr) isExpr()     {}
func (*SelfExpr) isExpr()      {}
func (*SuperExpr) isExpr()     {}
func (*UnaryExpr) isExpr()     {}
func (*BinaryExpr) isExpr()    {}
func (*CallExpr) isExpr()      {}
func (*MemberExpr) isExpr()    {}
func (*NodeVarExpr) isExpr()   {}
func (*IndexExpr) isExpr()     {}
func (*NewExpr) isExpr()       {}
func (*ObjectLiteral) isExpr() {}
func (*ArrayLiteral) isExpr()  {}
func (*CastExpr) isExpr()      {}
func (*RangeExpr) isExpr()     {}
func (*ParenExpr) isExpr()     {}

type LiteralKind int

const (
	NUMBER LiteralKind = iota
	STRING
	BOOL
	NULL
)

// LiteralExpr represents numbers, strings, booleans and null.
// Number values keep their raw text so context can pick the width later.
// Example: "42", "3.5", "\"hp={hp}\"", "$\"{a} vs {b}\"", "true", "null"
type LiteralExpr struct {
	Pos          Position
	EndPos       Position
	Kind         LiteralKind
	Value        string
	Interpolated bool // written with a $ prefix
}

// IdentExpr represents a bare name
// Example: "hp", "print"
type IdentExpr struct {
	Pos    Position
	EndPos Position
	Name   string
}

type SelfExpr struct {
	Pos    Position
	EndPos Position
}

type SuperExpr struct {
	Pos    Position
	EndPos Position
}

// UnaryExpr represents prefix operators
// Example: "-speed", "not visible", "!done"
type UnaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	X      Expr
}

// BinaryExpr represents infix operators
// Example: "a + b * 2", "hp <= 0 and alive"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Left   Expr
	Op     string
	Right  Expr
}

// CallExpr represents a call of a bare name, a member or super
// Example: "print(hp)", "self.get_node(\"Enemy\")", "Time.get_delta()"
type CallExpr struct {
	Pos    Position
	EndPos Position
	Callee Expr
	Args   []Expr
}

// MemberExpr represents field or method access
// Example: "self.transform", "pos.x", "JSON.parse"
type MemberExpr struct {
	Pos    Position
	EndPos Position
	X      Expr
	Name   Ident
}

// NodeVarExpr reads or writes a variable on another node's script
// Example: "enemy::hp"
type NodeVarExpr struct {
	Pos    Position
	EndPos Position
	X      Expr
	Name   Ident
}

// IndexExpr represents indexing into arrays and maps
// Example: "items[0]", "scores[\"bob\"]"
type IndexExpr struct {
	Pos    Position
	EndPos Position
	X      Expr
	Index  Expr
}

// NewExpr constructs a struct or engine value
// Example: "new Point(1, 2)", "new Vector2(0, 0)"
type NewExpr struct {
	Pos    Position
	EndPos Position
	Type   Ident
	Args   []Expr
}

// ObjectField is one "key: value" entry of an object literal
type ObjectField struct {
	Pos    Position
	EndPos Position
	Key    Ident
	Value  Expr
}

// ObjectLiteral builds a dynamic object
// Example: "{ name: \"bob\", hp: 3 }"
type ObjectLiteral struct {
	Pos    Position
	EndPos Position
	Fields []*ObjectField
}

// ArrayLiteral
// Example: "[1, 2, 3]"
type ArrayLiteral struct {
	Pos    Position
	EndPos Position
	Elems  []Expr
}

// CastExpr represents an explicit conversion
// Example: "hp as float"
type CastExpr struct {
	Pos    Position
	EndPos Position
	X      Expr
	Type   *TypeRef
}

// RangeExpr is the half-open range of a numeric for loop
// Example: "0..count"
type RangeExpr struct {
	Pos    Position
	EndPos Position
	Start  Expr
	End    Expr
}

type ParenExpr struct {
	Pos    Position
	EndPos Position
	X      Expr
}
