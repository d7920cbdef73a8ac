package ast

type Stmt interface {
	Node
	isStmt()
}

func (*Block) isStmt()        {}
func (*VarStmt) isStmt()      {}
func (*AssignStmt) isStmt()   {}
func (*ExprStmt) isStmt()     {}
func (*IfStmt) isStmt()       {}
func (*ForStmt) isStmt()      {}
func (*WhileStmt) isStmt()    {}
func (*ReturnStmt) isStmt()   {}
func (*PassStmt) isStmt()     {}
func (*BreakStmt) isStmt()    {}
func (*ContinueStmt) isStmt() {}

// Block represents a braced statement list
type Block struct {
	Pos    Position
	EndPos Position
	Stmts  []Stmt
}

// VarStmt represents a local declaration
// Example: "var dir: float = 1.0", "let n = 3", "const LIMIT = 10"
type VarStmt struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   *TypeRef
	Value  Expr
	Const  bool
}

// AssignStmt represents plain and compound assignment
// Example: "self.hp -= 1", "enemy::speed = 3"
type AssignStmt struct {
	Pos    Position
	EndPos Position
	Target Expr
	Op     AssignType
	OpText string // operator as written, kept for diagnostics
	Value  Expr
}

// ExprStmt represents an expression evaluated for its effect
// Example: "print(hp)"
type ExprStmt struct {
	Pos    Position
	EndPos Position
	X      Expr
}

// IfStmt represents a conditional; Else is a *Block, an *IfStmt or nil
// Example: "if hp <= 0 { die() } else if hp < 5 { warn(hp) } else { pass }"
type IfStmt struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Then   *Block
	Else   Stmt
}

// ForStmt represents iteration over a range or a collection
// Example: "for i in 0..10 { ... }", "for e in enemies { ... }"
type ForStmt struct {
	Pos    Position
	EndPos Position
	Var    Ident
	Iter   Expr // *RangeExpr for numeric loops
	Body   *Block
}

// WhileStmt represents a condition loop
// Example: "while t < 1.0 { t += delta }"
type WhileStmt struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Body   *Block
}

// ReturnStmt represents a return with an optional value
type ReturnStmt struct {
	Pos    Position
	EndPos Position
	Value  Expr
}

// PassStmt represents the empty statement "pass"
type PassStmt struct {
	Pos    Position
	EndPos Position
}

type BreakStmt struct {
	Pos    Position
	EndPos Position
}

type ContinueStmt struct {
	Pos    Position
	EndPos Position
}
