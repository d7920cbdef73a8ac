package ast

type AssignType int

const (
	ILLEGAL_ASSIGN AssignType = iota
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
)

// BinaryOp returns the arithmetic operator a compound assignment applies,
// or "" for plain assignment.
func (a AssignType) BinaryOp() string {
	switch a {
	case PLUS_ASSIGN:
		return "+"
	case MINUS_ASSIGN:
		return "-"
	case STAR_ASSIGN:
		return "*"
	case SLASH_ASSIGN:
		return "/"
	case PERCENT_ASSIGN:
		return "%"
	}
	return ""
}

// Symbol is the operator as written in source.
func (a AssignType) Symbol() string {
	if a == ASSIGN {
		return "="
	}
	if op := a.BinaryOp(); op != "" {
		return op + "="
	}
	return "?="
}
