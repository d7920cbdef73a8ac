package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Top level
	SCRIPT
	IDENT
	ATTRIBUTE
	VARIABLE
	STRUCT
	FIELD
	FUNCTION
	PARAM
	TYPE

	// Statements
	BLOCK
	VAR_STMT
	ASSIGN_STMT
	EXPR_STMT
	IF_STMT
	FOR_STMT
	WHILE_STMT
	RETURN_STMT
	PASS_STMT
	BREAK_STMT
	CONTINUE_STMT

	// Expressions
	LITERAL_EXPR
	IDENT_EXPR
	SELF_EXPR
	SUPER_EXPR
	UNARY_EXPR
	BINARY_EXPR
	CALL_EXPR
	MEMBER_EXPR
	NODE_VAR_EXPR
	INDEX_EXPR
	NEW_EXPR
	OBJECT_FIELD
	OBJECT_LITERAL
	ARRAY_LITERAL
	CAST_EXPR
	RANGE_EXPR
	PAREN_EXPR
)
