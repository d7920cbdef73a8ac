package codegen

// binaryOperators maps script operators to Rust. The table is one to one;
// compound assignments reuse it through ast.AssignType.BinaryOp.
var binaryOperators = map[string]string{
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "/",
	"%":  "%",
	"==": "==",
	"!=": "!=",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
	"&&": "&&",
	"||": "||",
}

func binaryOperator(op string) string {
	if rust, ok := binaryOperators[op]; ok {
		return rust
	}
	return op
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}
