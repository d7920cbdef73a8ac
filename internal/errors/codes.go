package errors

// Error codes for the pup transpiler
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Semantic analysis errors
// E0100-E0199: Lexer and parser errors
// E0200-E0299: Type system errors
// E0400-E0499: Engine registry errors (nodes, UI elements, modules)
// E0900-E0999: Tooling and downstream build errors
// W0001-W0099: Warnings

const (
	// E0001: Variable resolution errors
	ErrorUndefinedVariable = "E0001"

	// E0002: Function resolution errors
	ErrorUndefinedFunction = "E0002"

	// E0003: Type compatibility errors
	ErrorTypeMismatch = "E0003"

	// E0004: Function return type errors
	ErrorInvalidReturnType = "E0004"

	// E0005: Struct field access errors
	ErrorFieldNotFound = "E0005"

	// E0006: Field declared twice along an inheritance chain
	ErrorDuplicateField = "E0006"

	// E0009: Duplicate declaration errors
	ErrorDuplicateDeclaration = "E0009"

	// E0010: Invalid attribute errors
	ErrorInvalidAttribute = "E0010"

	// E0013: Function call argument errors
	ErrorInvalidArguments = "E0013"

	// E0014: Assignment validation errors
	ErrorInvalidAssignment = "E0014"

	// E0015: Unary/Binary operation errors
	ErrorInvalidOperation = "E0015"

	// E0016: Script-level initializer is not a constant expression
	ErrorNonConstantInitializer = "E0016"

	// E0020: Void function in expression context
	ErrorVoidInExpression = "E0020"

	// E0021: Unknown module namespace
	ErrorUndefinedModule = "E0021"

	// E0022: Call name matches more than one kind of callee
	ErrorAmbiguousCall = "E0022"

	// E0023: Struct inheritance cycle
	ErrorInheritanceCycle = "E0023"

	// E0024: Struct extends an unknown struct
	ErrorUnknownBase = "E0024"

	// E0025: Expression type could not be inferred
	ErrorUnresolvedType = "E0025"

	// E0026: Struct contains itself by value
	ErrorRecursiveStruct = "E0026"

	// Lexer and parser errors
	ErrorSyntax  = "E0100"
	ErrorLexical = "E0101"

	// Type system errors
	ErrorUnknownType = "E0200"

	// E0201: Comparison operator used as compound assignment
	ErrorComparisonAssignment = "E0201"

	// E0202: null used where no optional type is expected
	ErrorNullWithoutOption = "E0202"

	// E0203: Integer literal out of range for its type
	ErrorNumericOverflow = "E0203"

	// Registry errors
	ErrorUnknownNodeField   = "E0400"
	ErrorUnknownNodeMethod  = "E0401"
	ErrorUnknownModuleCall  = "E0402"
	ErrorUnknownUIField     = "E0403"
	ErrorUnknownNodeType    = "E0404"
	ErrorUnknownEngineField = "E0405"

	// Tooling errors
	ErrorDownstreamBuild = "E0900"

	// W0001: Unused variable warning
	WarningUnusedVariable = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "Variable is used but not defined in the current scope"
	case ErrorUndefinedFunction:
		return "Function is called but not defined by the script or the engine"
	case ErrorTypeMismatch:
		return "Expression type does not match expected type"
	case ErrorInvalidReturnType:
		return "Function return value type does not match declared return type"
	case ErrorFieldNotFound:
		return "Struct field does not exist"
	case ErrorDuplicateField:
		return "Field is declared more than once along an inheritance chain"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorInvalidAttribute:
		return "Invalid or unsupported attribute"
	case ErrorInvalidArguments:
		return "Function call has invalid arguments"
	case ErrorInvalidAssignment:
		return "Invalid assignment operation"
	case ErrorInvalidOperation:
		return "Invalid unary or binary operation"
	case ErrorNonConstantInitializer:
		return "Script variables must be initialized with constant expressions"
	case ErrorVoidInExpression:
		return "Function without a return value used as a value"
	case ErrorUndefinedModule:
		return "Unknown engine module"
	case ErrorAmbiguousCall:
		return "Call could refer to more than one function"
	case ErrorInheritanceCycle:
		return "Struct inherits from itself"
	case ErrorUnknownBase:
		return "Struct extends a struct that is not defined in this script"
	case ErrorUnresolvedType:
		return "Expression type could not be determined"
	case ErrorRecursiveStruct:
		return "Struct contains itself without indirection"
	case ErrorSyntax:
		return "Source could not be parsed"
	case ErrorLexical:
		return "Source contains a malformed token"
	case ErrorUnknownType:
		return "Type name is not known"
	case ErrorComparisonAssignment:
		return "Comparison operators cannot be used in compound assignment"
	case ErrorNullWithoutOption:
		return "null requires an optional type"
	case ErrorNumericOverflow:
		return "Integer literal does not fit its type"
	case ErrorUnknownNodeField:
		return "Node type has no such field"
	case ErrorUnknownNodeMethod:
		return "Node type has no such method"
	case ErrorUnknownModuleCall:
		return "Engine module has no such function"
	case ErrorUnknownUIField:
		return "UI element has no such field"
	case ErrorUnknownNodeType:
		return "Node type is not registered"
	case ErrorUnknownEngineField:
		return "Engine value type has no such field"
	case ErrorDownstreamBuild:
		return "Generated code failed to compile"
	case WarningUnusedVariable:
		return "Variable is declared but never used"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code == "":
		return "Unknown"
	case code[0] == 'W':
		return "Warning"
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Type System"
	case code >= "E0400" && code < "E0500":
		return "Engine Registry"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
