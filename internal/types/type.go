package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindSigned
	KindUnsigned
	KindFloat
	KindDecimal
	KindBigInt
	KindBool
	KindString // owned
	KindStrRef // borrowed 'static
	KindCowStr
	KindOption
	KindArray
	KindFixedArray
	KindMap
	KindObject // dynamic JSON value
	KindVoid
	KindNode      // handle to a node of a known type
	KindDynNode   // handle to a node of any type
	KindUIElement // handle to a UI element
	KindSignal
	KindEngineStruct
	KindResource
	KindCustom // user struct
)

// Type is the resolved type of an expression. Containers keep their
// element types in Args: Option, Array and FixedArray hold one, Map holds
// key then value.
type Type struct {
	Kind  Kind
	Width int    // bit width of numeric kinds
	Size  int    // element count of fixed arrays
	Name  string // node, UI, engine struct, resource or struct name
	Args  []Type
}

var (
	Unknown = Type{Kind: KindUnknown}

	I8   = Type{Kind: KindSigned, Width: 8}
	I16  = Type{Kind: KindSigned, Width: 16}
	I32  = Type{Kind: KindSigned, Width: 32}
	I64  = Type{Kind: KindSigned, Width: 64}
	I128 = Type{Kind: KindSigned, Width: 128}

	U8   = Type{Kind: KindUnsigned, Width: 8}
	U16  = Type{Kind: KindUnsigned, Width: 16}
	U32  = Type{Kind: KindUnsigned, Width: 32}
	U64  = Type{Kind: KindUnsigned, Width: 64}
	U128 = Type{Kind: KindUnsigned, Width: 128}

	F32 = Type{Kind: KindFloat, Width: 32}
	F64 = Type{Kind: KindFloat, Width: 64}

	Decimal = Type{Kind: KindDecimal}
	BigInt  = Type{Kind: KindBigInt}
	Bool    = Type{Kind: KindBool}
	String  = Type{Kind: KindString}
	StrRef  = Type{Kind: KindStrRef}
	CowStr  = Type{Kind: KindCowStr}
	Object  = Type{Kind: KindObject}
	Void    = Type{Kind: KindVoid}
	DynNode = Type{Kind: KindDynNode}
	Signal  = Type{Kind: KindSignal}
)

func Option(inner Type) Type {
	return Type{Kind: KindOption, Args: []Type{inner}}
}

func Array(elem Type) Type {
	return Type{Kind: KindArray, Args: []Type{elem}}
}

func FixedArray(elem Type, size int) Type {
	return Type{Kind: KindFixedArray, Size: size, Args: []Type{elem}}
}

func Map(key, value Type) Type {
	return Type{Kind: KindMap, Args: []Type{key, value}}
}

func Node(name string) Type         { return Type{Kind: KindNode, Name: name} }
func UIElement(name string) Type    { return Type{Kind: KindUIElement, Name: name} }
func EngineStruct(name string) Type { return Type{Kind: KindEngineStruct, Name: name} }
func Resource(name string) Type     { return Type{Kind: KindResource, Name: name} }
func Custom(name string) Type       { return Type{Kind: KindCustom, Name: name} }

// Elem is the element type of Option, Array and FixedArray.
func (t Type) Elem() Type {
	if len(t.Args) == 0 {
		return Unknown
	}
	return t.Args[0]
}

func (t Type) Key() Type {
	if t.Kind != KindMap {
		return Unknown
	}
	return t.Args[0]
}

func (t Type) Value() Type {
	if t.Kind != KindMap {
		return Unknown
	}
	return t.Args[1]
}

func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.Width != other.Width || t.Size != other.Size || t.Name != other.Name {
		return false
	}
	if len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// IsConcrete reports whether t and every nested type are resolved.
func (t Type) IsConcrete() bool {
	if t.Kind == KindUnknown {
		return false
	}
	for _, a := range t.Args {
		if !a.IsConcrete() {
			return false
		}
	}
	return true
}

func (t Type) IsInteger() bool {
	return t.Kind == KindSigned || t.Kind == KindUnsigned
}

func (t Type) IsFloat() bool {
	return t.Kind == KindFloat
}

func (t Type) IsNumeric() bool {
	switch t.Kind {
	case KindSigned, KindUnsigned, KindFloat, KindDecimal, KindBigInt:
		return true
	}
	return false
}

func (t Type) IsString() bool {
	switch t.Kind {
	case KindString, KindStrRef, KindCowStr:
		return true
	}
	return false
}

// IsNodeHandle reports whether t is represented as a NodeID at runtime.
func (t Type) IsNodeHandle() bool {
	return t.Kind == KindNode || t.Kind == KindDynNode
}

// RequiresClone reports whether reading a value of t out of a place needs
// an explicit clone in generated code.
func (t Type) RequiresClone() bool {
	switch t.Kind {
	case KindString, KindCowStr, KindArray, KindMap, KindObject, KindCustom, KindDecimal, KindBigInt:
		return true
	case KindOption, KindFixedArray:
		return t.Elem().RequiresClone()
	}
	return false
}

func (t Type) String() string {
	switch t.Kind {
	case KindSigned:
		return fmt.Sprintf("int_%d", t.Width)
	case KindUnsigned:
		return fmt.Sprintf("uint_%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("float_%d", t.Width)
	case KindDecimal:
		return "decimal"
	case KindBigInt:
		return "big_int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindStrRef:
		return "str"
	case KindCowStr:
		return "cow"
	case KindOption:
		return "Option<" + t.Elem().String() + ">"
	case KindArray:
		return "Array<" + t.Elem().String() + ">"
	case KindFixedArray:
		return fmt.Sprintf("[%s; %d]", t.Elem().String(), t.Size)
	case KindMap:
		return "Map<" + t.Key().String() + ", " + t.Value().String() + ">"
	case KindObject:
		return "object"
	case KindVoid:
		return "void"
	case KindDynNode:
		return "node"
	case KindSignal:
		return "signal"
	case KindNode, KindUIElement, KindEngineStruct, KindResource, KindCustom:
		return t.Name
	}
	return "unknown"
}

// RustType renders the type as it appears in generated code.
func (t Type) RustType() string {
	switch t.Kind {
	case KindSigned:
		return fmt.Sprintf("i%d", t.Width)
	case KindUnsigned:
		return fmt.Sprintf("u%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	case KindDecimal:
		return "Decimal"
	case KindBigInt:
		return "BigInt"
	case KindBool:
		return "bool"
	case KindString:
		return "String"
	case KindStrRef:
		return "&'static str"
	case KindCowStr:
		return "Cow<'static, str>"
	case KindOption:
		return "Option<" + t.Elem().RustType() + ">"
	case KindArray:
		return "Vec<" + t.Elem().RustType() + ">"
	case KindFixedArray:
		return fmt.Sprintf("[%s; %d]", t.Elem().RustType(), t.Size)
	case KindMap:
		return "HashMap<" + t.Key().RustType() + ", " + t.Value().RustType() + ">"
	case KindObject:
		return "Value"
	case KindVoid:
		return "()"
	case KindNode, KindDynNode:
		return "NodeID"
	case KindUIElement:
		return "UIElementID"
	case KindSignal:
		return "u64"
	case KindResource:
		return t.Name + "ID"
	case KindEngineStruct, KindCustom:
		return t.Name
	}
	return "_"
}

// Suffix is the literal suffix of a numeric kind ("i32", "f64").
func (t Type) Suffix() string {
	switch t.Kind {
	case KindSigned, KindUnsigned, KindFloat:
		return t.RustType()
	}
	return ""
}

// DefaultValue is the expression used when a declaration has no initializer.
func (t Type) DefaultValue() string {
	switch t.Kind {
	case KindSigned, KindUnsigned:
		return "0" + t.Suffix()
	case KindFloat:
		return "0.0" + t.Suffix()
	case KindDecimal:
		return "Decimal::ZERO"
	case KindBigInt:
		return "BigInt::from(0)"
	case KindBool:
		return "false"
	case KindString:
		return "String::new()"
	case KindStrRef:
		return `""`
	case KindCowStr:
		return `Cow::Borrowed("")`
	case KindOption:
		return "None"
	case KindArray:
		return "Vec::new()"
	case KindMap:
		return "HashMap::new()"
	case KindObject:
		return "Value::Null"
	case KindNode, KindDynNode:
		return "NodeID::nil()"
	case KindUIElement:
		return "UIElementID::nil()"
	case KindSignal:
		return "0u64"
	case KindEngineStruct, KindCustom:
		return t.Name + "::default()"
	case KindVoid:
		return "()"
	}
	return "Default::default()"
}

// CanConvertTo reports whether a value of t may be used where target is
// expected without an explicit cast. Node subtyping is checked by callers
// that have access to the node registry.
func (t Type) CanConvertTo(target Type) bool {
	if t.Equal(target) {
		return true
	}
	if t.Kind == KindUnknown || t.Kind == KindVoid || target.Kind == KindVoid {
		return false
	}

	switch target.Kind {
	case KindObject:
		return true
	case KindOption:
		return t.CanConvertTo(target.Elem())
	case KindDynNode:
		if t.Kind == KindNode {
			return true
		}
		return t.Kind == KindOption && t.Elem().IsNodeHandle()
	case KindNode:
		return t.Kind == KindDynNode || (t.Kind == KindOption && t.Elem().IsNodeHandle() && t.Elem().Name == target.Name)
	}

	if t.Kind == KindObject {
		return true
	}

	if t.IsNumeric() && target.IsNumeric() {
		return numericWidens(t, target)
	}

	if t.IsString() && target.IsString() {
		// borrowed strings cannot be produced from owned ones
		return !(target.Kind == KindStrRef && t.Kind != KindStrRef)
	}

	if t.Kind == KindArray && target.Kind == KindArray {
		return target.Elem().Kind == KindObject
	}

	return false
}

func numericWidens(from, to Type) bool {
	switch to.Kind {
	case KindDecimal:
		return from.IsInteger() || from.IsFloat()
	case KindBigInt:
		return from.IsInteger()
	case KindFloat:
		if from.IsInteger() {
			return true
		}
		return from.IsFloat() && from.Width <= to.Width
	case KindSigned:
		if from.Kind == KindSigned {
			return from.Width <= to.Width
		}
		return from.Kind == KindUnsigned && from.Width < to.Width
	case KindUnsigned:
		return from.Kind == KindUnsigned && from.Width <= to.Width
	}
	return false
}

// Promote picks the result type of arithmetic between a and b.
func Promote(a, b Type) (Type, bool) {
	if a.Equal(b) {
		return a, true
	}
	if a.IsString() && b.IsString() {
		return String, true
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return Unknown, false
	}
	if b.CanConvertTo(a) {
		return a, true
	}
	if a.CanConvertTo(b) {
		return b, true
	}
	// mixed signedness of equal width widens to the next signed width
	if a.IsInteger() && b.IsInteger() {
		w := a.Width
		if b.Width > w {
			w = b.Width
		}
		if w < 128 {
			return Type{Kind: KindSigned, Width: w * 2}, true
		}
	}
	return Unknown, false
}

// Join renders a list of types for diagnostics.
func Join(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
