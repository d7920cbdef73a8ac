package builtins

import "pup/internal/types"

// Scalars maps the type keywords scripts may write to their types.
// Several spellings name the same type.
var Scalars = map[string]types.Type{
	"float":    types.F32,
	"float_32": types.F32,
	"float_64": types.F64,
	"double":   types.F64,

	"int":     types.I32,
	"int_8":   types.I8,
	"int_16":  types.I16,
	"int_32":  types.I32,
	"int_64":  types.I64,
	"int_128": types.I128,

	"uint":     types.U32,
	"uint_8":   types.U8,
	"uint_16":  types.U16,
	"uint_32":  types.U32,
	"uint_64":  types.U64,
	"uint_128": types.U128,

	"decimal": types.Decimal,
	"fixed":   types.Decimal,
	"big":     types.BigInt,
	"big_int": types.BigInt,
	"bigint":  types.BigInt,

	"bool":   types.Bool,
	"string": types.String,
	"str":    types.StrRef,
	"cow":    types.CowStr,

	"object": types.Object,
	"Object": types.Object,
	"Value":  types.Object,
	"signal": types.Signal,
	"Signal": types.Signal,
	"void":   types.Void,
	"node":   types.DynNode,
}

// EngineStructs are plain value types provided by the engine.
var EngineStructs = map[string]bool{
	"Vector2":     true,
	"Vector3":     true,
	"Transform2D": true,
	"Transform3D": true,
	"Color":       true,
	"Rect":        true,
	"Quaternion":  true,
}

// Resources are handle types for engine-owned assets.
var Resources = map[string]bool{
	"Texture": true,
	"Mesh":    true,
	"Scene":   true,
	"Shape":   true,
}

// Generics are the container names that take type arguments, with their
// argument count.
var Generics = map[string]int{
	"Option": 1,
	"Array":  1,
	"Map":    2,
}

// Lookup resolves a non-generic type keyword. Node and UI type names and
// user structs are resolved by the caller.
func Lookup(name string) (types.Type, bool) {
	if t, ok := Scalars[name]; ok {
		return t, true
	}
	if EngineStructs[name] {
		return types.EngineStruct(name), true
	}
	if Resources[name] {
		return types.Resource(name), true
	}
	return types.Unknown, false
}

// IsBuiltinType checks if a name is reserved by the builtin vocabulary
func IsBuiltinType(name string) bool {
	_, ok := Lookup(name)
	return ok || Generics[name] > 0
}
