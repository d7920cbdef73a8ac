package registry

import "pup/internal/types"

// NewEngineStructs returns the plain value types. Their constructor takes
// the fields in declaration order: new Vector2(x, y).
func NewEngineStructs() *Registry {
	r := New(types.KindEngineStruct)

	r.Register(&Def{Name: "Vector2", Fields: []Field{
		field("x", "x", "float"),
		field("y", "y", "float"),
	}})
	r.Register(&Def{Name: "Vector3", Fields: []Field{
		field("x", "x", "float"),
		field("y", "y", "float"),
		field("z", "z", "float"),
	}})
	r.Register(&Def{Name: "Quaternion", Fields: []Field{
		field("x", "x", "float"),
		field("y", "y", "float"),
		field("z", "z", "float"),
		field("w", "w", "float"),
	}})
	r.Register(&Def{Name: "Transform2D", Fields: []Field{
		field("position", "position", "Vector2"),
		field("rotation", "rotation", "float"),
		field("scale", "scale", "Vector2"),
	}})
	r.Register(&Def{Name: "Transform3D", Fields: []Field{
		field("position", "position", "Vector3"),
		field("rotation", "rotation", "Quaternion"),
		field("scale", "scale", "Vector3"),
	}})
	r.Register(&Def{Name: "Color", Fields: []Field{
		field("r", "r", "float"),
		field("g", "g", "float"),
		field("b", "b", "float"),
		field("a", "a", "float"),
	}})
	r.Register(&Def{Name: "Rect", Fields: []Field{
		field("x", "x", "float"),
		field("y", "y", "float"),
		field("width", "w", "float"),
		field("height", "h", "float"),
	}})

	return r
}
