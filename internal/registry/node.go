package registry

import "pup/internal/types"

var nodeKinds = map[string]bool{
	"Node":               true,
	"Node2D":             true,
	"Sprite2D":           true,
	"Area2D":             true,
	"CollisionShape2D":   true,
	"ShapeInstance2D":    true,
	"Camera2D":           true,
	"UINode":             true,
	"Node3D":             true,
	"MeshInstance3D":     true,
	"Camera3D":           true,
	"DirectionalLight3D": true,
	"OmniLight3D":        true,
	"SpotLight3D":        true,
}

// IsNodeKind reports whether name is a node kind a script may extend.
func IsNodeKind(name string) bool {
	return nodeKinds[name]
}

// NewNodeRegistry returns the node hierarchy rooted at Node.
func NewNodeRegistry() *Registry {
	r := New(types.KindNode)

	r.Register(&Def{
		Name: "Node",
		Fields: []Field{
			field("name", "name", "string"),
		},
		Methods: []Method{
			method("get_var", "(name: str) -> Object", "api.get_script_var(&{self}, {0})"),
			method("set_var", "(name: str, value: Object)", "api.set_script_var(&{self}, {0}, {1})"),
			method("get_node", "(name: str) -> node", "api.get_child_by_name({self}, {0})"),
			method("get_parent", "() -> node", "api.get_parent({self})"),
			method("add_child", "(child: node)", "api.reparent({self}, {0})"),
			method("clear_children", "()", "api.clear_children({self})"),
			method("get_type", "() -> string", "api.get_type({self})"),
			method("get_parent_type", "() -> string", "api.get_parent_type({self})"),
			method("remove", "()", "api.remove_node({self})"),
		},
	})

	r.Register(&Def{
		Name: "Node2D",
		Base: "Node",
		Fields: []Field{
			field("transform", "transform", "Transform2D"),
			field("pivot", "pivot", "Vector2"),
			field("visible", "visible", "bool"),
			field("z_index", "z_index", "int_32"),
		},
	})
	r.Register(&Def{
		Name: "Sprite2D",
		Base: "Node2D",
		Fields: []Field{
			field("texture", "texture_id", "Option<Texture>"),
			field("region", "region", "Option<[float; 4]>"),
		},
	})
	r.Register(&Def{Name: "Area2D", Base: "Node2D"})
	r.Register(&Def{Name: "CollisionShape2D", Base: "Node2D"})
	r.Register(&Def{
		Name: "ShapeInstance2D",
		Base: "Node2D",
		Fields: []Field{
			field("shape", "shape_type", "Option<Shape>"),
			field("color", "color", "Color"),
			field("filled", "filled", "bool"),
		},
	})
	r.Register(&Def{
		Name: "Camera2D",
		Base: "Node2D",
		Fields: []Field{
			field("zoom", "zoom", "float"),
			field("active", "active", "bool"),
		},
	})

	r.Register(&Def{
		Name: "UINode",
		Base: "Node",
		Methods: []Method{
			method("get_element", "(name: str) -> UIElement", "api.get_element({self}, {0})"),
		},
	})

	r.Register(&Def{
		Name: "Node3D",
		Base: "Node",
		Fields: []Field{
			field("transform", "transform", "Transform3D"),
			field("pivot", "pivot", "Vector3"),
			field("visible", "visible", "bool"),
		},
	})
	r.Register(&Def{
		Name: "MeshInstance3D",
		Base: "Node3D",
		Fields: []Field{
			field("mesh", "mesh_id", "Option<Mesh>"),
		},
	})
	r.Register(&Def{Name: "Camera3D", Base: "Node3D"})
	r.Register(&Def{Name: "DirectionalLight3D", Base: "Node3D"})
	r.Register(&Def{Name: "OmniLight3D", Base: "Node3D"})
	r.Register(&Def{Name: "SpotLight3D", Base: "Node3D"})

	return r
}
