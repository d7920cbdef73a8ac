package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pup/internal/types"
)

func TestNodeRegistryInheritance(t *testing.T) {
	r := NewNodeRegistry()

	assert.Equal(t, []string{"Sprite2D", "Node2D", "Node"}, r.Chain("Sprite2D"))
	assert.True(t, r.IsSubtype("Sprite2D", "Node"))
	assert.True(t, r.IsSubtype("Camera3D", "Node3D"))
	assert.False(t, r.IsSubtype("Node2D", "Sprite2D"))
	assert.False(t, r.IsSubtype("Sprite2D", "Node3D"))
	assert.Empty(t, r.Chain("Nope"))
}

func TestNodeRegistryFieldsWalkBaseChain(t *testing.T) {
	r := NewNodeRegistry()

	assert.Equal(t,
		[]string{"texture", "region", "transform", "pivot", "visible", "z_index", "name"},
		r.FieldNames("Sprite2D"))

	f, owner, ok := r.Field("Sprite2D", "visible")
	require.True(t, ok)
	assert.Equal(t, "Node2D", owner)
	assert.True(t, types.Bool.Equal(f.Type))

	tex, _, ok := r.Field("Sprite2D", "texture")
	require.True(t, ok)
	assert.Equal(t, "texture_id", tex.RustName)
	assert.True(t, types.Option(types.Resource("Texture")).Equal(tex.Type))

	_, _, ok = r.Field("Node", "transform")
	assert.False(t, ok)
}

func TestNodeRegistryMethods(t *testing.T) {
	r := NewNodeRegistry()

	m, ok := r.Method("Camera2D", "get_node")
	require.True(t, ok)
	require.Len(t, m.Params, 1)
	assert.Equal(t, types.KindStrRef, m.Params[0].Type.Kind)
	assert.Equal(t, types.KindDynNode, m.Return.Kind)
	assert.Equal(t, "api.get_child_by_name({self}, {0})", m.Template)

	remove, ok := r.Method("Node", "remove")
	require.True(t, ok)
	assert.Equal(t, types.KindVoid, remove.Return.Kind)

	el, ok := r.Method("UINode", "get_element")
	require.True(t, ok)
	assert.Equal(t, types.UIElement("UIElement"), el.Return)

	_, ok = r.Method("Node2D", "get_element")
	assert.False(t, ok)
	assert.Contains(t, r.MethodNames("Node2D"), "get_parent")
}

func TestShadowingFirstSeenWins(t *testing.T) {
	r := New(types.KindNode)
	r.Register(&Def{Name: "Base", Fields: []Field{field("a", "base_a", "int"), field("b", "b", "int")}})
	r.Register(&Def{Name: "Child", Base: "Base", Fields: []Field{field("a", "child_a", "float")}})

	fields := r.Fields("Child")
	require.Len(t, fields, 2)
	assert.Equal(t, "child_a", fields[0].RustName)
	assert.Equal(t, "b", fields[1].ScriptName)
}

func TestEveryRegisteredKindIsKnown(t *testing.T) {
	nodes := NewNodeRegistry()
	for _, name := range nodes.Names() {
		assert.True(t, IsNodeKind(name), name)
	}
	assert.Len(t, nodes.Names(), len(nodeKinds))

	ui := NewUIRegistry()
	for _, name := range ui.Names() {
		assert.True(t, uiKinds[name], name)
	}
	assert.Len(t, ui.Names(), len(uiKinds))
}

func TestUIRegistry(t *testing.T) {
	r := NewUIRegistry()

	f, owner, ok := r.Field("Text", "content")
	require.True(t, ok)
	assert.Equal(t, "Text", owner)
	assert.Equal(t, "props.content", f.RustName)

	def, ok := r.Def("Text")
	require.True(t, ok)
	assert.Equal(t, "UIText", def.RustName)

	_, _, ok = r.Field("Button", "visible")
	assert.True(t, ok)
	assert.Equal(t, types.KindUIElement, r.TypeOf("Button").Kind)
}

func TestEngineStructs(t *testing.T) {
	r := NewEngineStructs()

	v, ok := r.Def("Vector2")
	require.True(t, ok)
	assert.Len(t, v.Fields, 2)

	f, _, ok := r.Field("Transform2D", "position")
	require.True(t, ok)
	assert.Equal(t, types.EngineStruct("Vector2"), f.Type)

	rect, _, ok := r.Field("Rect", "width")
	require.True(t, ok)
	assert.Equal(t, "w", rect.RustName)
}

func TestLookupType(t *testing.T) {
	ty, ok := LookupType("Sprite2D")
	require.True(t, ok)
	assert.Equal(t, types.Node("Sprite2D"), ty)

	ty, ok = LookupType("Button")
	require.True(t, ok)
	assert.Equal(t, types.KindUIElement, ty.Kind)

	ty, ok = LookupType("int")
	require.True(t, ok)
	assert.Equal(t, types.I32, ty)

	_, ok = LookupType("Player")
	assert.False(t, ok)
}
