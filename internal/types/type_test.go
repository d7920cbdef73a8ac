package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRustType(t *testing.T) {
	cases := map[string]Type{
		"i32":                         I32,
		"u128":                        U128,
		"f64":                         F64,
		"String":                      String,
		"&'static str":                StrRef,
		"Cow<'static, str>":           CowStr,
		"Option<NodeID>":              Option(DynNode),
		"Vec<f32>":                    Array(F32),
		"[u8; 4]":                     FixedArray(U8, 4),
		"HashMap<String, Vec<Value>>": Map(String, Array(Object)),
		"UIElementID":                 UIElement("Button"),
		"TextureID":                   Resource("Texture"),
		"Point":                       Custom("Point"),
	}
	for want, ty := range cases {
		assert.Equal(t, want, ty.RustType(), ty.String())
	}
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, "0i32", I32.DefaultValue())
	assert.Equal(t, "0.0f64", F64.DefaultValue())
	assert.Equal(t, "String::new()", String.DefaultValue())
	assert.Equal(t, "None", Option(I32).DefaultValue())
	assert.Equal(t, "Vector2::default()", EngineStruct("Vector2").DefaultValue())
}

func TestCanConvertTo(t *testing.T) {
	assert.True(t, I32.CanConvertTo(F64))
	assert.True(t, I8.CanConvertTo(I64))
	assert.True(t, U8.CanConvertTo(I16))
	assert.True(t, F32.CanConvertTo(F64))
	assert.True(t, I32.CanConvertTo(Option(I32)))
	assert.True(t, StrRef.CanConvertTo(String))
	assert.True(t, Node("Sprite2D").CanConvertTo(DynNode))
	assert.True(t, Option(DynNode).CanConvertTo(DynNode))
	assert.True(t, Bool.CanConvertTo(Object))
	assert.True(t, Object.CanConvertTo(I32))

	assert.False(t, F64.CanConvertTo(F32))
	assert.False(t, I64.CanConvertTo(I32))
	assert.False(t, U32.CanConvertTo(I32))
	assert.False(t, String.CanConvertTo(StrRef))
	assert.False(t, Bool.CanConvertTo(I32))
	assert.False(t, Void.CanConvertTo(Object))
	assert.False(t, Unknown.CanConvertTo(I32))
}

func TestPromote(t *testing.T) {
	p, ok := Promote(I32, F32)
	assert.True(t, ok)
	assert.Equal(t, F32, p)

	p, ok = Promote(I64, I32)
	assert.True(t, ok)
	assert.Equal(t, I64, p)

	p, ok = Promote(U32, I32)
	assert.True(t, ok)
	assert.Equal(t, I64, p)

	p, ok = Promote(String, StrRef)
	assert.True(t, ok)
	assert.Equal(t, String, p)

	_, ok = Promote(Bool, I32)
	assert.False(t, ok)
}

func TestEqualAndConcrete(t *testing.T) {
	assert.True(t, Map(String, I32).Equal(Map(String, I32)))
	assert.False(t, Map(String, I32).Equal(Map(String, I64)))
	assert.False(t, Array(Unknown).IsConcrete())
	assert.True(t, Array(I32).IsConcrete())
}

func TestRequiresClone(t *testing.T) {
	assert.True(t, String.RequiresClone())
	assert.True(t, Option(Custom("P")).RequiresClone())
	assert.False(t, I32.RequiresClone())
	assert.False(t, DynNode.RequiresClone())
}
