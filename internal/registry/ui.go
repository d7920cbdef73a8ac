package registry

import "pup/internal/types"

var uiKinds = map[string]bool{
	"UIElement": true,
	"Panel":     true,
	"Text":      true,
	"Button":    true,
	"Image":     true,
}

// NewUIRegistry returns the UI element kinds. Elements are reached through
// UINode.get_element and addressed by UIElementID.
func NewUIRegistry() *Registry {
	r := New(types.KindUIElement)

	r.Register(&Def{
		Name: "UIElement",
		Fields: []Field{
			field("name", "name", "string"),
			field("visible", "visible", "bool"),
		},
	})
	r.Register(&Def{
		Name:     "Panel",
		RustName: "UIPanel",
		Base:     "UIElement",
		Fields: []Field{
			field("color", "props.color", "Color"),
		},
	})
	r.Register(&Def{
		Name:     "Text",
		RustName: "UIText",
		Base:     "UIElement",
		Fields: []Field{
			field("content", "props.content", "string"),
			field("font_size", "props.font_size", "float"),
			field("color", "props.color", "Color"),
		},
	})
	r.Register(&Def{
		Name:     "Button",
		RustName: "UIButton",
		Base:     "UIElement",
		Fields: []Field{
			field("label", "props.label", "string"),
			field("disabled", "props.disabled", "bool"),
		},
	})
	r.Register(&Def{
		Name:     "Image",
		RustName: "UIImage",
		Base:     "UIElement",
		Fields: []Field{
			field("texture", "props.texture_id", "Option<Texture>"),
		},
	})

	return r
}
