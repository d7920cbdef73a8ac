package semantic

import (
	"pup/internal/registry"
	"pup/internal/stdlib"
	"pup/internal/types"
)

// ContextRegistry provides a unified view of the engine surface a script
// can reach: node kinds, UI elements, engine value types and API modules
type ContextRegistry struct {
	Nodes  *registry.Registry
	UI     *registry.Registry
	Engine *registry.Registry

	// Standard library modules for reference
	stdlibModules map[string]*stdlib.ModuleDefinition
}

// NewContextRegistry creates a context with the built in engine registries
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		Nodes:         registry.NewNodeRegistry(),
		UI:            registry.NewUIRegistry(),
		Engine:        registry.NewEngineStructs(),
		stdlibModules: stdlib.GetStandardModules(),
	}
}

// IsNodeType checks if a name is a registered node kind
func (cr *ContextRegistry) IsNodeType(name string) bool {
	return cr.Nodes.Has(name)
}

// IsStandardModule checks if a name is an API namespace
func (cr *ContextRegistry) IsStandardModule(name string) bool {
	_, exists := cr.stdlibModules[name]
	return exists
}

// GetStandardModuleDefinition returns the definition for an API namespace
func (cr *ContextRegistry) GetStandardModuleDefinition(name string) *stdlib.ModuleDefinition {
	return cr.stdlibModules[name]
}

// ModuleNames returns every namespace, for suggestions
func (cr *ContextRegistry) ModuleNames() []string {
	return stdlib.Namespaces()
}

// registryFor picks the registry that describes handles of kind t.
func (cr *ContextRegistry) registryFor(t types.Type) (*registry.Registry, string) {
	switch t.Kind {
	case types.KindNode:
		return cr.Nodes, t.Name
	case types.KindDynNode:
		return cr.Nodes, "Node"
	case types.KindUIElement:
		return cr.UI, t.Name
	case types.KindEngineStruct:
		return cr.Engine, t.Name
	}
	return nil, ""
}

// IsNodeSubtype reports whether a handle of kind from may be used where to
// is expected.
func (cr *ContextRegistry) IsNodeSubtype(from, to types.Type) bool {
	if from.Kind == types.KindNode && to.Kind == types.KindNode {
		return cr.Nodes.IsSubtype(from.Name, to.Name)
	}
	if from.Kind == types.KindUIElement && to.Kind == types.KindUIElement {
		return cr.UI.IsSubtype(from.Name, to.Name)
	}
	return false
}
