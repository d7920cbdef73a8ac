package stdlib

import (
	"sort"
	"strings"

	"pup/grammar"
	"pup/internal/types"
)

// ModuleDefinition defines an engine API namespace
type ModuleDefinition struct {
	Name string // Namespace as written in scripts (e.g., "JSON", "Array")
	// Resource namespaces operate on a value; their functions take that
	// value first and may be called on it as methods.
	Resource  bool
	Functions map[string]FunctionDefinition // Keyed by every accepted spelling
}

// FunctionDefinition defines one API function
type FunctionDefinition struct {
	API       API
	Namespace string
	Name      string             // Canonical spelling
	Signature *grammar.Signature // Declared parameters and return type
	// Template is the emitted Rust with {0}, {1}, ... for arguments and
	// {args} for the variadic tail.
	Template string
}

// ParameterDefinition is a parameter with its type resolved against a
// receiver.
type ParameterDefinition struct {
	Name     string
	Type     types.Type // Unknown for "any"
	Variadic bool
}

// entry is one function with every spelling that names it.
type entry struct {
	names []string
	def   FunctionDefinition
}

func fn(api API, spellings, signature, template string) entry {
	names := strings.Split(spellings, "|")
	return entry{names: names, def: FunctionDefinition{
		API:       api,
		Name:      names[0],
		Signature: grammar.MustSignature(signature),
		Template:  template,
	}}
}

func newModule(name string, resource bool, entries ...entry) *ModuleDefinition {
	m := &ModuleDefinition{Name: name, Resource: resource, Functions: make(map[string]FunctionDefinition)}
	for _, e := range entries {
		def := e.def
		def.Namespace = name
		for _, n := range e.names {
			m.Functions[n] = def
		}
	}
	return m
}

var standardModules = buildModules()

func buildModules() map[string]*ModuleDefinition {
	modules := []*ModuleDefinition{
		newModule("JSON", false,
			fn(JSON_PARSE, "parse", "(text: string) -> Object", "api.JSON.parse(&{0})"),
			fn(JSON_STRINGIFY, "stringify", "(value: Object) -> string", "api.JSON.stringify(&{0})"),
		),
		newModule("Time", false,
			fn(TIME_GET_DELTA, "get_delta|delta", "() -> float", "api.Time.get_delta()"),
			fn(TIME_GET_UNIX_MSEC, "get_unix_time_msec", "() -> uint_64", "api.Time.get_unix_time_msec()"),
			fn(TIME_SLEEP_MSEC, "sleep_msec", "(msec: uint_64)", "api.Time.sleep_msec({0})"),
		),
		newModule("OS", false,
			fn(OS_GET_PLATFORM_NAME, "get_platform_name", "() -> string", "api.OS.get_platform_name()"),
			fn(OS_GET_ENV, "get_env|getenv", "(name: str) -> string", "api.OS.getenv({0})"),
		),
		newModule("Console", false,
			fn(CONSOLE_LOG, "print|log", "(value: any)", "api.print(&{0})"),
			fn(CONSOLE_WARN, "warn|print_warn", "(value: any)", "api.print_warn(&{0})"),
			fn(CONSOLE_ERROR, "error|print_error", "(value: any)", "api.print_error(&{0})"),
			fn(CONSOLE_INFO, "info|print_info", "(value: any)", "api.print_info(&{0})"),
		),
		newModule("Math", false,
			fn(MATH_SQRT, "sqrt", "(x: float) -> float", "({0}).sqrt()"),
			fn(MATH_ABS, "abs", "(x: float) -> float", "({0}).abs()"),
			fn(MATH_FLOOR, "floor", "(x: float) -> float", "({0}).floor()"),
			fn(MATH_CEIL, "ceil", "(x: float) -> float", "({0}).ceil()"),
			fn(MATH_POW, "pow", "(x: float, y: float) -> float", "({0}).powf({1})"),
			fn(MATH_SIN, "sin", "(x: float) -> float", "({0}).sin()"),
			fn(MATH_COS, "cos", "(x: float) -> float", "({0}).cos()"),
			fn(MATH_MIN, "min", "(a: float, b: float) -> float", "({0}).min({1})"),
			fn(MATH_MAX, "max", "(a: float, b: float) -> float", "({0}).max({1})"),
			fn(MATH_CLAMP, "clamp", "(x: float, lo: float, hi: float) -> float", "({0}).clamp({1}, {2})"),
			fn(MATH_LERP, "lerp", "(a: float, b: float, t: float) -> float", "({0}) + (({1}) - ({0})) * ({2})"),
			fn(MATH_RANDOM_RANGE, "random_range", "(lo: float, hi: float) -> float", "api.Math.random_range({0}, {1})"),
		),
		newModule("Script", false,
			fn(SCRIPT_INSTANTIATE, "new|instantiate", "(path: str) -> node", "api.instantiate_script({0})"),
		),
		newModule("Input", false,
			fn(INPUT_GET_ACTION, "get_action", "(action: str) -> bool", "api.Input.get_action({0})"),
			fn(INPUT_IS_KEY_PRESSED, "is_key_pressed|get_key_pressed", "(key: str) -> bool", "api.Input.is_key_pressed({0})"),
			fn(INPUT_GET_TEXT_INPUT, "get_text_input", "() -> string", "api.Input.get_text_input()"),
			fn(INPUT_CLEAR_TEXT_INPUT, "clear_text_input", "()", "api.Input.clear_text_input()"),
			fn(INPUT_IS_BUTTON_PRESSED, "is_button_pressed|is_mouse_button_pressed", "(button: str) -> bool", "api.Input.is_button_pressed({0})"),
			fn(INPUT_GET_MOUSE_POSITION, "get_mouse_position|get_mouse_pos", "() -> Vector2", "api.Input.get_mouse_position()"),
			fn(INPUT_GET_SCROLL_DELTA, "get_scroll_delta|get_scroll", "() -> float", "api.Input.get_scroll_delta()"),
			fn(INPUT_IS_WHEEL_UP, "is_wheel_up", "() -> bool", "api.Input.is_wheel_up()"),
			fn(INPUT_IS_WHEEL_DOWN, "is_wheel_down", "() -> bool", "api.Input.is_wheel_down()"),
		),

		newModule("Signal", true,
			fn(SIGNAL_NEW, "new", "(name: str) -> Signal", "string_to_u64({0})"),
			fn(SIGNAL_CONNECT, "connect", "(signal: Signal, function: str)", "api.connect_signal_id({0}, self.id, string_to_u64({1}))"),
			fn(SIGNAL_EMIT, "emit", "(signal: Signal, args: Object...)", "api.emit_signal_id({0}, smallvec![{args}])"),
			fn(SIGNAL_EMIT_DEFERRED, "emit_deferred", "(signal: Signal, args: Object...)", "api.emit_signal_id_deferred({0}, smallvec![{args}])"),
		),
		newModule("Array", true,
			fn(ARRAY_PUSH, "push|append", "(array: Array<T>, value: T)", "{0}.push({1})"),
			fn(ARRAY_POP, "pop", "(array: Array<T>) -> Option<T>", "{0}.pop()"),
			fn(ARRAY_INSERT, "insert", "(array: Array<T>, index: int, value: T)", "{0}.insert({1} as usize, {2})"),
			fn(ARRAY_REMOVE, "remove", "(array: Array<T>, index: int) -> T", "{0}.remove({1} as usize)"),
			fn(ARRAY_LEN, "len|size", "(array: Array<T>) -> uint_32", "{0}.len() as u32"),
			fn(ARRAY_NEW, "new", "() -> Array<T>", "Vec::new()"),
		),
		newModule("Map", true,
			fn(MAP_INSERT, "insert", "(map: Map<K, V>, key: K, value: V)", "{0}.insert({1}, {2})"),
			fn(MAP_REMOVE, "remove", "(map: Map<K, V>, key: K) -> Option<V>", "{0}.remove(&{1})"),
			fn(MAP_GET, "get", "(map: Map<K, V>, key: K) -> V", "{0}.get(&{1}).cloned().unwrap_or_default()"),
			fn(MAP_CONTAINS, "contains|contains_key", "(map: Map<K, V>, key: K) -> bool", "{0}.contains_key(&{1})"),
			fn(MAP_LEN, "len|size", "(map: Map<K, V>) -> uint_32", "{0}.len() as u32"),
			fn(MAP_CLEAR, "clear", "(map: Map<K, V>)", "{0}.clear()"),
			fn(MAP_NEW, "new", "() -> Map<K, V>", "HashMap::new()"),
		),
		newModule("Texture", true,
			fn(TEXTURE_LOAD, "load", "(path: str) -> Option<Texture>", "api.Texture.load({0})"),
			fn(TEXTURE_PRELOAD, "preload", "(path: str) -> Option<Texture>", "api.Texture.preload({0})"),
			fn(TEXTURE_REMOVE, "remove", "(texture: Texture)", "api.Texture.remove({0})"),
			fn(TEXTURE_CREATE_FROM_BYTES, "create_from_bytes", "(bytes: Array<uint_8>, width: uint_32, height: uint_32) -> Option<Texture>", "api.Texture.create_from_bytes({0}, {1}, {2})"),
			fn(TEXTURE_GET_WIDTH, "get_width", "(texture: Texture) -> uint_32", "api.Texture.get_width({0})"),
			fn(TEXTURE_GET_HEIGHT, "get_height", "(texture: Texture) -> uint_32", "api.Texture.get_height({0})"),
			fn(TEXTURE_GET_SIZE, "get_size", "(texture: Texture) -> Vector2", "api.Texture.get_size({0})"),
		),
		newModule("Mesh", true,
			fn(MESH_LOAD, "load", "(path: str) -> Option<Mesh>", "api.Mesh.load({0})"),
			fn(MESH_PRELOAD, "preload", "(path: str) -> Option<Mesh>", "api.Mesh.preload({0})"),
			fn(MESH_REMOVE, "remove", "(mesh: Mesh)", "api.Mesh.remove({0})"),
			fn(MESH_CUBE, "cube", "() -> Mesh", "api.Mesh.cube()"),
			fn(MESH_SPHERE, "sphere", "() -> Mesh", "api.Mesh.sphere()"),
			fn(MESH_PLANE, "plane", "() -> Mesh", "api.Mesh.plane()"),
			fn(MESH_CYLINDER, "cylinder", "() -> Mesh", "api.Mesh.cylinder()"),
			fn(MESH_CAPSULE, "capsule", "() -> Mesh", "api.Mesh.capsule()"),
			fn(MESH_CONE, "cone", "() -> Mesh", "api.Mesh.cone()"),
		),
		newModule("Scene", true,
			fn(SCENE_LOAD, "load", "(path: str) -> Option<Scene>", "api.Scene.load({0})"),
			fn(SCENE_INSTANTIATE, "instantiate", "(scene: Scene) -> node", "api.Scene.instantiate({0})"),
		),
		newModule("Shape", true,
			fn(SHAPE_RECTANGLE, "rectangle", "(width: float, height: float) -> Shape", "api.Shape.rectangle({0}, {1})"),
			fn(SHAPE_CIRCLE, "circle", "(radius: float) -> Shape", "api.Shape.circle({0})"),
			fn(SHAPE_SQUARE, "square", "(size: float) -> Shape", "api.Shape.square({0})"),
			fn(SHAPE_TRIANGLE, "triangle", "(base: float, height: float) -> Shape", "api.Shape.triangle({0}, {1})"),
		),
		newModule("Quaternion", true,
			fn(QUATERNION_IDENTITY, "identity", "() -> Quaternion", "Quaternion::identity()"),
			fn(QUATERNION_FROM_EULER, "from_euler", "(euler: Vector3) -> Quaternion", "Quaternion::from_euler({0})"),
			fn(QUATERNION_FROM_EULER_XYZ, "from_euler_xyz", "(x: float, y: float, z: float) -> Quaternion", "Quaternion::from_euler_xyz({0}, {1}, {2})"),
			fn(QUATERNION_AS_EULER, "as_euler", "(q: Quaternion) -> Vector3", "{0}.as_euler()"),
			fn(QUATERNION_ROTATE_X, "rotate_x", "(q: Quaternion, angle: float) -> Quaternion", "{0}.rotate_x({1})"),
			fn(QUATERNION_ROTATE_Y, "rotate_y", "(q: Quaternion, angle: float) -> Quaternion", "{0}.rotate_y({1})"),
			fn(QUATERNION_ROTATE_Z, "rotate_z", "(q: Quaternion, angle: float) -> Quaternion", "{0}.rotate_z({1})"),
		),
	}

	out := make(map[string]*ModuleDefinition, len(modules)+1)
	for _, m := range modules {
		out[m.Name] = m
	}
	out["Shape2D"] = out["Shape"]
	return out
}

// globals are bare names that call a module function directly.
var globals = map[string]string{
	"print": "Console",
	"warn":  "Console",
	"error": "Console",
	"info":  "Console",
}

// GetStandardModules returns every API namespace by name
func GetStandardModules() map[string]*ModuleDefinition {
	return standardModules
}

// IsKnownModule checks if a name is an API namespace
func IsKnownModule(name string) bool {
	_, exists := standardModules[name]
	return exists
}

// GetModuleDefinition returns the definition for an API namespace
func GetModuleDefinition(name string) *ModuleDefinition {
	return standardModules[name]
}

// Resolve maps "Namespace.method" to its definition.
func Resolve(namespace, method string) (FunctionDefinition, bool) {
	m, ok := standardModules[namespace]
	if !ok {
		return FunctionDefinition{}, false
	}
	def, ok := m.Functions[method]
	return def, ok
}

// Global resolves a bare call such as print(x).
func Global(name string) (FunctionDefinition, bool) {
	ns, ok := globals[name]
	if !ok {
		return FunctionDefinition{}, false
	}
	return Resolve(ns, name)
}

// Namespaces returns namespace names sorted, for suggestions.
func Namespaces() []string {
	names := make([]string, 0, len(standardModules))
	for name := range standardModules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spellings returns every accepted method name of a namespace, sorted.
func (m *ModuleDefinition) Spellings() []string {
	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResourceFor returns the resource namespace whose functions accept a
// value of t as their first argument.
func ResourceFor(t types.Type) (*ModuleDefinition, bool) {
	var name string
	switch t.Kind {
	case types.KindArray:
		name = "Array"
	case types.KindMap:
		name = "Map"
	case types.KindSignal:
		name = "Signal"
	case types.KindResource:
		name = t.Name
	case types.KindEngineStruct:
		if t.Name != "Quaternion" {
			return nil, false
		}
		name = t.Name
	default:
		return nil, false
	}
	m, ok := standardModules[name]
	return m, ok
}
