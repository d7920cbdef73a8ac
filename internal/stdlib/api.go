package stdlib

// API identifies one engine operation. Several script spellings may map
// to the same value.
type API int

const (
	ILLEGAL_API API = iota

	// modules
	JSON_PARSE
	JSON_STRINGIFY
	TIME_GET_DELTA
	TIME_GET_UNIX_MSEC
	TIME_SLEEP_MSEC
	OS_GET_PLATFORM_NAME
	OS_GET_ENV
	CONSOLE_LOG
	CONSOLE_WARN
	CONSOLE_ERROR
	CONSOLE_INFO
	MATH_SQRT
	MATH_ABS
	MATH_FLOOR
	MATH_CEIL
	MATH_POW
	MATH_SIN
	MATH_COS
	MATH_MIN
	MATH_MAX
	MATH_CLAMP
	MATH_LERP
	MATH_RANDOM_RANGE
	SCRIPT_INSTANTIATE
	INPUT_GET_ACTION
	INPUT_IS_KEY_PRESSED
	INPUT_GET_TEXT_INPUT
	INPUT_CLEAR_TEXT_INPUT
	INPUT_IS_BUTTON_PRESSED
	INPUT_GET_MOUSE_POSITION
	INPUT_GET_SCROLL_DELTA
	INPUT_IS_WHEEL_UP
	INPUT_IS_WHEEL_DOWN

	// resources
	SIGNAL_NEW
	SIGNAL_CONNECT
	SIGNAL_EMIT
	SIGNAL_EMIT_DEFERRED
	ARRAY_PUSH
	ARRAY_POP
	ARRAY_INSERT
	ARRAY_REMOVE
	ARRAY_LEN
	ARRAY_NEW
	MAP_INSERT
	MAP_REMOVE
	MAP_GET
	MAP_CONTAINS
	MAP_LEN
	MAP_CLEAR
	MAP_NEW
	TEXTURE_LOAD
	TEXTURE_PRELOAD
	TEXTURE_REMOVE
	TEXTURE_CREATE_FROM_BYTES
	TEXTURE_GET_WIDTH
	TEXTURE_GET_HEIGHT
	TEXTURE_GET_SIZE
	MESH_LOAD
	MESH_PRELOAD
	MESH_REMOVE
	MESH_CUBE
	MESH_SPHERE
	MESH_PLANE
	MESH_CYLINDER
	MESH_CAPSULE
	MESH_CONE
	SCENE_LOAD
	SCENE_INSTANTIATE
	SHAPE_RECTANGLE
	SHAPE_CIRCLE
	SHAPE_SQUARE
	SHAPE_TRIANGLE
	QUATERNION_IDENTITY
	QUATERNION_FROM_EULER
	QUATERNION_FROM_EULER_XYZ
	QUATERNION_AS_EULER
	QUATERNION_ROTATE_X
	QUATERNION_ROTATE_Y
	QUATERNION_ROTATE_Z
)

// IsConsole reports whether a is a logging call. Release builds strip them.
func (a API) IsConsole() bool {
	switch a {
	case CONSOLE_LOG, CONSOLE_WARN, CONSOLE_ERROR, CONSOLE_INFO:
		return true
	}
	return false
}
