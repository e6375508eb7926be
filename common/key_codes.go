package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyQ     = 81  // Q key (ASCII)
	KeyE     = 69  // E key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyF     = 70  // F key (ASCII)
	KeyT     = 84  // T key (ASCII)
	KeyG     = 71  // G key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Arrow keys
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// keyNames maps the lowercase names used in configuration and input scripts to key codes.
var keyNames = map[string]uint32{
	"w":      KeyW,
	"a":      KeyA,
	"s":      KeyS,
	"d":      KeyD,
	"q":      KeyQ,
	"e":      KeyE,
	"r":      KeyR,
	"f":      KeyF,
	"t":      KeyT,
	"g":      KeyG,
	"space":  KeySpace,
	"escape": KeyEsc,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
}

// KeyByName resolves a lowercase key name ("w", "up", "space", ...) to its key code.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code, zero when unknown
//   - bool: true if the name is known
func KeyByName(name string) (uint32, bool) {
	code, ok := keyNames[name]
	return code, ok
}
