package camera

import "github.com/Carmen-Shannon/oxy-scaffold/common"

// Button is one of the six logical directions tracked by a CameraController.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonForward
	ButtonBackward
	ButtonLeft
	ButtonRight

	buttonCount
)

// String returns the lowercase name of the button.
func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonForward:
		return "forward"
	case ButtonBackward:
		return "backward"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// DefaultKeyBindings maps GLFW key codes to controller buttons.
// Space and Left Shift drive up/down, WASD and the arrow keys drive the planar directions.
func DefaultKeyBindings() map[uint32]Button {
	return map[uint32]Button{
		common.KeySpace:     ButtonUp,
		common.KeyLeftShift: ButtonDown,
		common.KeyW:         ButtonForward,
		common.KeyUp:        ButtonForward,
		common.KeyS:         ButtonBackward,
		common.KeyDown:      ButtonBackward,
		common.KeyA:         ButtonLeft,
		common.KeyLeft:      ButtonLeft,
		common.KeyD:         ButtonRight,
		common.KeyRight:     ButtonRight,
	}
}

// CameraController defines the keyboard-driven orbit controller.
// It owns only the pressed/released state of six buttons and a step speed. Each UpdateCamera
// call nudges the camera eye toward or away from the target, or orbits it at constant radius.
// The up and down buttons are tracked but never consumed by UpdateCamera.
type CameraController interface {
	// ProcessKey records a key state change.
	//
	// Parameters:
	//   - key: the GLFW key code
	//   - pressed: true on press or repeat, false on release
	//
	// Returns:
	//   - bool: true if the key is bound to a button, false if the event was not handled
	ProcessKey(key uint32, pressed bool) bool

	// UpdateCamera applies one tick of movement to the camera's eye.
	//
	// Parameters:
	//   - cam: the camera to mutate
	UpdateCamera(cam Camera)

	// Pressed reports whether a button is currently held.
	//
	// Parameters:
	//   - b: the button to query
	//
	// Returns:
	//   - bool: true if held
	Pressed(b Button) bool

	// Speed returns the per-tick step length in world units.
	//
	// Returns:
	//   - float32: the step length
	Speed() float32

	// Reset releases every button.
	Reset()
}
