package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the per-tick step length.
//
// Parameters:
//   - speed: world units moved per UpdateCamera call
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithKeyBinding binds an additional key to a button, replacing any existing binding for that key.
//
// Parameters:
//   - key: the GLFW key code
//   - b: the button the key drives
//
// Returns:
//   - CameraControllerOption: functional option to add the binding
func WithKeyBinding(key uint32, b Button) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings[key] = b
	}
}

// WithKeyBindings replaces the controller's entire key map.
//
// Parameters:
//   - bindings: key code to button map
//
// Returns:
//   - CameraControllerOption: functional option to set the bindings
func WithKeyBindings(bindings map[uint32]Button) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = make(map[uint32]Button, len(bindings))
		for k, v := range bindings {
			cc.bindings[k] = v
		}
	}
}
