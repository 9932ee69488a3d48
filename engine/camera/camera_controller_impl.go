package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// defaultSpeed is the step length used when no WithSpeed option is given.
const defaultSpeed float32 = 0.2

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	speed    float32
	pressed  [buttonCount]bool
	bindings map[uint32]Button
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with every button released,
// a step speed of 0.2 and the DefaultKeyBindings.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		speed:    defaultSpeed,
		bindings: DefaultKeyBindings(),
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKey(key uint32, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	b, ok := cc.bindings[key]
	if !ok {
		return false
	}
	cc.pressed[b] = pressed
	return true
}

func (cc *cameraControllerImpl) Pressed(b Button) bool {
	if b < 0 || b >= buttonCount {
		return false
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pressed[b]
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pressed = [buttonCount]bool{}
}

// UpdateCamera advances the eye by one tick.
//
// Forward only moves while the eye is farther than one step from the target, so it can never
// cross the target. Backward has no such guard. Left and right rotate the eye around the target
// keeping the post-step distance. When eye and target coincide the direction is undefined and
// the tick is skipped.
func (cc *cameraControllerImpl) UpdateCamera(cam Camera) {
	cc.mu.Lock()
	speed := cc.speed
	pressed := cc.pressed
	cc.mu.Unlock()

	eye, target, up := cam.Eye(), cam.Target(), cam.Up()

	forward := target.Sub(eye)
	forwardMag := forward.Len()
	if forwardMag == 0 {
		return
	}
	forwardNorm := forward.Mul(1 / forwardMag)

	if pressed[ButtonForward] && forwardMag > speed {
		eye = eye.Add(forwardNorm.Mul(speed))
	}
	if pressed[ButtonBackward] {
		eye = eye.Sub(forwardNorm.Mul(speed))
	}

	right := forwardNorm.Cross(up)

	// the radius may have changed above
	forward = target.Sub(eye)
	forwardMag = forward.Len()

	if pressed[ButtonRight] {
		eye = orbit(target, forward.Add(right.Mul(speed)), forwardMag)
	}
	if pressed[ButtonLeft] {
		eye = orbit(target, forward.Sub(right.Mul(speed)), forwardMag)
	}

	cam.SetEye(eye)
}

// orbit places the eye at distance radius from target, opposite the given direction.
// A zero direction leaves the eye on the target.
func orbit(target, direction mgl32.Vec3, radius float32) mgl32.Vec3 {
	l := direction.Len()
	if l == 0 {
		return target
	}
	return target.Sub(direction.Mul(radius / l))
}
