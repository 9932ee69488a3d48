package camera

import (
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithEye sets the camera's world-space position.
//
// Parameters:
//   - eye: the eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's eye
func WithEye(eye mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = eye
	}
}

// WithTarget sets the camera's look-at point.
//
// Parameters:
//   - target: the look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFovY sets the camera's vertical field of view in degrees.
//
// Parameters:
//   - degrees: vertical field of view, exclusive range (0, 180)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFovY(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovyDegrees = degrees
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - znear: near plane distance
//   - zfar: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets both clip planes
func WithClipPlanes(znear, zfar float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.znear = znear
		c.zfar = zfar
	}
}

// WithBindGroupProvider attaches a bind group provider to the camera.
// The provider owns the GPU uniform buffer and bind group for the camera.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bindGroupProvider = provider
	}
}
