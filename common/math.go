package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPUMatrix maps the OpenGL clip-space depth range [-1, 1] produced by mgl32.Perspective
// to the [0, 1] range WebGPU expects. Stored column-major like every mgl32.Mat4.
var OpenGLToWGPUMatrix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// instanceRotationDegrees is the tilt applied to every instance that does not sit at the origin.
const instanceRotationDegrees = 45.0

// BuildViewProjection composes the camera's view-projection matrix as
// OpenGLToWGPUMatrix * projection * view. The view matrix uses the right-handed look-at convention.
// The multiplication order must not change: a reversed product is still a valid matrix and
// renders a wrong image without any error.
//
// Parameters:
//   - eye: camera position in world space
//   - target: the point the camera looks at
//   - up: the camera's up vector
//   - fovyDegrees: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width / height)
//   - znear, zfar: clip plane distances (znear < zfar)
//
// Returns:
//   - mgl32.Mat4: the column-major view-projection matrix
func BuildViewProjection(eye, target, up mgl32.Vec3, fovyDegrees, aspect, znear, zfar float32) mgl32.Mat4 {
	view := mgl32.LookAtV(eye, target, up)
	proj := mgl32.Perspective(mgl32.DegToRad(fovyDegrees), aspect, znear, zfar)
	return OpenGLToWGPUMatrix.Mul4(proj).Mul4(view)
}

// InstanceRotation returns the rotation used for an instance placed at position.
// An instance at the origin gets an explicit zero-angle rotation about +Z because
// normalizing the zero vector to build an axis would produce NaNs.
// Every other instance is tilted 45 degrees about the normalized position.
//
// Parameters:
//   - position: the instance's world-space position
//
// Returns:
//   - mgl32.Quat: the instance rotation
func InstanceRotation(position mgl32.Vec3) mgl32.Quat {
	if position == (mgl32.Vec3{}) {
		return mgl32.QuatRotate(0, mgl32.Vec3{0, 0, 1})
	}
	return mgl32.QuatRotate(mgl32.DegToRad(instanceRotationDegrees), position.Normalize())
}

// BuildModelMatrix composes translation(position) * rotation.
//
// Parameters:
//   - position: translation in world space
//   - rotation: the instance rotation
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(position mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(rotation.Mat4())
}
