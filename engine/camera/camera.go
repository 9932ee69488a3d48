package camera

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidAspect is returned when an aspect ratio is not strictly positive.
	ErrInvalidAspect = errors.New("camera: aspect ratio must be greater than zero")
	// ErrInvalidClipPlanes is returned when znear is not strictly less than zfar, or znear is not positive.
	ErrInvalidClipPlanes = errors.New("camera: clip planes must satisfy 0 < znear < zfar")
	// ErrInvalidFov is returned when the vertical field of view is outside (0, 180) degrees.
	ErrInvalidFov = errors.New("camera: vertical field of view must be within (0, 180) degrees")
)

// cameraCount is an atomic counter used to generate unique bind group provider labels for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	aspect      float32
	fovyDegrees float32
	znear       float32
	zfar        float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for a perspective look-at camera.
// The camera owns eye/target/up plus the perspective parameters and derives the
// view-projection matrix on demand. A CameraController mutates the eye through SetEye.
type Camera interface {
	// Eye returns the camera position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Target returns the look-at point in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// FovY returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	FovY() float32

	// ZNear returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	ZNear() float32

	// ZFar returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	ZFar() float32

	// ViewProjectionMatrix computes the combined view-projection matrix in WebGPU clip space.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetEye moves the camera to a new world-space position.
	//
	// Parameters:
	//   - eye: the new eye position
	SetEye(eye mgl32.Vec3)

	// SetTarget changes the look-at point.
	//
	// Parameters:
	//   - target: the new target position
	SetTarget(target mgl32.Vec3)

	// SetAspect sets the aspect ratio (width / height).
	// A non-positive aspect is rejected and leaves the camera unchanged.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	//
	// Returns:
	//   - error: ErrInvalidAspect if aspect <= 0
	SetAspect(aspect float32) error

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Without options the camera sits at (0, 1, 2) looking at the
// origin with +Y up, a 45 degree vertical field of view, aspect 1 and clip planes [0.1, 100].
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: an error if the resulting configuration violates the camera invariants
func NewCamera(options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		eye:         mgl32.Vec3{0, 1, 2},
		target:      mgl32.Vec3{0, 0, 0},
		up:          mgl32.Vec3{0, 1, 0},
		aspect:      1.0,
		fovyDegrees: 45.0,
		znear:       0.1,
		zfar:        100.0,
	}
	for _, option := range options {
		option(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.bindGroupProvider == nil {
		c.bindGroupProvider = bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Add(1)-1, 10),
		)
	}
	return c, nil
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) FovY() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovyDegrees
}

func (c *cameraImpl) ZNear() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.znear
}

func (c *cameraImpl) ZFar() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zfar
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.BuildViewProjection(c.eye, c.target, c.up, c.fovyDegrees, c.aspect, c.znear, c.zfar)
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) SetEye(eye mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye = eye
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

func (c *cameraImpl) SetAspect(aspect float32) error {
	if aspect <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAspect, aspect)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	return nil
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

// validate checks the perspective invariants. Caller must hold the mutex or own the camera exclusively.
func (c *cameraImpl) validate() error {
	if c.aspect <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAspect, c.aspect)
	}
	if c.znear <= 0 || c.znear >= c.zfar {
		return fmt.Errorf("%w: got znear=%v zfar=%v", ErrInvalidClipPlanes, c.znear, c.zfar)
	}
	if c.fovyDegrees <= 0 || c.fovyDegrees >= 180 {
		return fmt.Errorf("%w: got %v", ErrInvalidFov, c.fovyDegrees)
	}
	return nil
}
