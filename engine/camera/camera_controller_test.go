package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera(t *testing.T, eye mgl32.Vec3) Camera {
	t.Helper()
	cam, err := NewCamera(WithEye(eye))
	require.NoError(t, err)
	return cam
}

func distance(cam Camera) float32 {
	return cam.Target().Sub(cam.Eye()).Len()
}

func TestProcessKey_DefaultBindings(t *testing.T) {
	tests := []struct {
		key  uint32
		want Button
	}{
		{common.KeySpace, ButtonUp},
		{common.KeyLeftShift, ButtonDown},
		{common.KeyW, ButtonForward},
		{common.KeyUp, ButtonForward},
		{common.KeyS, ButtonBackward},
		{common.KeyDown, ButtonBackward},
		{common.KeyA, ButtonLeft},
		{common.KeyLeft, ButtonLeft},
		{common.KeyD, ButtonRight},
		{common.KeyRight, ButtonRight},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			ctrl := NewCameraController()
			assert.True(t, ctrl.ProcessKey(tt.key, true))
			assert.True(t, ctrl.Pressed(tt.want))

			assert.True(t, ctrl.ProcessKey(tt.key, false))
			assert.False(t, ctrl.Pressed(tt.want))
		})
	}
}

func TestProcessKey_UnboundKeyNotHandled(t *testing.T) {
	ctrl := NewCameraController()
	assert.False(t, ctrl.ProcessKey(common.KeyEsc, true))
	for b := ButtonUp; b < buttonCount; b++ {
		assert.False(t, ctrl.Pressed(b), b.String())
	}
}

func TestProcessKey_CustomBinding(t *testing.T) {
	ctrl := NewCameraController(WithKeyBindings(map[uint32]Button{common.KeyEsc: ButtonBackward}))
	assert.False(t, ctrl.ProcessKey(common.KeyS, true))
	assert.True(t, ctrl.ProcessKey(common.KeyEsc, true))
	assert.True(t, ctrl.Pressed(ButtonBackward))
}

func TestReset_ReleasesAllButtons(t *testing.T) {
	ctrl := NewCameraController()
	ctrl.ProcessKey(common.KeyW, true)
	ctrl.ProcessKey(common.KeyD, true)
	ctrl.Reset()
	assert.False(t, ctrl.Pressed(ButtonForward))
	assert.False(t, ctrl.Pressed(ButtonRight))
}

func TestUpdateCamera_ForwardOvershootGuard(t *testing.T) {
	cam := newTestCamera(t, mgl32.Vec3{0, 0, 0.1})
	ctrl := NewCameraController(WithSpeed(0.2))
	ctrl.ProcessKey(common.KeyW, true)

	for range 3 {
		ctrl.UpdateCamera(cam)
		assert.Equal(t, mgl32.Vec3{0, 0, 0.1}, cam.Eye())
	}
}

func TestUpdateCamera_BackwardHasNoGuard(t *testing.T) {
	cam := newTestCamera(t, mgl32.Vec3{0, 0, 0.1})
	ctrl := NewCameraController(WithSpeed(0.2))
	ctrl.ProcessKey(common.KeyS, true)

	ctrl.UpdateCamera(cam)

	eye := cam.Eye()
	assert.InDelta(t, 0.3, eye.Z(), 1e-6)
	assert.Zero(t, eye.X())
	assert.Zero(t, eye.Y())
}

func TestUpdateCamera_ForwardHeldApproachesWithoutCrossing(t *testing.T) {
	cam, err := NewCamera()
	require.NoError(t, err)
	ctrl := NewCameraController()
	ctrl.ProcessKey(common.KeyW, true)

	speed := ctrl.Speed()
	initial := distance(cam)
	n := 10
	require.Less(t, float32(n)*speed, initial)

	prev := initial
	for i := range n {
		ctrl.UpdateCamera(cam)
		d := distance(cam)
		assert.Less(t, d, prev, "tick %d", i)
		assert.GreaterOrEqual(t, d, speed, "tick %d", i)
		assert.InDelta(t, prev-speed, d, 1e-5, "tick %d", i)
		prev = d
	}

	// keep holding: the eye stops once it is within one step of the target
	for range 10 {
		ctrl.UpdateCamera(cam)
	}
	final := distance(cam)
	assert.Greater(t, final, float32(0))
	assert.LessOrEqual(t, final, speed)

	ctrl.UpdateCamera(cam)
	assert.Equal(t, final, distance(cam))
}

func TestUpdateCamera_OrbitKeepsRadius(t *testing.T) {
	for _, key := range []uint32{common.KeyD, common.KeyA} {
		cam, err := NewCamera()
		require.NoError(t, err)
		ctrl := NewCameraController()
		ctrl.ProcessKey(key, true)

		start := cam.Eye()
		radius := distance(cam)
		ctrl.UpdateCamera(cam)

		assert.NotEqual(t, start, cam.Eye())
		assert.InDelta(t, radius, distance(cam), 1e-5)
	}
}

func TestUpdateCamera_RightAndLeftAreMirrored(t *testing.T) {
	right, err := NewCamera()
	require.NoError(t, err)
	left, err := NewCamera()
	require.NoError(t, err)

	rc := NewCameraController()
	rc.ProcessKey(common.KeyD, true)
	lc := NewCameraController()
	lc.ProcessKey(common.KeyA, true)

	rc.UpdateCamera(right)
	lc.UpdateCamera(left)

	assert.Less(t, right.Eye().X(), float32(0))
	assert.Greater(t, left.Eye().X(), float32(0))
	assert.InDelta(t, -right.Eye().X(), left.Eye().X(), 1e-6)
	assert.InDelta(t, right.Eye().Z(), left.Eye().Z(), 1e-6)
}

func TestUpdateCamera_UpDownAreNotConsumed(t *testing.T) {
	cam, err := NewCamera()
	require.NoError(t, err)
	ctrl := NewCameraController()
	ctrl.ProcessKey(common.KeySpace, true)
	ctrl.ProcessKey(common.KeyLeftShift, true)

	start := cam.Eye()
	ctrl.UpdateCamera(cam)

	assert.True(t, ctrl.Pressed(ButtonUp))
	assert.True(t, ctrl.Pressed(ButtonDown))
	assert.Equal(t, start, cam.Eye())
}

func TestUpdateCamera_EyeOnTargetIsNoOp(t *testing.T) {
	cam := newTestCamera(t, mgl32.Vec3{0, 0, 0})
	ctrl := NewCameraController()
	ctrl.ProcessKey(common.KeyS, true)
	ctrl.ProcessKey(common.KeyD, true)

	ctrl.UpdateCamera(cam)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Eye())
}
