package camera

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamera_Defaults(t *testing.T) {
	cam, err := NewCamera()
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0, 1, 2}, cam.Eye())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up())
	assert.Equal(t, float32(1), cam.Aspect())
	assert.Equal(t, float32(45), cam.FovY())
	assert.Equal(t, float32(0.1), cam.ZNear())
	assert.Equal(t, float32(100), cam.ZFar())
	assert.NotNil(t, cam.BindGroupProvider())
}

func TestNewCamera_Validation(t *testing.T) {
	tests := []struct {
		name    string
		options []CameraBuilderOption
		want    error
	}{
		{"zero aspect", []CameraBuilderOption{WithAspect(0)}, ErrInvalidAspect},
		{"negative aspect", []CameraBuilderOption{WithAspect(-1)}, ErrInvalidAspect},
		{"near equals far", []CameraBuilderOption{WithClipPlanes(1, 1)}, ErrInvalidClipPlanes},
		{"near beyond far", []CameraBuilderOption{WithClipPlanes(10, 1)}, ErrInvalidClipPlanes},
		{"zero near", []CameraBuilderOption{WithClipPlanes(0, 1)}, ErrInvalidClipPlanes},
		{"zero fov", []CameraBuilderOption{WithFovY(0)}, ErrInvalidFov},
		{"straight fov", []CameraBuilderOption{WithFovY(180)}, ErrInvalidFov},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam, err := NewCamera(tt.options...)
			assert.Nil(t, cam)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSetAspect_RejectsNonPositive(t *testing.T) {
	cam, err := NewCamera(WithAspect(1.5))
	require.NoError(t, err)

	err = cam.SetAspect(0)
	assert.ErrorIs(t, err, ErrInvalidAspect)
	assert.Equal(t, float32(1.5), cam.Aspect())

	require.NoError(t, cam.SetAspect(640.0/480.0))
	assert.InDelta(t, 4.0/3.0, cam.Aspect(), 1e-6)
}

func TestViewProjectionMatrix_MatchesCommonMath(t *testing.T) {
	cam, err := NewCamera(
		WithEye(mgl32.Vec3{3, 4, 5}),
		WithTarget(mgl32.Vec3{1, 0, 0}),
		WithFovY(60),
		WithAspect(16.0/9.0),
		WithClipPlanes(0.5, 50),
	)
	require.NoError(t, err)

	want := common.BuildViewProjection(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, 60, 16.0/9.0, 0.5, 50)
	assert.Equal(t, want, cam.ViewProjectionMatrix())
}

func TestGPUCameraUniform_Layout(t *testing.T) {
	var u GPUCameraUniform
	assert.Equal(t, 64, u.Size())

	desc := UniformLayoutDescriptor()
	require.Len(t, desc.Entries, 1)
	assert.Equal(t, uint32(UniformBinding), desc.Entries[0].Binding)
	assert.Equal(t, uint64(64), desc.Entries[0].Buffer.MinBindingSize)
}
