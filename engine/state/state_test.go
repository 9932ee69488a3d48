package state

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/camera"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/instance"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records the calls the frame core makes.
type fakeRenderer struct {
	calls       []string
	writes      []bind_group_provider.BufferWrite
	pipelines   []pipeline.Pipeline
	layouts     []wgpu.BindGroupLayoutDescriptor
	textures    []common.TextureStagingData
	instanceLen int
	drawCount   uint32
	drawGroups  []bind_group_provider.BindGroupProvider
	size        [2]int

	beginErr       error
	drawErr        error
	reconfigureErr error
}

var _ Renderer = &fakeRenderer{}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.calls = append(f.calls, "write")
	f.writes = append(f.writes, writes...)
}

func (f *fakeRenderer) Resize(width, height int) (bool, error) {
	f.calls = append(f.calls, "resize")
	if f.size == [2]int{width, height} {
		return false, nil
	}
	f.size = [2]int{width, height}
	return true, nil
}

func (f *fakeRenderer) Reconfigure() error {
	f.calls = append(f.calls, "reconfigure")
	return f.reconfigureErr
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	f.calls = append(f.calls, "register")
	f.pipelines = append(f.pipelines, pipelines...)
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.calls = append(f.calls, "mesh")
	return nil
}

func (f *fakeRenderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error {
	f.calls = append(f.calls, "instances")
	f.instanceLen = len(data)
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	f.calls = append(f.calls, "bindgroup")
	f.layouts = append(f.layouts, descriptor)
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	f.calls = append(f.calls, "texture")
	f.textures = append(f.textures, stagingData)
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int) {
	f.calls = append(f.calls, "sampler")
}

func (f *fakeRenderer) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return f.beginErr
}

func (f *fakeRenderer) DrawCall(pipelineKey string, mesh, instances bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.calls = append(f.calls, "draw")
	f.drawCount = instanceCount
	f.drawGroups = bindGroups
	return f.drawErr
}

func (f *fakeRenderer) EndFrame() error {
	f.calls = append(f.calls, "end")
	return nil
}

func (f *fakeRenderer) Present() error {
	f.calls = append(f.calls, "present")
	return nil
}

func (f *fakeRenderer) reset() {
	f.calls = nil
	f.writes = nil
}

func solidTexture(w, h uint32) common.TextureStagingData {
	pixels := make([]byte, w*h*4)
	for i := range pixels {
		pixels[i] = 200
	}
	return common.TextureStagingData{Width: w, Height: h, Pixels: pixels}
}

func solidColor(w, h uint32, r, g, b byte) common.TextureStagingData {
	pixels := make([]byte, w*h*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = r, g, b, 255
	}
	return common.TextureStagingData{Width: w, Height: h, Pixels: pixels}
}

func TestNewState_UntexturedInit(t *testing.T) {
	f := &fakeRenderer{}
	s, err := NewState(f)
	require.NoError(t, err)
	defer s.Release()

	assert.Equal(t, []string{"mesh", "instances", "bindgroup", "write", "register"}, f.calls)
	assert.Len(t, s.Instances(), 100)
	assert.Equal(t, 100*64, f.instanceLen)
	assert.False(t, s.Textured())

	require.Len(t, f.pipelines, 1)
	p := f.pipelines[0]
	assert.Equal(t, PipelineKey, p.PipelineKey())
	assert.Len(t, p.VertexLayouts(), 2)
	assert.Len(t, p.BindGroupLayouts(), 1)

	groups := s.BindGroups()
	require.Len(t, groups, 1)
	assert.Same(t, s.Camera().BindGroupProvider(), groups[0])
}

func TestNewState_PipelineOptionsOverrideDefaults(t *testing.T) {
	f := &fakeRenderer{}
	_, err := NewState(f, WithPipelineOptions(
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithFrontFace(wgpu.FrontFaceCW),
	))
	require.NoError(t, err)

	require.Len(t, f.pipelines, 1)
	p := f.pipelines[0]
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Len(t, p.VertexLayouts(), 2)
}

func TestNewState_TexturedBindsTextureFirst(t *testing.T) {
	f := &fakeRenderer{}
	s, err := NewState(f, WithTexture(solidTexture(300, 100)))
	require.NoError(t, err)
	defer s.Release()

	assert.True(t, s.Textured())
	require.Len(t, f.textures, 1)
	assert.Equal(t, uint32(256), f.textures[0].Width)
	assert.Equal(t, uint32(64), f.textures[0].Height)

	require.Len(t, f.pipelines, 1)
	assert.Len(t, f.pipelines[0].BindGroupLayouts(), 2)

	groups := s.BindGroups()
	require.Len(t, groups, 2)
	assert.NotSame(t, s.Camera().BindGroupProvider(), groups[0])
	assert.Same(t, s.Camera().BindGroupProvider(), groups[1])
}

func TestNewState_SharedTextureCacheSeparatesImages(t *testing.T) {
	cache := texture.NewCache()
	f := &fakeRenderer{}

	red, err := NewState(f, WithTexture(solidColor(256, 256, 255, 0, 0)), WithTextureCache(cache))
	require.NoError(t, err)
	blue, err := NewState(f, WithTexture(solidColor(256, 256, 0, 0, 255)), WithTextureCache(cache))
	require.NoError(t, err)

	assert.Len(t, f.textures, 2)
	assert.Equal(t, 2, cache.Len())
	assert.NotSame(t, red.BindGroups()[0], blue.BindGroups()[0])
}

func TestNewState_SharedTextureCacheReusesIdenticalImage(t *testing.T) {
	cache := texture.NewCache()
	f := &fakeRenderer{}

	first, err := NewState(f, WithTexture(solidTexture(100, 100)), WithTextureCache(cache))
	require.NoError(t, err)
	second, err := NewState(f, WithTexture(solidTexture(100, 100)), WithTextureCache(cache))
	require.NoError(t, err)

	assert.Len(t, f.textures, 1)
	assert.Same(t, first.BindGroups()[0], second.BindGroups()[0])

	first.Release()
	assert.Equal(t, 1, cache.Len(), "the second state still holds the texture")
	second.Release()
	assert.Zero(t, cache.Len())
}

func TestNewState_InvalidTextureIsRejected(t *testing.T) {
	f := &fakeRenderer{}
	_, err := NewState(f, WithTexture(common.TextureStagingData{Pixels: make([]byte, 16), Width: 300, Height: 300}))

	assert.ErrorIs(t, err, renderer.ErrInvalidTexture)
	assert.ErrorIs(t, err, texture.ErrInvalidStagingData)
	assert.Empty(t, f.textures)
}

func TestUpdate_WritesExactlyOneUniform(t *testing.T) {
	f := &fakeRenderer{}
	s, err := NewState(f)
	require.NoError(t, err)
	f.reset()

	s.Update()
	require.Len(t, f.writes, 1)
	w := f.writes[0]
	assert.Same(t, s.Camera().BindGroupProvider(), w.Provider)
	assert.Equal(t, camera.UniformBinding, w.Binding)
	assert.Equal(t, uint64(0), w.Offset)
	assert.Len(t, w.Data, 64)

	u := s.Uniform()
	assert.Equal(t, u.Marshal(), w.Data)
}

func TestInput_DrivesCameraOnUpdate(t *testing.T) {
	f := &fakeRenderer{}
	s, err := NewState(f)
	require.NoError(t, err)
	before := s.Camera().Eye()

	assert.True(t, s.Input(common.KeyS, true))
	assert.False(t, s.Input(common.KeyEsc, true))
	s.Update()

	assert.Greater(t, s.Camera().Eye().Sub(s.Camera().Target()).Len(), before.Sub(s.Camera().Target()).Len())
}

func TestRender_ProgramOrder(t *testing.T) {
	f := &fakeRenderer{}
	s, err := NewState(f, WithInstances(instance.NewGrid(instance.WithRows(2), instance.WithColumns(3))))
	require.NoError(t, err)
	f.reset()

	s.Update()
	require.NoError(t, s.Render())
	assert.Equal(t, []string{"write", "begin", "draw", "end", "present"}, f.calls)
	assert.Equal(t, uint32(6), f.drawCount)
}

func TestRender_BeginErrorSkipsFrame(t *testing.T) {
	f := &fakeRenderer{beginErr: &renderer.SurfaceError{Kind: renderer.SurfaceTimeout, Err: errors.New("timeout")}}
	s, err := NewState(f)
	require.NoError(t, err)
	f.reset()

	err = s.Render()
	var se *renderer.SurfaceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, renderer.SurfaceTimeout, se.Kind)
	assert.Equal(t, []string{"begin"}, f.calls)
}

func TestRender_DrawErrorStillSubmits(t *testing.T) {
	drawErr := errors.New("draw failed")
	f := &fakeRenderer{drawErr: drawErr}
	s, err := NewState(f)
	require.NoError(t, err)
	f.reset()

	assert.ErrorIs(t, s.Render(), drawErr)
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, f.calls)
}

func TestHandleFrameError(t *testing.T) {
	plain := errors.New("boom")
	tests := []struct {
		name        string
		err         error
		wantNil     bool
		wantFatal   bool
		reconfigure bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "lost", err: &renderer.SurfaceError{Kind: renderer.SurfaceLost}, wantNil: true, reconfigure: true},
		{name: "outdated", err: &renderer.SurfaceError{Kind: renderer.SurfaceOutdated}, wantNil: true},
		{name: "timeout", err: &renderer.SurfaceError{Kind: renderer.SurfaceTimeout}, wantNil: true},
		{name: "out of memory", err: &renderer.SurfaceError{Kind: renderer.SurfaceOutOfMemory}, wantFatal: true},
		{name: "unknown surface", err: &renderer.SurfaceError{Kind: renderer.SurfaceUnknown, Err: plain}},
		{name: "plain", err: plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRenderer{}
			s, err := NewState(f)
			require.NoError(t, err)
			f.reset()

			got := s.HandleFrameError(tt.err)
			switch {
			case tt.wantNil:
				assert.NoError(t, got)
			case tt.wantFatal:
				assert.ErrorIs(t, got, renderer.ErrFatal)
			default:
				assert.Equal(t, tt.err, got)
			}
			assert.Equal(t, tt.reconfigure, len(f.calls) == 1 && f.calls[0] == "reconfigure")
		})
	}
}

func TestHandleFrameError_ReconfigureFailureIsFatal(t *testing.T) {
	f := &fakeRenderer{reconfigureErr: errors.New("no adapter")}
	s, err := NewState(f)
	require.NoError(t, err)

	got := s.HandleFrameError(&renderer.SurfaceError{Kind: renderer.SurfaceLost})
	assert.ErrorIs(t, got, renderer.ErrFatal)
}

func TestResize(t *testing.T) {
	f := &fakeRenderer{}
	cam, err := camera.NewCamera(camera.WithEye(mgl32.Vec3{0, 1, 2}))
	require.NoError(t, err)
	s, err := NewState(f, WithCamera(cam))
	require.NoError(t, err)
	f.reset()

	require.NoError(t, s.Resize(0, 600))
	require.NoError(t, s.Resize(800, 0))
	assert.Empty(t, f.calls)

	require.NoError(t, s.Resize(1000, 500))
	assert.Equal(t, []string{"resize"}, f.calls)
	assert.InDelta(t, 2.0, s.Camera().Aspect(), 1e-6)
}
