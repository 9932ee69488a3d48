// Package state holds the per-frame core of the scaffold: the camera, its controller, the instance grid and the GPU
// providers they feed. The event loop drives it with Input, Update, Render and Resize.
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/camera"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/instance"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/model"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineKey is the key the scene pipeline is registered under.
const PipelineKey = "scene"

// Renderer is the part of renderer.Renderer the frame core drives.
type Renderer interface {
	camera.BufferWriter

	Resize(width, height int) (bool, error)
	Reconfigure() error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int)
	BeginFrame() error
	DrawCall(pipelineKey string, mesh, instances bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame() error
	Present() error
}

var _ Renderer = renderer.Renderer(nil)

// state is the implementation of the State interface.
type state struct {
	mu *sync.Mutex

	r Renderer

	cam  camera.Camera
	ctrl camera.CameraController

	mdl              model.Model
	instances        []instance.Instance
	instanceProvider bind_group_provider.BindGroupProvider

	textureData     *common.TextureStagingData
	textureCache    texture.Cache
	textureKey      texture.Key
	textureProvider bind_group_provider.BindGroupProvider

	shader          shader.Shader
	pipelineOptions []pipeline.PipelineBuilderOption
	uniform         camera.GPUCameraUniform
}

// State is the frame core driven by the event loop.
//
// Each tick runs Update then Render in program order: the camera uniform write is enqueued before the draw that
// reads it. Render surfaces swap-chain failures unchanged; HandleFrameError applies the recovery policy.
type State interface {
	// Input forwards a key event to the camera controller.
	//
	// Parameters:
	//   - key: the key code
	//   - pressed: true on press, false on release
	//
	// Returns:
	//   - bool: true if the controller handled the key
	Input(key uint32, pressed bool) bool

	// Update runs one controller tick and enqueues the camera uniform write.
	Update()

	// Render acquires, records, submits and presents one frame with a single instanced draw.
	//
	// Returns:
	//   - error: a *renderer.SurfaceError from acquisition, or a recording error
	Render() error

	// Resize reconfigures the surface and the camera aspect. A zero width or height is skipped.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if reconfiguration failed
	Resize(width, height int) error

	// HandleFrameError applies the recovery policy to an error returned by Render.
	// A lost surface is reconfigured, outdated and timeout are logged, out of memory is fatal.
	//
	// Parameters:
	//   - err: the error returned by Render
	//
	// Returns:
	//   - error: nil when the loop may continue, otherwise an error wrapping renderer.ErrFatal or the original error
	HandleFrameError(err error) error

	// Camera returns the camera driven by this state.
	Camera() camera.Camera

	// Controller returns the camera controller.
	Controller() camera.CameraController

	// Instances returns the instance grid.
	Instances() []instance.Instance

	// Uniform returns the camera uniform written by the last Update.
	Uniform() camera.GPUCameraUniform

	// Textured reports whether a texture bind group is bound at slot 0.
	Textured() bool

	// BindGroups returns the bind groups in slot order: [texture, camera] when textured, otherwise [camera].
	BindGroups() []bind_group_provider.BindGroupProvider

	// Release releases the providers owned by this state.
	Release()
}

var _ State = &state{}

// NewState builds the frame core and uploads every GPU resource it needs: mesh, instance buffer, camera uniform,
// the optional texture and the scene pipeline.
//
// Parameters:
//   - r: the renderer to upload to and draw with
//   - options: a variadic list of StateBuilderOption functions
//
// Returns:
//   - State: the initialized state
//   - error: an error if a resource could not be created
func NewState(r Renderer, options ...StateBuilderOption) (State, error) {
	s := &state{
		mu: &sync.Mutex{},
		r:  r,
	}
	for _, opt := range options {
		opt(s)
	}

	if s.cam == nil {
		cam, err := camera.NewCamera()
		if err != nil {
			return nil, err
		}
		s.cam = cam
	}
	if s.ctrl == nil {
		s.ctrl = camera.NewCameraController()
	}
	if s.mdl == nil {
		s.mdl = model.NewPentagon()
	}
	if s.instances == nil {
		s.instances = instance.NewGrid()
	}
	if s.textureCache == nil {
		s.textureCache = texture.NewCache()
	}

	if err := s.initMesh(); err != nil {
		return nil, err
	}
	if err := s.initCamera(); err != nil {
		return nil, err
	}
	if s.textureData != nil {
		if err := s.initTexture(*s.textureData); err != nil {
			return nil, err
		}
	}
	if err := s.initPipeline(); err != nil {
		return nil, err
	}

	common.Logger().Info("state initialized",
		"instances", len(s.instances),
		"indices", s.mdl.IndexCount(),
		"textured", s.textureProvider != nil,
	)
	return s, nil
}

func (s *state) initMesh() error {
	if err := s.r.InitMeshBuffers(s.mdl.MeshProvider(), s.mdl.VertexData(), s.mdl.IndexData(), s.mdl.IndexCount()); err != nil {
		return fmt.Errorf("init mesh %q: %w", s.mdl.Name(), err)
	}

	s.instanceProvider = bind_group_provider.NewBindGroupProvider("instances")
	if err := s.r.InitInstanceBuffer(s.instanceProvider, instance.MarshalAll(s.instances)); err != nil {
		return fmt.Errorf("init instance buffer: %w", err)
	}
	return nil
}

func (s *state) initCamera() error {
	if err := s.r.InitBindGroup(s.cam.BindGroupProvider(), camera.UniformLayoutDescriptor()); err != nil {
		return fmt.Errorf("init camera bind group: %w", err)
	}
	s.uniform = camera.SyncUniform(s.cam, nil, s.cam.BindGroupProvider(), camera.UniformBinding, s.r)
	return nil
}

// initTexture resamples the texture to its power-of-two slot and binds a provider for it, sharing a cached provider
// when the same image was already uploaded.
func (s *state) initTexture(data common.TextureStagingData) error {
	staged, slot, err := texture.Prepare(data)
	if err != nil {
		return fmt.Errorf("%w: %w", renderer.ErrInvalidTexture, err)
	}
	key := texture.KeyFor(staged, slot)
	if p, ok := s.textureCache.Acquire(key); ok {
		s.textureKey, s.textureProvider = key, p
		return nil
	}

	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("texture_%dx%d", slot.Width(), slot.Height()))
	if err := s.r.InitTextureView(p, texture.TextureBinding, staged); err != nil {
		p.Release()
		return fmt.Errorf("init texture: %w", err)
	}
	s.r.InitSampler(p, texture.SamplerBinding)
	if err := s.r.InitBindGroup(p, texture.LayoutDescriptor()); err != nil {
		p.Release()
		return fmt.Errorf("init texture bind group: %w", err)
	}
	if err := s.textureCache.Store(key, p); err != nil {
		p.Release()
		return err
	}
	s.textureKey, s.textureProvider = key, p
	return nil
}

func (s *state) initPipeline() error {
	layouts := []wgpu.BindGroupLayoutDescriptor{camera.UniformLayoutDescriptor()}
	sh := s.shader
	if s.textureProvider != nil {
		layouts = []wgpu.BindGroupLayoutDescriptor{texture.LayoutDescriptor(), camera.UniformLayoutDescriptor()}
		if sh == nil {
			sh = shader.Textured()
		}
	} else if sh == nil {
		sh = shader.Untextured()
	}

	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexLayouts(model.VertexLayout(), instance.VertexLayout()),
		pipeline.WithBindGroupLayouts(layouts...),
		pipeline.WithCullMode(wgpu.CullModeBack),
	}, s.pipelineOptions...)
	return s.r.RegisterPipelines(pipeline.NewPipeline(PipelineKey, sh, opts...))
}

func (s *state) Input(key uint32, pressed bool) bool {
	return s.ctrl.ProcessKey(key, pressed)
}

func (s *state) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uniform = camera.SyncUniform(s.cam, s.ctrl, s.cam.BindGroupProvider(), camera.UniformBinding, s.r)
}

func (s *state) Render() error {
	if err := s.r.BeginFrame(); err != nil {
		return err
	}

	drawErr := s.r.DrawCall(PipelineKey, s.mdl.MeshProvider(), s.instanceProvider, uint32(len(s.instances)), s.BindGroups())
	if err := s.r.EndFrame(); err != nil {
		return errors.Join(drawErr, err)
	}
	if err := s.r.Present(); err != nil {
		return errors.Join(drawErr, err)
	}
	return drawErr
}

func (s *state) Resize(width, height int) error {
	if width == 0 || height == 0 {
		return nil
	}
	ok, err := s.r.Resize(width, height)
	if err != nil || !ok {
		return err
	}
	return s.cam.SetAspect(float32(width) / float32(height))
}

func (s *state) HandleFrameError(err error) error {
	if err == nil {
		return nil
	}

	var se *renderer.SurfaceError
	if !errors.As(err, &se) {
		return err
	}

	switch se.Kind {
	case renderer.SurfaceLost:
		if rerr := s.r.Reconfigure(); rerr != nil {
			return fmt.Errorf("%w: reconfigure after lost surface: %w", renderer.ErrFatal, rerr)
		}
		common.Logger().Debug("surface lost, reconfigured")
		return nil
	case renderer.SurfaceOutdated, renderer.SurfaceTimeout:
		common.Logger().Warn("frame skipped", "kind", se.Kind.String(), "error", se.Err)
		return nil
	case renderer.SurfaceOutOfMemory:
		return fmt.Errorf("%w: %w", renderer.ErrFatal, err)
	default:
		return err
	}
}

func (s *state) Camera() camera.Camera {
	return s.cam
}

func (s *state) Controller() camera.CameraController {
	return s.ctrl
}

func (s *state) Instances() []instance.Instance {
	return s.instances
}

func (s *state) Uniform() camera.GPUCameraUniform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uniform
}

func (s *state) Textured() bool {
	return s.textureProvider != nil
}

func (s *state) BindGroups() []bind_group_provider.BindGroupProvider {
	if s.textureProvider != nil {
		return []bind_group_provider.BindGroupProvider{s.textureProvider, s.cam.BindGroupProvider()}
	}
	return []bind_group_provider.BindGroupProvider{s.cam.BindGroupProvider()}
}

func (s *state) Release() {
	if s.textureProvider != nil {
		s.textureCache.Drop(s.textureKey)
		s.textureProvider = nil
	}
	s.instanceProvider.Release()
	s.mdl.MeshProvider().Release()
	s.cam.BindGroupProvider().Release()
}
