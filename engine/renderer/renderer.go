package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameState is the position of the renderer inside a single frame.
type FrameState int

const (
	// FrameIdle means no frame is in flight.
	FrameIdle FrameState = iota
	// FrameAcquiring means the next swap-chain image is being requested.
	FrameAcquiring
	// FrameRecording means the render pass is open and draw calls may be encoded.
	FrameRecording
	// FrameSubmitted means the command buffer was submitted and the image awaits presentation.
	FrameSubmitted
)

func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "idle"
	case FrameAcquiring:
		return "acquiring"
	case FrameRecording:
		return "recording"
	case FrameSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("FrameState(%d)", int(s))
	}
}

// SurfaceTarget is the platform window the renderer presents into.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width  int
	height int
	state  FrameState

	// Pre-creation config collected from builder options
	config backendConfig
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the frame state machine (Idle, Acquiring, Recording, Submitted), the pipeline cache and the
// last known surface size. GPU work is delegated to a RendererBackend. Swap-chain acquisition failures are returned
// as *SurfaceError and are never retried here.
type Renderer interface {
	// Resize reconfigures the surface and depth attachment for a new size.
	// A zero width or height is a minimized window: nothing is reconfigured and false is returned.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	//   - error: an error if reconfiguration failed
	Resize(width, height int) (bool, error)

	// Size returns the last surface size that was applied.
	//
	// Returns:
	//   - int: the width in pixels
	//   - int: the height in pixels
	Size() (int, int)

	// Reconfigure recreates the swap chain with the last known size, used after a lost surface.
	//
	// Returns:
	//   - error: an error if reconfiguration failed
	Reconfigure() error

	// SetPresentMode sets the present mode. It takes effect on the next Resize or Reconfigure.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Pipeline returns the registered pipeline for key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates GPU pipelines for each configuration and caches them by PipelineKey.
	// Keys that are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data onto the mesh provider.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads marshalled instance data onto the instance provider.
	//
	// Parameters:
	//   - provider: the instance provider
	//   - data: the marshalled instances
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error

	// InitBindGroup creates the bind group described by descriptor on the provider.
	//
	// Parameters:
	//   - provider: the provider to populate
	//   - descriptor: the bind group layout descriptor
	//
	// Returns:
	//   - error: an error if creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView creates a texture matching the staging data and writes its pixels exactly once.
	//
	// Parameters:
	//   - provider: the provider to store the view on
	//   - binding: the texture binding index
	//   - stagingData: RGBA8 pixels with width and height
	//
	// Returns:
	//   - error: ErrInvalidTexture if the pixel count does not match, or a creation error
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler stores the renderer-owned sampler on the provider.
	//
	// Parameters:
	//   - provider: the provider to store the sampler on
	//   - binding: the sampler binding index
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int)

	// WriteBuffers enqueues buffer writes on the GPU queue.
	//
	// Parameters:
	//   - writes: the writes to enqueue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swap-chain image and begins the render pass with color and depth clears.
	//
	// Returns:
	//   - error: ErrFrameState if a frame is in flight, or a *SurfaceError if acquisition failed
	BeginFrame() error

	// DrawCall encodes one indexed draw covering the full index range and instanceCount instances.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline key
	//   - mesh: the provider holding vertex and index buffers
	//   - instances: the provider holding the instance buffer
	//   - instanceCount: the number of instances
	//   - bindGroups: bind group providers bound at slots 0..n-1
	//
	// Returns:
	//   - error: ErrFrameState, ErrPipelineNotFound or a missing-buffer error
	DrawCall(pipelineKey string, mesh, instances bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the command buffer without waiting on the GPU.
	//
	// Returns:
	//   - error: ErrFrameState or a submission error
	EndFrame() error

	// Present hands the image back to the presentation engine and returns to Idle.
	//
	// Returns:
	//   - error: ErrFrameState if no frame was submitted
	Present() error

	// FrameState returns the current frame state.
	FrameState() FrameState

	// Release releases the registered pipelines and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the target window and configures the surface at the window's size.
// Adapter or device negotiation failure is returned as an error.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - target: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the backend could not be created
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(nil)
	r.backendType = backendType

	// Options are applied before the adapter request so flags like forceFallbackAdapter apply.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(target.SurfaceDescriptor(), r.config)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFatal, err)
		}
		r.backend = b
	}

	if _, err := r.Resize(target.Width(), target.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

// newRenderer wraps an existing backend with default configuration.
func newRenderer(backend RendererBackend) *renderer {
	return &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backend:       backend,
		state:         FrameIdle,
		config: backendConfig{
			sampleCount: MSAAOff,
			presentMode: PresentModeVSync,
			clearColor:  wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		},
	}
}

func (r *renderer) Resize(width, height int) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return false, fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return true, nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Reconfigure() error {
	w, h := r.Size()
	if _, err := r.Resize(w, h); err != nil {
		return err
	}
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error {
	return r.backend.InitInstanceBuffer(provider, data)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	if !stagingData.Valid() {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidTexture, stagingData.Width, stagingData.Height, len(stagingData.Pixels))
	}
	return r.backend.InitTextureView(provider, binding, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int) {
	r.backend.InitSampler(provider, binding)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != FrameIdle {
		return fmt.Errorf("%w: BeginFrame while %s", ErrFrameState, r.state)
	}
	r.state = FrameAcquiring
	if err := r.backend.BeginFrame(); err != nil {
		r.state = FrameIdle
		return classifySurfaceError(err)
	}
	r.state = FrameRecording
	return nil
}

func (r *renderer) DrawCall(pipelineKey string, mesh, instances bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != FrameRecording {
		return fmt.Errorf("%w: DrawCall while %s", ErrFrameState, r.state)
	}
	p, exists := r.pipelineCache[pipelineKey]
	if !exists {
		return fmt.Errorf("%w: %q", ErrPipelineNotFound, pipelineKey)
	}
	if mesh == nil || mesh.VertexBuffer() == nil || mesh.IndexBuffer() == nil {
		return fmt.Errorf("draw %q: mesh buffers not initialized", pipelineKey)
	}
	if instances == nil || instances.VertexBuffer() == nil {
		return fmt.Errorf("draw %q: instance buffer not initialized", pipelineKey)
	}

	r.backend.DrawCall(p, mesh, instances, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != FrameRecording {
		return fmt.Errorf("%w: EndFrame while %s", ErrFrameState, r.state)
	}
	if err := r.backend.EndFrame(); err != nil {
		r.state = FrameIdle
		return err
	}
	r.state = FrameSubmitted
	return nil
}

func (r *renderer) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != FrameSubmitted {
		return fmt.Errorf("%w: Present while %s", ErrFrameState, r.state)
	}
	r.backend.Present()
	r.state = FrameIdle
	return nil
}

func (r *renderer) FrameState() FrameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
