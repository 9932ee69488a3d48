package renderer

import (
	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a configuration string onto a PresentMode. Unknown values select VSync.
func ParsePresentMode(s string) PresentMode {
	if s == "uncapped" {
		return PresentModeUncapped
	}
	return PresentModeVSync
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the set of GPU operations the Renderer drives.
// The Renderer owns ordering and validation; a backend only talks to the GPU API.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swap chain and recreates the depth attachment for the given size.
	//
	// Parameters:
	//   - width: the surface width in pixels, never zero
	//   - height: the surface height in pixels, never zero
	//
	// Returns:
	//   - error: an error if the depth or MSAA attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode applied on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader module, pipeline layout and render pipeline for p,
	// then attaches the result via p.SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline configuration
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data and stores the buffers on the provider.
	//
	// Parameters:
	//   - provider: the mesh provider; its IndexFormat selects the index width
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw index bytes
	//   - indexCount: the number of indices in indexData
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads per-instance vertex data and stores it as the provider's vertex buffer.
	//
	// Parameters:
	//   - provider: the instance provider
	//   - data: the marshalled instance data
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error

	// InitBindGroup creates the bind group layout, any missing uniform or storage buffers and the bind group.
	// Texture views and samplers must already be stored on the provider.
	//
	// Parameters:
	//   - provider: the provider to populate
	//   - descriptor: the layout descriptor for the group
	//
	// Returns:
	//   - error: an error if a resource is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView creates a texture sized to the staging data, writes the pixels once and stores the view.
	//
	// Parameters:
	//   - provider: the provider to store the view on
	//   - binding: the binding index of the texture entry
	//   - stagingData: the RGBA8 pixels and dimensions
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler stores the backend-owned sampler on the provider.
	//
	// Parameters:
	//   - provider: the provider to store the sampler on
	//   - binding: the binding index of the sampler entry
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int)

	// WriteBuffers enqueues the writes on the GPU queue.
	//
	// Parameters:
	//   - writes: the buffer writes to enqueue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swap-chain image and begins the render pass.
	//
	// Returns:
	//   - error: the raw acquisition error, classified by the Renderer
	BeginFrame() error

	// DrawCall encodes one instanced indexed draw in the open render pass.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - mesh: the provider holding the vertex and index buffers
	//   - instances: the provider holding the instance buffer
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: bind group providers, bound at slot i for bindGroups[i]
	DrawCall(p pipeline.Pipeline, mesh, instances bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the acquired image and releases it.
	Present()

	// Release releases every GPU object owned by the backend.
	Release()
}
