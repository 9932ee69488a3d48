package pipeline

import (
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// One struct describes every render pipeline; the builder options toggle the recognized settings
// and the renderer backend consumes it once to create the GPU object.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	shader shader.Shader

	// vertexLayouts are bound in slice order: slot 0 per-vertex data, slot 1 per-instance data.
	vertexLayouts []wgpu.VertexBufferLayout
	// bindGroupLayouts are indexed by @group number and must mirror the shader's declarations.
	bindGroupLayouts []wgpu.BindGroupLayoutDescriptor

	// renderPipeline is populated by the renderer backend on registration.
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the configuration of a render pipeline: the shader, the vertex buffer layouts,
// the bind group layouts and the fixed-function state. The GPU pipeline object is attached after
// the renderer registers it.
type Pipeline interface {
	// PipelineKey returns the unique key of the pipeline
	//
	// Returns:
	//   - string: the unique key of the pipeline
	PipelineKey() string

	// Shader returns the WGSL shader providing the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// VertexLayouts returns the vertex buffer layouts in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayouts returns the bind group layout descriptors in group order.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor

	// RenderPipeline returns the GPU render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether fragments are depth tested with a less-than compare.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for the pipeline.
	DepthWriteEnabled() bool

	// BlendEnabled returns whether BlendState is applied to the color target.
	BlendEnabled() bool

	// CullMode returns the cull mode for the pipeline.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology for the pipeline.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order for the pipeline.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask for the pipeline.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state for the pipeline.
	BlendState() *wgpu.BlendState

	// SetRenderPipeline attaches the GPU pipeline created by the renderer backend.
	//
	// Parameters:
	//   - p: the created render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the GPU pipeline if one is attached.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline configuration.
// Defaults: depth test and write on, no blending, no culling, counter-clockwise front faces. Topology is always an
// indexed triangle list.
//
// Parameters:
//   - pipelineKey: the unique identifier for this pipeline
//   - s: the shader providing the vertex and fragment entry points
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new instance of Pipeline configured with the provided options
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return p.bindGroupLayouts
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
