package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexLayouts sets the vertex buffer layouts in slot order.
//
// Parameters:
//   - layouts: one layout per vertex buffer slot
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex layouts for this pipeline
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexLayouts = layouts
	}
}

// WithBindGroupLayouts sets the bind group layout descriptors in group order.
//
// Parameters:
//   - layouts: one descriptor per @group, starting at group 0
//
// Returns:
//   - PipelineBuilderOption: a function that sets the bind group layouts for this pipeline
func WithBindGroupLayouts(layouts ...wgpu.BindGroupLayoutDescriptor) PipelineBuilderOption {
	return func(p *pipeline) {
		p.bindGroupLayouts = layouts
	}
}

// WithDepth sets the depth test and depth write state. Writing without testing is meaningless, so write is
// ignored when test is false.
//
// Parameters:
//   - test: whether fragments are depth tested
//   - write: whether passing fragments write depth
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth state for this pipeline
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = test && write
	}
}

// WithBlendEnabled toggles straight alpha blending on the color target.
//
// Parameters:
//   - enabled: whether the default alpha blend state is applied
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend enabled state for this pipeline
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithCullMode sets which faces are discarded.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithFrontFace sets the winding order treated as front facing.
//
// Parameters:
//   - frontFace: the winding order
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face winding order for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// ParseCullMode maps a configuration string onto a cull mode. Unknown values select back-face culling.
func ParseCullMode(s string) wgpu.CullMode {
	switch s {
	case "none":
		return wgpu.CullModeNone
	case "front":
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeBack
	}
}

// ParseFrontFace maps a configuration string onto a winding order. Unknown values select counter-clockwise.
func ParseFrontFace(s string) wgpu.FrontFace {
	if s == "cw" {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}
