package model

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	vertices     []GPUVertex
	indices      []uint16
	meshProvider bind_group_provider.BindGroupProvider
}

// Model defines the interface for an indexed triangle mesh.
// The CPU-side vertices and indices are kept for upload; the mesh provider receives the GPU
// vertex and index buffers once the Renderer initializes them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices retrieves the CPU-side vertex list.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices retrieves the triangle list indices.
	//
	// Returns:
	//   - []uint16: the indices
	Indices() []uint16

	// VertexData serializes every vertex back to back for the vertex buffer.
	//
	// Returns:
	//   - []byte: the vertex buffer contents
	VertexData() []byte

	// IndexData serializes the indices as little-endian uint16 values.
	//
	// Returns:
	//   - []byte: the index buffer contents
	IndexData() []byte

	// IndexCount returns the number of indices drawn by one DrawIndexed call.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// MeshProvider returns the provider that owns the GPU vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

var _ Model = &model{}

// NewModel creates a new Model. When no mesh provider is supplied one is created with a
// Uint16 index format labelled after the model name.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{name: "model"}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(
			m.name+"_mesh",
			bind_group_provider.WithIndexFormat(wgpu.IndexFormatUint16),
		)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint16 {
	return m.indices
}

func (m *model) VertexData() []byte {
	if len(m.vertices) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(m.vertices)*m.vertices[0].Size())
	for i := range m.vertices {
		buf = append(buf, m.vertices[i].Marshal()...)
	}
	return buf
}

func (m *model) IndexData() []byte {
	if len(m.indices) == 0 {
		return nil
	}
	buf := make([]byte, len(m.indices)*2)
	for i, idx := range m.indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}
