package model

import (
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model during construction via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the model's name.
//
// Parameters:
//   - name: the name to assign to the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithVertices is an option builder that sets the model's vertex list.
//
// Parameters:
//   - vertices: the vertices
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertices option to a model
func WithVertices(vertices []GPUVertex) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the model's triangle list indices.
//
// Parameters:
//   - indices: the indices, three per triangle
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint16) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
	}
}

// WithMeshProvider is an option builder that sets the provider receiving the GPU vertex and index buffers.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
