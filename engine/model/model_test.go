package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPentagon(t *testing.T) {
	m := NewPentagon()

	assert.Equal(t, "pentagon", m.Name())
	assert.Len(t, m.Vertices(), 5)
	assert.Equal(t, 9, m.IndexCount())
	assert.Len(t, m.VertexData(), 5*20)
	assert.Len(t, m.IndexData(), 9*2)

	require.NotNil(t, m.MeshProvider())
	assert.Equal(t, "pentagon_mesh", m.MeshProvider().Label())
	assert.Equal(t, wgpu.IndexFormatUint16, m.MeshProvider().IndexFormat())

	for _, idx := range m.Indices() {
		assert.Less(t, int(idx), len(m.Vertices()))
	}
}

func TestVertexData_Encoding(t *testing.T) {
	m := NewModel(WithVertices([]GPUVertex{
		{Position: [3]float32{1, 2, 3}, TexCoords: [2]float32{0.25, 0.75}},
	}), WithIndices([]uint16{0, 258}))

	data := m.VertexData()
	require.Len(t, data, 20)
	for i, want := range []float32{1, 2, 3, 0.25, 0.75} {
		assert.Equal(t, want, math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
	}

	idx := m.IndexData()
	assert.Equal(t, []byte{0, 0, 2, 1}, idx)
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()

	assert.Equal(t, uint64(20), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[1].Format)
}

func TestEmptyModel(t *testing.T) {
	m := NewModel()
	assert.Nil(t, m.VertexData())
	assert.Nil(t, m.IndexData())
	assert.Zero(t, m.IndexCount())
	assert.Equal(t, "model_mesh", m.MeshProvider().Label())
}
