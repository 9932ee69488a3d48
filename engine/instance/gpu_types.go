package instance

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// firstShaderLocation is the @location of the first model matrix column in the vertex shader.
// Locations 0..4 are reserved for per-vertex attributes.
const firstShaderLocation = 5

// GPUInstance is the per-instance vertex data consumed by the vertex stage.
// The model matrix is split into four vec4<f32> columns at @location(5) through @location(8).
// Size: 64 bytes.
type GPUInstance struct {
	Model [16]float32 // offset 0: model matrix, column-major
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	return buf
}

// VertexLayout describes the instance buffer to the pipeline: instance step mode, one 64 byte
// stride per instance and one Float32x4 attribute per matrix column.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout bound at vertex buffer slot 1
func VertexLayout() wgpu.VertexBufferLayout {
	var g GPUInstance
	const columnSize = 16
	attributes := make([]wgpu.VertexAttribute, 4)
	for i := range attributes {
		attributes[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * columnSize),
			ShaderLocation: uint32(firstShaderLocation + i),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(g.Size()),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attributes,
	}
}
