package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertex is the per-vertex data consumed by the vertex stage.
// Matches the WGSL vertex input below.
//
//	struct VertexInput {
//	    @location(0) position: vec3<f32>,
//	    @location(1) tex_coords: vec2<f32>,
//	};
//
// Size: 20 bytes.
type GPUVertex struct {
	Position  [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoords [2]float32 // offset 12: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (20)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.TexCoords[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TexCoords[1]))
	return buf
}

// VertexLayout describes the mesh vertex buffer bound at slot 0.
//
// Returns:
//   - wgpu.VertexBufferLayout: vertex step mode, 20 byte stride, position at @location(0) and UV at @location(1)
func VertexLayout() wgpu.VertexBufferLayout {
	var g GPUVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(g.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         uint64(unsafe.Offsetof(g.TexCoords)),
				ShaderLocation: 1,
			},
		},
	}
}
