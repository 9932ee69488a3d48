package camera

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// UniformBinding is the binding index of the camera uniform buffer inside the camera bind group.
const UniformBinding = 0

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL struct below byte for byte.
//
//	struct CameraUniform {
//	    view_proj: mat4x4<f32>,
//	};
//
// Size: 64 bytes.
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix (mat4x4<f32>), column-major
}

// NewGPUCameraUniform snapshots the camera's current view-projection matrix.
//
// Parameters:
//   - cam: the camera to read
//
// Returns:
//   - GPUCameraUniform: the uniform ready for Marshal
func NewGPUCameraUniform(cam Camera) GPUCameraUniform {
	return GPUCameraUniform{ViewProj: cam.ViewProjectionMatrix()}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}

// UniformLayoutDescriptor describes the camera bind group: one vertex-visible uniform buffer
// at UniformBinding sized for a GPUCameraUniform.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor for the camera bind group
func UniformLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	var u GPUCameraUniform
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    UniformBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(u.Size()),
				},
			},
		},
	}
}
