// Package instance holds per-instance transforms for drawing many copies of one mesh in a single
// indexed draw, plus the startup grid generator that lays those copies out.
package instance

import (
	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is the CPU-side transform of one drawn copy.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewInstance places an instance at position with the rotation given by common.InstanceRotation.
//
// Parameters:
//   - position: world-space position
//
// Returns:
//   - Instance: the instance
func NewInstance(position mgl32.Vec3) Instance {
	return Instance{
		Position: position,
		Rotation: common.InstanceRotation(position),
	}
}

// ModelMatrix composes translation(position) * rotation.
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func (i Instance) ModelMatrix() mgl32.Mat4 {
	return common.BuildModelMatrix(i.Position, i.Rotation)
}

// ToGPU converts the instance into its GPU vertex-buffer encoding.
//
// Returns:
//   - GPUInstance: the model matrix ready for upload
func (i Instance) ToGPU() GPUInstance {
	return GPUInstance{Model: i.ModelMatrix()}
}

// MarshalAll encodes every instance back to back in slice order.
//
// Parameters:
//   - instances: the instances to encode
//
// Returns:
//   - []byte: len(instances) * 64 bytes, or nil for an empty slice
func MarshalAll(instances []Instance) []byte {
	if len(instances) == 0 {
		return nil
	}
	var g GPUInstance
	buf := make([]byte, 0, len(instances)*g.Size())
	for _, inst := range instances {
		gpu := inst.ToGPU()
		buf = append(buf, gpu.Marshal()...)
	}
	return buf
}
