package camera

import (
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
)

// BufferWriter enqueues GPU buffer writes. The renderer satisfies it; writes are applied in
// submission order before any later draw that reads the buffer.
type BufferWriter interface {
	WriteBuffers(writes []bind_group_provider.BufferWrite)
}

// SyncUniform runs one controller tick against the camera, recomputes the view-projection
// uniform and enqueues exactly one write replacing the whole uniform buffer at offset 0.
// A nil controller skips the tick.
//
// Parameters:
//   - cam: the camera to advance and read
//   - ctrl: the controller driving the camera, may be nil
//   - provider: the bind group provider owning the uniform buffer
//   - binding: the buffer's binding index inside the provider
//   - w: the writer that enqueues the upload
//
// Returns:
//   - GPUCameraUniform: the uniform that was written
func SyncUniform(cam Camera, ctrl CameraController, provider bind_group_provider.BindGroupProvider, binding int, w BufferWriter) GPUCameraUniform {
	if ctrl != nil {
		ctrl.UpdateCamera(cam)
	}
	u := NewGPUCameraUniform(cam)
	w.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: provider,
			Binding:  binding,
			Offset:   0,
			Data:     u.Marshal(),
		},
	})
	return u
}
