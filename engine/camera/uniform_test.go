package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	calls [][]bind_group_provider.BufferWrite
}

func (w *recordingWriter) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	w.calls = append(w.calls, writes)
}

func TestSyncUniform_SingleWholeBufferWrite(t *testing.T) {
	cam, err := NewCamera()
	require.NoError(t, err)
	ctrl := NewCameraController()
	ctrl.ProcessKey(common.KeyW, true)
	w := &recordingWriter{}

	before := cam.Eye()
	u := SyncUniform(cam, ctrl, cam.BindGroupProvider(), UniformBinding, w)

	assert.NotEqual(t, before, cam.Eye(), "controller tick must run before the uniform is built")
	require.Len(t, w.calls, 1)
	require.Len(t, w.calls[0], 1)

	write := w.calls[0][0]
	assert.Same(t, cam.BindGroupProvider(), write.Provider)
	assert.Equal(t, UniformBinding, write.Binding)
	assert.Equal(t, uint64(0), write.Offset)
	assert.Len(t, write.Data, u.Size())

	want := cam.ViewProjectionMatrix()
	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(write.Data[i*4:]))
		assert.Equal(t, want[i], got, "element %d", i)
	}
}

func TestSyncUniform_NilControllerSkipsTick(t *testing.T) {
	cam, err := NewCamera()
	require.NoError(t, err)
	w := &recordingWriter{}

	before := cam.Eye()
	SyncUniform(cam, nil, cam.BindGroupProvider(), UniformBinding, w)

	assert.Equal(t, before, cam.Eye())
	assert.Len(t, w.calls, 1)
}
