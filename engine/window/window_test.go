package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindow_Options(t *testing.T) {
	w := newEngineWindow(
		WithTitle("demo"),
		WithSize(1024, 768),
		WithMinSize(320, 240),
		WithMaxSize(1920, 1080),
	)

	assert.Equal(t, "demo", w.Title())
	assert.Equal(t, 1024, w.Width())
	assert.Equal(t, 768, w.Height())
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, 240, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
}

func TestNewEngineWindow_NonPositiveSizesKeepDefaults(t *testing.T) {
	w := newEngineWindow(
		WithSize(0, -1),
		WithMinSize(0, 0),
		WithMaxSize(-5, 0),
	)

	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 200, w.minWidth)
	assert.Equal(t, 150, w.minHeight)
	assert.Zero(t, w.maxWidth)
	assert.Zero(t, w.maxHeight)
}

func TestEngineWindow_CallbacksForwardEvents(t *testing.T) {
	w := newEngineWindow()

	var keys []uint32
	var held []bool
	w.SetKeyCallback(func(keyCode uint32, pressed bool) {
		keys = append(keys, keyCode)
		held = append(held, pressed)
	})
	var sizes [][2]int
	w.SetResizeCallback(func(width, height int) {
		sizes = append(sizes, [2]int{width, height})
	})

	w.handleKey(87, true)
	w.handleKey(87, false)
	w.handleResize(640, 0)

	assert.Equal(t, []uint32{87, 87}, keys)
	assert.Equal(t, []bool{true, false}, held)
	assert.Equal(t, [][2]int{{640, 0}}, sizes)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 0, w.Height())
}

func TestEngineWindow_UninitializedPlatform(t *testing.T) {
	w := newEngineWindow()
	w.handleKey(1, true)

	assert.Nil(t, w.SurfaceDescriptor())
	assert.False(t, w.IsRunning())
	assert.Error(t, w.Close())
	w.RequestClose()
	w.ProcessMessages()
}
