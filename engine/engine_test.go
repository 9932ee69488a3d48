package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/state"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of loop iterations.
type fakeWindow struct {
	frames   int
	running  bool
	onUpdate func()
	onResize func(width, height int)
	onKey    func(keyCode uint32, pressed bool)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(callback func())                          { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int))         { w.onResize = callback }
func (w *fakeWindow) SetKeyCallback(callback func(keyCode uint32, pressed bool)) { w.onKey = callback }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor                 { return nil }
func (w *fakeWindow) IsRunning() bool                                            { return w.running }
func (w *fakeWindow) RequestClose()                                              { w.running = false }
func (w *fakeWindow) Close() error                                               { return nil }
func (w *fakeWindow) Title() string                                              { return "fake" }
func (w *fakeWindow) Width() int                                                 { return 800 }
func (w *fakeWindow) Height() int                                                { return 600 }

func (w *fakeWindow) ProcessMessages() {
	w.running = true
	for i := 0; i < w.frames && w.running; i++ {
		w.onUpdate()
	}
}

// fakeState records the loop's calls. Methods the loop never calls panic through the nil embedded State.
type fakeState struct {
	state.State

	calls     []string
	handled   map[uint32]bool
	renderErr error
	resizeErr error
	sizes     [][2]int
}

func (s *fakeState) Input(key uint32, pressed bool) bool {
	s.calls = append(s.calls, "input")
	return s.handled[key]
}

func (s *fakeState) Update() {
	s.calls = append(s.calls, "update")
}

func (s *fakeState) Render() error {
	s.calls = append(s.calls, "render")
	return s.renderErr
}

func (s *fakeState) Resize(width, height int) error {
	s.sizes = append(s.sizes, [2]int{width, height})
	return s.resizeErr
}

func (s *fakeState) HandleFrameError(err error) error {
	var se *renderer.SurfaceError
	if errors.As(err, &se) && se.Kind == renderer.SurfaceOutOfMemory {
		return errors.Join(renderer.ErrFatal, err)
	}
	return nil
}

func TestRun_RequiresWindowAndState(t *testing.T) {
	assert.ErrorIs(t, NewEngine().Run(), ErrNotConfigured)
	assert.ErrorIs(t, NewEngine(WithWindow(&fakeWindow{})).Run(), ErrNotConfigured)
}

func TestRun_UpdatesBeforeRenderEachFrame(t *testing.T) {
	w := &fakeWindow{frames: 3}
	s := &fakeState{}
	e := NewEngine(WithWindow(w), WithState(s), WithProfiling(true))

	require.NoError(t, e.Run())
	assert.Equal(t, []string{"update", "render", "update", "render", "update", "render"}, s.calls)
	assert.Same(t, s, e.State())
	assert.Same(t, w, e.Window())
}

func TestRun_RecoverableFrameErrorKeepsRunning(t *testing.T) {
	w := &fakeWindow{frames: 2}
	s := &fakeState{renderErr: &renderer.SurfaceError{Kind: renderer.SurfaceOutdated}}

	require.NoError(t, NewEngine(WithWindow(w), WithState(s)).Run())
	assert.Len(t, s.calls, 4)
}

func TestRun_FatalFrameErrorStopsLoop(t *testing.T) {
	w := &fakeWindow{frames: 5}
	s := &fakeState{renderErr: &renderer.SurfaceError{Kind: renderer.SurfaceOutOfMemory}}

	err := NewEngine(WithWindow(w), WithState(s)).Run()
	assert.ErrorIs(t, err, renderer.ErrFatal)
	assert.Equal(t, []string{"update", "render"}, s.calls)
}

func TestKeys_EscapeQuitsWhenUnhandled(t *testing.T) {
	w := &fakeWindow{running: true}
	s := &fakeState{handled: map[uint32]bool{common.KeyW: true}}
	NewEngine(WithWindow(w), WithState(s))

	w.onKey(common.KeyW, true)
	assert.True(t, w.running)

	w.onKey(common.KeyEsc, false)
	assert.True(t, w.running)

	w.onKey(common.KeyEsc, true)
	assert.False(t, w.running)
	assert.Equal(t, []string{"input", "input", "input"}, s.calls)
}

func TestResize_ForwardsToState(t *testing.T) {
	w := &fakeWindow{}
	s := &fakeState{resizeErr: errors.New("surface gone")}
	NewEngine(WithWindow(w), WithState(s))

	w.onResize(1024, 768)
	w.onResize(0, 0)
	assert.Equal(t, [][2]int{{1024, 768}, {0, 0}}, s.sizes)
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-30))
	assert.Equal(t, 16666666*time.Nanosecond, frameDuration(60))
	assert.Equal(t, 4*time.Millisecond, frameDuration(250))
}
