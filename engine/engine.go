package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/state"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/window"
)

// ErrNotConfigured is returned by Run when the engine has no window or no state.
var ErrNotConfigured = errors.New("engine needs a window and a state")

// engine implements the Engine interface.
// Everything runs on the window's thread: input, resize, update and render are dispatched from the message loop.
type engine struct {
	mu *sync.Mutex

	window window.Window
	state  state.State

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastRender       time.Time

	quitOnce sync.Once
	err      error
}

// Engine is the main entry point for the engine.
// It wires window events into the frame core and drives one update and one render per loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// State returns the frame core driven by the loop.
	//
	// Returns:
	//   - state.State: the state instance
	State() state.State

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main loop and blocks until the window closes or a fatal frame error occurs.
	//
	// Returns:
	//   - error: the fatal error that stopped the loop, or nil on a normal close
	Run() error

	// Quit asks the loop to stop after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, state, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetKeyCallback(e.handleKey)
		e.window.SetResizeCallback(e.handleResize)
		e.window.SetUpdateCallback(e.handleFrame)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) State() state.State {
	return e.state
}

func (e *engine) Run() error {
	if e.window == nil || e.state == nil {
		return ErrNotConfigured
	}

	e.lastRender = time.Now()
	e.window.ProcessMessages()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handleKey forwards the key to the controller. Escape quits when the controller does not claim it.
func (e *engine) handleKey(keyCode uint32, pressed bool) {
	if e.state == nil {
		return
	}
	if e.state.Input(keyCode, pressed) {
		return
	}
	if keyCode == common.KeyEsc && pressed {
		e.Quit()
	}
}

func (e *engine) handleResize(width, height int) {
	if e.state == nil {
		return
	}
	if err := e.state.Resize(width, height); err != nil {
		common.Logger().Error("resize failed", "width", width, "height", height, "error", err)
	}
}

// handleFrame runs one tick: the uniform write is enqueued before the frame that reads it.
func (e *engine) handleFrame() {
	if e.state == nil {
		return
	}

	e.state.Update()
	if err := e.state.HandleFrameError(e.state.Render()); err != nil {
		common.Logger().Error("frame failed", "error", err)
		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
		e.Quit()
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		elapsed := time.Since(e.lastRender)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}
	e.lastRender = time.Now()
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

// frameDuration converts a frame rate cap into a minimum frame duration; fps <= 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
