package renderer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFrameState is returned when a frame operation is called out of order.
	ErrFrameState = errors.New("renderer: frame operation out of order")

	// ErrFatal marks errors the frame loop cannot recover from.
	ErrFatal = errors.New("renderer: fatal error")

	// ErrPipelineNotFound is returned by DrawCall when no pipeline is registered under the key.
	ErrPipelineNotFound = errors.New("renderer: pipeline not found")

	// ErrInvalidTexture is returned when texture staging data does not hold width*height RGBA8 pixels.
	ErrInvalidTexture = errors.New("renderer: invalid texture staging data")
)

// SurfaceErrorKind classifies a failure to acquire the next swap-chain image.
type SurfaceErrorKind int

const (
	SurfaceUnknown SurfaceErrorKind = iota
	// SurfaceLost means the surface must be reconfigured before the next frame.
	SurfaceLost
	// SurfaceOutdated means the surface no longer matches the window, usually mid-resize.
	SurfaceOutdated
	// SurfaceTimeout means no image became available in time.
	SurfaceTimeout
	// SurfaceOutOfMemory means the device ran out of memory.
	SurfaceOutOfMemory
)

func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceLost:
		return "lost"
	case SurfaceOutdated:
		return "outdated"
	case SurfaceTimeout:
		return "timeout"
	case SurfaceOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// SurfaceError wraps a swap-chain acquisition failure with its classification.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("surface %s: %v", e.Kind, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// classifySurfaceError maps a backend acquisition error onto a SurfaceErrorKind.
// The wgpu bindings report the surface status only in the error text.
func classifySurfaceError(err error) *SurfaceError {
	if err == nil {
		return nil
	}
	var se *SurfaceError
	if errors.As(err, &se) {
		return se
	}

	msg := strings.ToLower(err.Error())
	kind := SurfaceUnknown
	switch {
	case strings.Contains(msg, "lost"):
		kind = SurfaceLost
	case strings.Contains(msg, "outdated"):
		kind = SurfaceOutdated
	case strings.Contains(msg, "timeout"):
		kind = SurfaceTimeout
	case strings.Contains(msg, "memory"):
		kind = SurfaceOutOfMemory
	}
	return &SurfaceError{Kind: kind, Err: err}
}
