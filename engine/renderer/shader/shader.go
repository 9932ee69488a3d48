package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// Stage identifies a programmable render pipeline stage.
type Stage int

const (
	// StageVertex is the vertex stage, declared with @vertex.
	StageVertex Stage = iota

	// StageFragment is the fragment stage, declared with @fragment.
	StageFragment
)

// ErrMissingEntryPoint is returned when WGSL source lacks a @vertex or @fragment function.
var ErrMissingEntryPoint = errors.New("shader: missing entry point")

// texturedSource samples a texture at group 0 and reads the camera at group 1.
//
//go:embed assets/textured.wgsl
var texturedSource string

// untexturedSource reads the camera at group 0 and colors fragments by UV.
//
//go:embed assets/untextured.wgsl
var untexturedSource string

// shader is the implementation of the Shader interface.
type shader struct {
	key                string
	source             string
	vertexEntryPoint   string
	fragmentEntryPoint string
	module             *wgpu.ShaderModuleDescriptor
}

// Shader is a WGSL source holding one vertex and one fragment entry point.
// The source is not validated beyond locating the entry points; the GPU driver compiles it when
// the pipeline is registered.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoint retrieves the function name of a stage.
	//
	// Parameters:
	//   - stage: StageVertex or StageFragment
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint(stage Stage) string

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader creates a Shader from WGSL source.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - source: the WGSL source
//
// Returns:
//   - Shader: the shader
//   - error: ErrMissingEntryPoint if the vertex or fragment entry point cannot be found
func NewShader(key, source string) (Shader, error) {
	s := &shader{
		key:                key,
		source:             source,
		vertexEntryPoint:   parseEntryPoint(source, StageVertex),
		fragmentEntryPoint: parseEntryPoint(source, StageFragment),
	}
	if s.vertexEntryPoint == "" {
		return nil, fmt.Errorf("%w: %s has no @vertex function", ErrMissingEntryPoint, key)
	}
	if s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("%w: %s has no @fragment function", ErrMissingEntryPoint, key)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

// NewShaderFromPath reads WGSL source from disk and creates a Shader.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - path: the file path to read WGSL source from
//
// Returns:
//   - Shader: the shader
//   - error: a read error or ErrMissingEntryPoint
func NewShaderFromPath(key, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to read source file %q: %w", path, err)
	}
	return NewShader(key, string(data))
}

// Textured returns the built-in shader sampling a diffuse texture.
// Bind groups: 0 = texture (binding 0) + sampler (binding 1), 1 = camera uniform.
//
// Returns:
//   - Shader: the textured shader
func Textured() Shader {
	return mustShader("textured", texturedSource)
}

// Untextured returns the built-in shader coloring fragments by UV.
// Bind groups: 0 = camera uniform.
//
// Returns:
//   - Shader: the untextured shader
func Untextured() Shader {
	return mustShader("untextured", untexturedSource)
}

// mustShader panics if an embedded shader is malformed, which can only happen at build time.
func mustShader(key, source string) Shader {
	s, err := NewShader(key, source)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage Stage) string {
	switch stage {
	case StageVertex:
		return s.vertexEntryPoint
	case StageFragment:
		return s.fragmentEntryPoint
	default:
		return ""
	}
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
