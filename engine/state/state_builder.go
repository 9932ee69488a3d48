package state

import (
	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/camera"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/instance"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/model"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/texture"
)

// StateBuilderOption is a functional option for configuring a State via NewState.
type StateBuilderOption func(*state)

// WithCamera sets the camera. Defaults to camera.NewCamera().
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - StateBuilderOption: a function that applies the camera to a state
func WithCamera(cam camera.Camera) StateBuilderOption {
	return func(s *state) {
		s.cam = cam
	}
}

// WithController sets the camera controller. Defaults to camera.NewCameraController().
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - StateBuilderOption: a function that applies the controller to a state
func WithController(ctrl camera.CameraController) StateBuilderOption {
	return func(s *state) {
		s.ctrl = ctrl
	}
}

// WithModel sets the mesh drawn for every instance. Defaults to model.NewPentagon().
//
// Parameters:
//   - m: the model
//
// Returns:
//   - StateBuilderOption: a function that applies the model to a state
func WithModel(m model.Model) StateBuilderOption {
	return func(s *state) {
		s.mdl = m
	}
}

// WithInstances sets the instance list. Defaults to instance.NewGrid().
//
// Parameters:
//   - instances: the instances, built once at startup
//
// Returns:
//   - StateBuilderOption: a function that applies the instances to a state
func WithInstances(instances []instance.Instance) StateBuilderOption {
	return func(s *state) {
		s.instances = instances
	}
}

// WithTexture binds a diffuse texture at group 0 and shifts the camera to group 1.
//
// Parameters:
//   - data: RGBA8 staging data
//
// Returns:
//   - StateBuilderOption: a function that applies the texture to a state
func WithTexture(data common.TextureStagingData) StateBuilderOption {
	return func(s *state) {
		s.textureData = &data
	}
}

// WithTextureCache shares a texture cache between states. Identical images share one bind group; each state drops
// its reference on Release and the provider is freed with the last one.
//
// Parameters:
//   - c: the cache
//
// Returns:
//   - StateBuilderOption: a function that applies the cache to a state
func WithTextureCache(c texture.Cache) StateBuilderOption {
	return func(s *state) {
		s.textureCache = c
	}
}

// WithShader overrides the built-in shader. Its bind groups must follow the textured or untextured layout.
//
// Parameters:
//   - sh: the shader
//
// Returns:
//   - StateBuilderOption: a function that applies the shader to a state
func WithShader(sh shader.Shader) StateBuilderOption {
	return func(s *state) {
		s.shader = sh
	}
}

// WithPipelineOptions adjusts the fixed-function state of the scene pipeline. The options apply after the built-in
// vertex and bind group layouts and back-face culling, so they can override the cull mode.
//
// Parameters:
//   - opts: pipeline builder options such as pipeline.WithFrontFace
//
// Returns:
//   - StateBuilderOption: a function that applies the pipeline options to a state
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) StateBuilderOption {
	return func(s *state) {
		s.pipelineOptions = append(s.pipelineOptions, opts...)
	}
}
