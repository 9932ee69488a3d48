package main

import (
	"github.com/Carmen-Shannon/oxy-scaffold/engine/camera"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/config"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/instance"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// windowOptions maps the window section onto window builder options.
func windowOptions(cfg config.Config) []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(cfg.Window.MinWidth, cfg.Window.MinHeight),
		window.WithMaxSize(cfg.Window.MaxWidth, cfg.Window.MaxHeight),
	}
}

// rendererOptions maps the renderer section onto renderer builder options.
func rendererOptions(cfg config.Config) []renderer.RendererBuilderOption {
	msaa := renderer.MSAAOff
	if cfg.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}
	return []renderer.RendererBuilderOption{
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithPresentMode(renderer.ParsePresentMode(cfg.Renderer.PresentMode)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceFallbackAdapter),
		renderer.WithMSAA(msaa),
	}
}

// cameraOptions maps the camera section onto camera builder options, taking the aspect from the framebuffer.
func cameraOptions(cfg config.Config, width, height int) []camera.CameraBuilderOption {
	opts := []camera.CameraBuilderOption{
		camera.WithEye(mgl32.Vec3(cfg.Camera.Eye)),
		camera.WithTarget(mgl32.Vec3(cfg.Camera.Target)),
		camera.WithUp(mgl32.Vec3(cfg.Camera.Up)),
		camera.WithFovY(cfg.Camera.FovYDegrees),
		camera.WithClipPlanes(cfg.Camera.ZNear, cfg.Camera.ZFar),
	}
	if width > 0 && height > 0 {
		opts = append(opts, camera.WithAspect(float32(width)/float32(height)))
	}
	return opts
}

// pipelineOptions maps the pipeline section onto scene pipeline options.
func pipelineOptions(cfg config.Config) []pipeline.PipelineBuilderOption {
	return []pipeline.PipelineBuilderOption{
		pipeline.WithCullMode(pipeline.ParseCullMode(cfg.Pipeline.CullMode)),
		pipeline.WithFrontFace(pipeline.ParseFrontFace(cfg.Pipeline.FrontFace)),
		pipeline.WithDepth(cfg.Pipeline.DepthTest, cfg.Pipeline.DepthWrite),
		pipeline.WithBlendEnabled(cfg.Pipeline.AlphaBlend),
	}
}

func gridInstances(cfg config.Config) []instance.Instance {
	return instance.NewGrid(
		instance.WithRows(cfg.Grid.Rows),
		instance.WithColumns(cfg.Grid.Columns),
		instance.WithDisplacement(mgl32.Vec3(cfg.Grid.Displacement)),
	)
}
