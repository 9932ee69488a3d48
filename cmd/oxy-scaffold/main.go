package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/camera"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/config"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/loader"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/state"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/window"
	"github.com/schollz/progressbar/v3"
)

func run() error {
	configPath := flag.String("config", "oxy.yaml", "path to the yaml configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	texturePath := flag.String("texture", "", "override texture.path from the configuration")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *texturePath != "" {
		cfg.Texture.Path = *texturePath
	}

	// ── Assets ──────────────────────────────────────────────────────
	stateOpts, err := assetOptions(cfg)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow(windowOptions(cfg)...)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions(cfg)...)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Camera + State ──────────────────────────────────────────────
	cam, err := camera.NewCamera(cameraOptions(cfg, win.Width(), win.Height())...)
	if err != nil {
		return err
	}
	stateOpts = append(stateOpts,
		state.WithCamera(cam),
		state.WithController(camera.NewCameraController(camera.WithSpeed(cfg.Camera.Speed))),
		state.WithInstances(gridInstances(cfg)),
		state.WithPipelineOptions(pipelineOptions(cfg)...),
	)
	st, err := state.NewState(r, stateOpts...)
	if err != nil {
		return err
	}
	defer st.Release()

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithState(st),
		engine.WithProfiling(cfg.Window.Profile),
		engine.WithRenderFrameLimit(float64(cfg.Window.FrameLimit)),
	)
	return eng.Run()
}

// assetOptions loads the optional texture and shader override named by the configuration.
func assetOptions(cfg config.Config) ([]state.StateBuilderOption, error) {
	var opts []state.StateBuilderOption

	if cfg.Texture.Path != "" {
		l := loader.NewLoader(loader.BackendTypeImage, loader.WithWorkers(cfg.Texture.Workers))
		pb := progressbar.Default(1, "loading textures")
		assets, err := l.LoadTextures([]string{cfg.Texture.Path}, func(done, total int) {
			_ = pb.Set(done)
		})
		_ = pb.Close()
		if err != nil {
			return nil, err
		}
		common.Logger().Info("texture loaded",
			"path", cfg.Texture.Path,
			"format", assets[0].Format,
			"width", assets[0].Data.Width,
			"height", assets[0].Data.Height,
		)
		opts = append(opts, state.WithTexture(assets[0].Data))
	}

	if cfg.Shader.Path != "" {
		key := "untextured"
		if cfg.Texture.Path != "" {
			key = "textured"
		}
		sh, err := shader.NewShaderFromPath(key, cfg.Shader.Path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, state.WithShader(sh))
	}

	return opts, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "oxy-scaffold: %v\n", err)
		if errors.Is(err, renderer.ErrFatal) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
