// Package app wires the particle field sketch together: window, loading
// sequence, input handlers and the frame loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"particle-field/config"
	"particle-field/core"
	"particle-field/interaction"
	"particle-field/renderer"
	"particle-field/scene"
	"particle-field/shaders"
	"particle-field/telemetry"
	"particle-field/tween"
)

// Sketch owns the window and runs the sketch until it is closed.
type Sketch struct {
	cfg    *config.Config
	log    *zap.Logger
	loader AssetLoader
}

// New creates a sketch that loads textures with loader.
func New(cfg *config.Config, loader AssetLoader, log *zap.Logger) *Sketch {
	return &Sketch{cfg: cfg, log: log, loader: loader}
}

type prepareResult struct {
	prepared *Prepared
	err      error
}

// Run opens the window and blocks until it closes, ctx is cancelled or
// loading fails. Must be called from the main goroutine.
func (s *Sketch) Run(ctx context.Context) error {
	cfg := s.cfg

	src, err := shaders.Load(cfg.Shaders.Dir)
	if err != nil {
		return fmt.Errorf("loading shaders: %w", err)
	}

	window, err := core.NewWindow(core.WindowConfig{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		Resizable:  cfg.Window.Resizable,
		VSync:      cfg.Window.VSync,
		Fullscreen: cfg.Window.Fullscreen,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	camera := scene.NewCamera(cfg.Derived.FOVRad, float32(cfg.Window.Width)/float32(cfg.Window.Height),
		cfg.Camera.Near, cfg.Camera.Far)
	camera.SetPosition(mgl32.Vec3(cfg.Camera.Position))

	engine, err := renderer.NewRenderEngine(window, camera, src, s.log)
	if err != nil {
		return err
	}
	defer engine.Destroy()
	engine.ClearColor = core.ColorFromArray(cfg.Render.ClearColor)
	engine.Progress = cfg.Render.Progress
	engine.PointScale = cfg.Render.PointScale

	window.SetFramebufferSizeCallback(func(width, height int) {
		engine.Resize(width, height)
	})
	window.SetKeyCallback(func(key int, pressed bool) {
		if pressed && key == core.KeyEscape {
			window.SetShouldClose(true)
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var reloads <-chan shaders.Source
	if cfg.Shaders.Watch {
		watcher, err := shaders.NewWatcher(s.log, cfg.Shaders.Dir, cfg.Derived.Debounce)
		if err != nil {
			return err
		}
		defer watcher.Close()
		reloads = watcher.Updates()
		g.Go(func() error { return watcher.Run(gctx) })
	}

	// Loading runs off the render thread; results come back over channels
	progress := make(chan float64, 2)
	result := make(chan prepareResult, 1)
	g.Go(func() error {
		p, err := Prepare(gctx, cfg, s.loader, func(v float64) {
			select {
			case progress <- v:
			case <-gctx.Done():
			}
		})
		result <- prepareResult{prepared: p, err: err}
		return nil
	})
	defer func() {
		cancel()
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn("background task", zap.Error(err))
		}
	}()

	start := window.Time()
	clock := func() time.Duration {
		return time.Duration((window.Time() - start) * float64(time.Second))
	}

	state := interaction.NewState(interaction.PressOptions{
		Duration: cfg.Derived.PressDuration,
		Ease:     tween.ElasticOut(cfg.Press.Amplitude, cfg.Press.Period),
	}, cfg.Wheel.Divisor)
	picker := interaction.PlanePicker{
		Camera: camera,
		Plane:  scene.NewPickingPlane(cfg.Picking.Width, cfg.Picking.Height),
	}

	bar := NewLoadingBar(cfg.Derived.LoadingHold)
	stats := telemetry.NewFrameStats(cfg.Telemetry.Window)
	ticker := telemetry.NewTicker(time.Second)
	csv, err := telemetry.NewCSVWriter(cfg.Telemetry.CSVPath)
	if err != nil {
		return err
	}
	defer func() { csv.Close() }()

	s.log.Info("Sketch started",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("particles", cfg.Derived.ParticleCount))

	last := clock()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		window.PollEvents()
		now := clock()

		// Drain loader output
		for drained := false; !drained; {
			select {
			case v := <-progress:
				bar.Set(v, now)
			default:
				drained = true
			}
		}
		select {
		case r := <-result:
			if r.err != nil {
				return r.err
			}
			if err := s.upload(engine, r.prepared); err != nil {
				return err
			}
			BindInput(window, state, picker, clock, cfg.Wheel.PixelsPerLine, s.log)
		default:
		}

		select {
		case src := <-reloads:
			if err := engine.ReloadShaders(src); err != nil {
				s.log.Error("Shader reload failed, keeping previous program", zap.Error(err))
			}
		default:
		}

		engine.Render(state.Frame(now))
		if bar.Visible(now) {
			s.drawRects(engine, loadingBarRects(bar.Progress(), float32(window.Width), float32(window.Height)))
		}
		_, maxFPS := stats.MinMaxFPS()
		s.drawRects(engine, statsPanelRects(stats.History(), stats.FPS(), maxFPS, 0, 0))
		engine.Present()

		dt := now - last
		last = now
		stats.Record(dt)
		if ticker.Advance(dt) {
			window.SetTitle(fmt.Sprintf("%s - FPS: %.0f", cfg.Window.Title, stats.FPS()))
			u := state.Frame(now)
			if err := csv.Write(stats.Snapshot(now.Seconds(), u.Move, u.MousePressed)); err != nil {
				s.log.Warn("Perf CSV disabled", zap.Error(err))
				csv.Close()
				csv = nil
			}
		}
	}

	s.log.Info("Sketch stopped",
		zap.Int64("frames", stats.Frames()),
		zap.Int("picking_misses", state.Misses))
	return nil
}

// upload hands the prepared field and textures to the GPU.
func (s *Sketch) upload(engine *renderer.RenderEngine, p *Prepared) error {
	if err := engine.SetTextures(renderer.Textures{
		T1:   p.Textures.T1,
		T2:   p.Textures.T2,
		Mask: p.Textures.Mask,
	}); err != nil {
		return err
	}
	if err := engine.SetField(p.Field); err != nil {
		return err
	}

	sum := p.Field.Summarize()
	s.log.Debug("Field ready",
		zap.Int64("seed", p.Seed),
		zap.Int("count", sum.Count),
		zap.Float64("speed_mean", sum.Speed.Mean),
		zap.Float64("offset_min", sum.Offset.Min),
		zap.Float64("offset_max", sum.Offset.Max),
		zap.Float64("press_mean", sum.Press.Mean),
		zap.Float64("positive_direction_share", sum.PositiveShare))
	return nil
}

func (s *Sketch) drawRects(engine *renderer.RenderEngine, rects []rect) {
	for _, r := range rects {
		engine.DrawRect(r.X, r.Y, r.W, r.H, r.Color)
	}
}
