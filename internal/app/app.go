// Package app runs the interactive panorama viewer window.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/assets"
	"github.com/Faultbox/midgard-pano/internal/config"
	"github.com/Faultbox/midgard-pano/internal/engine/camera"
	"github.com/Faultbox/midgard-pano/internal/engine/debug"
	"github.com/Faultbox/midgard-pano/internal/engine/input"
	"github.com/Faultbox/midgard-pano/internal/engine/input/sdlinput"
	"github.com/Faultbox/midgard-pano/internal/engine/renderer"
	"github.com/Faultbox/midgard-pano/internal/engine/renderer/glcanvas"
	"github.com/Faultbox/midgard-pano/internal/engine/texture"
	"github.com/Faultbox/midgard-pano/internal/engine/window"
	"github.com/Faultbox/midgard-pano/internal/logger"
	"github.com/Faultbox/midgard-pano/internal/viewer"
)

// Title is the window title prefix.
const Title = "Midgard Pano"

// App is the viewer window and everything drawn in it.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window  *window.Window
	canvas  *glcanvas.Canvas
	assets  *assets.Manager
	session *viewer.Session
	adapter *sdlinput.Adapter
	shots   *debug.ScreenshotCapture
	loop    *viewer.Loop
	pacer   *viewer.TickerPacer

	events      <-chan viewer.Event
	unsubscribe func()

	frameCount int
	fpsTimer   time.Time
}

// New creates the window, GL pipeline and viewer session.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("panoramas", len(cfg.Panoramas.Images)),
	)

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create canvas (AFTER window, since OpenGL context must exist)
	a.canvas, err = glcanvas.New(a.window)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	cam := camera.NewPanoramaCamera()
	cam.MinFov, cam.MaxFov = cfg.Viewer.MinFov, cfg.Viewer.MaxFov
	cam.ZoomStep = cfg.Viewer.ZoomStep
	cam.Reset()

	broadcaster := viewer.NewBroadcaster()
	a.events, a.unsubscribe = broadcaster.Subscribe(16)

	a.assets = assets.NewManager("")
	a.session = viewer.NewSession(viewer.Options{
		Camera:    cam,
		Renderer:  renderer.New(a.canvas, a.window),
		Catalog:   assets.NewCatalog(cfg.Panoramas.Dir, cfg.Panoramas.Images),
		Decoder:   texture.NewDecoder(a.assets.Load, 4),
		Indicator: viewer.MultiIndicator{viewer.LogIndicator{Log: logger.Named("indicator")}, broadcaster},
		Sensitivity: input.Sensitivity{
			Mouse: cfg.Viewer.MouseSensitivity,
			Touch: cfg.Viewer.TouchSensitivity,
			Wheel: cfg.Viewer.WheelSensitivity,
			Pinch: cfg.Viewer.PinchSensitivity,
		},
	})
	a.adapter = sdlinput.NewAdapter(a.session.Gestures(), a.window.ViewportSize)
	a.shots = debug.NewScreenshotCapture(cfg.Capture.Dir, "panorama", cfg.Capture.Format)

	pacer := viewer.PacerFor(a.window.VSync(), cfg.Graphics.FPSLimit)
	if tp, ok := pacer.(*viewer.TickerPacer); ok {
		a.pacer = tp
		a.log.Info("frame pacing by timer", zap.Int("fps", cfg.Graphics.FPSLimit))
	}
	a.loop = viewer.NewLoop(a.frame, pacer)

	a.log.Info("viewer initialized successfully")
	return a, nil
}

// Run loads the first panorama and runs the frame loop until the window
// is closed, Stop is called or ctx is cancelled. Must run on the main thread.
func (a *App) Run(ctx context.Context) error {
	a.session.Start()
	a.window.SetTitle(a.session.Title(Title))
	a.fpsTimer = time.Now()

	a.log.Info("starting render loop")
	return a.loop.Run(ctx)
}

// Stop ends the loop after the current frame.
func (a *App) Stop() {
	a.loop.Stop()
}

// Close releases the window and GL resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.pacer != nil {
		a.pacer.Stop()
	}
	if a.assets != nil {
		hits, misses := a.assets.Cache().Stats()
		a.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		a.assets.Close()
	}
	if a.canvas != nil {
		a.canvas.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// frame is one loop iteration: input, loading, drawing, present.
func (a *App) frame() error {
	screenshot := false
	for _, act := range a.adapter.Poll() {
		switch act.Command {
		case input.CommandQuit:
			return viewer.ErrQuit
		case input.CommandScreenshot:
			screenshot = true
		default:
			a.session.Apply(act)
		}
	}

	if !a.session.Frame() {
		// Nothing loaded yet; keep the window cleared.
		a.canvas.Clear()
	}

	if screenshot {
		a.capture()
	}
	a.window.SwapBuffers()

	a.updateTitle()
	a.countFrame()
	return nil
}

func (a *App) updateTitle() {
	changed := false
drain:
	for {
		select {
		case <-a.events:
			changed = true
		default:
			break drain
		}
	}
	if changed {
		a.window.SetTitle(a.session.Title(Title))
	}
}

func (a *App) capture() {
	pix, w, h := a.canvas.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pix, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) countFrame() {
	a.frameCount++
	if time.Since(a.fpsTimer) >= time.Second {
		a.log.Debug("fps", zap.Int("count", a.frameCount))
		a.frameCount = 0
		a.fpsTimer = time.Now()
	}
}
