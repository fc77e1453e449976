// Package main renders panorama views to image files without a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/assets"
	"github.com/Faultbox/midgard-pano/internal/config"
	"github.com/Faultbox/midgard-pano/internal/engine/camera"
	"github.com/Faultbox/midgard-pano/internal/engine/debug"
	"github.com/Faultbox/midgard-pano/internal/engine/renderer"
	"github.com/Faultbox/midgard-pano/internal/engine/texture"
	"github.com/Faultbox/midgard-pano/internal/logger"
	"github.com/Faultbox/midgard-pano/internal/sweep"
	"github.com/Faultbox/midgard-pano/internal/viewer"
)

var (
	flagIndex   = flag.Int("index", 0, "Panorama index in the configured list")
	flagYaw     = flag.Float64("yaw", 0, "Yaw in degrees")
	flagPitch   = flag.Float64("pitch", 0, "Pitch in degrees")
	flagFov     = flag.Float64("fov", camera.DefaultFov, "Field of view in degrees")
	flagOut     = flag.String("out", "view.png", "Output file (.png or .webp), or directory with -sweep")
	flagSweep   = flag.Int("sweep", 0, "Render N views around the panorama instead of one")
	flagWorkers = flag.Int("workers", 4, "Parallel renderers for -sweep")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	catalog := assets.NewCatalog(cfg.Panoramas.Dir, cfg.Panoramas.Images)
	entry, ok := catalog.Entry(*flagIndex)
	if !ok {
		return fmt.Errorf("panorama index %d out of range (have %d)", *flagIndex, catalog.Len())
	}

	mgr := assets.NewManager("")
	defer mgr.Close()

	img, err := load(mgr, entry, *flagIndex)
	if err != nil {
		return err
	}

	cam := camera.NewPanoramaCamera()
	cam.MinFov, cam.MaxFov = cfg.Viewer.MinFov, cfg.Viewer.MaxFov
	cam.SetState(camera.State{Yaw: *flagYaw, Pitch: *flagPitch, Fov: *flagFov})
	view := cam.State()

	if *flagSweep > 0 {
		results, err := sweep.Run(ctx, sweep.Config{
			OutputDir: *flagOut,
			Format:    cfg.Capture.Format,
			Width:     cfg.Graphics.Width,
			Height:    cfg.Graphics.Height,
			Frames:    *flagSweep,
			StartYaw:  view.Yaw,
			Pitch:     view.Pitch,
			Fov:       view.Fov,
			MinFov:    cam.MinFov,
			MaxFov:    cam.MaxFov,
			Workers:   *flagWorkers,
			Progress:  2 * time.Second,
		}, img)
		for _, r := range results {
			if r.Err != nil {
				logger.Warn("frame failed", zap.Int("frame", r.Frame), zap.Error(r.Err))
			}
		}
		if err != nil {
			return err
		}
		if n := sweep.Failed(results); n > 0 {
			return fmt.Errorf("%d of %d frames failed", n, len(results))
		}
		logger.Info("sweep written", zap.String("dir", *flagOut), zap.Int("frames", len(results)))
		return nil
	}

	canvas := renderer.NewSoftwareCanvas(cfg.Graphics.Width, cfg.Graphics.Height)
	r := renderer.New(canvas, canvas)
	if err := r.SetImage(img); err != nil {
		return err
	}
	r.RenderFrame(view)

	if err := debug.WriteImage(*flagOut, canvas.Image()); err != nil {
		return err
	}
	logger.Info("view written",
		zap.String("panorama", entry.DisplayName),
		zap.String("path", *flagOut),
		zap.Float64("yaw", view.Yaw),
		zap.Float64("pitch", view.Pitch),
		zap.Float64("fov", view.Fov),
	)
	return nil
}

func load(mgr *assets.Manager, entry assets.Entry, index int) (*image.RGBA, error) {
	data, err := mgr.Load(entry.Path)
	if err == nil {
		var img *image.RGBA
		img, err = texture.DecodePath(entry.Path, data)
		// The decoded pixels are all a render needs from here on.
		mgr.Cache().Evict(entry.Path)
		if err == nil {
			return img, nil
		}
	}
	return nil, &viewer.ResourceLoadError{Index: index, ID: entry.ID, Path: entry.Path, Err: err}
}
