// Package sweep renders a series of views around one panorama to image files.
package sweep

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/engine/camera"
	"github.com/Faultbox/midgard-pano/internal/engine/debug"
	"github.com/Faultbox/midgard-pano/internal/engine/renderer"
	"github.com/Faultbox/midgard-pano/internal/logger"
)

// Config holds all shared settings for a sweep.
type Config struct {
	OutputDir string
	Format    string // "png" or "webp"
	Width     int
	Height    int
	Frames    int     // views spread evenly over 360 degrees of yaw
	StartYaw  float64 // yaw of the first view
	Pitch     float64
	Fov       float64
	Workers   int

	// MinFov and MaxFov bound Fov; zero keeps the camera defaults.
	MinFov float64
	MaxFov float64

	// Progress is the interval between progress log lines; 0 disables them.
	Progress time.Duration
}

// Result holds the outcome of rendering one view.
type Result struct {
	Frame int
	State camera.State
	Path  string
	Err   error
}

// Views returns the view state of every frame.
func (cfg Config) Views() []camera.State {
	if cfg.Frames <= 0 {
		return nil
	}
	cam := camera.NewPanoramaCamera()
	if cfg.MinFov > 0 {
		cam.MinFov = cfg.MinFov
	}
	if cfg.MaxFov > 0 {
		cam.MaxFov = cfg.MaxFov
	}
	views := make([]camera.State, cfg.Frames)
	step := 360.0 / float64(cfg.Frames)
	for i := range views {
		cam.SetState(camera.State{
			Yaw:   cfg.StartYaw + float64(i)*step,
			Pitch: cfg.Pitch,
			Fov:   cfg.Fov,
		})
		views[i] = cam.State()
	}
	return views
}

// Run renders every view of src using a worker pool. Each worker owns its
// canvas; src is shared read-only. Cancelling ctx stops handing out frames.
func Run(ctx context.Context, cfg Config, src *image.RGBA) ([]Result, error) {
	if src == nil {
		return nil, renderer.ErrNoImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Format != debug.FormatWebP {
		cfg.Format = debug.FormatPNG
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	log := logger.Named("sweep")
	views := cfg.Views()
	total := len(views)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						log.Info("progress",
							zap.Int64("done", p),
							zap.Int("total", total),
							zap.Float64("frames_per_sec", rate))
					}
				}
			}
		}()
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			canvas := renderer.NewSoftwareCanvas(cfg.Width, cfg.Height)
			r := renderer.New(canvas, canvas)
			if err := r.SetImage(src); err != nil {
				for idx := range frameChan {
					results[idx] = Result{Frame: idx, State: views[idx], Err: err}
					processed.Add(1)
				}
				return
			}
			for idx := range frameChan {
				results[idx] = renderFrame(cfg, r, canvas, idx, views[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
send:
	for i := range views {
		select {
		case <-ctx.Done():
			break send
		case frameChan <- i:
			sent++
		}
	}
	close(frameChan)

	wg.Wait()
	close(done)

	log.Info("sweep finished",
		zap.Int("frames", sent),
		zap.Duration("elapsed", time.Since(start)))

	if sent < total {
		return results[:sent], ctx.Err()
	}
	return results, nil
}

func renderFrame(cfg Config, r *renderer.Renderer, canvas *renderer.SoftwareCanvas, idx int, view camera.State) Result {
	res := Result{Frame: idx, State: view}
	r.RenderFrame(view)

	res.Path = filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%03d.%s", idx, cfg.Format))
	if err := debug.WriteImage(res.Path, canvas.Image()); err != nil {
		res.Err = err
	}
	return res
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
