// Package viewer ties the camera, renderer, input and panorama loading
// into one interactive session driven by a frame loop.
package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/assets"
	"github.com/Faultbox/midgard-pano/internal/engine/camera"
	"github.com/Faultbox/midgard-pano/internal/engine/input"
	"github.com/Faultbox/midgard-pano/internal/engine/renderer"
	"github.com/Faultbox/midgard-pano/internal/engine/texture"
	"github.com/Faultbox/midgard-pano/internal/logger"
)

// LoadState is where the session is in loading a panorama.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Decoder loads panoramas in the background.
type Decoder interface {
	Start(index int, path string, gen uint64)
	Results() <-chan texture.Result
}

// Options configures a Session. Camera, Renderer, Catalog and Decoder
// are required.
type Options struct {
	Camera      *camera.PanoramaCamera
	Renderer    *renderer.Renderer
	Catalog     *assets.Catalog
	Decoder     Decoder
	Indicator   Indicator
	Sensitivity input.Sensitivity
}

// Session is one viewer instance. All methods must be called from the
// loop goroutine; only decoding runs elsewhere.
type Session struct {
	camera    *camera.PanoramaCamera
	renderer  *renderer.Renderer
	gestures  *input.Gestures
	catalog   *assets.Catalog
	decoder   Decoder
	indicator Indicator
	log       *zap.Logger

	state   LoadState
	active  int
	pending int
	failed  int
	gen     uint64
	lastErr error
}

// NewSession creates an idle session. Nothing loads until Start or SwitchTo.
func NewSession(opts Options) *Session {
	log := logger.Named("viewer")
	ind := opts.Indicator
	if ind == nil {
		ind = LogIndicator{Log: log}
	}
	return &Session{
		camera:    opts.Camera,
		renderer:  opts.Renderer,
		gestures:  input.NewGestures(opts.Camera, opts.Sensitivity),
		catalog:   opts.Catalog,
		decoder:   opts.Decoder,
		indicator: ind,
		log:       log,
		active:    -1,
		pending:   -1,
		failed:    -1,
	}
}

// Camera returns the view-state controller.
func (s *Session) Camera() *camera.PanoramaCamera { return s.camera }

// Gestures returns the gesture handler bound to the camera.
func (s *Session) Gestures() *input.Gestures { return s.gestures }

// Catalog returns the panorama list.
func (s *Session) Catalog() *assets.Catalog { return s.catalog }

// State returns the load state.
func (s *Session) State() LoadState { return s.state }

// ActiveIndex returns the index of the displayed panorama, -1 if none.
func (s *Session) ActiveIndex() int { return s.active }

// PendingIndex returns the index being loaded, -1 if none.
func (s *Session) PendingIndex() int { return s.pending }

// LastError returns the most recent load failure, cleared by the next success.
func (s *Session) LastError() error { return s.lastErr }

// Start loads the first panorama, if any.
func (s *Session) Start() {
	if s.catalog.Len() == 0 {
		s.log.Warn("no panoramas configured")
		return
	}
	s.SwitchTo(0)
}

// SwitchTo begins loading panorama index. Out-of-range indices are
// ignored and false is returned. A newer request supersedes any load
// still in flight; the superseded result is discarded when it arrives.
func (s *Session) SwitchTo(index int) bool {
	entry, ok := s.catalog.Entry(index)
	if !ok {
		s.log.Debug("switch ignored", zap.Int("index", index), zap.Int("count", s.catalog.Len()))
		return false
	}

	s.gen++
	s.pending = index
	s.state = StateLoading
	s.indicator.LoadingStarted(index)
	s.decoder.Start(index, entry.Path, s.gen)
	return true
}

// Next switches to the following panorama, wrapping at the end.
func (s *Session) Next() bool {
	return s.step(1)
}

// Prev switches to the preceding panorama, wrapping at the start.
func (s *Session) Prev() bool {
	return s.step(-1)
}

func (s *Session) step(dir int) bool {
	n := s.catalog.Len()
	cur := s.current()
	if n == 0 || (n == 1 && cur == 0) {
		return false
	}
	if cur < 0 {
		return s.SwitchTo(0)
	}
	return s.SwitchTo(((cur+dir)%n + n) % n)
}

// current is the panorama the user is heading to: the pending one while
// loading, otherwise the displayed one.
func (s *Session) current() int {
	if s.state == StateLoading {
		return s.pending
	}
	return s.active
}

// Apply executes a viewer command. It reports false for commands the
// session does not own (quit, screenshot).
func (s *Session) Apply(a input.Action) bool {
	switch a.Command {
	case input.CommandZoomIn:
		s.camera.ZoomIn()
	case input.CommandZoomOut:
		s.camera.ZoomOut()
	case input.CommandReset:
		s.camera.Reset()
	case input.CommandNext:
		s.Next()
	case input.CommandPrev:
		s.Prev()
	case input.CommandSelect:
		s.SwitchTo(a.Index)
	default:
		return false
	}
	return true
}

// Frame handles finished decodes and draws the current view.
// It reports whether anything was drawn.
func (s *Session) Frame() bool {
	s.drain()
	return s.renderer.RenderFrame(s.camera.State())
}

func (s *Session) drain() {
	for {
		select {
		case res := <-s.decoder.Results():
			s.complete(res)
		default:
			return
		}
	}
}

func (s *Session) complete(res texture.Result) {
	if res.Gen != s.gen {
		s.log.Debug("discarding stale load",
			zap.Int("index", res.Index),
			zap.Uint64("gen", res.Gen),
			zap.Uint64("current", s.gen))
		return
	}

	s.pending = -1
	err := res.Err
	if err == nil {
		err = s.renderer.SetImage(res.Image)
	}

	if err != nil {
		entry, _ := s.catalog.Entry(res.Index)
		s.lastErr = &ResourceLoadError{Index: res.Index, ID: entry.ID, Path: entry.Path, Err: err}
		s.state = StateFailed
		s.failed = res.Index
		s.log.Error("ResourceLoadFailure",
			zap.Int("index", res.Index),
			zap.String("id", entry.ID),
			zap.String("path", entry.Path),
			zap.Error(err))
		s.indicator.LoadingFinished(res.Index)
		return
	}

	s.lastErr = nil
	s.failed = -1
	s.active = res.Index
	s.camera.Reset()
	s.state = StateReady
	s.indicator.LoadingFinished(res.Index)
	s.indicator.ActiveIndexChanged(res.Index)
}

// Title describes the session for a window title bar. After a failed
// load it names the panorama that failed, not the one still shown.
func (s *Session) Title(app string) string {
	idx := s.current()
	if s.state == StateFailed {
		idx = s.failed
	}
	entry, ok := s.catalog.Entry(idx)
	if !ok {
		return app
	}

	title := fmt.Sprintf("%s - %s (%d/%d)", app, entry.DisplayName, idx+1, s.catalog.Len())
	switch s.state {
	case StateLoading:
		title += " - loading"
	case StateFailed:
		title += " - failed to load"
	}
	return title
}
