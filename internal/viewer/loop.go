package viewer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrQuit ends a Loop without error when returned by a frame.
var ErrQuit = errors.New("quit")

// ErrLoopStarted is returned by Run on a loop that already ran.
var ErrLoopStarted = errors.New("loop already started")

// Pacer blocks between frames.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context) error

func (f PacerFunc) Wait(ctx context.Context) error { return f(ctx) }

// SwapPacer does not wait; the frame itself blocks on a vsync'd buffer swap.
var SwapPacer = PacerFunc(func(ctx context.Context) error { return ctx.Err() })

// TickerPacer paces frames at a fixed rate.
type TickerPacer struct {
	ticker *time.Ticker
}

// NewTickerPacer creates a pacer for fps frames per second (60 when fps <= 0).
func NewTickerPacer(fps int) *TickerPacer {
	if fps <= 0 {
		fps = 60
	}
	return &TickerPacer{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Wait blocks until the next tick or cancellation.
func (p *TickerPacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}

// PacerFor returns SwapPacer when buffer swaps wait for vblank and a
// TickerPacer at fps otherwise. Callers must Stop a returned TickerPacer.
func PacerFor(vsync bool, fps int) Pacer {
	if vsync {
		return SwapPacer
	}
	return NewTickerPacer(fps)
}

// Loop calls a frame function repeatedly until stopped. Frames run on the
// goroutine that called Run, which matters for OpenGL.
type Loop struct {
	frame func() error
	pacer Pacer

	started  atomic.Bool
	frames   atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewLoop creates a loop running frame once per pacer tick.
func NewLoop(frame func() error, pacer Pacer) *Loop {
	return &Loop{
		frame: frame,
		pacer: pacer,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Run blocks until Stop is called, ctx is cancelled or a frame fails.
// A frame returning ErrQuit stops the loop cleanly.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopStarted
	}
	defer close(l.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-l.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if ctx.Err() != nil || l.stopped() {
			return nil
		}

		if err := l.frame(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		l.frames.Add(1)

		if err := l.pacer.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Stop cancels the loop. Safe to call more than once and before Run.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Loop) stopped() bool {
	select {
	case <-l.stop:
		return true
	default:
		return false
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Frames returns how many frames completed.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}
