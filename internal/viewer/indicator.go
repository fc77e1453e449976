package viewer

import (
	"sync"

	"go.uber.org/zap"
)

// Indicator is told about loading progress and selection changes so a
// presentation layer can show a spinner or highlight the active panorama.
type Indicator interface {
	LoadingStarted(index int)
	LoadingFinished(index int)
	ActiveIndexChanged(index int)
}

// EventKind identifies an indicator notification.
type EventKind int

const (
	EventLoadingStarted EventKind = iota
	EventLoadingFinished
	EventActiveIndexChanged
)

func (k EventKind) String() string {
	switch k {
	case EventLoadingStarted:
		return "loading_started"
	case EventLoadingFinished:
		return "loading_finished"
	case EventActiveIndexChanged:
		return "active_index_changed"
	default:
		return "unknown"
	}
}

// Event is one indicator notification.
type Event struct {
	Kind  EventKind
	Index int
}

// LogIndicator writes notifications to a logger.
type LogIndicator struct {
	Log *zap.Logger
}

func (l LogIndicator) LoadingStarted(index int) {
	l.Log.Info("loading panorama", zap.Int("index", index))
}

func (l LogIndicator) LoadingFinished(index int) {
	l.Log.Debug("loading finished", zap.Int("index", index))
}

func (l LogIndicator) ActiveIndexChanged(index int) {
	l.Log.Info("active panorama changed", zap.Int("index", index))
}

// MultiIndicator forwards every notification to each element in order.
type MultiIndicator []Indicator

func (m MultiIndicator) LoadingStarted(index int) {
	for _, ind := range m {
		ind.LoadingStarted(index)
	}
}

func (m MultiIndicator) LoadingFinished(index int) {
	for _, ind := range m {
		ind.LoadingFinished(index)
	}
}

func (m MultiIndicator) ActiveIndexChanged(index int) {
	for _, ind := range m {
		ind.ActiveIndexChanged(index)
	}
}

// Broadcaster fans notifications out to subscribers.
// Slow subscribers miss events rather than block the loop.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel of events and a cleanup function.
// The caller must call cleanup when done; it closes the channel.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.clients, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsub
}

// Publish sends evt to every subscriber that has room for it.
func (b *Broadcaster) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- evt:
		default:
			// channel full, skip
		}
	}
}

func (b *Broadcaster) LoadingStarted(index int) {
	b.Publish(Event{Kind: EventLoadingStarted, Index: index})
}

func (b *Broadcaster) LoadingFinished(index int) {
	b.Publish(Event{Kind: EventLoadingFinished, Index: index})
}

func (b *Broadcaster) ActiveIndexChanged(index int) {
	b.Publish(Event{Kind: EventActiveIndexChanged, Index: index})
}
