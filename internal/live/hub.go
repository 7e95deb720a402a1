// Package live runs widgets server-side for streaming clients. Every stream
// gets its own event loop and widget instance; the stream's context bounds
// the widget's lifetime.
package live

import (
	"context"
	"errors"
	"sync"

	"github.com/Zachkp/folio/internal/clock"
	"github.com/Zachkp/folio/internal/eventloop"
	"github.com/Zachkp/folio/internal/widget"
)

var (
	// ErrStreamExists is returned when a viewer opens a second stream for the
	// same card.
	ErrStreamExists = errors.New("stream already open")
	// ErrNoStream is returned when a signal targets a card with no open stream.
	ErrNoStream = errors.New("no open stream")
)

type cardKey struct {
	viewer string
	slug   string
}

type cardStream struct {
	loop   *eventloop.Loop
	cycler *widget.ImageCycler
}

// Hub owns the live widget streams of the process.
type Hub struct {
	newLoop func() *eventloop.Loop

	mu      sync.Mutex
	cards   map[cardKey]*cardStream
	streams int
}

// Option configures a Hub.
type Option func(*Hub)

// WithScheduler backs every stream's loop with base instead of the real clock.
func WithScheduler(base clock.Scheduler) Option {
	return func(h *Hub) {
		h.newLoop = func() *eventloop.Loop { return eventloop.NewWithScheduler(base) }
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		newLoop: eventloop.New,
		cards:   make(map[cardKey]*cardStream),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Streams reports the number of open streams.
func (h *Hub) Streams() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.streams
}

func (h *Hub) track(delta int) {
	h.mu.Lock()
	h.streams += delta
	h.mu.Unlock()
}

// start runs loop until ctx ends, then disposes through final on the loop.
func (h *Hub) start(ctx context.Context, loop *eventloop.Loop, final func()) {
	h.track(1)
	go loop.Run(context.Background())
	go func() {
		<-ctx.Done()
		loop.Stop(final)
		<-loop.Done()
		h.track(-1)
	}()
}

// publish delivers v, replacing any value the consumer has not taken yet.
// Only the loop goroutine sends, so the send after draining cannot block.
func publish[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

// Typewriter mounts a TextRotator over phrases and streams its frames until
// ctx is cancelled. The first frame is the initial state.
func (h *Hub) Typewriter(ctx context.Context, phrases []string, opts widget.TextRotatorOptions) <-chan widget.TypewriterFrame {
	frames := make(chan widget.TypewriterFrame, 1)
	loop := h.newLoop()
	r := widget.NewTextRotator(loop.Scheduler(), phrases, opts)

	loop.Post(func() {
		r.OnChange(func() { publish(frames, r.Frame()) })
		r.Mount()
		publish(frames, r.Frame())
	})
	h.start(ctx, loop, r.Unmount)
	return frames
}

// Cycler mounts an ImageCycler for the viewer's card and streams its frames
// until ctx is cancelled. Hover and Fail address it by (viewer, slug).
func (h *Hub) Cycler(ctx context.Context, viewer, slug string, images []string, opts widget.ImageCyclerOptions) (<-chan widget.CyclerFrame, error) {
	key := cardKey{viewer, slug}
	loop := h.newLoop()
	cs := &cardStream{
		loop:   loop,
		cycler: widget.NewImageCycler(loop.Scheduler(), images, opts),
	}

	h.mu.Lock()
	if _, ok := h.cards[key]; ok {
		h.mu.Unlock()
		return nil, ErrStreamExists
	}
	h.cards[key] = cs
	h.mu.Unlock()

	frames := make(chan widget.CyclerFrame, 1)
	loop.Post(func() {
		cs.cycler.OnChange(func() { publish(frames, cs.cycler.Frame()) })
		cs.cycler.Mount()
		publish(frames, cs.cycler.Frame())
	})
	h.start(ctx, loop, func() {
		cs.cycler.Unmount()
		h.mu.Lock()
		if h.cards[key] == cs {
			delete(h.cards, key)
		}
		h.mu.Unlock()
	})
	return frames, nil
}

func (h *Hub) card(viewer, slug string) (*cardStream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cs, ok := h.cards[cardKey{viewer, slug}]
	if !ok {
		return nil, ErrNoStream
	}
	return cs, nil
}

// Hover forwards the pointer enter/leave signal to the viewer's card.
func (h *Hub) Hover(viewer, slug string, active bool) error {
	cs, err := h.card(viewer, slug)
	if err != nil {
		return err
	}
	if !cs.loop.Post(func() { cs.cycler.SetActive(active) }) {
		return ErrNoStream
	}
	return nil
}

// Fail reports that the viewer's browser could not load image i of the card.
func (h *Hub) Fail(viewer, slug string, i int) error {
	cs, err := h.card(viewer, slug)
	if err != nil {
		return err
	}
	if !cs.loop.Post(func() { cs.cycler.MarkFailed(i) }) {
		return ErrNoStream
	}
	return nil
}
