// Package widget holds the stateful widgets of the portfolio: the hero
// typewriter, the hover-driven project thumbnail cycler and the gallery
// carousel.
//
// Widgets are not safe for concurrent use. All methods, and every callback the
// widget schedules, must run on one goroutine (see package eventloop).
package widget

import (
	"time"

	"github.com/Zachkp/folio/internal/clock"
)

// Mode is the phase of the typewriter state machine.
type Mode int

const (
	Typing Mode = iota
	Pausing
	Deleting
)

func (m Mode) String() string {
	switch m {
	case Typing:
		return "typing"
	case Pausing:
		return "pausing"
	case Deleting:
		return "deleting"
	}
	return "unknown"
}

// TextRotatorOptions configures typewriter timing. Zero fields take defaults.
type TextRotatorOptions struct {
	TypeInterval   time.Duration
	DeleteInterval time.Duration
	Pause          time.Duration
	CursorBlink    time.Duration
}

const (
	DefaultTypeInterval   = 100 * time.Millisecond
	DefaultDeleteInterval = 50 * time.Millisecond
	DefaultPause          = 2000 * time.Millisecond
	DefaultCursorBlink    = 500 * time.Millisecond
)

func (o TextRotatorOptions) withDefaults() TextRotatorOptions {
	if o.TypeInterval <= 0 {
		o.TypeInterval = DefaultTypeInterval
	}
	if o.DeleteInterval <= 0 {
		o.DeleteInterval = DefaultDeleteInterval
	}
	if o.Pause <= 0 {
		o.Pause = DefaultPause
	}
	if o.CursorBlink <= 0 {
		o.CursorBlink = DefaultCursorBlink
	}
	return o
}

// TypewriterFrame is a render snapshot of a TextRotator.
type TypewriterFrame struct {
	Text          string
	CursorVisible bool
	Index         int
	Mode          Mode
}

// TextRotator types and deletes each phrase in turn, forever.
type TextRotator struct {
	sched   clock.Scheduler
	phrases [][]rune
	opts    TextRotatorOptions

	index   int
	shown   int // runes of phrases[index] currently displayed
	mode    Mode
	cursor  bool
	mounted bool

	step  clock.Timer
	blink clock.Timer

	onChange func()
}

// NewTextRotator returns an unmounted rotator over phrases.
func NewTextRotator(sched clock.Scheduler, phrases []string, opts TextRotatorOptions) *TextRotator {
	rs := make([][]rune, len(phrases))
	for i, p := range phrases {
		rs[i] = []rune(p)
	}
	return &TextRotator{
		sched:   sched,
		phrases: rs,
		opts:    opts.withDefaults(),
		cursor:  true,
	}
}

// OnChange registers fn to be called after every visible state change.
func (r *TextRotator) OnChange(fn func()) { r.onChange = fn }

// Mount resets the rotator and starts its timers. An empty phrase list mounts
// without scheduling anything.
func (r *TextRotator) Mount() {
	if r.mounted {
		return
	}
	r.mounted = true
	r.index, r.shown, r.mode, r.cursor = 0, 0, Typing, true
	if len(r.phrases) == 0 {
		return
	}
	r.step = r.sched.AfterFunc(r.opts.TypeInterval, r.tick)
	r.blink = r.sched.AfterFunc(r.opts.CursorBlink, r.toggleCursor)
}

// Unmount cancels all pending timers. No state changes happen afterwards.
func (r *TextRotator) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false
	if r.step != nil {
		r.step.Stop()
		r.step = nil
	}
	if r.blink != nil {
		r.blink.Stop()
		r.blink = nil
	}
}

func (r *TextRotator) tick() {
	if !r.mounted {
		return
	}
	target := r.phrases[r.index]
	switch r.mode {
	case Typing:
		if r.shown < len(target) {
			r.shown++
		}
		if r.shown == len(target) {
			r.mode = Pausing
			r.step = r.sched.AfterFunc(r.opts.Pause, r.tick)
		} else {
			r.step = r.sched.AfterFunc(r.opts.TypeInterval, r.tick)
		}
	case Pausing:
		r.mode = Deleting
		r.step = r.sched.AfterFunc(r.opts.DeleteInterval, r.tick)
	case Deleting:
		if r.shown > 0 {
			r.shown--
		}
		if r.shown == 0 {
			r.index = (r.index + 1) % len(r.phrases)
			r.mode = Typing
			r.step = r.sched.AfterFunc(r.opts.TypeInterval, r.tick)
		} else {
			r.step = r.sched.AfterFunc(r.opts.DeleteInterval, r.tick)
		}
	}
	r.changed()
}

func (r *TextRotator) toggleCursor() {
	if !r.mounted {
		return
	}
	r.cursor = !r.cursor
	r.blink = r.sched.AfterFunc(r.opts.CursorBlink, r.toggleCursor)
	r.changed()
}

func (r *TextRotator) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}

// Text returns the displayed prefix of the active phrase.
func (r *TextRotator) Text() string {
	if len(r.phrases) == 0 {
		return ""
	}
	return string(r.phrases[r.index][:r.shown])
}

func (r *TextRotator) CursorVisible() bool { return r.cursor }

func (r *TextRotator) Index() int { return r.index }

func (r *TextRotator) Mode() Mode { return r.mode }

func (r *TextRotator) Mounted() bool { return r.mounted }

// Frame snapshots the current render state.
func (r *TextRotator) Frame() TypewriterFrame {
	return TypewriterFrame{
		Text:          r.Text(),
		CursorVisible: r.cursor,
		Index:         r.index,
		Mode:          r.mode,
	}
}
