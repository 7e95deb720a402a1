package widget

import (
	"time"

	"github.com/Zachkp/folio/internal/clock"
)

const (
	DefaultCycle      = 2500 * time.Millisecond
	DefaultStartDelay = 500 * time.Millisecond
)

// ImageCyclerOptions configures thumbnail rotation. Zero fields take defaults.
type ImageCyclerOptions struct {
	Cycle      time.Duration
	StartDelay time.Duration
}

func (o ImageCyclerOptions) withDefaults() ImageCyclerOptions {
	if o.Cycle <= 0 {
		o.Cycle = DefaultCycle
	}
	if o.StartDelay <= 0 {
		o.StartDelay = DefaultStartDelay
	}
	return o
}

// CyclerFrame is a render snapshot of an ImageCycler. Image is empty and
// Placeholder set when there is nothing to show.
type CyclerFrame struct {
	Image       string
	Index       int
	Count       int
	Active      bool
	Hidden      bool
	Placeholder bool
}

// ImageCycler shows images[Index] and advances it on a timer only while the
// parent reports itself active (hovered).
type ImageCycler struct {
	sched  clock.Scheduler
	images []string
	opts   ImageCyclerOptions

	index   int
	active  bool
	mounted bool
	failed  map[int]bool

	start clock.Timer
	cycle clock.Timer

	onChange func()
}

// NewImageCycler returns an unmounted cycler over images.
func NewImageCycler(sched clock.Scheduler, images []string, opts ImageCyclerOptions) *ImageCycler {
	return &ImageCycler{
		sched:  sched,
		images: append([]string(nil), images...),
		opts:   opts.withDefaults(),
		failed: make(map[int]bool),
	}
}

// OnChange registers fn to be called after every visible state change.
func (c *ImageCycler) OnChange(fn func()) { c.onChange = fn }

// Mount shows the first image in the inactive state.
func (c *ImageCycler) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.index = 0
	c.active = false
}

// Unmount cancels all pending timers. No state changes happen afterwards.
func (c *ImageCycler) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.stopTimers()
}

// SetActive feeds the hover signal. A falling edge resets to the first image
// and cancels rotation immediately; a rising edge starts rotation after the
// start delay. Repeated values are ignored.
func (c *ImageCycler) SetActive(active bool) {
	if !c.mounted || active == c.active {
		return
	}
	c.active = active
	if !active {
		c.stopTimers()
		c.index = 0
		c.changed()
		return
	}
	if len(c.images) > 1 {
		c.start = c.sched.AfterFunc(c.opts.StartDelay, c.begin)
	}
	c.changed()
}

func (c *ImageCycler) begin() {
	if !c.mounted || !c.active {
		return
	}
	c.start = nil
	c.cycle = c.sched.AfterFunc(c.opts.Cycle, c.advance)
}

func (c *ImageCycler) advance() {
	if !c.mounted || !c.active {
		return
	}
	c.index = (c.index + 1) % len(c.images)
	c.cycle = c.sched.AfterFunc(c.opts.Cycle, c.advance)
	c.changed()
}

func (c *ImageCycler) stopTimers() {
	if c.start != nil {
		c.start.Stop()
		c.start = nil
	}
	if c.cycle != nil {
		c.cycle.Stop()
		c.cycle = nil
	}
}

// MarkFailed records that image i could not be loaded. The image is hidden;
// the index and the timer are left alone.
func (c *ImageCycler) MarkFailed(i int) {
	if !c.mounted || i < 0 || i >= len(c.images) || c.failed[i] {
		return
	}
	c.failed[i] = true
	if i == c.index {
		c.changed()
	}
}

func (c *ImageCycler) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Current returns the selected image reference. ok is false for an empty list.
func (c *ImageCycler) Current() (image string, ok bool) {
	if len(c.images) == 0 {
		return "", false
	}
	return c.images[c.index], true
}

func (c *ImageCycler) Index() int { return c.index }

func (c *ImageCycler) Active() bool { return c.active }

func (c *ImageCycler) Len() int { return len(c.images) }

// Hidden reports whether image i failed to load.
func (c *ImageCycler) Hidden(i int) bool { return c.failed[i] }

// Frame snapshots the current render state.
func (c *ImageCycler) Frame() CyclerFrame {
	img, ok := c.Current()
	return CyclerFrame{
		Image:       img,
		Index:       c.index,
		Count:       len(c.images),
		Active:      c.active,
		Hidden:      ok && c.failed[c.index],
		Placeholder: !ok,
	}
}
