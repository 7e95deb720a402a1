package widget

// Carousel is manual, wrapping navigation over a fixed image list, as used by
// the project gallery.
type Carousel struct {
	images []string
	index  int
}

// NewCarousel returns a carousel positioned on start, clamped to range.
func NewCarousel(images []string, start int) *Carousel {
	c := &Carousel{images: append([]string(nil), images...)}
	c.Select(start)
	return c
}

func (c *Carousel) Next() {
	if len(c.images) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.images)
}

func (c *Carousel) Prev() {
	if len(c.images) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.images)) % len(c.images)
}

// Select jumps to image i; out of range values are clamped.
func (c *Carousel) Select(i int) {
	switch {
	case len(c.images) == 0 || i < 0:
		c.index = 0
	case i >= len(c.images):
		c.index = len(c.images) - 1
	default:
		c.index = i
	}
}

func (c *Carousel) Index() int { return c.index }

func (c *Carousel) Len() int { return len(c.images) }

// NextIndex and PrevIndex report where Next and Prev would land.
func (c *Carousel) NextIndex() int {
	if len(c.images) == 0 {
		return 0
	}
	return (c.index + 1) % len(c.images)
}

func (c *Carousel) PrevIndex() int {
	if len(c.images) == 0 {
		return 0
	}
	return (c.index - 1 + len(c.images)) % len(c.images)
}

// Current returns the selected image. ok is false for an empty list.
func (c *Carousel) Current() (string, bool) {
	if len(c.images) == 0 {
		return "", false
	}
	return c.images[c.index], true
}
