package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/clock"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/widget"
)

var testOpts = Options{
	Typewriter: widget.TextRotatorOptions{
		TypeInterval:   10 * time.Millisecond,
		DeleteInterval: 5 * time.Millisecond,
		Pause:          100 * time.Millisecond,
		CursorBlink:    50 * time.Millisecond,
	},
	Cycler: widget.ImageCyclerOptions{
		Cycle:      100 * time.Millisecond,
		StartDelay: 50 * time.Millisecond,
	},
}

func newTestModel(t *testing.T) (*Model, *clock.Fake, *[]string) {
	t.Helper()
	p, err := content.Default()
	require.NoError(t, err)

	fake := clock.NewFake()
	var copied []string
	opts := testOpts
	opts.Scheduler = fake
	opts.Copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	m := New(p, opts)
	m.Init()
	return m, fake, &copied
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func activeCards(m *Model) []int {
	var out []int
	for i, c := range m.cards {
		if c.Active() {
			out = append(out, i)
		}
	}
	return out
}

func TestHeroTypesFirstRole(t *testing.T) {
	m, fake, _ := newTestModel(t)
	role := m.portfolio.Personal.Roles[0]

	fake.Advance(20 * time.Millisecond)
	require.Equal(t, role[:2], m.hero.Text())

	fake.Advance(time.Duration(len(role)-2) * 10 * time.Millisecond)
	require.Equal(t, role, m.hero.Text())
	require.Contains(t, m.View(), role)
}

func TestFocusedCardIsHovered(t *testing.T) {
	m, fake, _ := newTestModel(t)
	require.Empty(t, activeCards(m))

	press(m, keyTab, keyTab, keyTab)
	require.Equal(t, tabProjects, m.tab)
	require.Equal(t, []int{0}, activeCards(m))

	fake.Advance(150 * time.Millisecond)
	require.Equal(t, 1, m.cards[0].Index())

	press(m, keyDown)
	require.Equal(t, []int{1}, activeCards(m))
	require.Equal(t, 0, m.cards[0].Index())

	press(m, keyTab)
	require.Equal(t, tabExperience, m.tab)
	require.Empty(t, activeCards(m))
}

func TestGalleryStartsAtShownImage(t *testing.T) {
	m, fake, _ := newTestModel(t)
	press(m, keyTab, keyTab, keyTab)
	fake.Advance(150 * time.Millisecond)

	press(m, keyEnter)
	require.NotNil(t, m.gallery)
	require.Equal(t, 1, m.gallery.Index())
	require.Empty(t, activeCards(m))
	require.Contains(t, m.View(), "2 / 3")

	press(m, keyRight)
	require.Contains(t, m.View(), "3 / 3")
	press(m, keyRight)
	require.Contains(t, m.View(), "1 / 3")

	press(m, keyEsc)
	require.Nil(t, m.gallery)
	require.Equal(t, tabProjects, m.tab)
	require.Equal(t, []int{0}, activeCards(m))
}

func TestGalleryWithoutImages(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, keyTab, keyTab, keyTab)
	for range m.cards {
		press(m, keyDown)
	}
	require.Equal(t, len(m.cards)-1, m.focus)

	press(m, keyEnter)
	require.Nil(t, m.gallery)
	require.Contains(t, m.View(), "No images for this project.")
}

func TestCopyEmail(t *testing.T) {
	m, _, copied := newTestModel(t)
	press(m, runes("c"))
	require.Equal(t, []string{"hello@example.com"}, *copied)
	require.Contains(t, m.View(), "Copied hello@example.com")

	m.copy = func(string) error { return errors.New("no clipboard") }
	press(m, runes("c"))
	require.Contains(t, m.View(), "Copy failed: no clipboard")
}

func TestQuitStopsAllTimers(t *testing.T) {
	m, fake, _ := newTestModel(t)
	press(m, keyTab, keyTab, keyTab)
	require.Positive(t, fake.Pending())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.False(t, m.hero.Mounted())
	require.Zero(t, fake.Pending())

	text := m.hero.Text()
	fake.Advance(time.Second)
	require.Equal(t, text, m.hero.Text())
}

func TestTicksDriveWidgetsThroughUpdate(t *testing.T) {
	p, err := content.Default()
	require.NoError(t, err)
	m := New(p, testOpts)
	require.NotNil(t, m.Init())

	// the hero's first typing step is the first timer created
	m.Update(tickMsg{id: 1})
	require.Equal(t, p.Personal.Roles[0][:1], m.hero.Text())

	m.Update(tickMsg{id: 1})
	require.Equal(t, p.Personal.Roles[0][:1], m.hero.Text())
}
