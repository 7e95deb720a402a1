// Package tui renders the portfolio in a terminal. The hero typewriter and
// the project thumbnails run on the same widgets the site streams, driven by
// bubbletea ticks instead of a server event loop.
package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/folio/internal/clock"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/widget"
)

type tab int

const (
	tabHome tab = iota
	tabAbout
	tabSkills
	tabProjects
	tabExperience
	tabContact
)

var tabNames = []string{"Home", "About", "Skills", "Projects", "Experience", "Contact"}

func (t tab) String() string { return tabNames[t] }

// Options tunes widget timing. Zero values use the widget defaults.
type Options struct {
	Typewriter widget.TextRotatorOptions
	Cycler     widget.ImageCyclerOptions

	// Scheduler replaces the tick-backed scheduler. Callbacks must run on
	// the goroutine calling Update.
	Scheduler clock.Scheduler
	// Copy replaces the system clipboard.
	Copy func(string) error
}

type Model struct {
	portfolio *content.Portfolio
	ticks     *teaScheduler // nil when Options.Scheduler is set
	copy      func(string) error

	keys keyMap
	help help.Model

	tab     tab
	focus   int
	hero    *widget.TextRotator
	cards   []*widget.ImageCycler
	gallery *widget.Carousel
	status  string
	width   int
}

func New(p *content.Portfolio, opts Options) *Model {
	m := &Model{
		portfolio: p,
		copy:      opts.Copy,
		keys:      defaultKeys(),
		help:      help.New(),
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	sched := opts.Scheduler
	if sched == nil {
		m.ticks = newTeaScheduler()
		sched = m.ticks
	}
	m.hero = widget.NewTextRotator(sched, p.Personal.Roles, opts.Typewriter)
	for _, pr := range p.Projects {
		m.cards = append(m.cards, widget.NewImageCycler(sched, pr.Thumbnails(), opts.Cycler))
	}
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(p *content.Portfolio, opts Options) error {
	m := New(p, opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	m.hero.Mount()
	for _, c := range m.cards {
		c.Mount()
	}
	return m.pendingTicks()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tickMsg:
		if m.ticks != nil {
			m.ticks.fire(msg.id)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	return m, tea.Batch(cmd, m.pendingTicks())
}

func (m *Model) pendingTicks() tea.Cmd {
	if m.ticks == nil {
		return nil
	}
	return m.ticks.drain()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dispose()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Copy):
		m.copyEmail()
		return nil
	}

	if m.gallery != nil {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.gallery = nil
		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Down):
			m.gallery.Next()
		case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Up):
			m.gallery.Prev()
		}
		m.syncHover()
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tab(len(tabNames))
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
	case m.tab == tabProjects && key.Matches(msg, m.keys.Down):
		if m.focus < len(m.cards)-1 {
			m.focus++
		}
	case m.tab == tabProjects && key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
	case m.tab == tabProjects && key.Matches(msg, m.keys.Open):
		m.openGallery()
	}
	m.syncHover()
	return nil
}

// syncHover makes the focused project card the hovered one. Cards are only
// hovered while the project list itself is on screen.
func (m *Model) syncHover() {
	hovered := -1
	if m.tab == tabProjects && m.gallery == nil {
		hovered = m.focus
	}
	for i, c := range m.cards {
		c.SetActive(i == hovered)
	}
}

func (m *Model) openGallery() {
	if m.focus >= len(m.portfolio.Projects) {
		return
	}
	thumbs := m.portfolio.Projects[m.focus].Thumbnails()
	if len(thumbs) == 0 {
		m.status = "No images for this project."
		return
	}
	m.gallery = widget.NewCarousel(thumbs, m.cards[m.focus].Index())
}

func (m *Model) email() string {
	if e := m.portfolio.Personal.Contact.Email; e != "" {
		return e
	}
	return m.portfolio.Personal.Social.Email
}

func (m *Model) copyEmail() {
	e := m.email()
	if e == "" {
		m.status = "No email address configured."
		return
	}
	if err := m.copy(e); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + e + " to the clipboard."
}

func (m *Model) dispose() {
	m.hero.Unmount()
	for _, c := range m.cards {
		c.Unmount()
	}
}
