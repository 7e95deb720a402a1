package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/folio/internal/clock"
)

// tickMsg fires the pending callback registered under id.
type tickMsg struct{ id int }

// teaScheduler turns widget timers into tea.Tick commands so every callback
// runs inside Update. Commands queue until the model drains them.
type teaScheduler struct {
	next    int
	pending map[int]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[int]func())}
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	s.next++
	id := s.next
	s.pending[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{id: id} }))
	return teaTimer{s: s, id: id}
}

// fire runs the callback for id. Ticks of stopped timers are dropped.
func (s *teaScheduler) fire(id int) {
	f, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	f()
}

// drain returns the commands queued since the last drain.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

type teaTimer struct {
	s  *teaScheduler
	id int
}

func (t teaTimer) Stop() bool {
	_, ok := t.s.pending[t.id]
	delete(t.s.pending, t.id)
	return ok
}
