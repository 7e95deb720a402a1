package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/folio/internal/widget"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}

	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Foreground(accent).Underline(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	selStyle      = lipgloss.NewStyle().Foreground(accent).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedCard   = cardStyle.BorderForeground(accent)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	lightboxStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2)
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(m.portfolio.Personal.Name) + "\n")
	b.WriteString(m.viewTabs() + "\n\n")

	if m.gallery != nil {
		b.WriteString(m.viewGallery())
	} else {
		switch m.tab {
		case tabHome:
			b.WriteString(m.viewHome())
		case tabAbout:
			b.WriteString(m.viewAbout())
		case tabSkills:
			b.WriteString(m.viewSkills())
		case tabProjects:
			b.WriteString(m.viewProjects())
		case tabExperience:
			b.WriteString(m.viewExperience())
		case tabContact:
			b.WriteString(m.viewContact())
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) viewTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts[i] = activeTab.Render(name)
		} else {
			parts[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func typewriterLine(f widget.TypewriterFrame) string {
	cursor := " "
	if f.CursorVisible {
		cursor = "▌"
	}
	return f.Text + cursor
}

func (m *Model) viewHome() string {
	p := m.portfolio.Personal
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hi, I'm "+p.FirstName) + "\n")
	b.WriteString(selStyle.Render(typewriterLine(m.hero.Frame())) + "\n\n")
	b.WriteString(p.Tagline + "\n\n")
	b.WriteString(faintStyle.Render(p.HeroDescription) + "\n")
	return b.String()
}

func (m *Model) viewAbout() string {
	a := m.portfolio.Personal.About
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title) + "\n")
	for _, para := range a.Description {
		b.WriteString(para + "\n\n")
	}
	for _, h := range a.Highlights {
		b.WriteString("• " + h + "\n")
	}
	return b.String()
}

func (m *Model) viewSkills() string {
	var b strings.Builder
	for _, cat := range m.portfolio.SkillCategories {
		b.WriteString(selStyle.Render(cat.Name) + " " + faintStyle.Render(cat.Description) + "\n")
		for _, s := range cat.Skills {
			b.WriteString(fmt.Sprintf("  %-14s %s\n", s.Name, levelBar(s.Level)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// levelBar draws a 0-100 skill level as ten cells.
func levelBar(level int) string {
	n := max(0, min(10, level/10))
	return strings.Repeat("█", n) + faintStyle.Render(strings.Repeat("░", 10-n))
}

func (m *Model) viewProjects() string {
	var b strings.Builder
	for i, pr := range m.portfolio.Projects {
		body := selStyle.Render(pr.Title) + "  " + faintStyle.Render(pr.Category) + "\n" +
			pr.Problem + "\n" +
			cyclerLine(m.cards[i].Frame())
		style := cardStyle
		if i == m.focus {
			style = focusedCard
		}
		b.WriteString(style.Render(body) + "\n")
	}
	return b.String()
}

// cyclerLine shows the card's current image by file name with position dots.
func cyclerLine(f widget.CyclerFrame) string {
	if f.Placeholder {
		return faintStyle.Render("▢ no preview")
	}
	name := path.Base(f.Image)
	if f.Hidden {
		name = faintStyle.Render(name + " (unavailable)")
	}
	if f.Count < 2 {
		return name
	}
	dots := make([]string, f.Count)
	for i := range dots {
		dots[i] = "○"
		if i == f.Index {
			dots[i] = "●"
		}
	}
	return name + "  " + strings.Join(dots, " ")
}

func (m *Model) viewGallery() string {
	pr := m.portfolio.Projects[m.focus]
	img, _ := m.gallery.Current()
	body := fmt.Sprintf("%s  %d / %d\n\n%s\n\n%s",
		selStyle.Render(pr.Title),
		m.gallery.Index()+1, m.gallery.Len(),
		img,
		faintStyle.Render("←/→ browse   esc close"))
	return lightboxStyle.Render(body) + "\n"
}

func (m *Model) viewExperience() string {
	var b strings.Builder
	for _, item := range m.portfolio.Timeline() {
		title := selStyle.Render(item.Title)
		if item.Current {
			title += " " + statusStyle.Render("(current)")
		}
		b.WriteString(title + "\n")
		b.WriteString(item.Organization + "  " + faintStyle.Render(item.Period) + "\n")
		for _, a := range item.Achievements {
			b.WriteString("  • " + a + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewContact() string {
	c := m.portfolio.Personal.Contact
	s := m.portfolio.Personal.Social
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title) + "\n")
	b.WriteString(c.Description + "\n\n")
	if e := m.email(); e != "" {
		b.WriteString("Email     " + selStyle.Render(e) + faintStyle.Render("  (c to copy)") + "\n")
	}
	for _, row := range [][2]string{{"Location", c.Location}, {"GitHub", s.GitHub}, {"LinkedIn", s.LinkedIn}} {
		if row[1] != "" {
			b.WriteString(fmt.Sprintf("%-9s %s\n", row[0], row[1]))
		}
	}
	return b.String()
}
