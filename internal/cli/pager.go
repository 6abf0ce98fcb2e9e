package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unalkalkan/ChapterMark/internal/book"
)

const (
	headerHeight = 2
	footerHeight = 2
)

// pager shows one chapter at a time. Moving between chapters moves the bookmark.
type pager struct {
	book     *book.Book
	index    int
	viewport viewport.Model
	width    int
	ready    bool
	quitting bool
}

func newPager(b *book.Book, index int) pager {
	return pager{book: b, index: index}
}

func (m pager) Init() tea.Cmd {
	return nil
}

func (m pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "n", "right":
			m.turn(m.index + 1)
			return m, nil

		case "p", "left":
			m.turn(m.index - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.content())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// turn opens chapter i if it exists
func (m *pager) turn(i int) {
	if _, err := m.book.TextAt(i); err != nil {
		return
	}
	m.index = i
	if m.ready {
		m.viewport.SetContent(m.content())
		m.viewport.GotoTop()
	}
}

func (m pager) content() string {
	ch, err := m.book.Chapter(m.index)
	if err != nil {
		return ""
	}
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(ch.Body)
	}
	return ch.Body
}

func (m pager) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	ch, _ := m.book.Chapter(m.index)
	header := titleStyle.Render(ch.Title)
	status := statusStyle.Render(fmt.Sprintf("chapter %d/%d  %3.f%%", m.index, m.book.Len()-1, m.viewport.ScrollPercent()*100))
	controls := controlsStyle.Render("n next · p prev · ↑/↓ scroll · q quit")

	return header + "\n\n" + m.viewport.View() + "\n" + status + " " + controls
}
