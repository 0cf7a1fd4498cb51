package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/modoterra/kubedig/pkg/core"
)

const (
	livePrompt = "❯❯ "
	digPrompt  = "❯❯❯ "
)

var (
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	promptStyles = map[string]lipgloss.Style{
		livePrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		digPrompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

// sourcePrefix renders a record's source key in its stable color.
func sourcePrefix(rec core.Record) string {
	return lipgloss.NewStyle().Foreground(rec.Color).Render(rec.SourceKey)
}

func viewportSized(width, height int) viewport.Model {
	return viewport.New(max(width, 1), max(height-2, 1))
}

// View renders the TUI.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}
	if a.mode == ModeDig {
		return a.viewDig()
	}
	return a.viewLive()
}

// viewLive shows the scrolling stream above the query editor.
func (a App) viewLive() string {
	body := max(a.height-2, 0)
	lines := a.streamLines
	if len(lines) > body {
		lines = lines[len(lines)-body:]
	}

	var b strings.Builder
	pad := body - len(lines)
	for i := 0; i < body; i++ {
		if i >= pad {
			b.WriteString(ansi.Truncate(lines[i-pad], a.width, "…"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(a.liveInput.View())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("enter:dig  ctrl+r:restart  esc:quit") + "  " + dimStyle.Render(a.statusMsg))
	return b.String()
}

// viewDig shows the filtered history above the search editor.
func (a App) viewDig() string {
	var b strings.Builder
	b.WriteString(a.digView.View())
	b.WriteByte('\n')
	b.WriteString(a.digInput.View())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("esc:back to live  ↑/↓:scroll  ctrl+c:quit"))
	return b.String()
}
