package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/kubedig/pkg/search"
)

// enterDig freezes the history and switches to the search view. The
// snapshot is immutable for the duration of the mode.
func (a *App) enterDig() {
	a.mode = ModeDig
	a.digInput = newInput(digPrompt)
	a.lastQuery = ""
	a.snapshot = a.history.Snapshot()
	a.matches = search.Filter(a.snapshot, "")
	a.digView = viewportSized(a.width, a.height)
	a.digView.SetContent(a.renderMatches())
}

func (a App) handleDigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "esc":
		// Back to live tailing with a fresh session.
		a.mode = ModeLive
		a.liveInput = newInput(livePrompt)
		return a, tea.Batch(a.startSession(), textinput.Blink)

	case "up", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		a.digView, cmd = a.digView.Update(msg)
		return a, cmd

	default:
		var cmd tea.Cmd
		a.digInput, cmd = a.digInput.Update(msg)
		// Recompute only when the query text actually changed; repeated
		// input events with the same text cost nothing.
		if query := a.digInput.Value(); query != a.lastQuery {
			a.lastQuery = query
			a.matches = search.Filter(a.snapshot, query)
			a.digView.SetContent(a.renderMatches())
			a.digView.GotoTop()
		}
		return a, cmd
	}
}

// renderMatches builds the dig view's content: every admitted record in
// arrival order, source-colored prefix plus highlighted body.
func (a App) renderMatches() string {
	if len(a.matches) == 0 {
		return dimStyle.Render("no matches")
	}
	lines := make([]string, len(a.matches))
	for i, m := range a.matches {
		lines[i] = sourcePrefix(m.Record) + " " + m.Render()
	}
	return strings.Join(lines, "\n")
}
