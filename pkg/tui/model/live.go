package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/kubedig/pkg/core"
	"github.com/modoterra/kubedig/pkg/search"
)

// maxStreamLines bounds the scrollback kept for the live view. The record
// history itself is bounded separately by the queue capacity.
const maxStreamLines = 500

// ingest appends the received record to the history, together with any
// records already sitting in the channel: a burst then costs one redraw
// instead of one tick each, and the buffer never lags the streams by more
// than a tick. Exactly one stream line is rendered per call, from the
// newest record the live query admits.
func (a *App) ingest(first core.Record) {
	recs := []core.Record{first}
	draining := a.session != nil
	for draining {
		select {
		case rec, ok := <-a.session.records:
			if !ok {
				a.session.ended = true
				a.statusMsg = "all log streams ended"
				draining = false
			} else {
				recs = append(recs, rec)
			}
		default:
			draining = false
		}
	}

	for _, rec := range recs {
		a.history.Push(rec)
	}

	query := a.liveInput.Value()
	for i := len(recs) - 1; i >= 0; i-- {
		line, ok := renderLive(recs[i], query)
		if !ok {
			// Not rendered, but the record stays in the history.
			continue
		}
		a.streamLines = append(a.streamLines, line)
		if len(a.streamLines) > maxStreamLines {
			a.streamLines = a.streamLines[len(a.streamLines)-maxStreamLines:]
		}
		break
	}
}

// renderLive formats one record for the live view. A non-empty query acts
// as a highlight filter: records without a match are skipped.
func renderLive(rec core.Record, query string) (string, bool) {
	body := rec.Body
	if query != "" {
		highlighted, ok := search.Highlight(rec.Body, query)
		if !ok {
			return "", false
		}
		body = highlighted
	}
	return sourcePrefix(rec) + " " + body, true
}

func (a App) handleLiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, a.endSession(nextQuit)

	case "enter":
		// Dig into everything buffered so far.
		return a, a.endSession(nextDig)

	case "ctrl+r":
		// Restart tailing with a fresh source match and empty buffer.
		return a, a.endSession(nextLive)

	default:
		var cmd tea.Cmd
		a.liveInput, cmd = a.liveInput.Update(msg)
		return a, cmd
	}
}
