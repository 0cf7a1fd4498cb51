// Package model implements the kubedig TUI: the live tailing view and the
// dig (full-buffer search) view, and the switching between them.
package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/kubedig/pkg/cluster"
	"github.com/modoterra/kubedig/pkg/core"
	"github.com/modoterra/kubedig/pkg/search"
	"github.com/modoterra/kubedig/pkg/stream"
)

// Mode identifies the current interaction mode.
type Mode int

const (
	ModeLive Mode = iota
	ModeDig
)

// next is where the app goes after the current session finishes tearing down.
type next int

const (
	nextLive next = iota
	nextDig
	nextQuit
)

// Options configures the app.
type Options struct {
	Client         cluster.Client
	Matcher        *cluster.Matcher
	LogTimeout     time.Duration
	RenderInterval time.Duration
	QueueCapacity  int
	Logger         *slog.Logger
}

// session is one live tailing run: its cancellation handle and workers.
// A fresh session is created every time the app (re)enters live mode.
type session struct {
	cancel  context.CancelFunc
	sup     *stream.Supervisor
	records <-chan core.Record
	ended   bool
}

// App is the root Bubble Tea model.
type App struct {
	opts Options
	mode Mode

	width  int
	height int

	// Live mode
	liveInput   textinput.Model
	history     *core.History
	session     *session
	sessionID   int
	streamLines []string

	// Dig mode
	digInput  textinput.Model
	digView   viewport.Model
	snapshot  []core.Record
	matches   []search.Match
	lastQuery string

	statusMsg string
	fatalErr  error
	quitting  bool
}

// New creates the app model.
func New(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return App{
		opts:      opts,
		mode:      ModeLive,
		liveInput: newInput(livePrompt),
		digInput:  newInput(digPrompt),
		history:   core.NewHistory(opts.QueueCapacity),
	}
}

func newInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = promptStyles[prompt]
	ti.CharLimit = 256
	ti.Focus()
	return ti
}

// FatalErr returns the startup or listing error that ended the program,
// if any. Read by main after the program loop exits.
func (a App) FatalErr() error {
	return a.fatalErr
}

// Init schedules the first tailing session. The session itself is created
// in Update so the model state it records is kept.
func (a App) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return startMsg{} }, textinput.Blink)
}

// --- Messages ---

// startMsg kicks off the first live session.
type startMsg struct{}

// tickMsg is the render-interval tick of one session.
type tickMsg struct{ id int }

// recordMsg carries one record dequeued from the session's channel.
type recordMsg struct {
	id  int
	rec core.Record
}

// streamDoneMsg reports that the session's record channel closed: every
// worker finished and the supervisor is done.
type streamDoneMsg struct{ id int }

// sessionStartedMsg carries the freshly started supervisor.
type sessionStartedMsg struct {
	id      int
	sup     *stream.Supervisor
	records <-chan core.Record
	sources int
}

// sessionEndedMsg reports a completed teardown and where to go next.
type sessionEndedMsg struct {
	id   int
	next next
}

// fatalMsg carries an unrecoverable error; the program exits.
type fatalMsg struct{ err error }

// --- Session lifecycle ---

// startSession creates a fresh cancellation scope and kicks off source
// matching and worker spawning off the update loop.
func (a *App) startSession() tea.Cmd {
	a.sessionID++
	ctx, cancel := context.WithCancel(context.Background())
	a.session = &session{cancel: cancel}
	a.history = core.NewHistory(a.opts.QueueCapacity)
	a.streamLines = nil

	id := a.sessionID
	opts := a.opts
	return func() tea.Msg {
		sources, err := opts.Matcher.Resolve(ctx, opts.Client)
		if err != nil {
			if ctx.Err() != nil {
				// The session was torn down while resolving; not fatal.
				return nil
			}
			cancel()
			return fatalMsg{err: err}
		}
		sup := stream.NewSupervisor(opts.Client, opts.LogTimeout, opts.Logger)
		records := sup.Start(ctx, sources)
		return sessionStartedMsg{id: id, sup: sup, records: records, sources: len(sources)}
	}
}

// endSession cancels the running session and waits for the workers to
// join before moving on.
func (a *App) endSession(to next) tea.Cmd {
	s := a.session
	if s == nil {
		return a.transition(sessionEndedMsg{id: a.sessionID, next: to})
	}
	s.cancel()
	if s.sup == nil {
		// Spawning has not finished yet; the cancelled context stops it
		// early and the stale sessionStartedMsg is dropped by id.
		return a.transition(sessionEndedMsg{id: a.sessionID, next: to})
	}

	id := a.sessionID
	sup := s.sup
	logger := a.opts.Logger
	return func() tea.Msg {
		if err := sup.Wait(); err != nil {
			logger.Warn("session ended with worker errors", "err", err)
		}
		return sessionEndedMsg{id: id, next: to}
	}
}

// transition applies a sessionEndedMsg immediately, without a command
// round-trip. Used when there are no workers to wait for.
func (a *App) transition(msg sessionEndedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func tickCmd(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// waitRecord blocks on the shared record channel. Workers stay blocked on
// their capacity-one sends until this receive happens; that is the only
// backpressure in the system.
func waitRecord(id int, records <-chan core.Record) tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-records
		if !ok {
			return streamDoneMsg{id: id}
		}
		return recordMsg{id: id, rec: rec}
	}
}

// --- Update ---

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.digView.Width = msg.Width
		a.digView.Height = max(msg.Height-2, 1)
		return a, nil

	case startMsg:
		return a, a.startSession()

	case fatalMsg:
		a.fatalErr = msg.err
		a.quitting = true
		return a, tea.Quit

	case sessionStartedMsg:
		if msg.id != a.sessionID || a.session == nil {
			return a, nil
		}
		a.session.sup = msg.sup
		a.session.records = msg.records
		a.statusMsg = fmt.Sprintf("tailing %d sources", msg.sources)
		return a, tickCmd(a.sessionID, a.opts.RenderInterval)

	case tickMsg:
		if msg.id != a.sessionID || a.session == nil || a.session.records == nil || a.session.ended {
			return a, nil
		}
		return a, waitRecord(a.sessionID, a.session.records)

	case recordMsg:
		if msg.id != a.sessionID || a.session == nil {
			return a, nil
		}
		a.ingest(msg.rec)
		return a, tickCmd(a.sessionID, a.opts.RenderInterval)

	case streamDoneMsg:
		if msg.id != a.sessionID || a.session == nil {
			return a, nil
		}
		a.session.ended = true
		a.statusMsg = "all log streams ended"
		return a, nil

	case sessionEndedMsg:
		if msg.id != a.sessionID {
			return a, nil
		}
		return a.afterSession(msg)

	case tea.KeyMsg:
		if a.mode == ModeDig {
			return a.handleDigKey(msg)
		}
		return a.handleLiveKey(msg)
	}

	return a, nil
}

// afterSession finishes a mode transition once the old session's workers
// have joined. At most one session is ever active.
func (a App) afterSession(msg sessionEndedMsg) (tea.Model, tea.Cmd) {
	a.session = nil
	switch msg.next {
	case nextQuit:
		a.quitting = true
		return a, tea.Quit
	case nextDig:
		a.enterDig()
		return a, textinput.Blink
	default:
		a.mode = ModeLive
		a.liveInput = newInput(livePrompt)
		return a, tea.Batch(a.startSession(), textinput.Blink)
	}
}
