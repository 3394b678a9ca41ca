// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are drained in place of a
// tea.Program. Timer-driven Cmds (stopwatch ticks, cursor blinks) block on
// channels; they run with a short timeout and are dropped if they do not
// return in time, so views stay frozen between explicit messages.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many Cmds one message may chain into.
const MaxDrainDepth = 100

// cmdTimeout is how long a Cmd may run before it is treated as a timer and
// skipped. Stopwatch ticks wait a full interval.
const cmdTimeout = 10 * time.Millisecond

// namedKeys maps the names accepted by Press to key messages. Any other
// name is typed as runes.
var namedKeys = map[string]tea.KeyMsg{
	"enter":  {Type: tea.KeyEnter},
	"esc":    {Type: tea.KeyEsc},
	"ctrl+c": {Type: tea.KeyCtrlC},
	"space":  {Type: tea.KeySpace, Runes: []rune{' '}},
	"up":     {Type: tea.KeyUp},
	"down":   {Type: tea.KeyDown},
}

// Driver feeds messages to a tea.Model and records whether it quit.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. The runtime
	// normally swallows it, so the model never sees it.
	Quitting bool
}

type Option func(*Driver)

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send runs msg through Update and drains what it returns. Messages sent
// after the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// Press sends each key in turn: a name from namedKeys or literal text.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		msg, ok := namedKeys[k]
		if !ok {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		d.Send(msg)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := run(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}
	if isTimerMsg(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isTimerMsg reports messages that only reschedule themselves, such as
// stopwatch ticks and cursor blinks, which would otherwise chain forever.
func isTimerMsg(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Tick") || strings.Contains(strings.ToLower(t), "blink")
}
