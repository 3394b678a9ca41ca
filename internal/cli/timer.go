package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// TimerResult is what the study timer hands back when it exits.
type TimerResult struct {
	Elapsed time.Duration
	// Stopped is false when the session was discarded.
	Stopped bool
}

// Minutes is the elapsed time in whole minutes.
func (r TimerResult) Minutes() int {
	return int(r.Elapsed / time.Minute)
}

type timerKeyMap struct {
	Toggle key.Binding
	Stop   key.Binding
	Cancel key.Binding
}

var timerKeys = timerKeyMap{
	Toggle: key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space", "pause/resume")),
	Stop:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "stop and log")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "discard")),
}

// timerModel is a pausable stopwatch. Elapsed time is measured against its
// own clock; the stopwatch only drives redraws.
type timerModel struct {
	label string
	now   func() time.Time
	sw    stopwatch.Model
	help  help.Model

	running     bool
	resumedAt   time.Time
	accumulated time.Duration

	stopped   bool
	cancelled bool
}

func newTimerModel(label string, now func() time.Time) timerModel {
	if now == nil {
		now = time.Now
	}
	return timerModel{
		label:     label,
		now:       now,
		sw:        stopwatch.NewWithInterval(time.Second),
		help:      help.New(),
		running:   true,
		resumedAt: now(),
	}
}

func (m timerModel) Init() tea.Cmd {
	return m.sw.Init()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, timerKeys.Cancel):
			m.pause()
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, timerKeys.Stop):
			m.pause()
			m.stopped = true
			return m, tea.Quit
		case key.Matches(msg, timerKeys.Toggle):
			if m.running {
				m.pause()
				return m, m.sw.Stop()
			}
			m.running = true
			m.resumedAt = m.now()
			return m, m.sw.Start()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sw, cmd = m.sw.Update(msg)
	return m, cmd
}

func (m *timerModel) pause() {
	if !m.running {
		return
	}
	m.accumulated += m.now().Sub(m.resumedAt)
	m.running = false
}

// Elapsed is the running time excluding pauses.
func (m timerModel) Elapsed() time.Duration {
	if m.running {
		return m.accumulated + m.now().Sub(m.resumedAt)
	}
	return m.accumulated
}

func (m timerModel) result() TimerResult {
	return TimerResult{Elapsed: m.Elapsed(), Stopped: m.stopped && !m.cancelled}
}

func (m timerModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Studying "+m.label) + "\n\n")

	clock := formatClock(m.Elapsed())
	if m.running {
		b.WriteString("  " + formatter.StyleGreen.Bold(true).Render(clock))
	} else {
		b.WriteString("  " + formatter.StyleYellow.Render(clock) + "  " + formatter.Dim("paused"))
	}
	b.WriteString("\n\n")

	if m.stopped || m.cancelled {
		return b.String()
	}
	b.WriteString(m.help.ShortHelpView([]key.Binding{timerKeys.Toggle, timerKeys.Stop, timerKeys.Cancel}))
	b.WriteString("\n")
	return b.String()
}

// formatClock renders d as HH:MM:SS.
func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

// runTimerProgram runs the timer full screen until it is stopped or discarded.
func runTimerProgram(ctx context.Context, label string) (TimerResult, error) {
	p := tea.NewProgram(newTimerModel(label, time.Now), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return TimerResult{}, fmt.Errorf("running timer: %w", err)
	}
	m, ok := final.(timerModel)
	if !ok {
		return TimerResult{}, fmt.Errorf("timer exited with unexpected model %T", final)
	}
	return m.result(), nil
}

func newTimerCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Time a study session and log it",
		Long: `Start a stopwatch for a subject. Space pauses and resumes, enter stops
and logs the whole minutes studied, q discards the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" {
				category = app.defaultCategory()
			}
			cat, err := app.lookupCategory(category)
			if err != nil {
				return err
			}

			run := app.RunTimer
			if run == nil {
				if !app.interactive() {
					return fmt.Errorf("the timer needs an interactive terminal")
				}
				run = runTimerProgram
			}
			res, err := run(cmd.Context(), cat.Label())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Stopped {
				fmt.Fprintln(out, "Session discarded.")
				return nil
			}
			if res.Minutes() < 1 {
				fmt.Fprintf(out, "Studied %s, less than a minute. Nothing logged.\n", formatClock(res.Elapsed))
				return nil
			}
			return logSession(cmd.Context(), app, out, res.Minutes(), cat.Name, time.Time{})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "subject to time (default timer.default_category)")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories(app))

	return cmd
}
