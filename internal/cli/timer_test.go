package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/levelup/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTimerDriver(t *testing.T) (*teatest.Driver, *manualClock) {
	t.Helper()
	clock := &manualClock{t: testStart}
	d := teatest.New(t, newTimerModel("Mathematics", clock.Now), teatest.WithSize(80, 24))
	d.DrainInit()
	return d, clock
}

func TestTimer_PauseIsNotCounted(t *testing.T) {
	d, clock := newTimerDriver(t)

	clock.Advance(25 * time.Minute)
	d.Press("p")
	clock.Advance(10 * time.Minute)

	view := stripANSI(d.View())
	assert.Contains(t, view, "00:25:00")
	assert.Contains(t, view, "paused")

	d.Press("space")
	clock.Advance(5*time.Minute + 30*time.Second)
	assert.Contains(t, stripANSI(d.View()), "00:30:30")

	d.Press("enter")
	require.True(t, d.Quitting)

	res := d.Model.(timerModel).result()
	assert.True(t, res.Stopped)
	assert.Equal(t, 30*time.Minute+30*time.Second, res.Elapsed)
	assert.Equal(t, 30, res.Minutes())
}

func TestTimer_ElapsedFreezesOnStop(t *testing.T) {
	d, clock := newTimerDriver(t)

	clock.Advance(12 * time.Minute)
	d.Press("s")
	clock.Advance(time.Hour)

	m := d.Model.(timerModel)
	assert.Equal(t, 12*time.Minute, m.Elapsed())
	assert.NotContains(t, stripANSI(m.View()), "pause/resume")
}

func TestTimer_Discard(t *testing.T) {
	for _, press := range []func(*teatest.Driver){
		func(d *teatest.Driver) { d.Press("q") },
		func(d *teatest.Driver) { d.Press("esc") },
		func(d *teatest.Driver) { d.Press("ctrl+c") },
	} {
		d, clock := newTimerDriver(t)
		clock.Advance(40 * time.Minute)
		press(d)

		require.True(t, d.Quitting)
		assert.False(t, d.Model.(timerModel).result().Stopped)
	}
}

func TestTimer_View(t *testing.T) {
	d, clock := newTimerDriver(t)
	clock.Advance(time.Hour + 2*time.Minute + 5*time.Second)

	view := stripANSI(d.View())
	assert.Contains(t, view, "STUDYING MATHEMATICS")
	assert.Contains(t, view, "01:02:05")
	assert.Contains(t, view, "pause/resume")
	assert.NotContains(t, view, "paused")
}

func TestTimer_OtherKeysIgnored(t *testing.T) {
	d, clock := newTimerDriver(t)
	clock.Advance(time.Minute)
	d.Press("x")

	assert.False(t, d.Quitting)
	assert.True(t, d.Model.(timerModel).running)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", formatClock(0))
	assert.Equal(t, "00:00:59", formatClock(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "10:00:00", formatClock(10*time.Hour))
}
