package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/levelup/internal/config"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/progress"
	"github.com/alexanderramin/levelup/internal/repository"
	"github.com/alexanderramin/levelup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// testStart is a Monday morning; each engine write advances a minute.
	testStart = time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local)

	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires an App over an engine backed by an in-memory database.
func testApp(t *testing.T) (*App, *progress.Engine) {
	t.Helper()
	database := testutil.NewTestDB(t)
	engine, err := progress.Open(context.Background(), repository.NewSQLiteSnapshotStore(database),
		progress.WithClock(testutil.FixedClock(testStart, time.Minute)))
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	app := &App{
		Progress:      engine,
		Config:        &cfg,
		Now:           func() time.Time { return testStart },
		IsInteractive: func() bool { return false },
	}
	return app, engine
}

// seedDays logs one session of minutes per day for n days before testStart.
func seedDays(t *testing.T, engine *progress.Engine, n, minutes int, category string) {
	t.Helper()
	for i := 0; i < n; i++ {
		at := testStart.AddDate(0, 0, i-n)
		_, err := engine.RecordSessionAt(context.Background(), minutes, category, 1.0, at)
		require.NoError(t, err)
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

// --- log ---

func TestLogCmd_RecordsSession(t *testing.T) {
	app, engine := testApp(t)

	out, err := executeCmd(t, app, "log", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 1h of Mathematics +60.0 XP")
	assert.Contains(t, out, "40.0 XP to next level")

	records := engine.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Mathematics", records[0].Category)
	assert.Equal(t, "2025-01-06 09:00", records[0].Timestamp)
}

func TestLogCmd_UsesCategoryDifficultyAndLevelsUp(t *testing.T) {
	app, engine := testApp(t)

	out, err := executeCmd(t, app, "log", "120", "-c", "Programming")
	require.NoError(t, err)
	assert.Contains(t, out, "+144.0 XP")
	assert.Contains(t, out, "Level up!")
	assert.Contains(t, out, "Level 1 → 2, tickets: 1")

	state := engine.State()
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, domain.PointsFromFloat(44), state.Experience)
}

func TestLogCmd_At(t *testing.T) {
	app, engine := testApp(t)

	_, err := executeCmd(t, app, "log", "30", "--at", "2024-12-31 22:15")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31 22:15", engine.Records()[0].Timestamp)

	_, err = executeCmd(t, app, "log", "30", "--at", "yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogCmd_Errors(t *testing.T) {
	app, engine := testApp(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no minutes without a terminal", []string{"log"}},
		{"zero minutes", []string{"log", "0"}},
		{"not a number", []string{"log", "an hour"}},
		{"unknown category", []string{"log", "30", "-c", "Chess"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, app, tt.args...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, engine.Records())
}

// --- tickets ---

func TestTicketUseCmd(t *testing.T) {
	app, engine := testApp(t)
	_, err := executeCmd(t, app, "log", "100")
	require.NoError(t, err)
	require.Equal(t, 1, engine.State().Tickets)

	out, err := executeCmd(t, app, "ticket")
	require.NoError(t, err)
	assert.Contains(t, out, "Tickets: 1")

	_, err = executeCmd(t, app, "ticket", "use")
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, 1, engine.State().Tickets, "unconfirmed use changes nothing")

	out, err = executeCmd(t, app, "ticket", "use", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticket used. 0 left.")
	assert.Equal(t, 1, engine.TicketsSpent())

	out, err = executeCmd(t, app, "ticket", "use", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "No tickets available.")
}

func TestConfirm_InteractiveDecline(t *testing.T) {
	app, engine := testApp(t)
	_, err := executeCmd(t, app, "log", "100")
	require.NoError(t, err)

	var asked string
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, app, "ticket", "use")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, "Use a ticket? (1 left)", asked)
	assert.Equal(t, 1, engine.State().Tickets)
}

func TestYesFlagDoesNotLeakBetweenRuns(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "log", "100")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "reset")
	assert.ErrorIs(t, err, ErrConfirmationRequired)
}

// --- records ---

func TestRecordListCmd(t *testing.T) {
	app, engine := testApp(t)
	ctx := context.Background()
	_, err := engine.RecordSessionAt(ctx, 30, "Mathematics", 1.0, testStart.AddDate(0, 0, -2))
	require.NoError(t, err)
	_, err = engine.RecordSessionAt(ctx, 45, "English", 1.0, testStart.AddDate(0, 0, -1))
	require.NoError(t, err)
	_, err = engine.RecordSessionAt(ctx, 50, "Mathematics", 1.0, testStart.AddDate(0, 0, -3))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "record", "list")
	require.NoError(t, err)
	i2, i1, i3 := strings.Index(out, "#2"), strings.Index(out, "#1"), strings.Index(out, "#3")
	require.True(t, i1 > 0 && i2 > 0 && i3 > 0, out)
	assert.Less(t, i2, i1)
	assert.Less(t, i1, i3)

	out, err = executeCmd(t, app, "record", "list", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "#2")
	assert.NotContains(t, out, "#1")

	out, err = executeCmd(t, app, "record", "list", "-c", "Mathematics")
	require.NoError(t, err)
	assert.NotContains(t, out, "#2")
	assert.Contains(t, out, "#3")

	out, err = executeCmd(t, app, "record", "list", "--date", "2025-01-04")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")
	assert.NotContains(t, out, "#3")

	_, err = executeCmd(t, app, "record", "list", "--date", "Jan 4")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordEditCmd(t *testing.T) {
	app, engine := testApp(t)
	_, err := executeCmd(t, app, "log", "120")
	require.NoError(t, err)
	require.Equal(t, 1, engine.State().Tickets)

	out, err := executeCmd(t, app, "record", "edit", "1", "--minutes", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated #1: 30m of Mathematics, 30.0 XP")
	assert.Equal(t, 1, engine.State().Level, "editing replays the ledger")
	assert.Equal(t, 0, engine.State().Tickets)

	_, err = executeCmd(t, app, "record", "edit", "#1", "-c", "Machine Learning")
	require.NoError(t, err)
	rec, err := engine.Record(1)
	require.NoError(t, err)
	assert.Equal(t, 30, rec.Minutes, "unchanged minutes are kept")
	assert.Equal(t, domain.PointsFromFloat(45), rec.EarnedPoints)
	assert.Equal(t, "2025-01-06 09:00", rec.Timestamp)

	_, err = executeCmd(t, app, "record", "edit", "99", "--minutes", "10")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = executeCmd(t, app, "record", "edit", "1", "--minutes", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordDeleteCmd(t *testing.T) {
	app, engine := testApp(t)
	_, err := executeCmd(t, app, "log", "60")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "log", "60")
	require.NoError(t, err)
	require.Equal(t, 2, engine.State().Level)

	_, err = executeCmd(t, app, "record", "delete", "1")
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	out, err := executeCmd(t, app, "record", "rm", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted #1.")
	assert.Len(t, engine.Records(), 1)
	assert.Equal(t, 1, engine.State().Level)

	_, err = executeCmd(t, app, "record", "delete", "1", "--yes")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = executeCmd(t, app, "record", "delete", "one", "--yes")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// --- maintenance ---

func TestPurgeCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 3, 30, "Mathematics")

	out, err := executeCmd(t, app, "purge", "2025-01-04", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 record(s) from 2025-01-04.")
	assert.Len(t, engine.Records(), 2)

	out, err = executeCmd(t, app, "purge", "2024-06-01", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 record(s)")

	_, err = executeCmd(t, app, "purge", "2025-1-4", "--yes")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResetCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 3, 60, "Mathematics")

	out, err := executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset.")
	assert.Empty(t, engine.Records())
	assert.Equal(t, domain.NewProgressState(), engine.State())
}

func TestRecalcCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 2, 60, "Mathematics")

	out, err := executeCmd(t, app, "recalc")
	require.NoError(t, err)
	assert.Contains(t, out, "Recalculated: level 2, 20.0 XP, 1 ticket(s).")
	assert.Equal(t, 2, engine.State().Level)
}

// --- views ---

func TestStatusCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 2, 60, "Mathematics")

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Level 2")
	assert.Contains(t, out, "120.0 XP")
	assert.Contains(t, out, "2h")
}

func TestSubjectsCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 2, 45, "English")

	out, err := executeCmd(t, app, "subjects")
	require.NoError(t, err)
	for _, name := range []string{"Mathematics", "English", "Programming", "Machine Learning"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "1h 30m")
}

func TestHistoryCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 3, 60, "Mathematics")

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "EXPERIENCE BY DAY")
	assert.Contains(t, out, "2025-01-05")
	assert.Contains(t, out, "60.0 XP")

	out, err = executeCmd(t, app, "history", "--by", "month", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-12")
	assert.Contains(t, out, "2025-01")
	assert.Contains(t, out, "180.0 XP")

	_, err = executeCmd(t, app, "history", "--by", "year")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChartCmd(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 1, 90, "Mathematics")

	out, err := executeCmd(t, app, "chart")
	require.NoError(t, err)
	assert.Contains(t, out, "BY HOUR OF DAY")
	assert.Contains(t, out, "BY WEEKDAY")
	assert.Contains(t, out, "1h 30m")
}

// --- forecast ---

func TestForecastCmd_NeedsFiveRecords(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 4, 60, "Mathematics")

	out, err := executeCmd(t, app, "forecast")
	require.NoError(t, err)
	assert.Contains(t, out, "Log at least 5 sessions")
}

func TestForecastCmd_Projects(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 5, 60, "Mathematics")

	out, err := executeCmd(t, app, "forecast", "-t", "10", "-t", "20", "-t", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "(recent-average)")
	assert.Contains(t, out, "10h")
	assert.Contains(t, out, "5d")
	assert.Contains(t, out, "15d")
	assert.NotContains(t, out, " 3h", "reached targets are skipped")
}

func TestForecastCmd_Category(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 5, 60, "Mathematics")

	out, err := executeCmd(t, app, "forecast", "--category", "English", "--target", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "FORECAST: ENGLISH")
	assert.Contains(t, out, "no data")

	_, err = executeCmd(t, app, "forecast", "--category", "Chess")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestForecastCmd_Strategy(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 7, 60, "Mathematics")

	out, err := executeCmd(t, app, "forecast", "--strategy", "trend", "-t", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "(linear-trend)")

	_, err = executeCmd(t, app, "forecast", "--strategy", "oracle")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// --- timer ---

func TestTimerCmd_LogsWholeMinutes(t *testing.T) {
	app, engine := testApp(t)
	var label string
	app.RunTimer = func(_ context.Context, l string) (TimerResult, error) {
		label = l
		return TimerResult{Elapsed: 25*time.Minute + 40*time.Second, Stopped: true}, nil
	}

	out, err := executeCmd(t, app, "timer", "-c", "Programming")
	require.NoError(t, err)
	assert.Equal(t, "Programming", label)
	assert.Contains(t, out, "Logged 25m of Programming +30.0 XP")
	require.Len(t, engine.Records(), 1)
	assert.Equal(t, 25, engine.Records()[0].Minutes)
}

func TestTimerCmd_NothingToLog(t *testing.T) {
	app, engine := testApp(t)

	app.RunTimer = func(context.Context, string) (TimerResult, error) {
		return TimerResult{Elapsed: 40 * time.Minute}, nil
	}
	out, err := executeCmd(t, app, "timer")
	require.NoError(t, err)
	assert.Contains(t, out, "Session discarded.")

	app.RunTimer = func(context.Context, string) (TimerResult, error) {
		return TimerResult{Elapsed: 59 * time.Second, Stopped: true}, nil
	}
	out, err = executeCmd(t, app, "timer")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing logged.")

	assert.Empty(t, engine.Records())
}

func TestTimerCmd_NeedsTerminal(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "timer")
	assert.ErrorContains(t, err, "interactive terminal")
}

// --- import / export ---

func TestExportImportRoundTrip(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 3, 60, "Mathematics")
	_, err := engine.ConsumeTicket(context.Background())
	require.NoError(t, err)
	before := engine.Snapshot()

	path := filepath.Join(t.TempDir(), "study_data.json")
	out, err := executeCmd(t, app, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 record(s)")

	_, err = executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "import", path, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 record(s): level 2, 0 ticket(s).")
	assert.Equal(t, before, engine.Snapshot())
}

func TestImportCmd_LegacyFile(t *testing.T) {
	app, engine := testApp(t)
	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"exp": 0, "level": 1, "tickets": 0,
		"study_log": [[4, 60, "English", 60.0, "2025-01-02 10:00"], [2, 60, "English", 60.0, "2025-01-01 10:00"]]}`), 0o644))

	_, err := executeCmd(t, app, "import", path, "-y")
	require.NoError(t, err)

	state := engine.State()
	assert.Equal(t, 2, state.Level, "counters are rebuilt from the imported records")
	assert.Equal(t, 1, state.Tickets)
	assert.Equal(t, 5, engine.Snapshot().NextID)
}

func TestImportCmd_RejectsCorruptLegacyEntries(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 1, 60, "Mathematics")
	before := engine.Snapshot()

	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"exp": 0, "level": 1, "tickets": 0,
		"study_log": [[1, 60, "English", 60.0, "2025-01-01 10:00"], [2, -30, "", -30.0, "2025-01-02 10:00"]]}`), 0o644))

	_, err := executeCmd(t, app, "import", path, "--yes")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, before, engine.Snapshot())
}

func TestImportCmd_MissingFile(t *testing.T) {
	app, engine := testApp(t)
	seedDays(t, engine, 1, 60, "Mathematics")

	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.json"), "--yes")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Len(t, engine.Records(), 1)
}

// --- config and setup ---

func TestConfigShowCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "pacing:")
	assert.Contains(t, out, "window: 7")
	assert.Contains(t, out, "Machine Learning")
}

func TestSetupReceivesGlobalFlags(t *testing.T) {
	_, engine := testApp(t)
	var got GlobalOptions
	app := &App{}
	app.Setup = func(_ context.Context, opts GlobalOptions) error {
		got = opts
		app.Progress = engine
		return nil
	}

	_, err := executeCmd(t, app, "status", "--db", "/tmp/other.db", "--config", "levelup.yaml")
	require.NoError(t, err)
	assert.Equal(t, GlobalOptions{ConfigFile: "levelup.yaml", DBPath: "/tmp/other.db"}, got)
}

func TestCommandsWithoutStore(t *testing.T) {
	_, err := executeCmd(t, &App{}, "status")
	assert.ErrorContains(t, err, "not configured")
}
