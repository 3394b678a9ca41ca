// Package progress owns the study ledger and the experience, level and ticket
// counters derived from it.
//
// Every mutation is applied to a copy of the ledger and a freshly computed
// state, persisted as a full snapshot, and only then made visible. A failed
// save leaves the engine exactly as it was.
package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/ledger"
)

// Store loads and saves complete snapshots. Load returns domain.NewSnapshot()
// when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snap domain.Snapshot) error
}

// Engine is safe for concurrent use; a single mutex covers mutate + persist.
type Engine struct {
	mu       sync.Mutex
	store    Store
	ledger   *ledger.Ledger
	state    domain.ProgressState
	spent    int
	now      func() time.Time
	observer UseCaseObserver
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithObserver installs a use-case observer.
func WithObserver(obs UseCaseObserver) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observer = obs
		}
	}
}

// Open loads the stored snapshot and returns an engine over it.
func Open(ctx context.Context, store Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("progress store is not configured")
	}
	e := &Engine{
		store:    store,
		now:      time.Now,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	e.ledger = ledger.New(snap.Records, snap.NextID)
	e.state = snap.Progress
	if e.state.Level < 1 {
		e.state.Level = 1
	}
	if snap.TicketsSpent > 0 {
		e.spent = snap.TicketsSpent
	}
	return e, nil
}

// RecordSession logs a session at the current time and returns the points it
// earned.
func (e *Engine) RecordSession(ctx context.Context, minutes int, category string, difficulty float64) (domain.Points, error) {
	var earned domain.Points
	fields := map[string]any{"minutes": minutes, "category": category}
	err := e.observe(ctx, "record_session", fields, func() error {
		if err := validateSession(minutes, category, difficulty); err != nil {
			return err
		}
		e.mu.Lock()
		defer e.mu.Unlock()

		points := domain.EarnedPoints(minutes, difficulty)
		next := e.ledger.Clone()
		rec := next.Append(minutes, category, points, domain.FormatTimestamp(e.now()))

		state := e.state
		gained := state.AddExperience(points)
		state.Tickets = availableTickets(state.Level, e.spent)
		fields["record_id"] = rec.ID
		fields["levels_gained"] = gained

		if err := e.commit(ctx, next, state, e.spent); err != nil {
			return err
		}
		earned = points
		return nil
	})
	return earned, err
}

// RecordSessionAt logs a session with an explicit time. The time may precede
// existing records, so the counters are rebuilt by replay.
func (e *Engine) RecordSessionAt(ctx context.Context, minutes int, category string, difficulty float64, at time.Time) (domain.Points, error) {
	var earned domain.Points
	fields := map[string]any{"minutes": minutes, "category": category}
	err := e.observe(ctx, "record_session_at", fields, func() error {
		if err := validateSession(minutes, category, difficulty); err != nil {
			return err
		}
		if at.IsZero() {
			return fmt.Errorf("session time is required: %w", domain.ErrInvalidInput)
		}
		e.mu.Lock()
		defer e.mu.Unlock()

		points := domain.EarnedPoints(minutes, difficulty)
		next := e.ledger.Clone()
		rec := next.Append(minutes, category, points, domain.FormatTimestamp(at))
		fields["record_id"] = rec.ID

		if err := e.commit(ctx, next, Replay(next.All(), e.spent), e.spent); err != nil {
			return err
		}
		earned = points
		return nil
	})
	return earned, err
}

// ConsumeTicket spends one ticket. It reports false, and changes nothing,
// when no ticket is available.
func (e *Engine) ConsumeTicket(ctx context.Context) (bool, error) {
	consumed := false
	err := e.observe(ctx, "consume_ticket", map[string]any{}, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.state.Tickets <= 0 {
			return nil
		}
		state := e.state
		state.Tickets--
		if err := e.commit(ctx, e.ledger, state, e.spent+1); err != nil {
			return err
		}
		consumed = true
		return nil
	})
	return consumed, err
}

// EditRecord rewrites a record's minutes, category and points and replays the
// ledger.
func (e *Engine) EditRecord(ctx context.Context, id, minutes int, category string, difficulty float64) error {
	fields := map[string]any{"record_id": id, "minutes": minutes, "category": category}
	return e.observe(ctx, "edit_record", fields, func() error {
		if err := validateSession(minutes, category, difficulty); err != nil {
			return err
		}
		e.mu.Lock()
		defer e.mu.Unlock()

		next := e.ledger.Clone()
		if err := next.Edit(id, minutes, category, domain.EarnedPoints(minutes, difficulty)); err != nil {
			return err
		}
		return e.commit(ctx, next, Replay(next.All(), e.spent), e.spent)
	})
}

// DeleteRecord removes one record and replays the ledger.
func (e *Engine) DeleteRecord(ctx context.Context, id int) error {
	return e.observe(ctx, "delete_record", map[string]any{"record_id": id}, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		next := e.ledger.Clone()
		if err := next.DeleteByID(id); err != nil {
			return err
		}
		return e.commit(ctx, next, Replay(next.All(), e.spent), e.spent)
	})
}

// PurgeDay removes every record dated date (YYYY-MM-DD), replays the ledger
// and returns how many records were removed.
func (e *Engine) PurgeDay(ctx context.Context, date string) (int, error) {
	removed := 0
	fields := map[string]any{"date": date}
	err := e.observe(ctx, "purge_day", fields, func() error {
		if err := domain.ValidateDate(date); err != nil {
			return err
		}
		e.mu.Lock()
		defer e.mu.Unlock()

		next := e.ledger.Clone()
		n := next.DeleteWhereDatePrefix(date)
		fields["removed"] = n
		if err := e.commit(ctx, next, Replay(next.All(), e.spent), e.spent); err != nil {
			return err
		}
		removed = n
		return nil
	})
	return removed, err
}

// ResetAll clears the ledger, the counters and the ticket debit.
func (e *Engine) ResetAll(ctx context.Context) error {
	return e.observe(ctx, "reset_all", map[string]any{}, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		next := e.ledger.Clone()
		next.Clear()
		return e.commit(ctx, next, domain.NewProgressState(), 0)
	})
}

// Recalculate rebuilds the counters from the ledger.
func (e *Engine) Recalculate(ctx context.Context) error {
	return e.observe(ctx, "recalculate", map[string]any{}, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		return e.commit(ctx, e.ledger, Replay(e.ledger.All(), e.spent), e.spent)
	})
}

// Restore replaces the whole ledger with snap's records and ticket debit,
// rebuilding the counters by replay. Every record must be one RecordSession
// could have produced: a distinct id, a valid timestamp, minutes within
// bounds, a category and non-negative points.
func (e *Engine) Restore(ctx context.Context, snap domain.Snapshot) error {
	fields := map[string]any{"records": len(snap.Records)}
	return e.observe(ctx, "restore", fields, func() error {
		seen := make(map[int]bool, len(snap.Records))
		for _, r := range snap.Records {
			if err := validateRecord(r); err != nil {
				return fmt.Errorf("record #%d: %w", r.ID, err)
			}
			if seen[r.ID] {
				return fmt.Errorf("duplicate record id %d: %w", r.ID, domain.ErrInvalidInput)
			}
			seen[r.ID] = true
		}
		spent := max(0, snap.TicketsSpent)

		e.mu.Lock()
		defer e.mu.Unlock()

		next := ledger.New(snap.Records, snap.NextID)
		return e.commit(ctx, next, Replay(next.All(), spent), spent)
	})
}

// State returns the current counters.
func (e *Engine) State() domain.ProgressState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// TicketsSpent returns how many tickets have been consumed since the last reset.
func (e *Engine) TicketsSpent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spent
}

// Records returns a copy of the ledger in creation order.
func (e *Engine) Records() []domain.StudyRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.All()
}

// Record returns the record with id.
func (e *Engine) Record(id int) (domain.StudyRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.ledger.Get(id)
	if !ok {
		return domain.StudyRecord{}, fmt.Errorf("record #%d: %w", id, domain.ErrRecordNotFound)
	}
	return r, nil
}

// Snapshot returns a copy of the full state as it would be persisted.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotOf(e.ledger, e.state, e.spent)
}

// Replay folds records in chronological order into a fresh state. Tickets are
// the levels gained minus the tickets already spent.
func Replay(records []domain.StudyRecord, ticketsSpent int) domain.ProgressState {
	state := domain.NewProgressState()
	for _, r := range ledger.SortChronological(records) {
		state.AddExperience(r.EarnedPoints)
	}
	state.Tickets = availableTickets(state.Level, ticketsSpent)
	return state
}

// commit persists the candidate state and swaps it in. Caller holds e.mu.
func (e *Engine) commit(ctx context.Context, next *ledger.Ledger, state domain.ProgressState, spent int) error {
	if err := e.store.Save(ctx, e.snapshotOf(next, state, spent)); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	e.ledger = next
	e.state = state
	e.spent = spent
	return nil
}

func (e *Engine) snapshotOf(l *ledger.Ledger, state domain.ProgressState, spent int) domain.Snapshot {
	return domain.Snapshot{
		Progress:     state,
		TicketsSpent: spent,
		NextID:       l.NextID(),
		Records:      l.All(),
	}
}

func availableTickets(level, spent int) int {
	return max(0, level-1-spent)
}

func validateRecord(r domain.StudyRecord) error {
	if err := domain.ValidateTimestamp(r.Timestamp); err != nil {
		return err
	}
	if err := domain.ValidateMinutes(r.Minutes); err != nil {
		return err
	}
	if err := domain.ValidateCategory(r.Category); err != nil {
		return err
	}
	return domain.ValidateEarnedPoints(r.EarnedPoints)
}

func validateSession(minutes int, category string, difficulty float64) error {
	if err := domain.ValidateMinutes(minutes); err != nil {
		return err
	}
	if err := domain.ValidateCategory(category); err != nil {
		return err
	}
	return domain.ValidateDifficulty(difficulty)
}
