package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pool-tournament/internal/generator"
	"github.com/mauv0809/pool-tournament/internal/history"
	"github.com/mauv0809/pool-tournament/internal/metrics"
	"github.com/mauv0809/pool-tournament/internal/notifier"
	"github.com/mauv0809/pool-tournament/internal/pubsub"
	"github.com/mauv0809/pool-tournament/internal/storage"
	"github.com/mauv0809/pool-tournament/internal/tournament"
)

const (
	generationTimeout = 2 * time.Minute
	publishTimeout    = 10 * time.Second
	savedDateLayout   = "1/2/2006"
)

var _ Service = (*Tracker)(nil)

// Tracker owns the current tournament. All operations are serialised by a
// single mutex; schedule generation runs in the background and commits its
// result under the same mutex. When two generations overlap, the one that
// finishes last wins.
type Tracker struct {
	mu       sync.Mutex
	players  []string
	schedule tournament.Schedule
	title    string
	pending  int
	genErr   string
	history  []tournament.SavedTournament

	generator generator.Generator
	store     storage.Store
	repo      *history.Repository
	metrics   metrics.Metrics
	notifier  notifier.Notifier
	events    pubsub.PubSubClient

	rng tournament.Rand
	now func() time.Time
	wg  sync.WaitGroup
}

// New creates a Tracker holding the default roster and title with no
// schedule. notifier and events may be nil.
func New(store storage.Store, gen generator.Generator, metrics metrics.Metrics, notifier notifier.Notifier, events pubsub.PubSubClient) *Tracker {
	return &Tracker{
		players:   tournament.DefaultRoster(tournament.DefaultPlayerCount),
		title:     tournament.DefaultTitle,
		history:   []tournament.SavedTournament{},
		generator: gen,
		store:     store,
		repo:      history.New(store),
		metrics:   metrics,
		notifier:  notifier,
		events:    events,
		rng:       globalRand{},
		now:       time.Now,
	}
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Restore loads the roster, title, schedule and history from storage. When no
// schedule was stored a generation is started.
func (t *Tracker) Restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if raw, ok, err := t.store.Get(storage.KeyPlayers); err != nil {
		return fmt.Errorf("failed to read players: %w", err)
	} else if ok {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			log.Warn("Ignoring stored players", "error", err)
		} else if cleaned, err := tournament.ValidateRoster(names); err != nil {
			log.Warn("Ignoring stored players", "error", err)
		} else {
			t.players = cleaned
		}
	}

	if raw, ok, err := t.store.Get(storage.KeyTitle); err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	} else if ok && strings.TrimSpace(raw) != "" {
		t.title = strings.TrimSpace(raw)
	}

	saved, err := t.repo.Load()
	if err != nil {
		return err
	}
	t.history = saved

	raw, ok, err := t.store.Get(storage.KeySchedule)
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}
	if ok {
		var schedule tournament.Schedule
		if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
			log.Warn("Discarding stored schedule", "error", err)
		} else if len(schedule) > 0 {
			t.schedule = schedule
		}
	}

	log.Info("Restored tournament", "title", t.title, "players", len(t.players), "days", len(t.schedule), "history", len(t.history))
	if len(t.schedule) == 0 {
		if err := t.startGenerationLocked(); err != nil {
			log.Warn("Failed to clear stored schedule", "error", err)
		}
	}
	return nil
}

// WaitIdle blocks until every background generation and announcement has
// finished.
func (t *Tracker) WaitIdle() {
	t.wg.Wait()
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		Players:  slices.Clone(t.players),
		Schedule: t.schedule.Clone(),
		Title:    t.title,
		Loading:  t.pending > 0,
		Error:    t.genErr,
	}
}

// Stats returns the season totals of every roster player, or an empty list
// while there is no schedule.
func (t *Tracker) Stats() []tournament.PlayerStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.schedule) == 0 {
		return []tournament.PlayerStats{}
	}
	return tournament.SeasonTotals(t.schedule, t.players)
}

// Cumulative returns the drop-lowest-day table.
func (t *Tracker) Cumulative() []tournament.CumulativePoints {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tournament.DropLowestTotals(t.players, t.schedule)
}

// Scoreboard returns the points table of a single day.
func (t *Tracker) Scoreboard(day int) ([]tournament.DailyScore, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireScheduleLocked(); err != nil {
		return nil, err
	}
	if day < 0 || day >= len(t.schedule) {
		return nil, fmt.Errorf("%w: day %d", tournament.ErrOutOfRange, day)
	}
	return tournament.DailyScoreboard(t.schedule[day]), nil
}

// History returns the archived tournaments, newest first.
func (t *Tracker) History() []tournament.SavedTournament {
	t.mu.Lock()
	defer t.mu.Unlock()
	return history.Newest(t.history)
}

func (t *Tracker) SetScore(day, round, matchup, slot int, raw string) error {
	return t.edit("score", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.SetScore(s, day, round, matchup, slot, raw)
	})
}

func (t *Tracker) SetWinner(day int, name string) error {
	return t.edit("winner", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.SetWinner(s, day, name)
	})
}

func (t *Tracker) SetDate(day int, date string) error {
	return t.edit("date", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.SetDate(s, day, date)
	})
}

func (t *Tracker) SubstitutePlayer(day int, original, substitute string) error {
	return t.edit("substitute", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.SubstitutePlayer(s, day, original, substitute)
	})
}

func (t *Tracker) SetMatchupPlayers(day, round, matchup int, players [2]string) error {
	return t.edit("players", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.SetMatchupPlayers(s, day, round, matchup, players)
	})
}

func (t *Tracker) ShuffleRound(day, round int) error {
	return t.edit("shuffle", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.ShuffleRound(s, day, round, t.rng)
	})
}

func (t *Tracker) ToggleDayLock(day int) error {
	return t.edit("lock", func(s tournament.Schedule) (tournament.Schedule, error) {
		return tournament.ToggleDayLock(s, day)
	})
}

// edit applies fn to the current schedule and persists the result.
func (t *Tracker) edit(op string, fn func(tournament.Schedule) (tournament.Schedule, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.requireScheduleLocked(); err != nil {
		t.metrics.IncEditsRejected(op)
		return err
	}
	next, err := fn(t.schedule)
	if err != nil {
		t.metrics.IncEditsRejected(op)
		log.Debug("Rejected edit", "op", op, "error", err)
		return err
	}
	t.schedule = next
	t.metrics.IncEdits(op)
	return t.persistLocked(storage.KeySchedule)
}

// SetTitle renames the current tournament. A blank title keeps the previous one.
func (t *Tracker) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.title = title
	return t.persistLocked(storage.KeyTitle)
}

// UpdateRoster replaces the roster. A roster of the same size renames players
// by position throughout the schedule; a different size discards the schedule
// and generates a new one.
func (t *Tracker) UpdateRoster(names []string) error {
	cleaned, err := tournament.ValidateRoster(names)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(cleaned) != len(t.players) {
		log.Info("Roster size changed, regenerating", "from", len(t.players), "to", len(cleaned))
		t.players = cleaned
		return errors.Join(t.persistLocked(storage.KeyPlayers), t.startGenerationLocked())
	}

	renames := tournament.RenameMap(t.players, cleaned)
	t.players = cleaned
	t.schedule = tournament.RenamePlayers(t.schedule, renames)
	log.Info("Renamed players", "renames", len(renames))
	if len(t.schedule) == 0 {
		return t.persistLocked(storage.KeyPlayers)
	}
	return t.persistLocked(storage.KeyPlayers, storage.KeySchedule)
}

// Regenerate discards the schedule and generates a new one for the roster.
func (t *Tracker) Regenerate() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startGenerationLocked()
}

// Reset restores the default roster and title and generates a new schedule.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players = tournament.DefaultRoster(tournament.DefaultPlayerCount)
	t.title = tournament.DefaultTitle
	return errors.Join(t.persistLocked(storage.KeyPlayers, storage.KeyTitle), t.startGenerationLocked())
}

// EndAndSave archives the current season totals under the current title, then
// starts a fresh tournament for the same roster. Nothing changes when the
// archive cannot be written.
func (t *Tracker) EndAndSave(dryRun bool) (tournament.SavedTournament, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	title := strings.TrimSpace(t.title)
	if title == "" {
		return tournament.SavedTournament{}, ErrTitleRequired
	}
	if err := t.requireScheduleLocked(); err != nil {
		return tournament.SavedTournament{}, err
	}

	now := t.now()
	saved := tournament.SavedTournament{
		ID:        t.repo.NewID(now),
		Title:     title,
		SavedDate: now.Format(savedDateLayout),
		Stats:     tournament.SeasonTotals(t.schedule, t.players),
	}
	next := append(slices.Clone(t.history), saved)
	if err := t.repo.Save(next); err != nil {
		t.metrics.IncPersistenceFailures()
		log.Error("Failed to save tournament", "error", err, "title", title)
		return tournament.SavedTournament{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	t.history = next
	t.metrics.IncTournamentsSaved()
	log.Info("Saved tournament", "id", saved.ID, "title", saved.Title)

	t.title = tournament.DefaultTitle
	if err := errors.Join(t.persistLocked(storage.KeyTitle), t.startGenerationLocked()); err != nil {
		log.Warn("Tournament saved but the new tournament could not be persisted", "error", err)
	}
	t.announce(saved, dryRun)
	return saved, nil
}

// DeleteTournament removes an archived tournament.
func (t *Tracker) DeleteTournament(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := history.Remove(t.history, id)
	if err != nil {
		return err
	}
	if err := t.repo.Save(next); err != nil {
		t.metrics.IncPersistenceFailures()
		log.Error("Failed to delete tournament", "error", err, "id", id)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	t.history = next
	log.Info("Deleted tournament", "id", id)
	return nil
}

func (t *Tracker) requireScheduleLocked() error {
	if len(t.schedule) > 0 {
		return nil
	}
	if t.pending > 0 {
		return ErrGenerating
	}
	return ErrNoSchedule
}

// startGenerationLocked clears the schedule and generates a new one for the
// current roster in the background.
func (t *Tracker) startGenerationLocked() error {
	players := slices.Clone(t.players)
	title := t.title
	runID := uuid.NewString()

	t.schedule = nil
	t.genErr = ""
	t.pending++
	log.Info("Generating schedule", "runID", runID, "players", len(players))

	t.wg.Add(1)
	go t.generate(runID, title, players)

	return t.persistLocked(storage.KeySchedule)
}

func (t *Tracker) generate(runID, title string, players []string) {
	defer t.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	rounds := tournament.RoundsPerDay(len(players))
	start := time.Now()
	schedule, err := t.generator.Generate(ctx, players, tournament.DaysPerTournament, rounds)
	t.metrics.ObserveGenerationDuration(time.Since(start).Seconds())

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending--

	if err == nil && len(schedule) == 0 {
		err = generator.ErrMalformedSchedule
	}
	if err != nil {
		t.metrics.IncGenerationFailures()
		t.genErr = generationFailedMessage
		log.Error("Schedule generation failed", "runID", runID, "error", err)
		return
	}

	t.schedule = schedule
	t.genErr = ""
	t.metrics.IncSchedulesGenerated()
	log.Info("Schedule generated", "runID", runID, "days", len(schedule), "duration", time.Since(start))
	if err := t.persistLocked(storage.KeySchedule); err != nil {
		log.Warn("Generated schedule kept in memory only", "runID", runID)
	}

	if t.events != nil {
		event := pubsub.ScheduleGenerated{RunID: runID, Title: title, Players: players, Days: len(schedule), Rounds: rounds}
		t.background(func(ctx context.Context) {
			if err := t.events.SendMessage(ctx, pubsub.EventScheduleGenerated, event); err != nil {
				log.Warn("Failed to publish schedule event", "runID", runID, "error", err)
			}
		})
	}
}

// announce publishes the saved tournament, or notifies directly when no event
// client is configured. Failures are logged only.
func (t *Tracker) announce(saved tournament.SavedTournament, dryRun bool) {
	switch {
	case t.events != nil && !dryRun:
		t.background(func(ctx context.Context) {
			if err := t.events.SendMessage(ctx, pubsub.EventTournamentSaved, pubsub.TournamentSaved{Tournament: saved}); err != nil {
				log.Warn("Failed to publish tournament saved event", "id", saved.ID, "error", err)
			}
		})
	case t.notifier != nil:
		t.background(func(ctx context.Context) {
			if err := t.notifier.SendTournamentSaved(saved, dryRun); err != nil {
				log.Warn("Failed to announce tournament", "id", saved.ID, "error", err)
			}
		})
	}
}

func (t *Tracker) background(fn func(ctx context.Context)) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// persistLocked writes the given keys. Failures are logged and counted and do
// not roll back the in-memory state.
func (t *Tracker) persistLocked(keys ...string) error {
	var errs []error
	for _, key := range keys {
		var err error
		switch key {
		case storage.KeySchedule:
			if len(t.schedule) == 0 {
				err = t.store.Remove(key)
			} else {
				err = t.setJSON(key, t.schedule)
			}
		case storage.KeyPlayers:
			err = t.setJSON(key, t.players)
		case storage.KeyTitle:
			err = t.store.Set(key, t.title)
		}
		if err != nil {
			log.Error("Failed to persist", "key", key, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		t.metrics.IncPersistenceFailures()
		return fmt.Errorf("%w: %w", ErrPersistence, errors.Join(errs...))
	}
	return nil
}

func (t *Tracker) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return t.store.Set(key, string(data))
}
