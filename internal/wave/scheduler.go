package wave

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/tdurnford/chicken-little-sub001/internal/config"
	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
)

// Per-spawn wave progression: the wave advances on every waveStep-th
// successful spawn and difficulty climbs by difficultyStep per wave.
const (
	waveStep            = 5
	difficultyStep      = 0.05
	wavesPerThreatTier  = 3
	maxIntervalWaveBias = 30.0 // cap on the per-wave interval reduction
)

// Scheduler owns every lifecycle record and the session's wave state.
// It decides when spawns may happen, which species arrives, and applies
// combat/capture results until each record reaches a terminal state.
// All operations serialize on one mutex; per-tick behavior updates run
// against the engine's registry, not this one.
type Scheduler struct {
	cfg config.Wave

	mu      sync.Mutex
	rng     *rand.Rand
	state   *model.WaveState
	records map[string]*model.PredatorLifecycle
}

// NewScheduler creates a scheduler for a fresh session. The PRNG is
// injected so species selection is deterministic under test.
func NewScheduler(cfg config.Wave, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		rng:     rng,
		state:   model.NewWaveState(),
		records: make(map[string]*model.PredatorLifecycle),
	}
}

// liveCountLocked counts records in non-terminal lifecycle states.
func (s *Scheduler) liveCountLocked() int {
	n := 0
	for _, rec := range s.records {
		if !rec.State.IsTerminal() {
			n++
		}
	}
	return n
}

// LiveCount returns the number of active (non-terminal) predators.
func (s *Scheduler) LiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveCountLocked()
}

// LiveIDs returns the IDs of all non-terminal lifecycle records.
func (s *Scheduler) LiveIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.records))
	for id, rec := range s.records {
		if !rec.State.IsTerminal() {
			ids = append(ids, id)
		}
	}
	return ids
}

// intervalLocked computes the current spawn interval in seconds.
// Deeper waves and higher time-of-day pressure shorten it; MinInterval
// bounds it below.
func (s *Scheduler) intervalLocked(timeOfDayMult float64) float64 {
	waveBias := math.Min(2*float64(s.state.WaveNumber), maxIntervalWaveBias)
	interval := (s.cfg.BaseInterval - waveBias) / s.state.DifficultyMultiplier / timeOfDayMult
	return math.Max(s.cfg.MinInterval, interval)
}

// Interval returns the spawn interval for the given time-of-day multiplier.
func (s *Scheduler) Interval(timeOfDayMult float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intervalLocked(timeOfDayMult)
}

// TimeUntilNextSpawn returns seconds until the timing gate opens
// (0 when it is already open).
func (s *Scheduler) TimeUntilNextSpawn(now, timeOfDayMult float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastSpawnTime < 0 {
		return 0
	}
	remaining := s.intervalLocked(timeOfDayMult) - (now - s.state.LastSpawnTime)
	return math.Max(0, remaining)
}

// TrySpawn attempts to spawn one predator at simulation time now.
// Capacity and timing refusals come back as distinct errors; a successful
// spawn advances the wave clock and returns a copy of the new record.
func (s *Scheduler) TrySpawn(now, timeOfDayMult float64) (model.PredatorLifecycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data.SpeciesCount() == 0 {
		return model.PredatorLifecycle{}, fmt.Errorf("%w: species catalog not loaded", ErrUnknownSpecies)
	}

	if live := s.liveCountLocked(); live >= s.cfg.MaxActive {
		return model.PredatorLifecycle{}, fmt.Errorf(
			"%w: %d/%d active", ErrCapacityReached, live, s.cfg.MaxActive)
	}

	if s.state.LastSpawnTime >= 0 {
		elapsed := now - s.state.LastSpawnTime
		if interval := s.intervalLocked(timeOfDayMult); elapsed < interval {
			return model.PredatorLifecycle{}, fmt.Errorf(
				"%w: %.1fs of %.1fs elapsed", ErrSpawnTooSoon, elapsed, interval)
		}
	}

	// Wave progression: first spawn opens wave 1, then every waveStep-th
	// spawn advances the wave and difficulty.
	s.state.SpawnedCount++
	if s.state.WaveNumber == 0 {
		s.state.WaveNumber = 1
	}
	if s.state.SpawnedCount%waveStep == 0 {
		s.state.WaveNumber++
	}
	s.state.DifficultyMultiplier = 1 + float64(s.state.WaveNumber-1)*difficultyStep
	s.state.LastSpawnTime = now

	def := s.pickSpeciesLocked()
	rec := model.NewPredatorLifecycle(
		uuid.NewString(),
		def.ID(),
		now,
		s.state.WaveNumber,
		def.HitsToDefeat(),
		s.cfg.AttacksPerPredator,
	)
	s.records[rec.ID] = rec

	slog.Info("predator spawned",
		"id", rec.ID,
		"species", def.ID(),
		"wave", s.state.WaveNumber,
		"difficulty", s.state.DifficultyMultiplier,
		"spawnedCount", s.state.SpawnedCount)

	return *rec, nil
}

// pickSpeciesLocked draws a species by cumulative-weight roulette over
// every species whose threat tier is unlocked for the current wave.
// Falls back to the lowest-tier species if the candidate set is empty.
func (s *Scheduler) pickSpeciesLocked() speciesHandle {
	maxThreatIndex := (s.state.WaveNumber + wavesPerThreatTier - 1) / wavesPerThreatTier
	if maxThreatIndex > data.TierCount {
		maxThreatIndex = data.TierCount
	}

	candidates := data.SpeciesUpToTier(maxThreatIndex - 1)
	if len(candidates) == 0 {
		return data.LowestTierSpecies()
	}

	total := 0.0
	for _, c := range candidates {
		total += c.SpawnWeight()
	}
	if total <= 0 {
		return data.LowestTierSpecies()
	}

	draw := s.rng.Float64() * total
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += c.SpawnWeight()
		if draw < cumulative {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// speciesHandle is the read-only species view the scheduler needs.
type speciesHandle interface {
	ID() string
	Tier() data.ThreatTier
	HitsToDefeat() int32
	RewardAmount() int64
}

// getLocked fetches a mutable record, rejecting unknown IDs and any
// mutation attempt on a resolved record.
func (s *Scheduler) getLocked(id string) (*model.PredatorLifecycle, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if rec.State.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrTerminalState, id, rec.State)
	}
	return rec, nil
}

// ApplyHit applies one bat hit: health drops by exactly 1 and zero health
// resolves the record as defeated. Returns remaining health.
func (s *Scheduler) ApplyHit(id string) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return 0, err
	}

	rec.Health--
	if rec.Health <= 0 {
		rec.Health = 0
		rec.State = model.LifecycleDefeated
		s.state.TotalDefeated++

		slog.Info("predator defeated", "id", id, "species", rec.SpeciesID)
	}
	return rec.Health, nil
}

// RecordStrike notes that the predator landed an attack of its own; when
// its attacks are spent, it escapes with its prize. Returns attacks left.
func (s *Scheduler) RecordStrike(id string) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return 0, err
	}

	rec.AttacksRemaining--
	if rec.AttacksRemaining <= 0 {
		rec.AttacksRemaining = 0
		rec.State = model.LifecycleEscaped
		s.state.TotalEscaped++

		slog.Info("predator escaped with prize", "id", id, "species", rec.SpeciesID)
	}
	return rec.AttacksRemaining, nil
}

// MarkCaught resolves the record as caught and accrues the species reward
// into the session's pending total. Returns the reward amount.
func (s *Scheduler) MarkCaught(id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return 0, err
	}

	reward := int64(0)
	if def := data.GetSpeciesDef(rec.SpeciesID); def != nil {
		reward = def.RewardAmount()
	}

	rec.State = model.LifecycleCaught
	s.state.TotalCaught++
	s.state.PendingReward += reward

	slog.Info("predator caught", "id", id, "species", rec.SpeciesID, "reward", reward)
	return reward, nil
}

// MarkEscaped resolves the record as escaped (e.g., despawned after
// giving up on an empty coop).
func (s *Scheduler) MarkEscaped(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return err
	}

	rec.State = model.LifecycleEscaped
	s.state.TotalEscaped++

	slog.Info("predator escaped", "id", id, "species", rec.SpeciesID)
	return nil
}

// SetPhase syncs the non-terminal combat phase (approaching/attacking)
// from the behavior engine.
func (s *Scheduler) SetPhase(id string, phase model.LifecycleState) error {
	if phase.IsTerminal() {
		return fmt.Errorf("phase %s must go through its resolution call", phase)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return err
	}
	rec.State = phase
	return nil
}

// SetTargets records the external combat context on a record.
func (s *Scheduler) SetTargets(id, playerID, chickenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		return err
	}
	rec.TargetPlayerID = playerID
	rec.TargetChickenID = chickenID
	return nil
}

// Get returns a copy of the lifecycle record for the given ID.
func (s *Scheduler) Get(id string) (model.PredatorLifecycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return model.PredatorLifecycle{}, false
	}
	return *rec, true
}

// Cleanup discards every record in a terminal lifecycle state and returns
// copies of what was removed, so the caller can retire the paired
// movement records and flush results to persistence.
// Idempotent; safe on an empty registry.
func (s *Scheduler) Cleanup() []model.PredatorLifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []model.PredatorLifecycle
	for id, rec := range s.records {
		if rec.State.IsTerminal() {
			removed = append(removed, *rec)
			delete(s.records, id)
		}
	}

	if len(removed) > 0 {
		slog.Debug("lifecycle cleanup", "removed", len(removed))
	}
	return removed
}

// DrainPendingReward returns the accrued reward total and zeroes it.
// The persistence/economy layer calls this when paying out.
func (s *Scheduler) DrainPendingReward() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	reward := s.state.PendingReward
	s.state.PendingReward = 0
	return reward
}

// Reset reinitializes the session: wave 0, difficulty 1, empty registry.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Reset()
	s.records = make(map[string]*model.PredatorLifecycle)

	slog.Info("wave session reset")
}

// WaveState returns a copy of the session's wave state.
func (s *Scheduler) WaveState() model.WaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state
}
