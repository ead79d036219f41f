// Package sim ties the wave scheduler and the behavior engine together.
// The two registries (lifecycle records, movement records) share IDs but
// hold no back-references, so every create and destroy must go through
// this façade to keep them paired.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/tdurnford/chicken-little-sub001/internal/ai"
	"github.com/tdurnford/chicken-little-sub001/internal/config"
	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
	"github.com/tdurnford/chicken-little-sub001/internal/wave"
	"github.com/tdurnford/chicken-little-sub001/internal/zone"
)

// Simulation is the authoritative threat simulation for one world session.
// Tick is not reentrant: one caller drives it with its own clock.
type Simulation struct {
	cfg    config.Simulation
	bounds zone.Bounds

	engine *ai.Engine
	sched  *wave.Scheduler

	// rng drives spawn placement and mode; only Tick touches it.
	rng *rand.Rand

	// workers > 1 switches per-agent updates to the parallel path.
	workers int

	lastCleanup float64
}

// TickReport summarizes what one tick did.
type TickReport struct {
	SpawnedID string
	Despawned []string
	Changed   map[string]ai.AgentSnapshot

	// Resolved holds lifecycle records discarded by this tick's cleanup
	// sweep, for the persistence layer to flush.
	Resolved []model.PredatorLifecycle
}

// New creates a simulation over the given defended-area provider.
func New(cfg config.Simulation, areas zone.AreaProvider, rng *rand.Rand) *Simulation {
	bounds := zone.NewBounds(
		model.NewVector3(cfg.Zone.CenterX, cfg.Zone.CenterY, cfg.Zone.CenterZ),
		model.NewVector3(cfg.Zone.SizeX, 0, cfg.Zone.SizeZ),
		cfg.Zone.Margin,
	)

	return &Simulation{
		cfg:    cfg,
		bounds: bounds,
		engine: ai.NewEngine(cfg.Behavior, bounds, areas),
		sched:  wave.NewScheduler(cfg.Wave, rng),
		rng:    rng,
	}
}

// SetWorkers enables parallel per-agent updates with the given limit.
func (s *Simulation) SetWorkers(n int) {
	s.workers = n
}

// Engine returns the behavior engine (for injecting defender/chicken lookups).
func (s *Simulation) Engine() *ai.Engine {
	return s.engine
}

// Scheduler returns the wave scheduler.
func (s *Simulation) Scheduler() *wave.Scheduler {
	return s.sched
}

// Tick advances the whole simulation by one step: spawn attempt, per-agent
// behavior updates, lifecycle phase sync, despawns, and periodic cleanup.
func (s *Simulation) Tick(now, dt, timeOfDayMult float64) TickReport {
	var report TickReport

	report.SpawnedID = s.trySpawn(now, timeOfDayMult)

	if s.workers > 1 {
		s.engine.TickParallel(now, dt, s.workers)
	} else {
		s.engine.Tick(now, dt)
	}

	s.syncPhases()
	report.Despawned = s.retireGiveUps(now)

	if now-s.lastCleanup >= s.cfg.Wave.CleanupInterval {
		s.lastCleanup = now
		report.Resolved = s.sched.Cleanup()
		for _, rec := range report.Resolved {
			if _, ok := s.engine.Get(rec.ID); ok {
				_ = s.engine.Remove(rec.ID)
				report.Despawned = append(report.Despawned, rec.ID)
			}
		}
	}

	report.Changed = s.engine.ChangedSince()
	return report
}

// trySpawn runs the spawn gate and, on success, creates both records.
// Capacity/timing refusals are routine and only logged at debug level.
func (s *Simulation) trySpawn(now, timeOfDayMult float64) string {
	rec, err := s.sched.TrySpawn(now, timeOfDayMult)
	if err != nil {
		if errors.Is(err, wave.ErrCapacityReached) || errors.Is(err, wave.ErrSpawnTooSoon) {
			if ai.IsDebugEnabled() {
				slog.Debug("spawn refused", "reason", err)
			}
		} else {
			slog.Warn("spawn failed", "error", err)
		}
		return ""
	}

	mode := ai.SpawnIdle
	if s.rng.Float64() < s.cfg.Wave.DirectSpawnChance {
		mode = ai.SpawnDirect
	}

	pos := s.randomPerimeterPoint()
	if _, err := s.engine.Register(rec.ID, rec.SpeciesID, pos, mode, now, s.rng.Uint64()); err != nil {
		// Never expected with a loaded catalog: back out the lifecycle
		// record so no orphan survives this tick.
		slog.Error("pairing movement record failed, retiring lifecycle record",
			"id", rec.ID, "error", err)
		_ = s.sched.MarkEscaped(rec.ID)
		return ""
	}
	return rec.ID
}

// syncPhases mirrors the behavior state of each live predator into its
// lifecycle record's non-terminal phase.
func (s *Simulation) syncPhases() {
	for id, snap := range s.engine.Snapshot() {
		lc, ok := s.sched.Get(id)
		if !ok {
			// Registry desync: a movement record with no lifecycle record
			// means a caller bypassed the façade.
			slog.Error("movement record has no lifecycle record", "id", id)
			continue
		}
		if lc.State.IsTerminal() {
			continue
		}

		var phase model.LifecycleState
		switch snap.State {
		case model.BehaviorStalking, model.BehaviorApproaching:
			phase = model.LifecycleApproaching
		case model.BehaviorAttacking:
			phase = model.LifecycleAttacking
		default:
			continue
		}
		if phase != lc.State {
			_ = s.sched.SetPhase(id, phase)
		}
	}
}

// retireGiveUps resolves predators that gave up on an empty coop:
// lifecycle goes to escaped and the movement record is retired.
func (s *Simulation) retireGiveUps(now float64) []string {
	ids := s.engine.DespawnEligible()
	for _, id := range ids {
		if err := s.sched.MarkEscaped(id); err != nil && !errors.Is(err, wave.ErrTerminalState) {
			slog.Warn("retiring predator", "id", id, "error", err)
		}
		_ = s.engine.Remove(id)
	}
	return ids
}

// randomPerimeterPoint picks a spawn point on the usable zone edge.
func (s *Simulation) randomPerimeterPoint() model.Vector3 {
	halfX := s.cfg.Zone.SizeX/2 - s.cfg.Zone.Margin
	halfZ := s.cfg.Zone.SizeZ/2 - s.cfg.Zone.Margin

	x := s.cfg.Zone.CenterX + (s.rng.Float64()*2-1)*halfX
	z := s.cfg.Zone.CenterZ + (s.rng.Float64()*2-1)*halfZ

	// Push one axis to the edge so predators arrive from outside.
	if s.rng.IntN(2) == 0 {
		if s.rng.IntN(2) == 0 {
			x = s.cfg.Zone.CenterX - halfX
		} else {
			x = s.cfg.Zone.CenterX + halfX
		}
	} else {
		if s.rng.IntN(2) == 0 {
			z = s.cfg.Zone.CenterZ - halfZ
		} else {
			z = s.cfg.Zone.CenterZ + halfZ
		}
	}
	return model.NewVector3(x, s.cfg.Zone.CenterY, z)
}

// --- external combat/capture calls --------------------------------------

// ApplyHit applies one bat hit to a predator. When the hit defeats it,
// the movement record is retired immediately; the lifecycle record stays
// for the next cleanup sweep.
func (s *Simulation) ApplyHit(id string, now float64) (int32, error) {
	remaining, err := s.sched.ApplyHit(id)
	if err != nil {
		return 0, err
	}

	if remaining <= 0 {
		_ = s.engine.Remove(id)
		return 0, nil
	}

	maxHealth := int32(0)
	if lc, ok := s.sched.Get(id); ok {
		if def := data.GetSpeciesDef(lc.SpeciesID); def != nil {
			maxHealth = def.HitsToDefeat()
		}
	}
	if err := s.engine.NotifyDamage(id, remaining, maxHealth, now); err != nil {
		return remaining, fmt.Errorf("applying hit: %w", err)
	}
	return remaining, nil
}

// MarkCaught resolves a predator as trapped and retires its movement
// record. Returns the accrued reward.
func (s *Simulation) MarkCaught(id string) (int64, error) {
	reward, err := s.sched.MarkCaught(id)
	if err != nil {
		return 0, err
	}
	_ = s.engine.Remove(id)
	return reward, nil
}

// MarkEscaped resolves a predator as escaped and retires its movement record.
func (s *Simulation) MarkEscaped(id string) error {
	if err := s.sched.MarkEscaped(id); err != nil {
		return err
	}
	_ = s.engine.Remove(id)
	return nil
}

// RecordStrike notes a successful predator attack; spending the last one
// resolves the record as escaped and retires the movement record.
func (s *Simulation) RecordStrike(id string) (int32, error) {
	left, err := s.sched.RecordStrike(id)
	if err != nil {
		return 0, err
	}
	if left <= 0 {
		_ = s.engine.Remove(id)
	}
	return left, nil
}

// NotifyShield tells a predator its target coop just got shielded.
func (s *Simulation) NotifyShield(id string) error {
	return s.engine.NotifyShield(id, true)
}

// --- views ---------------------------------------------------------------

// Snapshot returns the full per-tick presentation view.
func (s *Simulation) Snapshot() map[string]ai.AgentSnapshot {
	return s.engine.Snapshot()
}

// Summary returns the lifecycle summary for UI/telemetry. The caller
// supplies the same day/night multiplier it drives Tick with.
func (s *Simulation) Summary(now, timeOfDayMult float64) wave.Summary {
	return s.sched.Summarize(now, timeOfDayMult)
}

// Reset wipes the session: both registries cleared together, wave state
// back to zero.
func (s *Simulation) Reset() {
	s.sched.Reset()
	s.engine.Clear()
	s.lastCleanup = 0
}

// CheckIntegrity verifies the pairing invariant: every live lifecycle
// record has a movement record and vice versa. A non-nil error indicates
// a caller bypassed the façade.
func (s *Simulation) CheckIntegrity() error {
	movement := make(map[string]bool)
	for _, id := range s.engine.IDs() {
		movement[id] = true
	}

	for _, id := range s.sched.LiveIDs() {
		if !movement[id] {
			return fmt.Errorf("lifecycle record %s has no movement record", id)
		}
		delete(movement, id)
	}
	for id := range movement {
		if lc, ok := s.sched.Get(id); !ok || lc.State.IsTerminal() {
			return fmt.Errorf("movement record %s has no live lifecycle record", id)
		}
	}
	return nil
}
