package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tdurnford/chicken-little-sub001/internal/config"
	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
	"github.com/tdurnford/chicken-little-sub001/internal/zone"
)

// ErrUnknownPredator is returned when an operation references an ID with
// no movement record.
var ErrUnknownPredator = errors.New("unknown predator")

// ErrUnknownSpecies is returned when a spawn references a species that is
// not in the catalog.
var ErrUnknownSpecies = errors.New("unknown species")

// SpawnMode selects the initial behavior of a newly registered predator.
type SpawnMode int32

const (
	// SpawnIdle - predator starts roaming and picks a coop later
	SpawnIdle SpawnMode = iota
	// SpawnDirect - predator picks a coop immediately and approaches it
	SpawnDirect
)

// Speed factors applied to the species walk speed per behavior state.
const (
	speedFactorRoaming  = 0.6
	speedFactorStalking = 0.0
	speedFactorApproach = 1.0
	speedFactorPatrol   = 0.5
	speedFactorBeeline  = 0.7
	speedFactorFleeing  = 1.4
	speedFactorCautious = 0.4
)

// Engine owns the movement/behavior record of every live predator and
// advances them once per simulation tick. It never creates or destroys
// lifecycle records; the scheduler owns those, and the façade keeps the
// two registries in lockstep.
type Engine struct {
	cfg    config.Behavior
	bounds zone.Bounds
	areas  zone.AreaProvider

	// Injected lookups, both optional. Nil disables the concern
	// (no defenders to fear, coop target counts stand in for chickens).
	scanDefenders zone.DefenderScanFunc
	lookupChicken zone.ChickenLookupFunc

	mu        sync.RWMutex
	predators map[string]*model.Predator
}

// NewEngine creates a behavior engine over the given zone and area provider.
func NewEngine(cfg config.Behavior, bounds zone.Bounds, areas zone.AreaProvider) *Engine {
	return &Engine{
		cfg:       cfg,
		bounds:    bounds,
		areas:     areas,
		predators: make(map[string]*model.Predator),
	}
}

// SetDefenderScan sets the armed-defender lookup.
func (e *Engine) SetDefenderScan(fn zone.DefenderScanFunc) {
	e.scanDefenders = fn
}

// SetChickenLookup sets the targetable-chicken lookup.
func (e *Engine) SetChickenLookup(fn zone.ChickenLookupFunc) {
	e.lookupChicken = fn
}

// Register creates a movement record for a newly spawned predator and
// commits its initial behavior state. The seed feeds the predator's
// private PRNG so per-agent updates stay deterministic under test.
func (e *Engine) Register(id, speciesID string, pos model.Vector3, mode SpawnMode, now float64, seed uint64) (*model.Predator, error) {
	def := data.GetSpeciesDef(speciesID)
	if def == nil {
		return nil, fmt.Errorf("registering predator %s: %w: %q", id, ErrUnknownSpecies, speciesID)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	p := model.NewPredator(id, speciesID, e.bounds.Clamp(pos), def.HitsToDefeat(), rng)

	e.mu.Lock()
	e.predators[id] = p
	e.mu.Unlock()

	switch mode {
	case SpawnDirect:
		if section, ok := e.selectTarget(p); ok {
			p.TargetSection = section
			e.enterApproaching(p)
		} else {
			e.enterRoaming(p, now)
		}
	default:
		e.enterRoaming(p, now)
	}

	if IsDebugEnabled() {
		slog.Debug("predator registered",
			"id", id,
			"species", speciesID,
			"mode", mode,
			"state", p.State)
	}
	return p, nil
}

// Remove destroys the movement record for the given predator.
func (e *Engine) Remove(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.predators[id]; !ok {
		return fmt.Errorf("removing predator: %w: %s", ErrUnknownPredator, id)
	}
	delete(e.predators, id)

	if IsDebugEnabled() {
		slog.Debug("predator removed", "id", id)
	}
	return nil
}

// Get returns the movement record for the given ID.
func (e *Engine) Get(id string) (*model.Predator, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.predators[id]
	return p, ok
}

// Count returns the number of live movement records.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.predators)
}

// IDs returns the identifiers of all live movement records.
func (e *Engine) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.predators))
	for id := range e.predators {
		ids = append(ids, id)
	}
	return ids
}

// Clear drops every movement record (session reset).
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.predators = make(map[string]*model.Predator)
}

// Tick advances every predator by one step, sequentially.
func (e *Engine) Tick(now, dt float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, p := range e.predators {
		e.updatePredator(p, now, dt)
	}
}

// TickParallel advances every predator concurrently. Each record is
// touched by exactly one worker and external lookups are read-only, so
// this is equivalent to Tick for any single agent.
func (e *Engine) TickParallel(now, dt float64, workers int) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, p := range e.predators {
		g.Go(func() error {
			e.updatePredator(p, now, dt)
			return nil
		})
	}
	_ = g.Wait() // updates never return errors
}

// NotifyDamage pushes the lifecycle record's health into the movement
// record's awareness mirror. Flee triggers are evaluated on the next tick.
func (e *Engine) NotifyDamage(id string, health, maxHealth int32, now float64) error {
	e.mu.RLock()
	p, ok := e.predators[id]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("notifying damage: %w: %s", ErrUnknownPredator, id)
	}

	p.LastHealth = health
	p.MaxHealth = maxHealth
	p.LastDamageTime = now

	if IsDebugEnabled() {
		slog.Debug("predator damaged",
			"id", id,
			"health", health,
			"maxHealth", maxHealth)
	}
	return nil
}

// NotifyShield marks that the predator has seen a shield go up over its
// target; the next tick triggers a retreat.
func (e *Engine) NotifyShield(id string, detected bool) error {
	e.mu.RLock()
	p, ok := e.predators[id]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("notifying shield: %w: %s", ErrUnknownPredator, id)
	}
	p.ShieldDetected = detected
	return nil
}

// AgentSnapshot is the per-tick view of one predator exposed to
// presentation/replication layers.
type AgentSnapshot struct {
	ID            string
	SpeciesID     string
	Position      model.Vector3
	Facing        model.Vector3
	State         model.BehaviorState
	ReachedTarget bool
}

func snapshotOf(p *model.Predator) AgentSnapshot {
	return AgentSnapshot{
		ID:            p.ID,
		SpeciesID:     p.SpeciesID,
		Position:      p.Position,
		Facing:        p.Facing,
		State:         p.State,
		ReachedTarget: p.HasReachedTarget,
	}
}

// Snapshot returns the full per-tick view of every live predator.
func (e *Engine) Snapshot() map[string]AgentSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]AgentSnapshot, len(e.predators))
	for id, p := range e.predators {
		out[id] = snapshotOf(p)
	}
	return out
}

// ChangedSince returns only the predators whose behavior state changed
// since the last call, and clears their dirty flags.
func (e *Engine) ChangedSince() map[string]AgentSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]AgentSnapshot)
	for id, p := range e.predators {
		if p.StateChanged {
			out[id] = snapshotOf(p)
			p.StateChanged = false
		}
	}
	return out
}

// DespawnEligible returns the IDs of predators that gave up on an empty
// coop. Eligibility is suspended while a predator flees or circles
// cautiously; both are reactions to the player and should play out.
func (e *Engine) DespawnEligible() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []string
	for id, p := range e.predators {
		if !p.DespawnEligible {
			continue
		}
		if p.State == model.BehaviorFleeing || p.State == model.BehaviorCautious {
			continue
		}
		out = append(out, id)
	}
	return out
}
