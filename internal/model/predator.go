package model

import "math/rand/v2"

// NoSection marks a predator that has not committed to a coop yet.
const NoSection = -1

// Predator is the movement/behavior record for one live predator.
// It is owned by the behavior engine: exactly one goroutine mutates it
// per tick, so fields are plain values. The lifecycle record with the
// same ID is owned by the wave scheduler; the two are correlated only
// by ID and must be created and destroyed in lockstep.
type Predator struct {
	ID        string
	SpeciesID string

	Position       Vector3
	TargetPosition Vector3
	SpawnPosition  Vector3
	Facing         Vector3

	// WalkSpeed is recomputed on every behavior state change.
	WalkSpeed float64

	State BehaviorState
	Data  BehaviorData

	// TargetSection is the committed defended-area index (NoSection when
	// the predator has not picked a coop).
	TargetSection int

	// Combat awareness: mirrors of the lifecycle record, pushed in by the
	// façade when combat events land. Not authoritative.
	LastHealth     int32
	MaxHealth      int32
	LastDamageTime float64

	NearbyThreatDistance float64
	NearbyThreatArmed    bool
	ShieldDetected       bool

	HasReachedTarget bool

	// StateChanged is the dirty flag for incremental sync; cleared when a
	// dirty snapshot is taken.
	StateChanged bool

	// DespawnEligible is set once the no-target grace period runs out.
	DespawnEligible bool

	rng *rand.Rand
}

// NewPredator creates a movement record at the given spawn position.
// Each record carries its own PRNG so per-agent updates stay safe to run
// in parallel and deterministic under a seeded source.
func NewPredator(id, speciesID string, spawnPos Vector3, maxHealth int32, rng *rand.Rand) *Predator {
	return &Predator{
		ID:             id,
		SpeciesID:      speciesID,
		Position:       spawnPos,
		SpawnPosition:  spawnPos,
		Facing:         Vector3{X: 0, Y: 0, Z: 1},
		State:          BehaviorRoaming,
		TargetSection:  NoSection,
		LastHealth:     maxHealth,
		MaxHealth:      maxHealth,
		LastDamageTime: -1,
		rng:            rng,
	}
}

// RNG returns the predator's private random source.
func (p *Predator) RNG() *rand.Rand {
	return p.rng
}

// HealthRatio returns current/max health, 0 when max is unknown.
func (p *Predator) HealthRatio() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return float64(p.LastHealth) / float64(p.MaxHealth)
}
