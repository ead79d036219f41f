package model

// LifecycleState represents the combat/capture status of a predator.
type LifecycleState int32

const (
	// LifecycleSpawning - record created, behavior not yet committed
	LifecycleSpawning LifecycleState = iota
	// LifecycleApproaching - predator is moving on a coop
	LifecycleApproaching
	// LifecycleAttacking - predator is at a coop
	LifecycleAttacking
	// LifecycleCaught - trapped by a player; terminal
	LifecycleCaught
	// LifecycleEscaped - got away (struck back enough times or despawned); terminal
	LifecycleEscaped
	// LifecycleDefeated - beaten down to zero health; terminal
	LifecycleDefeated
)

// String returns human-readable lifecycle state name
func (s LifecycleState) String() string {
	switch s {
	case LifecycleSpawning:
		return "SPAWNING"
	case LifecycleApproaching:
		return "APPROACHING"
	case LifecycleAttacking:
		return "ATTACKING"
	case LifecycleCaught:
		return "CAUGHT"
	case LifecycleEscaped:
		return "ESCAPED"
	case LifecycleDefeated:
		return "DEFEATED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether no further lifecycle transition is permitted.
func (s LifecycleState) IsTerminal() bool {
	return s == LifecycleCaught || s == LifecycleEscaped || s == LifecycleDefeated
}

// PredatorLifecycle is the combat/capture record for one predator,
// owned by the wave scheduler. Correlated with the movement record
// only through the shared ID.
type PredatorLifecycle struct {
	ID        string
	SpeciesID string
	SpawnTime float64
	Wave      int32

	// Optional combat context set by external collaborators.
	TargetPlayerID  string
	TargetChickenID string

	State            LifecycleState
	Health           int32
	AttacksRemaining int32
}

// NewPredatorLifecycle creates a lifecycle record in the spawning state.
func NewPredatorLifecycle(id, speciesID string, spawnTime float64, wave, health, attacks int32) *PredatorLifecycle {
	return &PredatorLifecycle{
		ID:               id,
		SpeciesID:        speciesID,
		SpawnTime:        spawnTime,
		Wave:             wave,
		State:            LifecycleSpawning,
		Health:           health,
		AttacksRemaining: attacks,
	}
}
