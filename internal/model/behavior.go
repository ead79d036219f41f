package model

// BehaviorState represents the tactical/movement mode of a predator.
// Exactly one state is active per predator at any instant.
type BehaviorState int32

const (
	// BehaviorRoaming - predator wanders the zone looking for a coop to raid
	BehaviorRoaming BehaviorState = iota
	// BehaviorStalking - predator stands still, facing its chosen coop
	BehaviorStalking
	// BehaviorApproaching - predator closes on its chosen coop anchor
	BehaviorApproaching
	// BehaviorAttacking - predator is at the coop, patrolling or chasing a chicken
	BehaviorAttacking
	// BehaviorFleeing - predator retreats at speed (low health or shield retreat)
	BehaviorFleeing
	// BehaviorCautious - predator circles laterally, wary of an armed defender
	BehaviorCautious
)

// String returns human-readable behavior state name
func (s BehaviorState) String() string {
	switch s {
	case BehaviorRoaming:
		return "ROAMING"
	case BehaviorStalking:
		return "STALKING"
	case BehaviorApproaching:
		return "APPROACHING"
	case BehaviorAttacking:
		return "ATTACKING"
	case BehaviorFleeing:
		return "FLEEING"
	case BehaviorCautious:
		return "CAUTIOUS"
	default:
		return "UNKNOWN"
	}
}

// BehaviorData carries the timers and targets that only exist in one
// behavior state. Each state has its own variant so a predator can never
// hold a stale timer from a state it is not in.
type BehaviorData interface {
	// State identifies the behavior state this variant belongs to.
	State() BehaviorState
}

// RoamingData holds the wander target and the time at which the predator
// stops wandering and looks for a coop.
type RoamingData struct {
	Target  Vector3
	EndTime float64
}

// StalkingData holds the time at which the predator commits to approaching.
type StalkingData struct {
	EndTime float64
}

// ApproachingData carries no timers; the destination is the coop anchor.
type ApproachingData struct{}

// AttackingData holds the patrol target around the coop, the chicken slot
// being chased (negative when none), and the no-target grace timestamp
// (negative when the countdown is not running).
type AttackingData struct {
	PatrolTarget   Vector3
	HasPatrol      bool
	PatrolCooldown float64
	ChickenSlot    int
	NoTargetSince  float64
}

// FleeingData holds the retreat point and the time at which the predator
// calms down and resumes roaming.
type FleeingData struct {
	Target  Vector3
	EndTime float64
}

// CautiousData holds the time at which the predator stops circling.
type CautiousData struct {
	EndTime float64
}

func (RoamingData) State() BehaviorState     { return BehaviorRoaming }
func (StalkingData) State() BehaviorState    { return BehaviorStalking }
func (ApproachingData) State() BehaviorState { return BehaviorApproaching }
func (AttackingData) State() BehaviorState   { return BehaviorAttacking }
func (FleeingData) State() BehaviorState     { return BehaviorFleeing }
func (CautiousData) State() BehaviorState    { return BehaviorCautious }
