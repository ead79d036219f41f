package ai

import (
	"log/slog"
	"math"

	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
)

// Flee trigger fires at or below this health ratio (while still alive).
const fleeHealthRatio = 0.30

// updatePredator advances one predator by one tick: trigger checks first
// (fleeing beats cautious beats the state's own update), then the active
// state's movement and timers.
func (e *Engine) updatePredator(p *model.Predator, now, dt float64) {
	e.refreshThreatAwareness(p)

	if e.checkFleeTrigger(p, now) {
		// entered fleeing this tick; movement starts next tick
		return
	}
	if e.checkCautiousTrigger(p, now) {
		return
	}

	switch p.State {
	case model.BehaviorRoaming:
		e.updateRoaming(p, now, dt)
	case model.BehaviorStalking:
		e.updateStalking(p, now)
	case model.BehaviorApproaching:
		e.updateApproaching(p, now, dt)
	case model.BehaviorAttacking:
		e.updateAttacking(p, now, dt)
	case model.BehaviorFleeing:
		e.updateFleeing(p, now, dt)
	case model.BehaviorCautious:
		e.updateCautious(p, now, dt)
	}
}

// refreshThreatAwareness updates the nearby-defender mirror fields.
func (e *Engine) refreshThreatAwareness(p *model.Predator) {
	if e.scanDefenders == nil {
		p.NearbyThreatDistance = math.Inf(1)
		p.NearbyThreatArmed = false
		return
	}
	contact, ok := e.scanDefenders(p.Position, e.cfg.WeaponDetectRadius)
	if !ok {
		p.NearbyThreatDistance = math.Inf(1)
		p.NearbyThreatArmed = false
		return
	}
	p.NearbyThreatDistance = contact.Distance
	p.NearbyThreatArmed = contact.Armed
	if contact.HasShield {
		p.ShieldDetected = true
	}
}

// checkFleeTrigger enters fleeing on low health or a shield retreat.
// Re-entering flee while already fleeing is a no-op.
func (e *Engine) checkFleeTrigger(p *model.Predator, now float64) bool {
	if p.State == model.BehaviorFleeing {
		return false
	}

	lowHealth := p.LastHealth > 0 && p.HealthRatio() <= fleeHealthRatio
	if !lowHealth && !p.ShieldDetected {
		return false
	}
	p.ShieldDetected = false

	e.enterFleeing(p, now)
	return true
}

// checkCautiousTrigger enters cautious when an armed defender is within
// weapon range. Only roaming and approaching predators turn cautious.
func (e *Engine) checkCautiousTrigger(p *model.Predator, now float64) bool {
	if p.State != model.BehaviorRoaming && p.State != model.BehaviorApproaching {
		return false
	}
	if !p.NearbyThreatArmed || p.NearbyThreatDistance > e.cfg.WeaponDetectRadius {
		return false
	}

	e.enterCautious(p, now)
	return true
}

// --- state updates -------------------------------------------------------

func (e *Engine) updateRoaming(p *model.Predator, now, dt float64) {
	d, ok := p.Data.(model.RoamingData)
	if !ok {
		e.enterRoaming(p, now)
		return
	}

	arrived := e.moveToward(p, d.Target, dt)

	if now < d.EndTime && !arrived {
		return
	}

	// Roam timer elapsed: look for a coop to commit to.
	if section, found := e.selectTarget(p); found {
		p.TargetSection = section
		e.enterStalking(p, now)
		return
	}

	// Nothing in range: keep roaming toward a fresh point. Not a state
	// change, so the dirty flag stays untouched.
	p.Data = model.RoamingData{
		Target:  e.randomRoamTarget(p),
		EndTime: now + e.cfg.RoamDuration,
	}
}

func (e *Engine) updateStalking(p *model.Predator, now float64) {
	d, ok := p.Data.(model.StalkingData)
	if !ok {
		e.enterRoaming(p, now)
		return
	}

	area, found := e.areas.Area(p.TargetSection)
	if !found {
		p.TargetSection = model.NoSection
		e.enterRoaming(p, now)
		return
	}

	// Stationary: only re-orient toward the prize.
	if dir := area.Anchor.Sub(p.Position).Normalized(); !dir.IsZero() {
		p.Facing = dir
	}

	if now >= d.EndTime {
		e.enterApproaching(p)
	}
}

func (e *Engine) updateApproaching(p *model.Predator, now, dt float64) {
	area, found := e.areas.Area(p.TargetSection)
	if !found {
		p.TargetSection = model.NoSection
		e.enterRoaming(p, now)
		return
	}

	if e.moveToward(p, area.Anchor, dt) {
		e.enterAttacking(p)
	}
}

func (e *Engine) updateAttacking(p *model.Predator, now, dt float64) {
	d, ok := p.Data.(model.AttackingData)
	if !ok {
		e.enterAttacking(p)
		return
	}

	area, found := e.areas.Area(p.TargetSection)
	if !found {
		p.TargetSection = model.NoSection
		e.enterRoaming(p, now)
		return
	}

	def := data.GetSpeciesDef(p.SpeciesID)
	if def == nil {
		return
	}

	// Beeline to a visible chicken if we can see one.
	if slot, chickenPos, visible := e.visibleChicken(p, area.TargetCount); visible {
		d.ChickenSlot = slot
		d.NoTargetSince = -1
		p.WalkSpeed = speedFactorBeeline * def.WalkSpeed()
		e.moveToward(p, chickenPos, dt)
		p.Data = d
		return
	}
	d.ChickenSlot = -1

	// No chicken in sight: the grace countdown runs unless a defender is
	// actively engaging us. It resets the instant either reappears.
	if e.isEngaged(p, now) {
		d.NoTargetSince = -1
	} else if d.NoTargetSince < 0 {
		d.NoTargetSince = now
	} else if now-d.NoTargetSince >= e.cfg.DespawnGrace {
		p.DespawnEligible = true

		if IsDebugEnabled() {
			slog.Debug("predator despawn eligible",
				"id", p.ID,
				"section", p.TargetSection)
		}
	}

	// Patrol the coop perimeter.
	if !d.HasPatrol || now >= d.PatrolCooldown || p.Position.Distance(d.PatrolTarget) <= e.cfg.ArrivalThreshold {
		d.PatrolTarget = e.randomPatrolTarget(p, area.Anchor)
		d.HasPatrol = true
		d.PatrolCooldown = now + e.cfg.PatrolCooldown
	}
	p.WalkSpeed = speedFactorPatrol * def.WalkSpeed()
	e.moveToward(p, d.PatrolTarget, dt)
	p.Data = d
}

func (e *Engine) updateFleeing(p *model.Predator, now, dt float64) {
	d, ok := p.Data.(model.FleeingData)
	if !ok {
		e.enterRoaming(p, now)
		return
	}

	e.moveToward(p, d.Target, dt)

	if now >= d.EndTime {
		e.enterRoaming(p, now)
	}
}

func (e *Engine) updateCautious(p *model.Predator, now, dt float64) {
	d, ok := p.Data.(model.CautiousData)
	if !ok {
		e.enterRoaming(p, now)
		return
	}

	// Circle laterally around the focus point instead of closing distance.
	focus := p.SpawnPosition
	if area, found := e.areas.Area(p.TargetSection); found {
		focus = area.Anchor
	}

	toFocus := focus.Sub(p.Position).Normalized()
	if !toFocus.IsZero() {
		lateral := model.Vector3{X: -toFocus.Z, Y: 0, Z: toFocus.X}
		p.Position = e.bounds.Clamp(p.Position.Add(lateral.Scale(p.WalkSpeed * dt)))
		p.Facing = toFocus
	}

	if now >= d.EndTime {
		if p.TargetSection != model.NoSection {
			e.enterApproaching(p)
		} else {
			e.enterRoaming(p, now)
		}
	}
}

// --- movement ------------------------------------------------------------

// moveToward advances the predator along the straight line to dest, never
// overshooting. Returns true once within the arrival threshold (position
// snaps onto dest). Facing follows the direction of travel.
func (e *Engine) moveToward(p *model.Predator, dest model.Vector3, dt float64) bool {
	p.TargetPosition = dest

	delta := dest.Sub(p.Position)
	dist := delta.Length()
	if dist <= e.cfg.ArrivalThreshold {
		p.Position = dest
		p.HasReachedTarget = true
		return true
	}

	dir := delta.Scale(1 / dist)
	step := p.WalkSpeed * dt
	if step >= dist {
		p.Position = dest
	} else {
		p.Position = p.Position.Add(dir.Scale(step))
	}
	p.Facing = dir
	p.HasReachedTarget = false
	return false
}

// randomRoamTarget picks a point 5..20 studs from the current position,
// clamped into the zone.
func (e *Engine) randomRoamTarget(p *model.Predator) model.Vector3 {
	rng := p.RNG()
	dist := 5 + rng.Float64()*15
	angle := rng.Float64() * 2 * math.Pi

	target := model.Vector3{
		X: p.Position.X + math.Cos(angle)*dist,
		Y: p.Position.Y,
		Z: p.Position.Z + math.Sin(angle)*dist,
	}
	return e.bounds.Clamp(target)
}

// randomPatrolTarget picks a point within the patrol radius of the coop
// anchor, clamped into the zone.
func (e *Engine) randomPatrolTarget(p *model.Predator, anchor model.Vector3) model.Vector3 {
	rng := p.RNG()
	dist := rng.Float64() * e.cfg.PatrolRadius
	angle := rng.Float64() * 2 * math.Pi

	target := model.Vector3{
		X: anchor.X + math.Cos(angle)*dist,
		Y: anchor.Y,
		Z: anchor.Z + math.Sin(angle)*dist,
	}
	return e.bounds.Clamp(target)
}

// visibleChicken resolves the closest targetable chicken. Without an
// injected lookup, a positive target count stands in: the coop anchor is
// the chase point.
func (e *Engine) visibleChicken(p *model.Predator, targetCount int) (int, model.Vector3, bool) {
	if e.lookupChicken != nil {
		return e.lookupChicken(p.TargetSection, p.Position)
	}
	if targetCount > 0 {
		if area, ok := e.areas.Area(p.TargetSection); ok {
			return 0, area.Anchor, true
		}
	}
	return -1, model.Vector3{}, false
}

// isEngaged reports whether a defender hit us recently enough to count as
// an active fight.
func (e *Engine) isEngaged(p *model.Predator, now float64) bool {
	return p.LastDamageTime >= 0 && now-p.LastDamageTime <= e.cfg.EngageWindow
}

// --- state entry ---------------------------------------------------------

// setState commits a behavior state change: variant data swapped, dirty
// flag raised, walk speed recomputed from the species and state factor.
func (e *Engine) setState(p *model.Predator, variant model.BehaviorData, speedFactor float64) {
	old := p.State
	p.State = variant.State()
	p.Data = variant
	p.StateChanged = true
	p.HasReachedTarget = false

	if def := data.GetSpeciesDef(p.SpeciesID); def != nil {
		p.WalkSpeed = speedFactor * def.WalkSpeed()
	}

	if old != p.State && IsDebugEnabled() {
		slog.Debug("predator behavior changed",
			"id", p.ID,
			"from", old,
			"to", p.State)
	}
}

func (e *Engine) enterRoaming(p *model.Predator, now float64) {
	e.setState(p, model.RoamingData{
		Target:  e.randomRoamTarget(p),
		EndTime: now + e.cfg.RoamDuration,
	}, speedFactorRoaming)
}

func (e *Engine) enterStalking(p *model.Predator, now float64) {
	e.setState(p, model.StalkingData{EndTime: now + e.cfg.StalkDuration}, speedFactorStalking)

	if area, ok := e.areas.Area(p.TargetSection); ok {
		if dir := area.Anchor.Sub(p.Position).Normalized(); !dir.IsZero() {
			p.Facing = dir
		}
	}
}

func (e *Engine) enterApproaching(p *model.Predator) {
	e.setState(p, model.ApproachingData{}, speedFactorApproach)
}

func (e *Engine) enterAttacking(p *model.Predator) {
	e.setState(p, model.AttackingData{
		ChickenSlot:   -1,
		NoTargetSince: -1,
	}, speedFactorPatrol)
	p.HasReachedTarget = true
}

func (e *Engine) enterFleeing(p *model.Predator, now float64) {
	// Run away from the committed coop; with no commitment, away from
	// wherever we were headed.
	danger := p.TargetPosition
	if area, ok := e.areas.Area(p.TargetSection); ok {
		danger = area.Anchor
	}

	away := p.Position.Sub(danger).Normalized()
	if away.IsZero() {
		away = p.Facing.Scale(-1).Normalized()
	}
	if away.IsZero() {
		away = model.Vector3{X: 0, Y: 0, Z: 1}
	}

	target := e.bounds.Clamp(p.Position.Add(away.Scale(e.cfg.FleeDistance)))
	e.setState(p, model.FleeingData{
		Target:  target,
		EndTime: now + e.cfg.FleeDuration,
	}, speedFactorFleeing)
}

func (e *Engine) enterCautious(p *model.Predator, now float64) {
	e.setState(p, model.CautiousData{EndTime: now + e.cfg.CautiousDuration}, speedFactorCautious)
}
