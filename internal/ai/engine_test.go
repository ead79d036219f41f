package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdurnford/chicken-little-sub001/internal/config"
	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
	"github.com/tdurnford/chicken-little-sub001/internal/zone"
)

func TestMain(m *testing.M) {
	if err := data.LoadSpeciesDefs(); err != nil {
		panic(err)
	}
	m.Run()
}

func testBehaviorConfig() config.Behavior {
	return config.Behavior{
		RoamDuration:       6,
		StalkDuration:      2.5,
		FleeDuration:       5,
		CautiousDuration:   4,
		ArrivalThreshold:   2,
		WeaponDetectRadius: 25,
		FleeDistance:       40,
		PatrolRadius:       12,
		PatrolCooldown:     3,
		DespawnGrace:       20,
		EngageWindow:       5,
	}
}

func newTestEngine(areas []zone.DefendedArea) *Engine {
	bounds := zone.NewBounds(
		model.NewVector3(0, 0, 0),
		model.NewVector3(500, 0, 500),
		0,
	)
	return NewEngine(testBehaviorConfig(), bounds, zone.NewStaticProvider(areas))
}

func TestEngine_RegisterAndRemove(t *testing.T) {
	e := newTestEngine(nil)

	p, err := e.Register("p1", "fox", model.NewVector3(0, 0, 0), SpawnIdle, 0, 1)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.State != model.BehaviorRoaming {
		t.Errorf("idle spawn state = %s, want ROAMING", p.State)
	}
	if p.TargetSection != model.NoSection {
		t.Errorf("idle spawn section = %d, want none", p.TargetSection)
	}
	if e.Count() != 1 {
		t.Errorf("count = %d, want 1", e.Count())
	}

	got, ok := e.Get("p1")
	if !ok || got.ID != "p1" {
		t.Fatalf("Get(p1) = %v, %v", got, ok)
	}

	if err := e.Remove("p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if e.Count() != 0 {
		t.Errorf("count after remove = %d, want 0", e.Count())
	}
	if err := e.Remove("p1"); !errors.Is(err, ErrUnknownPredator) {
		t.Errorf("double remove error = %v, want ErrUnknownPredator", err)
	}
}

func TestEngine_RegisterUnknownSpecies(t *testing.T) {
	e := newTestEngine(nil)

	_, err := e.Register("p1", "chupacabra", model.Vector3{}, SpawnIdle, 0, 1)
	if !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("error = %v, want ErrUnknownSpecies", err)
	}
	if e.Count() != 0 {
		t.Error("failed register must not leave a record behind")
	}
}

func TestEngine_RegisterDirect(t *testing.T) {
	e := newTestEngine([]zone.DefendedArea{
		{Anchor: model.NewVector3(20, 0, 0), TargetCount: 5},
	})

	p, err := e.Register("p1", "fox", model.NewVector3(0, 0, 0), SpawnDirect, 0, 1)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.State != model.BehaviorApproaching {
		t.Errorf("direct spawn state = %s, want APPROACHING", p.State)
	}
	if p.TargetSection != 0 {
		t.Errorf("direct spawn section = %d, want 0", p.TargetSection)
	}
}

func TestEngine_RegisterDirectNothingInRange(t *testing.T) {
	// Raccoon detection range is well short of the only coop, so a direct
	// spawn degrades to roaming.
	e := newTestEngine([]zone.DefendedArea{
		{Anchor: model.NewVector3(200, 0, 200), TargetCount: 5},
	})

	p, err := e.Register("p1", "raccoon", model.NewVector3(-200, 0, -200), SpawnDirect, 0, 1)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.State != model.BehaviorRoaming {
		t.Errorf("state = %s, want ROAMING", p.State)
	}
	if p.TargetSection != model.NoSection {
		t.Errorf("section = %d, want none", p.TargetSection)
	}
}

func TestEngine_SpawnClampedIntoZone(t *testing.T) {
	e := newTestEngine(nil)

	p, err := e.Register("p1", "fox", model.NewVector3(9999, 3, -9999), SpawnIdle, 0, 1)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !e.bounds.Contains(p.Position) {
		t.Errorf("spawn position %v outside zone", p.Position)
	}
	if p.Position.Y != 3 {
		t.Errorf("clamp must not touch Y, got %f", p.Position.Y)
	}
}

func TestEngine_NotifyUnknown(t *testing.T) {
	e := newTestEngine(nil)

	if err := e.NotifyDamage("ghost", 1, 2, 0); !errors.Is(err, ErrUnknownPredator) {
		t.Errorf("NotifyDamage error = %v, want ErrUnknownPredator", err)
	}
	if err := e.NotifyShield("ghost", true); !errors.Is(err, ErrUnknownPredator) {
		t.Errorf("NotifyShield error = %v, want ErrUnknownPredator", err)
	}
}

func TestEngine_ChangedSinceClearsDirtyFlags(t *testing.T) {
	e := newTestEngine(nil)

	if _, err := e.Register("p1", "fox", model.Vector3{}, SpawnIdle, 0, 1); err != nil {
		t.Fatal(err)
	}

	changed := e.ChangedSince()
	if _, ok := changed["p1"]; !ok {
		t.Fatal("fresh spawn must report a state change")
	}

	if again := e.ChangedSince(); len(again) != 0 {
		t.Errorf("second call returned %d entries, want 0", len(again))
	}

	// A tick with no transition keeps the dirty set empty.
	e.Tick(0.1, 0.1)
	if again := e.ChangedSince(); len(again) != 0 {
		t.Errorf("tick without transition reported %d changes", len(again))
	}
}

func TestEngine_SnapshotAndClear(t *testing.T) {
	e := newTestEngine(nil)
	for i := range 3 {
		id := fmt.Sprintf("p%d", i)
		if _, err := e.Register(id, "raccoon", model.Vector3{}, SpawnIdle, 0, uint64(i+1)); err != nil {
			t.Fatal(err)
		}
	}

	snap := e.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot size = %d, want 3", len(snap))
	}
	if snap["p0"].SpeciesID != "raccoon" {
		t.Errorf("snapshot species = %s, want raccoon", snap["p0"].SpeciesID)
	}
	if len(e.IDs()) != 3 {
		t.Errorf("IDs = %d, want 3", len(e.IDs()))
	}

	e.Clear()
	if e.Count() != 0 {
		t.Errorf("count after clear = %d, want 0", e.Count())
	}
}

func TestEngine_DespawnEligibilitySuspendedWhileReacting(t *testing.T) {
	e := newTestEngine(nil)
	p, err := e.Register("p1", "fox", model.Vector3{}, SpawnIdle, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	p.DespawnEligible = true
	p.State = model.BehaviorRoaming
	if ids := e.DespawnEligible(); len(ids) != 1 || ids[0] != "p1" {
		t.Fatalf("eligible = %v, want [p1]", ids)
	}

	p.State = model.BehaviorFleeing
	if ids := e.DespawnEligible(); len(ids) != 0 {
		t.Errorf("fleeing predator reported eligible: %v", ids)
	}

	p.State = model.BehaviorCautious
	if ids := e.DespawnEligible(); len(ids) != 0 {
		t.Errorf("cautious predator reported eligible: %v", ids)
	}
}

// Parallel ticks must land on the same trajectories as sequential ticks:
// each record has a private PRNG and updates never touch another record.
func TestEngine_TickParallelMatchesSequential(t *testing.T) {
	areas := []zone.DefendedArea{
		{Anchor: model.NewVector3(30, 0, 0), TargetCount: 4},
		{Anchor: model.NewVector3(-30, 0, 30), TargetCount: 2},
	}
	seq := newTestEngine(areas)
	par := newTestEngine(areas)

	for i := range 8 {
		id := fmt.Sprintf("p%d", i)
		pos := model.NewVector3(float64(i*10-40), 0, 0)
		if _, err := seq.Register(id, "fox", pos, SpawnIdle, 0, uint64(i+1)); err != nil {
			t.Fatal(err)
		}
		if _, err := par.Register(id, "fox", pos, SpawnIdle, 0, uint64(i+1)); err != nil {
			t.Fatal(err)
		}
	}

	now := 0.0
	const dt = 0.1
	for range 200 {
		now += dt
		seq.Tick(now, dt)
		par.TickParallel(now, dt, 4)
	}

	want := seq.Snapshot()
	got := par.Snapshot()
	for id, w := range want {
		g := got[id]
		if g.State != w.State {
			t.Errorf("%s: parallel state %s, sequential %s", id, g.State, w.State)
		}
		if g.Position.Distance(w.Position) > 1e-9 {
			t.Errorf("%s: parallel position %v, sequential %v", id, g.Position, w.Position)
		}
	}
}
