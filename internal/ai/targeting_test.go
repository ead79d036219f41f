package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/tdurnford/chicken-little-sub001/internal/model"
	"github.com/tdurnford/chicken-little-sub001/internal/zone"
)

func newTargetingPredator(seed uint64) *model.Predator {
	rng := rand.New(rand.NewPCG(seed, seed))
	return model.NewPredator("p1", "fox", model.NewVector3(0, 0, 0), 3, rng)
}

func TestSelectTarget_NothingInRange(t *testing.T) {
	e := newTestEngine([]zone.DefendedArea{
		{Anchor: model.NewVector3(200, 0, 200), TargetCount: 9},
	})
	p := newTargetingPredator(1)

	section, ok := e.selectTarget(p)
	if ok {
		t.Fatal("selected a coop beyond detection range")
	}
	if section != model.NoSection {
		t.Errorf("section = %d, want none", section)
	}
}

func TestSelectTarget_EmptyProvider(t *testing.T) {
	e := newTestEngine(nil)
	p := newTargetingPredator(1)

	if _, ok := e.selectTarget(p); ok {
		t.Fatal("selected a coop with no areas configured")
	}
}

func TestSelectTarget_SingleCandidateAlwaysWins(t *testing.T) {
	e := newTestEngine([]zone.DefendedArea{
		{Anchor: model.NewVector3(20, 0, 0), TargetCount: 3},
	})
	p := newTargetingPredator(9)

	for i := range 100 {
		section, ok := e.selectTarget(p)
		if !ok || section != 0 {
			t.Fatalf("draw %d: section=%d ok=%v, want 0/true", i, section, ok)
		}
	}
}

func TestSelectTarget_FavorsBetterScore(t *testing.T) {
	// Section 0 is close and full, section 1 far and sparse: the weighted
	// pick should land on 0 most of the time but still visit 1.
	e := newTestEngine([]zone.DefendedArea{
		{Anchor: model.NewVector3(10, 0, 0), TargetCount: 6},
		{Anchor: model.NewVector3(0, 0, 50), TargetCount: 1},
	})
	p := newTargetingPredator(1234)

	counts := make(map[int]int)
	for range 1000 {
		section, ok := e.selectTarget(p)
		if !ok {
			t.Fatal("no candidate found")
		}
		counts[section]++
	}

	if counts[0] <= counts[1] {
		t.Errorf("best candidate picked %d times vs %d for the worse one", counts[0], counts[1])
	}
	if counts[1] == 0 {
		t.Error("weighted pick never visited the weaker candidate")
	}
}
