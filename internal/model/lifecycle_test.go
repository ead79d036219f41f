package model

import "testing"

func TestLifecycleState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    LifecycleState
		terminal bool
	}{
		{LifecycleSpawning, false},
		{LifecycleApproaching, false},
		{LifecycleAttacking, false},
		{LifecycleCaught, true},
		{LifecycleEscaped, true},
		{LifecycleDefeated, true},
	}

	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.state, got, tt.terminal)
		}
	}
}

func TestBehaviorData_StateTags(t *testing.T) {
	variants := []BehaviorData{
		RoamingData{},
		StalkingData{},
		ApproachingData{},
		AttackingData{},
		FleeingData{},
		CautiousData{},
	}
	want := []BehaviorState{
		BehaviorRoaming,
		BehaviorStalking,
		BehaviorApproaching,
		BehaviorAttacking,
		BehaviorFleeing,
		BehaviorCautious,
	}

	for i, v := range variants {
		if v.State() != want[i] {
			t.Errorf("variant %d tagged %s, want %s", i, v.State(), want[i])
		}
	}
}

func TestWaveState_Reset(t *testing.T) {
	w := NewWaveState()
	w.WaveNumber = 7
	w.SpawnedCount = 33
	w.DifficultyMultiplier = 1.3
	w.PendingReward = 500
	w.TotalCaught = 4

	w.Reset()

	if w.WaveNumber != 0 || w.SpawnedCount != 0 || w.DifficultyMultiplier != 1.0 {
		t.Errorf("Reset left wave=%d count=%d difficulty=%f",
			w.WaveNumber, w.SpawnedCount, w.DifficultyMultiplier)
	}
	if w.PendingReward != 0 || w.TotalCaught != 0 {
		t.Errorf("Reset left reward=%d caught=%d", w.PendingReward, w.TotalCaught)
	}
	if w.LastSpawnTime >= 0 {
		t.Errorf("Reset left lastSpawnTime=%f, want negative", w.LastSpawnTime)
	}
}

func TestPredator_HealthRatio(t *testing.T) {
	p := NewPredator("p1", "fox", Vector3{}, 10, nil)

	if p.HealthRatio() != 1.0 {
		t.Errorf("fresh ratio = %f, want 1", p.HealthRatio())
	}

	p.LastHealth = 3
	if p.HealthRatio() != 0.3 {
		t.Errorf("ratio = %f, want 0.3", p.HealthRatio())
	}

	p.MaxHealth = 0
	if p.HealthRatio() != 0 {
		t.Errorf("ratio with zero max = %f, want 0", p.HealthRatio())
	}
}
