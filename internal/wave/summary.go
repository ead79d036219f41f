package wave

import (
	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
)

// Summary is the UI/telemetry view of the session: who is out there, how
// hard the waves are hitting, and how long until the next one lands.
type Summary struct {
	WaveNumber           int32
	DifficultyMultiplier float64
	SpawnedCount         int64

	// CountsByState covers records currently in the registry, including
	// resolved records awaiting cleanup.
	CountsByState map[model.LifecycleState]int

	// DominantTier is the highest threat tier among live predators.
	DominantTier data.ThreatTier

	PendingReward      int64
	TimeUntilNextSpawn float64

	TotalCaught   int64
	TotalEscaped  int64
	TotalDefeated int64
}

// Summarize builds the lifecycle summary at simulation time now.
func (s *Scheduler) Summarize(now, timeOfDayMult float64) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[model.LifecycleState]int)
	dominant := data.TierMinor
	for _, rec := range s.records {
		counts[rec.State]++
		if rec.State.IsTerminal() {
			continue
		}
		if def := data.GetSpeciesDef(rec.SpeciesID); def != nil && def.Tier() > dominant {
			dominant = def.Tier()
		}
	}

	until := 0.0
	if s.state.LastSpawnTime >= 0 {
		if remaining := s.intervalLocked(timeOfDayMult) - (now - s.state.LastSpawnTime); remaining > 0 {
			until = remaining
		}
	}

	return Summary{
		WaveNumber:           s.state.WaveNumber,
		DifficultyMultiplier: s.state.DifficultyMultiplier,
		SpawnedCount:         s.state.SpawnedCount,
		CountsByState:        counts,
		DominantTier:         dominant,
		PendingReward:        s.state.PendingReward,
		TimeUntilNextSpawn:   until,
		TotalCaught:          s.state.TotalCaught,
		TotalEscaped:         s.state.TotalEscaped,
		TotalDefeated:        s.state.TotalDefeated,
	}
}
