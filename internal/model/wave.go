package model

// WaveState tracks wave progression for one world/session.
// Owned by the wave scheduler; a single instance per session.
type WaveState struct {
	// LastSpawnTime is negative before the first spawn.
	LastSpawnTime float64

	// WaveNumber starts at 0 and advances to 1 on the first spawn.
	WaveNumber int32

	// SpawnedCount is the cumulative number of successful spawns.
	SpawnedCount int64

	// DifficultyMultiplier is >= 1 and never decreases within a session.
	DifficultyMultiplier float64

	// PendingReward accumulates rewards for captures not yet paid out.
	PendingReward int64

	// Session totals by outcome, survive cleanup sweeps.
	TotalCaught   int64
	TotalEscaped  int64
	TotalDefeated int64
}

// NewWaveState returns wave state for a fresh session.
func NewWaveState() *WaveState {
	return &WaveState{
		LastSpawnTime:        -1,
		DifficultyMultiplier: 1.0,
	}
}

// Reset reinitializes the session: wave 0, difficulty 1, counters cleared.
func (w *WaveState) Reset() {
	*w = *NewWaveState()
}
