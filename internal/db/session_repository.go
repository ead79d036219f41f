package db

import (
	"context"
	"fmt"

	"github.com/tdurnford/chicken-little-sub001/internal/model"
)

// SessionRepository persists resolved predators and session wave totals.
// This is the thin persistence/economy layer the simulation core treats
// as an external collaborator.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a repository over the given DB handle.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// EnsureSession inserts the session row if it does not exist yet.
func (r *SessionRepository) EnsureSession(ctx context.Context, sessionID string) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO threat_sessions (session_id) VALUES ($1)
		 ON CONFLICT (session_id) DO NOTHING`, sessionID)
	if err != nil {
		return fmt.Errorf("ensuring session %q: %w", sessionID, err)
	}
	return nil
}

// SaveResult records one resolved predator. Upsert keeps the call
// idempotent if the same resolution is flushed twice.
func (r *SessionRepository) SaveResult(ctx context.Context, sessionID string, rec model.PredatorLifecycle, reward int64) error {
	if !rec.State.IsTerminal() {
		return fmt.Errorf("saving result for %s: state %s is not terminal", rec.ID, rec.State)
	}

	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO predator_results (id, session_id, species_id, wave_number, outcome, reward)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, sessionID, rec.SpeciesID, rec.Wave, rec.State.String(), reward,
	)
	if err != nil {
		return fmt.Errorf("saving predator result %s: %w", rec.ID, err)
	}
	return nil
}

// UpdateSessionTotals writes the session's running wave totals.
func (r *SessionRepository) UpdateSessionTotals(ctx context.Context, sessionID string, state model.WaveState) error {
	_, err := r.db.pool.Exec(ctx,
		`UPDATE threat_sessions
		 SET wave_number = $2, spawned_count = $3,
		     total_caught = $4, total_escaped = $5, total_defeated = $6
		 WHERE session_id = $1`,
		sessionID, state.WaveNumber, state.SpawnedCount,
		state.TotalCaught, state.TotalEscaped, state.TotalDefeated,
	)
	if err != nil {
		return fmt.Errorf("updating session totals %q: %w", sessionID, err)
	}
	return nil
}

// PayoutReward adds a drained pending-reward amount to the session's
// paid total. No-op for zero amounts.
func (r *SessionRepository) PayoutReward(ctx context.Context, sessionID string, amount int64) error {
	if amount == 0 {
		return nil
	}
	_, err := r.db.pool.Exec(ctx,
		`UPDATE threat_sessions SET reward_paid = reward_paid + $2
		 WHERE session_id = $1`,
		sessionID, amount,
	)
	if err != nil {
		return fmt.Errorf("paying out %d to session %q: %w", amount, sessionID, err)
	}
	return nil
}
