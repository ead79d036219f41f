package wave

import "errors"

// Rejection taxonomy for scheduler operations. All are runtime rejections
// a caller can match with errors.Is; none of them stop the simulation.
var (
	// ErrCapacityReached - live predator count is at the ceiling
	ErrCapacityReached = errors.New("predator ceiling reached")
	// ErrSpawnTooSoon - spawn interval has not elapsed yet
	ErrSpawnTooSoon = errors.New("spawn interval not elapsed")
	// ErrNotFound - no lifecycle record for the given ID
	ErrNotFound = errors.New("lifecycle record not found")
	// ErrUnknownSpecies - species ID is not in the catalog
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrTerminalState - record already caught/escaped/defeated
	ErrTerminalState = errors.New("lifecycle record already resolved")
)
