package zone

import "github.com/tdurnford/chicken-little-sub001/internal/model"

// DefendedArea is one player's protected coop area as seen by predators:
// where it is and how many chickens can currently be taken from it.
type DefendedArea struct {
	Anchor      model.Vector3
	TargetCount int
}

// AreaProvider resolves defended areas by section index. Queried read-only
// during detection scans; implementations must be safe for concurrent reads.
type AreaProvider interface {
	// Area returns the defended area at the given section index,
	// or false if no coop occupies that section.
	Area(index int) (DefendedArea, bool)

	// AreaCount returns the number of section slots to scan.
	AreaCount() int
}

// DefenderContact describes the nearest defender a predator can perceive.
type DefenderContact struct {
	Distance  float64
	Armed     bool
	HasShield bool
}

// DefenderScanFunc reports the nearest defender within radius of pos.
// Returns false when no defender is in range. Injected into the behavior
// engine by the composition layer to avoid coupling it to player state.
type DefenderScanFunc func(pos model.Vector3, radius float64) (DefenderContact, bool)

// ChickenLookupFunc returns the slot index and position of the closest
// targetable chicken in a section, or false when none is visible.
// Injected like DefenderScanFunc.
type ChickenLookupFunc func(sectionIndex int, from model.Vector3) (slot int, pos model.Vector3, ok bool)
