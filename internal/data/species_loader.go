package data

import (
	"log/slog"
)

// SpeciesTable — global registry of all predator species.
// map[speciesID]*speciesDef
var SpeciesTable map[string]*speciesDef

// GetSpeciesDef returns the species definition by ID.
// Returns nil if the species is unknown.
func GetSpeciesDef(speciesID string) *speciesDef {
	if SpeciesTable == nil {
		return nil
	}
	return SpeciesTable[speciesID]
}

// LoadSpeciesDefs builds SpeciesTable from the Go literals (speciesTable).
func LoadSpeciesDefs() error {
	SpeciesTable = make(map[string]*speciesDef, len(speciesTable))

	for i := range speciesTable {
		SpeciesTable[speciesTable[i].id] = &speciesTable[i]
	}

	slog.Info("loaded predator species", "count", len(SpeciesTable))
	return nil
}

// SpeciesDef accessor methods — read access to speciesDef fields.

func (d *speciesDef) ID() string                  { return d.id }
func (d *speciesDef) Name() string                { return d.name }
func (d *speciesDef) Tier() ThreatTier            { return d.tier }
func (d *speciesDef) BaseSpeed() float64          { return d.baseSpeed }
func (d *speciesDef) SpawnWeight() float64        { return d.spawnWeight }
func (d *speciesDef) HitsToDefeat() int32         { return d.hitsToDefeat }
func (d *speciesDef) CaptureDifficulty() float64  { return d.captureDifficulty }
func (d *speciesDef) RewardAmount() int64         { return d.rewardAmount }
func (d *speciesDef) DetectionRangeBase() float64 { return d.detectionRangeBase }

// WalkSpeed returns the tier-scaled walk speed for this species.
func (d *speciesDef) WalkSpeed() float64 {
	return d.baseSpeed * d.tier.SpeedMultiplier()
}

// DetectionRange returns the tier-scaled detection range for this species.
func (d *speciesDef) DetectionRange() float64 {
	return d.detectionRangeBase * d.tier.RangeMultiplier()
}

// SpeciesUpToTier returns all species whose tier index is <= maxTierIndex,
// in catalog order (tier ascending). Candidate set for the spawn roulette.
func SpeciesUpToTier(maxTierIndex int32) []*speciesDef {
	if SpeciesTable == nil {
		return nil
	}
	var out []*speciesDef
	for i := range speciesTable {
		if int32(speciesTable[i].tier) <= maxTierIndex {
			out = append(out, &speciesTable[i])
		}
	}
	return out
}

// LowestTierSpecies returns the fallback species: the first catalog entry,
// which by table ordering is the lowest tier.
func LowestTierSpecies() *speciesDef {
	if len(speciesTable) == 0 {
		return nil
	}
	return &speciesTable[0]
}

// SpeciesCount returns the number of known species.
func SpeciesCount() int {
	return len(speciesTable)
}
