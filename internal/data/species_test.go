package data

import "testing"

func TestMain(m *testing.M) {
	if err := LoadSpeciesDefs(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestWalkSpeed_StrictlyIncreasingByTier(t *testing.T) {
	const base = 10.0

	prev := -1.0
	for _, tier := range AllTiers() {
		speed := base * tier.SpeedMultiplier()
		if speed <= prev {
			t.Errorf("tier %s speed %f not greater than previous %f", tier, speed, prev)
		}
		prev = speed
	}
}

func TestDetectionRange_NonDecreasingByTier(t *testing.T) {
	const base = 50.0

	prev := 0.0
	for _, tier := range AllTiers() {
		r := base * tier.RangeMultiplier()
		if r < prev {
			t.Errorf("tier %s range %f smaller than previous %f", tier, r, prev)
		}
		prev = r
	}
}

func TestGetSpeciesDef(t *testing.T) {
	def := GetSpeciesDef("fox")
	if def == nil {
		t.Fatal("fox not in catalog")
	}
	if def.Tier() != TierModerate {
		t.Errorf("fox tier = %s, want MODERATE", def.Tier())
	}
	if def.WalkSpeed() <= def.BaseSpeed() {
		t.Errorf("tier-scaled speed %f not above base %f", def.WalkSpeed(), def.BaseSpeed())
	}

	if GetSpeciesDef("chupacabra") != nil {
		t.Error("unknown species should return nil")
	}
}

func TestSpeciesUpToTier(t *testing.T) {
	minorOnly := SpeciesUpToTier(int32(TierMinor))
	for _, def := range minorOnly {
		if def.Tier() != TierMinor {
			t.Errorf("species %s tier %s leaked into minor-only set", def.ID(), def.Tier())
		}
	}
	if len(minorOnly) == 0 {
		t.Fatal("no minor-tier species seeded")
	}

	all := SpeciesUpToTier(int32(TierCatastrophic))
	if len(all) != SpeciesCount() {
		t.Errorf("full set has %d species, catalog has %d", len(all), SpeciesCount())
	}
}

func TestLowestTierSpecies(t *testing.T) {
	def := LowestTierSpecies()
	if def == nil {
		t.Fatal("no fallback species")
	}
	if def.Tier() != TierMinor {
		t.Errorf("fallback tier = %s, want MINOR", def.Tier())
	}
}

func TestCatalogSeedData(t *testing.T) {
	for id, def := range SpeciesTable {
		if def.SpawnWeight() <= 0 {
			t.Errorf("species %s has non-positive spawn weight", id)
		}
		if def.HitsToDefeat() <= 0 {
			t.Errorf("species %s has non-positive hits to defeat", id)
		}
		if def.RewardAmount() <= 0 {
			t.Errorf("species %s has non-positive reward", id)
		}
		if def.BaseSpeed() <= 0 || def.DetectionRangeBase() <= 0 {
			t.Errorf("species %s has non-positive movement stats", id)
		}
	}
}
