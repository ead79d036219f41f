package data

// ThreatTier orders predator species by how dangerous they are.
// Higher tiers unlock on later waves, move faster, and see farther.
type ThreatTier int32

const (
	TierMinor ThreatTier = iota
	TierModerate
	TierSevere
	TierExtreme
	TierCatastrophic

	// TierCount is the number of known threat tiers.
	TierCount = int32(TierCatastrophic) + 1
)

// String returns human-readable tier name
func (t ThreatTier) String() string {
	switch t {
	case TierMinor:
		return "MINOR"
	case TierModerate:
		return "MODERATE"
	case TierSevere:
		return "SEVERE"
	case TierExtreme:
		return "EXTREME"
	case TierCatastrophic:
		return "CATASTROPHIC"
	default:
		return "UNKNOWN"
	}
}

// SpeedMultiplier scales a species' base walk speed by tier.
// Strictly increasing: a higher tier always moves faster at equal base.
func (t ThreatTier) SpeedMultiplier() float64 {
	return 1.0 + 0.15*float64(t)
}

// RangeMultiplier scales a species' base detection range by tier.
func (t ThreatTier) RangeMultiplier() float64 {
	return 1.0 + 0.25*float64(t)
}

// AllTiers returns tiers in ascending threat order.
func AllTiers() []ThreatTier {
	return []ThreatTier{TierMinor, TierModerate, TierSevere, TierExtreme, TierCatastrophic}
}
