package data

// speciesDef — definition of one predator species as a Go literal.
// The catalog is static config data: consumed by every subsystem,
// mutated by none.
type speciesDef struct {
	id   string
	name string
	tier ThreatTier

	// Movement / perception
	baseSpeed          float64 // studs per second before tier scaling
	detectionRangeBase float64 // studs before tier scaling

	// Spawn
	spawnWeight float64

	// Combat / economy
	hitsToDefeat      int32 // bat hits before the predator goes down
	captureDifficulty float64
	rewardAmount      int64
}

// speciesTable holds every known species. Ordered by tier then id so the
// lowest-tier fallback is always speciesTable[0].
var speciesTable = []speciesDef{
	{
		id:                 "raccoon",
		name:               "Raccoon",
		tier:               TierMinor,
		baseSpeed:          8.0,
		detectionRangeBase: 40.0,
		spawnWeight:        40,
		hitsToDefeat:       2,
		captureDifficulty:  0.25,
		rewardAmount:       15,
	},
	{
		id:                 "weasel",
		name:               "Weasel",
		tier:               TierMinor,
		baseSpeed:          9.0,
		detectionRangeBase: 45.0,
		spawnWeight:        30,
		hitsToDefeat:       2,
		captureDifficulty:  0.30,
		rewardAmount:       20,
	},
	{
		id:                 "fox",
		name:               "Fox",
		tier:               TierModerate,
		baseSpeed:          10.0,
		detectionRangeBase: 50.0,
		spawnWeight:        25,
		hitsToDefeat:       3,
		captureDifficulty:  0.40,
		rewardAmount:       35,
	},
	{
		id:                 "hawk",
		name:               "Hawk",
		tier:               TierModerate,
		baseSpeed:          11.0,
		detectionRangeBase: 60.0,
		spawnWeight:        20,
		hitsToDefeat:       2,
		captureDifficulty:  0.45,
		rewardAmount:       40,
	},
	{
		id:                 "coyote",
		name:               "Coyote",
		tier:               TierSevere,
		baseSpeed:          11.5,
		detectionRangeBase: 55.0,
		spawnWeight:        15,
		hitsToDefeat:       4,
		captureDifficulty:  0.55,
		rewardAmount:       60,
	},
	{
		id:                 "bobcat",
		name:               "Bobcat",
		tier:               TierSevere,
		baseSpeed:          12.0,
		detectionRangeBase: 58.0,
		spawnWeight:        12,
		hitsToDefeat:       4,
		captureDifficulty:  0.60,
		rewardAmount:       70,
	},
	{
		id:                 "wolf",
		name:               "Wolf",
		tier:               TierExtreme,
		baseSpeed:          12.5,
		detectionRangeBase: 60.0,
		spawnWeight:        8,
		hitsToDefeat:       5,
		captureDifficulty:  0.70,
		rewardAmount:       90,
	},
	{
		id:                 "bear",
		name:               "Bear",
		tier:               TierCatastrophic,
		baseSpeed:          13.0,
		detectionRangeBase: 65.0,
		spawnWeight:        4,
		hitsToDefeat:       8,
		captureDifficulty:  0.85,
		rewardAmount:       150,
	},
}
