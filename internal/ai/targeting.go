package ai

import (
	"log/slog"
	"math"
	"sort"

	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
)

// targetCandidate is one defended area within detection range.
type targetCandidate struct {
	section  int
	distance float64
	targets  int
	score    float64
}

// selectTarget scans defended areas within the predator's detection range,
// ranks them by available targets over distance, and makes a weighted
// pick: the best candidate usually wins, the runner-up sometimes, and any
// candidate occasionally. Returns false when nothing is in range; the
// caller keeps the predator roaming.
func (e *Engine) selectTarget(p *model.Predator) (int, bool) {
	def := data.GetSpeciesDef(p.SpeciesID)
	if def == nil {
		return model.NoSection, false
	}
	detectionRange := def.DetectionRange()

	var candidates []targetCandidate
	for i := range e.areas.AreaCount() {
		area, ok := e.areas.Area(i)
		if !ok {
			continue
		}
		dist := p.Position.Distance(area.Anchor)
		if dist > detectionRange {
			continue
		}
		candidates = append(candidates, targetCandidate{
			section:  i,
			distance: dist,
			targets:  area.TargetCount,
			score:    float64(area.TargetCount) / math.Max(dist, 1),
		})
	}

	if len(candidates) == 0 {
		return model.NoSection, false
	}

	// Rank descending by score; equal scores break toward the lower
	// section index so ordering is stable across ticks.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].section < candidates[j].section
	})

	rng := p.RNG()
	roll := rng.Float64()

	var chosen targetCandidate
	switch {
	case roll < 0.5:
		chosen = candidates[0]
	case roll < 0.8 && len(candidates) > 1:
		chosen = candidates[1]
	default:
		chosen = candidates[rng.IntN(len(candidates))]
	}

	if IsDebugEnabled() {
		slog.Debug("predator picked target",
			"id", p.ID,
			"section", chosen.section,
			"distance", chosen.distance,
			"targets", chosen.targets,
			"candidates", len(candidates))
	}
	return chosen.section, true
}
