package zone

import (
	"sync"
)

// StaticProvider is an AreaProvider backed by a fixed slice of areas.
// Used by the standalone simulation server and by tests; a real game
// layer supplies its own provider over live coop state.
type StaticProvider struct {
	mu    sync.RWMutex
	areas []DefendedArea
}

// NewStaticProvider creates a provider over the given areas.
func NewStaticProvider(areas []DefendedArea) *StaticProvider {
	return &StaticProvider{areas: areas}
}

// Area returns the defended area at index.
func (p *StaticProvider) Area(index int) (DefendedArea, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if index < 0 || index >= len(p.areas) {
		return DefendedArea{}, false
	}
	return p.areas[index], true
}

// AreaCount returns the number of section slots.
func (p *StaticProvider) AreaCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.areas)
}

// SetTargetCount updates the available-target count for a section.
func (p *StaticProvider) SetTargetCount(index, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.areas) {
		p.areas[index].TargetCount = count
	}
}
