package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdurnford/chicken-little-sub001/internal/model"
)

func testBounds() Bounds {
	return NewBounds(
		model.NewVector3(0, 0, 0),
		model.NewVector3(200, 0, 100),
		5,
	)
}

func TestBounds_Contains(t *testing.T) {
	b := testBounds()

	assert.True(t, b.Contains(model.NewVector3(0, 0, 0)))
	assert.True(t, b.Contains(model.NewVector3(95, 10, 45)), "margin edge is inside")
	assert.False(t, b.Contains(model.NewVector3(96, 0, 0)), "outside X margin")
	assert.False(t, b.Contains(model.NewVector3(0, 0, 46)), "outside Z margin")
	assert.True(t, b.Contains(model.NewVector3(0, -500, 0)), "Y is never constrained")
}

func TestBounds_ClampRoundTrip(t *testing.T) {
	b := testBounds()

	points := []model.Vector3{
		model.NewVector3(500, 7, 500),
		model.NewVector3(-500, -3, 0),
		model.NewVector3(0, 12, -999),
		model.NewVector3(96, 0, 46),
	}

	for _, p := range points {
		clamped := b.Clamp(p)
		require.True(t, b.Contains(clamped), "clamp(%v) = %v not within bounds", p, clamped)
		assert.Equal(t, p.Y, clamped.Y, "clamping must not touch Y")
	}
}

func TestBounds_ClampInsideIsIdentity(t *testing.T) {
	b := testBounds()
	p := model.NewVector3(10, 3, -20)
	assert.Equal(t, p, b.Clamp(p))
}

func TestBounds_MarginLargerThanSize(t *testing.T) {
	b := NewBounds(model.NewVector3(0, 0, 0), model.NewVector3(4, 0, 4), 10)

	clamped := b.Clamp(model.NewVector3(50, 1, 50))
	assert.Equal(t, model.NewVector3(0, 1, 0), clamped, "degenerate zone collapses to center")
	assert.True(t, b.Contains(clamped))
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider([]DefendedArea{
		{Anchor: model.NewVector3(10, 0, 10), TargetCount: 3},
		{Anchor: model.NewVector3(-10, 0, -10), TargetCount: 0},
	})

	require.Equal(t, 2, p.AreaCount())

	area, ok := p.Area(0)
	require.True(t, ok)
	assert.Equal(t, 3, area.TargetCount)

	_, ok = p.Area(2)
	assert.False(t, ok)
	_, ok = p.Area(-1)
	assert.False(t, ok)

	p.SetTargetCount(1, 5)
	area, _ = p.Area(1)
	assert.Equal(t, 5, area.TargetCount)
}
