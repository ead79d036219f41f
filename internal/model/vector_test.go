package model

import (
	"math"
	"testing"
)

func TestVector3_Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, -2, 1)

	sum := a.Add(b)
	if sum != (Vector3{X: 5, Y: 0, Z: 4}) {
		t.Errorf("Add = %v, want {5 0 4}", sum)
	}

	diff := b.Sub(a)
	if diff != (Vector3{X: 3, Y: -4, Z: -2}) {
		t.Errorf("Sub = %v, want {3 -4 -2}", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vector3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", scaled)
	}
}

func TestVector3_Length(t *testing.T) {
	v := NewVector3(3, 0, 4)
	if v.Length() != 5 {
		t.Errorf("Length = %f, want 5", v.Length())
	}
	if v.DistanceSquared(Vector3{}) != 25 {
		t.Errorf("DistanceSquared = %f, want 25", v.DistanceSquared(Vector3{}))
	}
}

func TestVector3_Normalized(t *testing.T) {
	v := NewVector3(10, 0, 0).Normalized()
	if v != (Vector3{X: 1}) {
		t.Errorf("Normalized = %v, want {1 0 0}", v)
	}

	// Zero vector must not produce NaN.
	z := Vector3{}.Normalized()
	if !z.IsZero() {
		t.Errorf("Normalized zero = %v, want zero", z)
	}

	unit := NewVector3(2, 3, 6).Normalized()
	if math.Abs(unit.Length()-1) > 1e-9 {
		t.Errorf("unit length = %f, want 1", unit.Length())
	}
}

func TestVector3_Distance(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(0, 3, 4)
	if a.Distance(b) != 5 {
		t.Errorf("Distance = %f, want 5", a.Distance(b))
	}
}
