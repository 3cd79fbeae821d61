package cardrive

import (
	"testing"

	"github.com/vovakirdan/cardrive/internal/core"
)

func TestCollides(t *testing.T) {
	tests := []struct {
		name     string
		a, b     core.Vec3
		expected bool
	}{
		{"same point", core.V3(0, 0, 0), core.V3(0, 0, 0), true},
		{"close in x", core.V3(0, 0, 0), core.V3(1.4, 0, 0), true},
		{"exactly at radius", core.V3(0, 0, 0), core.V3(1.5, 0, 0), false},
		{"obstacle raised above truck", core.V3(0, 0, 0), core.V3(0, 0.5, 1.3), true},
		{"far ahead", core.V3(0, 0, 0), core.V3(0, 0.5, -10), false},
		{"diagonal miss", core.V3(0, 0, 0), core.V3(1.1, 0, 1.1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(tc.a, tc.b, 1.5); got != tc.expected {
				t.Errorf("Collides() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := Collides(tc.b, tc.a, 1.5); got != tc.expected {
				t.Errorf("Collides() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCheckCollisions(t *testing.T) {
	player := core.V3(2, 0, 0)
	obstacles := []Obstacle{
		{Pos: core.V3(-3, 0.5, -4)},
		{Pos: core.V3(2.5, 0.5, 0.3)},
	}

	if !CheckCollisions(player, obstacles, 1.5) {
		t.Error("expected a collision with the second obstacle")
	}
	if CheckCollisions(player, obstacles[:1], 1.5) {
		t.Error("no obstacle near the player, expected no collision")
	}
	if CheckCollisions(player, nil, 1.5) {
		t.Error("empty pool cannot collide")
	}
}
