package cardrive

import "github.com/vovakirdan/cardrive/internal/core"

// Collides reports whether two positions are closer than radius.
func Collides(a, b core.Vec3, radius float64) bool {
	return a.DistanceTo(b) < radius
}

// CheckCollisions reports whether the player is within radius of any obstacle.
func CheckCollisions(player core.Vec3, obstacles []Obstacle, radius float64) bool {
	for _, o := range obstacles {
		if Collides(player, o.Pos, radius) {
			return true
		}
	}
	return false
}
