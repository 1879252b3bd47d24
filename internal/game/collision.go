package game

import "github.com/vovakirdan/flappy-neural/internal/core"

// Collides reports whether an actor box overlaps either section of an obstacle.
// Boxes that only share an edge do not collide.
func Collides(actor core.Rect, o Obstacle) bool {
	return actor.Intersects(o.TopRect()) || actor.Intersects(o.BottomRect())
}
