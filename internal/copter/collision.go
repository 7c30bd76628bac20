package copter

import (
	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/core"
)

// SpriteRect returns the body's visual bounding box.
func SpriteRect(b Body, size config.BodyConfig) core.Rect {
	return core.CenteredRect(b.X, b.Y, size.Width, size.Height)
}

// Hitbox returns the collision rectangle: the sprite box inset by the
// configured padding on every side.
func Hitbox(b Body, size config.BodyConfig) core.Rect {
	return SpriteRect(b, size).Inset(size.HitboxPadding)
}

// Intersects is the AABB overlap test used for every collision.
func Intersects(a, b core.Rect) bool {
	return a.Intersects(b)
}

// TopRect returns the collision rectangle of the upper barrier.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.TopHeight)
}

// BottomRect returns the collision rectangle of the lower barrier. It runs
// to the bottom of the world, through the ground.
func (o Obstacle) BottomRect(worldHeight float64) core.Rect {
	bottom := o.GapStart() + o.GapHeight
	return core.NewRect(o.X, bottom, o.Width, worldHeight-bottom)
}

// CheckObstacles reports whether hitbox overlaps the top or bottom barrier
// of any active obstacle. Inactive slots are skipped whatever their geometry.
func CheckObstacles(hitbox core.Rect, obstacles []Obstacle, worldHeight float64) bool {
	for _, o := range obstacles {
		if !o.Active {
			continue
		}
		if Intersects(hitbox, o.TopRect()) || Intersects(hitbox, o.BottomRect(worldHeight)) {
			return true
		}
	}
	return false
}
