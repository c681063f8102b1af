package scene

import (
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/types"
)

// A Collidable is an entity that owns a bounding volume hierarchy.
type Collidable interface {
	// The entity id. Entities never collide with themselves.
	ID() int

	// The root of the entity bounding volume hierarchy or nil if the
	// entity has no collider.
	Collider() *collision.Volume

	// Re-apply the entity pose to its collider.
	UpdateCollider()
}

// The pose fields that are rolled back when a move is reverted.
type Pose struct {
	Position types.Vec3
	LookAt   types.Vec3
}

// A Movable is a Collidable whose pose can be saved and restored.
type Movable interface {
	Collidable

	Snapshot() Pose
	Restore(Pose)
}

// A CollisionQuery reports whether a collidable overlaps anything else in
// the scene.
type CollisionQuery interface {
	Collides(c Collidable) bool
}

// Tentatively apply a displacement to entity and keep it only if the
// entity collider does not overlap anything reported by query. The
// displacement is applied by the apply callback, which should only modify
// the entity pose. On a collision the pose is restored and the collider is
// re-synced with it. Returns true if the move was committed.
//
// Entities without a collider and nil queries always move freely.
func MoveWithCollision(entity Movable, query CollisionQuery, apply func()) bool {
	snapshot := entity.Snapshot()
	apply()
	entity.UpdateCollider()

	if query == nil || entity.Collider() == nil {
		return true
	}
	if !query.Collides(entity) {
		return true
	}

	entity.Restore(snapshot)
	entity.UpdateCollider()
	return false
}
