package scene

import (
	"sort"

	"github.com/achilleasa/lumen/log"
)

// A Registry maps object ids to objects. Iteration always visits objects in
// ascending id order. The registry must only be mutated between frames.
type Registry struct {
	logger log.Logger

	objects map[int]*Object
	order   []int
}

// Create an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  log.New("registry"),
		objects: make(map[int]*Object),
		order:   make([]int, 0),
	}
}

// Add an object, replacing any object registered with the same id. The
// object collider is synced to its current pose so a newly registered
// object never carries a stale transform.
func (r *Registry) Put(obj *Object) {
	obj.UpdateCollider()

	id := obj.ID()
	if _, exists := r.objects[id]; exists {
		r.logger.Debugf("replacing object %d", id)
	} else {
		at := sort.SearchInts(r.order, id)
		r.order = append(r.order, 0)
		copy(r.order[at+1:], r.order[at:])
		r.order[at] = id
	}
	r.objects[id] = obj
}

// Lookup an object by id.
func (r *Registry) Get(id int) (*Object, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Remove obj from the registry. Returns false if obj is not the object
// registered under its id.
func (r *Registry) Remove(obj *Object) bool {
	if r == nil || obj == nil {
		return false
	}

	id := obj.ID()
	if registered, exists := r.objects[id]; !exists || registered != obj {
		return false
	}
	delete(r.objects, id)
	at := sort.SearchInts(r.order, id)
	r.order = append(r.order[:at], r.order[at+1:]...)
	return true
}

// Get the number of registered objects.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Get the registered ids in ascending order.
func (r *Registry) IDs() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// Invoke fn for each object in ascending id order until fn returns false.
func (r *Registry) ForEach(fn func(obj *Object) bool) {
	if r == nil {
		return
	}
	for _, id := range r.order {
		if !fn(r.objects[id]) {
			return
		}
	}
}

// Collides implements CollisionQuery. Each registered object collider is
// tested against the collider of c; the query stops at the first hit.
// Objects without a collider and c itself are skipped.
func (r *Registry) Collides(c Collidable) bool {
	if r == nil || c == nil {
		return false
	}

	volume := c.Collider()
	if volume == nil {
		return false
	}

	r.logger.Debugf("testing collider of entity %d (%s) against %d objects", c.ID(), volume, len(r.order))
	hit := false
	r.ForEach(func(obj *Object) bool {
		if obj.ID() == c.ID() || obj.Collider() == nil {
			return true
		}
		r.logger.Debugf("testing entity %d against object %d (%s)", c.ID(), obj.ID(), obj.Collider())
		if obj.Collider().Test(volume) {
			r.logger.Debugf("entity %d collides with object %d", c.ID(), obj.ID())
			hit = true
			return false
		}
		return true
	})
	return hit
}
