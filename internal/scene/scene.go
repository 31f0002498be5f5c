package scene

import (
	"spectral-renderer/internal/bvh"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
)

// Scene owns all objects, the list of emitter indices and a BVH keyed by
// object index. It implements Geometry itself, enabling nested culling.
type Scene struct {
	objects  []Object
	emitters []uint32
	tree     *bvh.Tree
}

// Intersection is a geometric hit annotated with the hit object.
type Intersection struct {
	geometry.Intersection
	Object Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{tree: bvh.EmptyTree()}
}

// Add appends an object, tracking emitters. Call Build afterwards.
func (s *Scene) Add(obj Object) {
	index := uint32(len(s.objects))
	if obj.IsEmitter() {
		s.emitters = append(s.emitters, index)
	}
	s.objects = append(s.objects, obj)
}

// Build constructs the object BVH. Must run before intersecting; it is also
// the rebuild hook after deserialization.
func (s *Scene) Build() {
	ids := make([]uint32, len(s.objects))
	for i := range ids {
		ids[i] = uint32(i)
	}
	s.tree = bvh.NewTree(ids, func(id uint32) geometry.Aabb {
		return s.objects[id].Bounds()
	})
}

// Objects exposes all scene objects.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Emitters returns the indices of all emitters.
func (s *Scene) Emitters() []uint32 {
	return s.emitters
}

// NumEmitters returns the emitter count.
func (s *Scene) NumEmitters() int {
	return len(s.emitters)
}

// EmitterAt resolves an object index to its emitter variant; nil for
// receivers.
func (s *Scene) EmitterAt(index uint32) *Emitter {
	return s.objects[index].Emitter
}

// IntersectObject resolves the nearest hit and the object that produced it.
func (s *Scene) IntersectObject(ray geometry.Ray) (Intersection, bool) {
	var nearest Intersection
	found := false

	for _, id := range s.tree.Intersect(ray) {
		if i, ok := s.objects[id].Intersect(ray); ok {
			ray.TEnd = i.T
			nearest = Intersection{Intersection: i, Object: s.objects[id]}
			found = true
		}
	}

	return nearest, found
}

func (s *Scene) Bounds() geometry.Aabb {
	return s.tree.Bounds()
}

func (s *Scene) Contains(_ mathutil.Vec3) (bool, bool) {
	return false, false
}

func (s *Scene) Intersect(ray geometry.Ray) (geometry.Intersection, bool) {
	i, ok := s.IntersectObject(ray)
	return i.Intersection, ok
}

func (s *Scene) Intersects(ray geometry.Ray) bool {
	for _, id := range s.tree.Intersect(ray) {
		if s.objects[id].Intersects(ray) {
			return true
		}
	}
	return false
}
