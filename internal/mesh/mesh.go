// Package mesh implements triangle meshes with an internal face BVH,
// watertight ray/triangle intersection and OBJ loading.
package mesh

import (
	"log/slog"
	"math"

	"spectral-renderer/internal/bvh"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
)

// ShadingMode defines the normal shading of triangles. Flat surfaces report
// the face normal; Phong interpolates the vertex normals.
type ShadingMode int

const (
	Flat ShadingMode = iota
	Phong
)

// Face references three vertex indices and three normal indices.
type Face struct {
	V  [3]uint32
	VN [3]uint32
}

// Vertices resolves the face positions.
func (f Face) Vertices(vertices []mathutil.Vec3) (mathutil.Vec3, mathutil.Vec3, mathutil.Vec3) {
	return vertices[f.V[0]], vertices[f.V[1]], vertices[f.V[2]]
}

// Normals resolves the face vertex normals.
func (f Face) Normals(normals []mathutil.Vec3) (mathutil.Vec3, mathutil.Vec3, mathutil.Vec3) {
	return normals[f.VN[0]], normals[f.VN[1]], normals[f.VN[2]]
}

// FaceNormal returns the unnormalised geometric normal.
func (f Face) FaceNormal(vertices []mathutil.Vec3) mathutil.Vec3 {
	v0, v1, v2 := f.Vertices(vertices)
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Bounds returns the face bounding box.
func (f Face) Bounds(vertices []mathutil.Vec3) geometry.Aabb {
	v0, v1, v2 := f.Vertices(vertices)
	return geometry.NewAabb(mathutil.Vec3Min3(v0, v1, v2), mathutil.Vec3Max3(v0, v1, v2))
}

// intersect runs the watertight ray/triangle test: shear the triangle into
// ray space along the dominant direction axis and evaluate the scaled
// barycentric coordinates.
func (f Face) intersect(m *Mesh, ray geometry.Ray) (geometry.Intersection, bool) {
	v0, v1, v2 := f.Vertices(m.vertices)

	dir := ray.Direction
	kz := dir.Abs().MaxIndex()
	kx := kz + 1
	if kx == 3 {
		kx = 0
	}
	ky := kx + 1
	if ky == 3 {
		ky = 0
	}

	// swap dimensions to preserve the winding direction
	if dir[kz] < 0 {
		kx, ky = ky, kx
	}

	// shear constants
	sx := dir[kx] / dir[kz]
	sy := dir[ky] / dir[kz]
	sz := 1 / dir[kz]

	a := v0.Sub(ray.Origin)
	b := v1.Sub(ray.Origin)
	c := v2.Sub(ray.Origin)

	ax := a[kx] - sx*a[kz]
	ay := a[ky] - sy*a[kz]
	bx := b[kx] - sx*b[kz]
	by := b[ky] - sy*b[kz]
	cx := c[kx] - sx*c[kz]
	cy := c[ky] - sy*c[kz]

	// scaled barycentric coordinates
	u := cx*by - cy*bx
	v := ax*cy - ay*cx
	w := bx*ay - by*ax

	if u < 0 || v < 0 || w < 0 {
		return geometry.Intersection{}, false
	}

	det := u + v + w
	if det == 0 {
		return geometry.Intersection{}, false
	}
	invDet := 1 / det

	az := sz * a[kz]
	bz := sz * b[kz]
	cz := sz * c[kz]
	t := (u*az + v*bz + w*cz) * invDet

	if !ray.Contains(t) {
		return geometry.Intersection{}, false
	}

	var normal mathutil.Vec3
	switch m.shadingMode {
	case Flat:
		normal = v1.Sub(v0).Cross(v2.Sub(v0))
	case Phong:
		n0, n1, n2 := f.Normals(m.normals)
		beta := u * invDet
		gamma := v * invDet
		alpha := 1 - beta - gamma
		normal = n0.Scale(alpha).Add(n1.Scale(beta)).Add(n2.Scale(gamma))
	}

	return geometry.Intersection{
		Point:    ray.At(t),
		Normal:   normal.Normalize(),
		Incoming: ray.Direction,
		T:        t,
	}, true
}

func (f Face) intersects(m *Mesh, ray geometry.Ray) bool {
	_, ok := f.intersect(m, ray)
	return ok
}

// Mesh owns vertices, optional vertex normals, faces and a face BVH.
type Mesh struct {
	vertices    []mathutil.Vec3
	normals     []mathutil.Vec3
	faces       []Face
	shadingMode ShadingMode
	tree        *bvh.Tree
}

// New creates an unbuilt mesh. Call Build before intersecting.
func New(vertices, normals []mathutil.Vec3, faces []Face, shadingMode ShadingMode) *Mesh {
	return &Mesh{
		vertices:    vertices,
		normals:     normals,
		faces:       faces,
		shadingMode: shadingMode,
		tree:        bvh.EmptyTree(),
	}
}

// Vertices exposes the vertex positions.
func (m *Mesh) Vertices() []mathutil.Vec3 { return m.vertices }

// Normals exposes the vertex normals.
func (m *Mesh) Normals() []mathutil.Vec3 { return m.normals }

// Faces exposes the faces.
func (m *Mesh) Faces() []Face { return m.faces }

// Shading returns the shading mode.
func (m *Mesh) Shading() ShadingMode { return m.shadingMode }

// Translate moves all vertices.
func (m *Mesh) Translate(translation mathutil.Vec3) *Mesh {
	for i := range m.vertices {
		m.vertices[i] = m.vertices[i].Add(translation)
	}
	return m
}

// Scale scales vertices component-wise; normals are scaled by the inverse
// and renormalised.
func (m *Mesh) Scale(scale mathutil.Vec3) *Mesh {
	inv := mathutil.Vec3{1 / scale[0], 1 / scale[1], 1 / scale[2]}

	for i := range m.vertices {
		m.vertices[i] = m.vertices[i].ElemMul(scale)
	}
	for i := range m.normals {
		m.normals[i] = m.normals[i].ElemMul(inv).Normalize()
	}
	return m
}

// Rotate rotates vertices and normals.
func (m *Mesh) Rotate(rotation mathutil.Mat3) *Mesh {
	for i := range m.vertices {
		m.vertices[i] = rotation.MulVec3(m.vertices[i])
	}
	for i := range m.normals {
		m.normals[i] = rotation.MulVec3(m.normals[i])
	}
	return m
}

// angleWeights determines the weights by which to scale a triangle's normal
// when accumulating the vertex normals: the opening angle at each vertex.
func angleWeights(p0, p1, p2 mathutil.Vec3) (float64, float64, float64) {
	e01 := p1.Sub(p0).Normalize()
	e12 := p2.Sub(p1).Normalize()
	e20 := p0.Sub(p2).Normalize()

	w0 := math.Acos(mathutil.Clamp(e01.Dot(e20.Neg()), -1, 1))
	w1 := math.Acos(mathutil.Clamp(e12.Dot(e01.Neg()), -1, 1))
	w2 := math.Acos(mathutil.Clamp(e20.Dot(e12.Neg()), -1, 1))

	return w0, w1, w2
}

// Build synthesises missing Phong normals and constructs the face BVH.
func (m *Mesh) Build() *Mesh {
	if m.shadingMode == Phong && len(m.normals) == 0 {
		slog.Info("computing mesh normals", "faces", len(m.faces))
		m.normals = make([]mathutil.Vec3, len(m.vertices))

		for _, face := range m.faces {
			v0, v1, v2 := face.Vertices(m.vertices)
			normal := face.FaceNormal(m.vertices)
			w0, w1, w2 := angleWeights(v0, v1, v2)

			m.normals[face.VN[0]] = m.normals[face.VN[0]].Add(normal.Scale(w0))
			m.normals[face.VN[1]] = m.normals[face.VN[1]].Add(normal.Scale(w1))
			m.normals[face.VN[2]] = m.normals[face.VN[2]].Add(normal.Scale(w2))
		}

		for i := range m.normals {
			m.normals[i] = m.normals[i].Normalize()
		}
	}

	ids := make([]uint32, len(m.faces))
	for i := range ids {
		ids[i] = uint32(i)
	}
	m.tree = bvh.NewTree(ids, func(id uint32) geometry.Aabb {
		return m.faces[id].Bounds(m.vertices)
	})

	return m
}

func (m *Mesh) Bounds() geometry.Aabb {
	return m.tree.Bounds()
}

func (m *Mesh) Contains(_ mathutil.Vec3) (bool, bool) {
	return false, false
}

func (m *Mesh) Intersect(ray geometry.Ray) (geometry.Intersection, bool) {
	var nearest geometry.Intersection
	found := false

	for _, id := range m.tree.Intersect(ray) {
		if i, ok := m.faces[id].intersect(m, ray); ok {
			ray.TEnd = i.T
			nearest = i
			found = true
		}
	}

	return nearest, found
}

func (m *Mesh) Intersects(ray geometry.Ray) bool {
	for _, id := range m.tree.Intersect(ray) {
		if m.faces[id].intersects(m, ray) {
			return true
		}
	}
	return false
}
