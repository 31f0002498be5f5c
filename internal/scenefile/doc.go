// Package scenefile defines the on-disk scene document: a recursive
// tagged-union JSON schema describing the full renderer, plus the builders
// turning a document into runtime objects. The same document (with mesh
// data inlined) is the payload of binary checkpoints.
package scenefile

import (
	"encoding/json"
	"fmt"
)

// Document is the root of a scene file.
type Document struct {
	Config     ConfigDoc     `json:"config"`
	Camera     CameraDoc     `json:"camera"`
	Integrator IntegratorDoc `json:"integrator"`
	Scene      SceneDoc      `json:"scene"`
	Sensor     *SensorDoc    `json:"sensor,omitempty"`
}

// ConfigDoc mirrors renderer.Config.
type ConfigDoc struct {
	Output      string   `json:"output"`
	Passes      int      `json:"passes"`
	Threads     int      `json:"threads,omitempty"`
	Supersample int      `json:"supersample,omitempty"`
	Formats     []string `json:"formats,omitempty"`
}

// SensorDoc overrides the sensor resolution; absent sensors derive from the
// camera.
type SensorDoc struct {
	Resolution [2]int `json:"resolution"`
}

// CameraDoc is the tagged camera variant.
type CameraDoc struct {
	Perspective  *PerspectiveDoc  `json:"perspective,omitempty"`
	Orthographic *OrthographicDoc `json:"orthographic,omitempty"`
}

// PerspectiveDoc configures the pinhole camera.
type PerspectiveDoc struct {
	Eye        [3]float64       `json:"eye"`
	Target     [3]float64       `json:"target"`
	Up         [3]float64       `json:"up"`
	Fov        float64          `json:"fov"`
	Resolution [2]int           `json:"resolution"`
	Sampler    CameraSamplerDoc `json:"sampler"`
}

// OrthographicDoc configures the parallel camera.
type OrthographicDoc struct {
	Position   [3]float64       `json:"position"`
	Target     [3]float64       `json:"target"`
	Up         [3]float64       `json:"up"`
	Fov        [2]float64       `json:"fov"`
	Resolution [2]int           `json:"resolution"`
	Sampler    CameraSamplerDoc `json:"sampler"`
}

// CameraSamplerDoc selects the sub-pixel sample source; random by default.
type CameraSamplerDoc struct {
	Constant *[2]float64 `json:"constant,omitempty"`
}

// FloatSamplerDoc selects the float sample source; random by default.
type FloatSamplerDoc struct {
	Constant *float64 `json:"constant,omitempty"`
}

// IntegratorDoc is the tagged integrator variant.
type IntegratorDoc struct {
	Path           *IntegratorParams `json:"path,omitempty"`
	SpectralPath   *IntegratorParams `json:"spectral_path,omitempty"`
	SpectralSingle *IntegratorParams `json:"spectral_single,omitempty"`
	Whitted        *IntegratorParams `json:"whitted,omitempty"`
}

// IntegratorParams are the shared integrator settings.
type IntegratorParams struct {
	MaxDepth           int             `json:"max_depth"`
	Sampler            FloatSamplerDoc `json:"sampler"`
	SpectralSampler    string          `json:"spectral_sampler,omitempty"` // "hero" | "random"
	DirectIllumination string          `json:"direct_illumination"`        // "all" | "random"
}

// SceneDoc lists the scene objects.
type SceneDoc struct {
	Objects []ObjectDoc `json:"objects"`
}

// ObjectDoc is the tagged object variant.
type ObjectDoc struct {
	Emitter  *EmitterDoc  `json:"emitter,omitempty"`
	Receiver *ReceiverDoc `json:"receiver,omitempty"`
}

// EmitterDoc configures an emitting object.
type EmitterDoc struct {
	Geometry GeometryDoc `json:"geometry"`
	Bsdf     []BxdfDoc   `json:"bsdf"`
	Emission ColorDoc    `json:"emission"`
}

// ReceiverDoc configures a non-emitting object.
type ReceiverDoc struct {
	Geometry GeometryDoc `json:"geometry"`
	Bsdf     []BxdfDoc   `json:"bsdf"`
}

// GeometryDoc is the tagged geometry variant.
type GeometryDoc struct {
	Aabb     *AabbDoc     `json:"aabb,omitempty"`
	Sphere   *SphereDoc   `json:"sphere,omitempty"`
	Plane    *PlaneDoc    `json:"plane,omitempty"`
	Disk     *DiskDoc     `json:"disk,omitempty"`
	Point    *PointDoc    `json:"point,omitempty"`
	Bubble   *BubbleDoc   `json:"bubble,omitempty"`
	Mesh     *MeshDoc     `json:"mesh,omitempty"`
	MeshData *MeshDataDoc `json:"mesh_data,omitempty"`
}

type AabbDoc struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

type SphereDoc struct {
	Center  [3]float64 `json:"center"`
	Radius  float64    `json:"radius"`
	Inverse bool       `json:"inverse,omitempty"`
}

type PlaneDoc struct {
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
}

type DiskDoc struct {
	Center [3]float64 `json:"center"`
	Normal [3]float64 `json:"normal"`
	Radius float64    `json:"radius"`
}

type PointDoc struct {
	Position [3]float64 `json:"position"`
}

type BubbleDoc struct {
	Center      [3]float64 `json:"center"`
	InnerRadius float64    `json:"inner_radius"`
	OuterRadius float64    `json:"outer_radius"`
}

// MeshDoc loads a mesh from an OBJ file with an optional affine transform
// applied before the BVH build.
type MeshDoc struct {
	Path        string       `json:"path"`
	Scale       *[3]float64  `json:"scale,omitempty"`
	Rotation    *RotationDoc `json:"rotation,omitempty"`
	Translation *[3]float64  `json:"translation,omitempty"`
	Shading     string       `json:"shading"` // "flat" | "phong"
}

// RotationDoc is an axis/angle rotation; the angle is in degrees.
type RotationDoc struct {
	Axis  [3]float64 `json:"axis"`
	Angle float64    `json:"angle"`
}

// MeshDataDoc inlines the mesh geometry; the checkpoint form of MeshDoc.
type MeshDataDoc struct {
	Vertices [][3]float64 `json:"vertices"`
	Normals  [][3]float64 `json:"normals"`
	Faces    [][6]uint32  `json:"faces"` // v0 v1 v2 n0 n1 n2
	Shading  string       `json:"shading"`
}

// BxdfDoc is the tagged scattering function variant.
type BxdfDoc struct {
	LambertianReflection   *LambertianDoc           `json:"lambertian_reflection,omitempty"`
	LambertianTransmission *LambertianDoc           `json:"lambertian_transmission,omitempty"`
	OrenNayar              *OrenNayarDoc            `json:"oren_nayar,omitempty"`
	SpecularReflection     *SpecularReflectionDoc   `json:"specular_reflection,omitempty"`
	SpecularTransmission   *SpecularTransmissionDoc `json:"specular_transmission,omitempty"`
	FresnelSpecular        *FresnelSpecularDoc      `json:"fresnel_specular,omitempty"`
}

type LambertianDoc struct {
	Color ColorDoc `json:"color"`
}

type OrenNayarDoc struct {
	Color ColorDoc `json:"color"`
	Sigma float64  `json:"sigma"`
}

type SpecularReflectionDoc struct {
	Color   ColorDoc   `json:"color"`
	Fresnel FresnelDoc `json:"fresnel"`
}

type SpecularTransmissionDoc struct {
	Color ColorDoc      `json:"color"`
	EtaI  RefractiveDoc `json:"eta_i"`
	EtaT  RefractiveDoc `json:"eta_t"`
}

type FresnelSpecularDoc struct {
	Reflection   ColorDoc      `json:"reflection"`
	Transmission ColorDoc      `json:"transmission"`
	EtaI         RefractiveDoc `json:"eta_i"`
	EtaT         RefractiveDoc `json:"eta_t"`
}

// FresnelDoc is the tagged fresnel variant: a dielectric boundary or the
// always-reflecting no-op.
type FresnelDoc struct {
	Dielectric *DielectricDoc `json:"dielectric,omitempty"`
	NoOp       bool           `json:"noop,omitempty"`
}

type DielectricDoc struct {
	EtaI RefractiveDoc `json:"eta_i"`
	EtaT RefractiveDoc `json:"eta_t"`
}

// RefractiveDoc names a refractive material, or interpolates linearly over
// the spectrum: "glass" or {"linear": [min, max]}.
type RefractiveDoc struct {
	Kind   string
	Linear *[2]float64
}

func (r *RefractiveDoc) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Kind = name
		return nil
	}

	var obj struct {
		Linear *[2]float64 `json:"linear"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Linear == nil {
		return fmt.Errorf("scenefile: unable to parse refractive type from %s", data)
	}

	r.Kind = "linear"
	r.Linear = obj.Linear
	return nil
}

func (r RefractiveDoc) MarshalJSON() ([]byte, error) {
	if r.Linear != nil {
		return json.Marshal(struct {
			Linear *[2]float64 `json:"linear"`
		}{Linear: r.Linear})
	}
	return json.Marshal(r.Kind)
}
