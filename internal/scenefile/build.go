package scenefile

import (
	"encoding/json"
	"fmt"
	"os"

	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/camera"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/integrator"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/mesh"
	"spectral-renderer/internal/renderer"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/scene"
	"spectral-renderer/internal/sensor"
)

// Load reads and parses a scene document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes a scene document.
func Save(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("scenefile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scenefile: write %s: %w", path, err)
	}
	return nil
}

// Build turns a document into a runtime renderer. Mesh nodes loaded from
// disk are rewritten into their inline data form, making the document
// checkpoint-ready.
func Build(doc *Document) (*renderer.Renderer, error) {
	cfg := renderer.Config{
		Output:      doc.Config.Output,
		Passes:      doc.Config.Passes,
		Threads:     doc.Config.Threads,
		Supersample: doc.Config.Supersample,
	}
	for _, f := range doc.Config.Formats {
		cfg.Formats = append(cfg.Formats, renderer.Format(f))
	}
	cfg.Resolve()

	if doc.Config.Output == "" {
		return nil, fmt.Errorf("scenefile: config.output must be set")
	}
	if doc.Config.Passes <= 0 {
		return nil, fmt.Errorf("scenefile: config.passes must be positive")
	}

	cam, err := buildCamera(&doc.Camera, cfg.Supersample)
	if err != nil {
		return nil, err
	}

	integ, err := buildIntegrator(&doc.Integrator)
	if err != nil {
		return nil, err
	}

	sc, err := buildScene(&doc.Scene)
	if err != nil {
		return nil, err
	}

	var sens *sensor.Sensor
	if doc.Sensor != nil {
		sens = sensor.New(
			doc.Sensor.Resolution[0]*cfg.Supersample,
			doc.Sensor.Resolution[1]*cfg.Supersample,
		)
	}

	return renderer.New(cfg, cam, sens, integ, sc), nil
}

func v3(a [3]float64) mathutil.Vec3 {
	return mathutil.Vec3(a)
}

func buildCamera(doc *CameraDoc, supersample int) (camera.Camera, error) {
	switch {
	case doc.Perspective != nil:
		p := doc.Perspective
		return camera.NewPerspective(
			v3(p.Eye), v3(p.Target), v3(p.Up),
			p.Fov,
			p.Resolution[0]*supersample, p.Resolution[1]*supersample,
			buildCameraSampler(p.Sampler),
		), nil

	case doc.Orthographic != nil:
		o := doc.Orthographic
		return camera.NewOrthographic(
			v3(o.Position), v3(o.Target), v3(o.Up),
			o.Fov[0], o.Fov[1],
			o.Resolution[0]*supersample, o.Resolution[1]*supersample,
			buildCameraSampler(o.Sampler),
		), nil
	}
	return nil, fmt.Errorf("scenefile: camera variant missing")
}

func buildCameraSampler(doc CameraSamplerDoc) sampler.CameraSampler {
	if doc.Constant != nil {
		return sampler.ConstantOffsets(doc.Constant[0], doc.Constant[1])
	}
	return sampler.RandomOffsets()
}

func buildFloatSampler(doc FloatSamplerDoc) sampler.FloatSampler {
	if doc.Constant != nil {
		return sampler.ConstantFloats(*doc.Constant)
	}
	return sampler.RandomFloats()
}

func buildSpectralSampler(name string) (sampler.SpectralSampler, error) {
	switch name {
	case "", "hero":
		return sampler.SpectralSampler{Strategy: sampler.SpectralHero}, nil
	case "random":
		return sampler.SpectralSampler{Strategy: sampler.SpectralRandom}, nil
	}
	return sampler.SpectralSampler{}, fmt.Errorf("scenefile: unknown spectral sampler %q", name)
}

func buildDirectIllumination(name string) (integrator.DirectIllumination, error) {
	switch name {
	case "", "all":
		return integrator.All, nil
	case "random":
		return integrator.Random, nil
	}
	return 0, fmt.Errorf("scenefile: unknown direct illumination mode %q", name)
}

func buildIntegrator(doc *IntegratorDoc) (integrator.Integrator, error) {
	build := func(p *IntegratorParams) (int, sampler.FloatSampler, sampler.SpectralSampler, integrator.DirectIllumination, error) {
		direct, err := buildDirectIllumination(p.DirectIllumination)
		if err != nil {
			return 0, sampler.FloatSampler{}, sampler.SpectralSampler{}, 0, err
		}
		spectral, err := buildSpectralSampler(p.SpectralSampler)
		if err != nil {
			return 0, sampler.FloatSampler{}, sampler.SpectralSampler{}, 0, err
		}
		if p.MaxDepth <= 0 {
			return 0, sampler.FloatSampler{}, sampler.SpectralSampler{}, 0,
				fmt.Errorf("scenefile: integrator max_depth must be positive")
		}
		return p.MaxDepth, buildFloatSampler(p.Sampler), spectral, direct, nil
	}

	switch {
	case doc.Path != nil:
		depth, smp, _, direct, err := build(doc.Path)
		if err != nil {
			return nil, err
		}
		return integrator.NewPath(depth, smp, direct), nil

	case doc.SpectralPath != nil:
		depth, smp, spectral, direct, err := build(doc.SpectralPath)
		if err != nil {
			return nil, err
		}
		return integrator.NewSpectralPath(depth, smp, spectral, direct), nil

	case doc.SpectralSingle != nil:
		depth, smp, spectral, direct, err := build(doc.SpectralSingle)
		if err != nil {
			return nil, err
		}
		return integrator.NewSpectralSingle(depth, smp, spectral, direct), nil

	case doc.Whitted != nil:
		depth, smp, _, direct, err := build(doc.Whitted)
		if err != nil {
			return nil, err
		}
		return integrator.NewWhitted(depth, smp, direct), nil
	}

	return nil, fmt.Errorf("scenefile: integrator variant missing")
}

func buildScene(doc *SceneDoc) (*scene.Scene, error) {
	sc := scene.New()

	for i := range doc.Objects {
		obj := &doc.Objects[i]
		switch {
		case obj.Emitter != nil:
			shape, err := buildSampleable(&obj.Emitter.Geometry)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
			bsdf, err := buildBSDF(obj.Emitter.Bsdf)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
			sc.Add(scene.EmitterObject(scene.NewEmitter(shape, bsdf, obj.Emitter.Emission.Value)))

		case obj.Receiver != nil:
			shape, err := buildGeometry(&obj.Receiver.Geometry)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
			bsdf, err := buildBSDF(obj.Receiver.Bsdf)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
			sc.Add(scene.ReceiverObject(scene.NewReceiver(shape, bsdf)))

		default:
			return nil, fmt.Errorf("scenefile: object %d: variant missing", i)
		}
	}

	sc.Build()
	return sc, nil
}

func buildGeometry(doc *GeometryDoc) (geometry.Geometry, error) {
	switch {
	case doc.Aabb != nil:
		return geometry.NewAabb(v3(doc.Aabb.Min), v3(doc.Aabb.Max)), nil
	case doc.Sphere != nil:
		s := geometry.NewSphere(v3(doc.Sphere.Center), doc.Sphere.Radius)
		s.Inverse = doc.Sphere.Inverse
		return s, nil
	case doc.Plane != nil:
		return geometry.NewPlane(v3(doc.Plane.Point), v3(doc.Plane.Normal).Normalize()), nil
	case doc.Disk != nil:
		return geometry.NewDisk(v3(doc.Disk.Center), v3(doc.Disk.Normal).Normalize(), doc.Disk.Radius), nil
	case doc.Point != nil:
		return geometry.NewPoint(v3(doc.Point.Position)), nil
	case doc.Bubble != nil:
		return geometry.NewBubble(v3(doc.Bubble.Center), doc.Bubble.InnerRadius, doc.Bubble.OuterRadius), nil
	case doc.Mesh != nil:
		return buildMesh(doc)
	case doc.MeshData != nil:
		return buildMeshData(doc.MeshData)
	}
	return nil, fmt.Errorf("scenefile: geometry variant missing")
}

// buildSampleable resolves emitter geometry; only surface-sampleable
// primitives qualify.
func buildSampleable(doc *GeometryDoc) (scene.Sampleable, error) {
	g, err := buildGeometry(doc)
	if err != nil {
		return nil, err
	}

	switch shape := g.(type) {
	case geometry.Point:
		return scene.SampleablePoint{Point: shape}, nil
	case geometry.Sphere:
		return scene.SampleableSphere{Sphere: shape}, nil
	case geometry.Disk:
		return scene.SampleableDisk{Disk: shape}, nil
	case geometry.Plane:
		return scene.SampleablePlane{Plane: shape}, nil
	}
	return nil, fmt.Errorf("scenefile: emitter geometry must be point, sphere, disk or plane")
}

func parseShading(name string) (mesh.ShadingMode, error) {
	switch name {
	case "", "flat":
		return mesh.Flat, nil
	case "phong":
		return mesh.Phong, nil
	}
	return 0, fmt.Errorf("scenefile: unknown shading mode %q", name)
}

// buildMesh loads the OBJ, applies the transform (scale, rotation,
// translation in that order), builds the BVH, and rewrites the document
// node into its inline data form.
func buildMesh(doc *GeometryDoc) (geometry.Geometry, error) {
	cfg := doc.Mesh

	shading, err := parseShading(cfg.Shading)
	if err != nil {
		return nil, err
	}

	m, err := mesh.LoadObj(cfg.Path, shading)
	if err != nil {
		return nil, err
	}

	if cfg.Scale != nil {
		m.Scale(v3(*cfg.Scale))
	}
	if cfg.Rotation != nil {
		axis := v3(cfg.Rotation.Axis).Normalize()
		m.Rotate(mathutil.RotAxisAngle(axis, mathutil.Deg2Rad(cfg.Rotation.Angle)))
	}
	if cfg.Translation != nil {
		m.Translate(v3(*cfg.Translation))
	}

	m.Build()

	doc.Mesh = nil
	doc.MeshData = meshToData(m, cfg.Shading)
	return m, nil
}

func buildMeshData(doc *MeshDataDoc) (geometry.Geometry, error) {
	shading, err := parseShading(doc.Shading)
	if err != nil {
		return nil, err
	}

	vertices := make([]mathutil.Vec3, len(doc.Vertices))
	for i, v := range doc.Vertices {
		vertices[i] = v3(v)
	}
	normals := make([]mathutil.Vec3, len(doc.Normals))
	for i, n := range doc.Normals {
		normals[i] = v3(n)
	}
	faces := make([]mesh.Face, len(doc.Faces))
	for i, f := range doc.Faces {
		faces[i] = mesh.Face{V: [3]uint32{f[0], f[1], f[2]}, VN: [3]uint32{f[3], f[4], f[5]}}
	}

	return mesh.New(vertices, normals, faces, shading).Build(), nil
}

func meshToData(m *mesh.Mesh, shading string) *MeshDataDoc {
	data := &MeshDataDoc{Shading: shading}

	for _, v := range m.Vertices() {
		data.Vertices = append(data.Vertices, [3]float64(v))
	}
	for _, n := range m.Normals() {
		data.Normals = append(data.Normals, [3]float64(n))
	}
	for _, f := range m.Faces() {
		data.Faces = append(data.Faces, [6]uint32{f.V[0], f.V[1], f.V[2], f.VN[0], f.VN[1], f.VN[2]})
	}

	return data
}

func buildRefractive(doc RefractiveDoc) (bxdf.RefractiveType, error) {
	switch doc.Kind {
	case "air":
		return bxdf.NewRefractiveType(bxdf.Air), nil
	case "vacuum":
		return bxdf.NewRefractiveType(bxdf.Vacuum), nil
	case "water":
		return bxdf.NewRefractiveType(bxdf.Water), nil
	case "glass":
		return bxdf.NewRefractiveType(bxdf.Glass), nil
	case "sapphire":
		return bxdf.NewRefractiveType(bxdf.Sapphire), nil
	case "diesel":
		return bxdf.NewRefractiveType(bxdf.Diesel), nil
	case "linear":
		if doc.Linear == nil {
			return bxdf.RefractiveType{}, fmt.Errorf("scenefile: linear refraction needs [min, max]")
		}
		return bxdf.NewLinearRefraction(doc.Linear[0], doc.Linear[1]), nil
	}
	return bxdf.RefractiveType{}, fmt.Errorf("scenefile: unknown refractive type %q", doc.Kind)
}

func buildFresnel(doc FresnelDoc) (bxdf.Fresnel, error) {
	switch {
	case doc.Dielectric != nil:
		etaI, err := buildRefractive(doc.Dielectric.EtaI)
		if err != nil {
			return nil, err
		}
		etaT, err := buildRefractive(doc.Dielectric.EtaT)
		if err != nil {
			return nil, err
		}
		return bxdf.NewFresnelDielectric(etaI, etaT), nil
	case doc.NoOp:
		return bxdf.FresnelNoOp{}, nil
	}
	return nil, fmt.Errorf("scenefile: fresnel variant missing")
}

func buildBSDF(docs []BxdfDoc) (*bxdf.BSDF, error) {
	bxdfs := make([]bxdf.BxDF, 0, len(docs))

	for i, doc := range docs {
		switch {
		case doc.LambertianReflection != nil:
			bxdfs = append(bxdfs, bxdf.NewLambertianReflection(doc.LambertianReflection.Color.Value))

		case doc.LambertianTransmission != nil:
			bxdfs = append(bxdfs, bxdf.NewLambertianTransmission(doc.LambertianTransmission.Color.Value))

		case doc.OrenNayar != nil:
			bxdfs = append(bxdfs, bxdf.NewOrenNayar(doc.OrenNayar.Color.Value, doc.OrenNayar.Sigma))

		case doc.SpecularReflection != nil:
			fresnel, err := buildFresnel(doc.SpecularReflection.Fresnel)
			if err != nil {
				return nil, fmt.Errorf("bxdf %d: %w", i, err)
			}
			bxdfs = append(bxdfs, bxdf.NewSpecularReflection(doc.SpecularReflection.Color.Value, fresnel))

		case doc.SpecularTransmission != nil:
			etaI, err := buildRefractive(doc.SpecularTransmission.EtaI)
			if err != nil {
				return nil, fmt.Errorf("bxdf %d: %w", i, err)
			}
			etaT, err := buildRefractive(doc.SpecularTransmission.EtaT)
			if err != nil {
				return nil, fmt.Errorf("bxdf %d: %w", i, err)
			}
			bxdfs = append(bxdfs, bxdf.NewSpecularTransmission(doc.SpecularTransmission.Color.Value, etaI, etaT))

		case doc.FresnelSpecular != nil:
			etaI, err := buildRefractive(doc.FresnelSpecular.EtaI)
			if err != nil {
				return nil, fmt.Errorf("bxdf %d: %w", i, err)
			}
			etaT, err := buildRefractive(doc.FresnelSpecular.EtaT)
			if err != nil {
				return nil, fmt.Errorf("bxdf %d: %w", i, err)
			}
			bxdfs = append(bxdfs, bxdf.NewFresnelSpecular(
				doc.FresnelSpecular.Reflection.Value,
				doc.FresnelSpecular.Transmission.Value,
				etaI, etaT,
			))

		default:
			return nil, fmt.Errorf("scenefile: bxdf %d: variant missing", i)
		}
	}

	return bxdf.NewBSDF(bxdfs...), nil
}
